// internal/api/feedback_handler.go
package api

import (
	"errors"
	"net/http"

	"github.com/studypilot/backend/internal/domain/bandit"
	"github.com/studypilot/backend/internal/domain/reward"
)

// ── Request / Response types ────────────────────────────────────────────────

type ReportFeedbackRequest struct {
	Mode   string `json:"mode" example:"quiz"`
	Signal string `json:"signal" example:"like"`
}

func (r *ReportFeedbackRequest) Validate() error {
	if r.Mode == "" {
		return errors.New("mode is required")
	}
	if r.Signal == "" {
		return errors.New("signal is required")
	}
	return nil
}

type ReportFeedbackResponse struct {
	Status string `json:"status" example:"ok"`
}

type ReportSurveyRequest struct {
	PreferredMode string `json:"preferred_mode" example:"flashcard"`
}

func (r *ReportSurveyRequest) Validate() error {
	if r.PreferredMode == "" {
		return errors.New("preferred_mode is required")
	}
	return nil
}

type ReportSurveyResponse struct {
	Status string `json:"status" example:"ok"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// reportFeedback folds a like/dislike/neutral signal into the bandit.
// @Summary      Report content feedback
// @Description  Record an engagement signal for a content mode. Updates the mode's reward posterior.
// @Tags         Reporting
// @Accept       json
// @Produce      json
// @Param        userID  path      string                 true  "User ID"
// @Param        body    body      ReportFeedbackRequest  true  "Feedback to record"
// @Success      200     {object}  ReportFeedbackResponse
// @Failure      400     {object}  map[string]string
// @Router       /users/{userID}/feedback [post]
func (h *Handler) reportFeedback(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	var req ReportFeedbackRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	status, err := h.engine.ReportFeedback(r.Context(), userID, bandit.Mode(req.Mode), reward.Signal(req.Signal))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusOK, ReportFeedbackResponse{Status: string(status)})
}

// reportSurvey stores the user's stated modality preference.
// @Summary      Report survey preference
// @Description  Record the onboarding survey's preferred content mode. "unknown" completes the survey without a preference.
// @Tags         Reporting
// @Accept       json
// @Produce      json
// @Param        userID  path      string               true  "User ID"
// @Param        body    body      ReportSurveyRequest  true  "Survey answer"
// @Success      200     {object}  ReportSurveyResponse
// @Failure      400     {object}  map[string]string
// @Router       /users/{userID}/survey [post]
func (h *Handler) reportSurvey(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	var req ReportSurveyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	status, err := h.engine.ReportSurvey(r.Context(), userID, bandit.Mode(req.PreferredMode))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusOK, ReportSurveyResponse{Status: string(status)})
}

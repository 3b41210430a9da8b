// internal/api/answer_handler.go
package api

import (
	"errors"
	"net/http"
)

// ── Request / Response types ────────────────────────────────────────────────

type ReportAnswerRequest struct {
	ChunkID    string `json:"chunk_id" example:"chunk_0"`
	FileHash   string `json:"file_hash" example:"a1b2c3d4"`
	Correct    bool   `json:"correct" example:"true"`
	Question   string `json:"question,omitempty" example:"What do mitochondria produce?"`
	SampleText string `json:"sample_text,omitempty" example:"Mitochondria convert nutrients into ATP."`
}

func (r *ReportAnswerRequest) Validate() error {
	if r.ChunkID == "" {
		return errors.New("chunk_id is required")
	}
	if r.FileHash == "" {
		return errors.New("file_hash is required")
	}
	return nil
}

type ReportAnswerResponse struct {
	Status string `json:"status" example:"ok"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// reportAnswer records one answered study item against its source chunk.
// @Summary      Report an answered item
// @Description  Record whether the user answered an item correctly, attributed to the source chunk it was generated from.
// @Tags         Reporting
// @Accept       json
// @Produce      json
// @Param        userID  path      string               true  "User ID"
// @Param        body    body      ReportAnswerRequest  true  "Answer outcome"
// @Success      200     {object}  ReportAnswerResponse
// @Failure      400     {object}  map[string]string
// @Router       /users/{userID}/answers [post]
func (h *Handler) reportAnswer(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	var req ReportAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	status, err := h.engine.ReportAnswer(r.Context(), userID, req.ChunkID, req.FileHash, req.Correct, req.Question, req.SampleText)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusOK, ReportAnswerResponse{Status: string(status)})
}

// internal/api/bundle_handler.go
package api

import (
	"errors"
	"net/http"

	"github.com/studypilot/backend/internal/domain/bandit"
	"github.com/studypilot/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type GenerateBundleRequest struct {
	Chunks []string `json:"chunks"`
	Modes  []string `json:"modes,omitempty" example:"quiz,flashcard"`
}

func (r *GenerateBundleRequest) Validate() error {
	if len(r.Chunks) == 0 {
		return errors.New("chunks are required")
	}
	for _, m := range r.Modes {
		if _, err := bandit.ParseMode(m); err != nil {
			return err
		}
	}
	return nil
}

type GenerateBundleResponse struct {
	BundleID string               `json:"bundle_id" example:"x9y8z7w6v5u4t3s2"`
	Results  []service.ModeResult `json:"results"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// generateBundle produces a mixed-content bundle from source chunks.
// @Summary      Generate a mixed bundle
// @Description  Generate content for every requested mode (all modes by default) from the given chunks. Item counts come from the adaptive sizer. Modes that fail carry an error marker; the rest return their items.
// @Tags         Content
// @Accept       json
// @Produce      json
// @Param        userID  path      string                 true  "User ID"
// @Param        body    body      GenerateBundleRequest  true  "Chunks and optional mode subset"
// @Success      200     {object}  GenerateBundleResponse
// @Failure      400     {object}  map[string]string
// @Router       /users/{userID}/bundles [post]
func (h *Handler) generateBundle(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	var req GenerateBundleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	modes := bandit.Modes
	if len(req.Modes) > 0 {
		modes = make([]bandit.Mode, len(req.Modes))
		for i, m := range req.Modes {
			modes[i] = bandit.Mode(m)
		}
	}

	counts := make(map[bandit.Mode]int, len(modes))
	for _, mode := range modes {
		count, err := h.engine.SizeFor(r.Context(), userID, mode, len(req.Chunks))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		counts[mode] = count
	}

	bundle := h.bundles.GenerateBundle(r.Context(), counts, req.Chunks)
	respondJSON(w, http.StatusOK, GenerateBundleResponse{
		BundleID: bundle.BundleID,
		Results:  bundle.Results,
	})
}

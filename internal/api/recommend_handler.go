// internal/api/recommend_handler.go
package api

import (
	"net/http"
	"strconv"

	"github.com/studypilot/backend/internal/domain/bandit"
)

// ── Request / Response types ────────────────────────────────────────────────

type RecommendationResponse struct {
	Mode string `json:"mode" example:"quiz"`
}

type SizingResponse struct {
	Mode       string `json:"mode" example:"flashcard"`
	ChunkCount int    `json:"chunk_count" example:"10"`
	ItemCount  int    `json:"item_count" example:"12"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// getRecommendation picks the content mode for the next study round.
// @Summary      Recommend a content mode
// @Description  Return the mode for the next study round: the survey preference when one is stated, a Thompson sample over the reward posteriors otherwise.
// @Tags         Decisions
// @Produce      json
// @Param        userID  path      string  true  "User ID"
// @Success      200     {object}  RecommendationResponse
// @Router       /users/{userID}/recommendation [get]
func (h *Handler) getRecommendation(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	mode := h.engine.Recommend(r.Context(), userID)
	respondJSON(w, http.StatusOK, RecommendationResponse{Mode: string(mode)})
}

// getSizing computes the item count for a mode and document size.
// @Summary      Compute generation size
// @Description  Return how many items to generate for a mode from the given number of source chunks, scaled by the mode's recent reward trend.
// @Tags         Decisions
// @Produce      json
// @Param        userID       path      string  true  "User ID"
// @Param        mode         query     string  true  "Content mode"
// @Param        chunk_count  query     int     true  "Number of source chunks"
// @Success      200          {object}  SizingResponse
// @Failure      400          {object}  map[string]string
// @Router       /users/{userID}/sizing [get]
func (h *Handler) getSizing(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	mode, err := bandit.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	chunkCount, err := strconv.Atoi(r.URL.Query().Get("chunk_count"))
	if err != nil || chunkCount < 0 {
		http.Error(w, "chunk_count must be a non-negative integer", http.StatusBadRequest)
		return
	}

	count, err := h.engine.SizeFor(r.Context(), userID, mode, chunkCount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusOK, SizingResponse{
		Mode:       string(mode),
		ChunkCount: chunkCount,
		ItemCount:  count,
	})
}

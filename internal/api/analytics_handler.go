// internal/api/analytics_handler.go
package api

import (
	"net/http"

	"github.com/studypilot/backend/internal/domain/analytics"
	"github.com/studypilot/backend/internal/engine"
)

// ── Response types ──────────────────────────────────────────────────────────

type FileAnalyticsResponse struct {
	Files map[string]analytics.FilePerformance `json:"files"`
}

type TopicAnalyticsResponse struct {
	Strong []analytics.TopicPerformance `json:"strong"`
	Weak   []analytics.TopicPerformance `json:"weak"`
}

type ModeStatsResponse struct {
	Modes []engine.ModeSnapshot `json:"modes"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// getFileAnalytics aggregates performance per source document.
// @Summary      Per-file performance
// @Description  Attempts, accuracy and chunk coverage per study file, keyed by file hash.
// @Tags         Analytics
// @Produce      json
// @Param        userID  path      string  true  "User ID"
// @Success      200     {object}  FileAnalyticsResponse
// @Router       /users/{userID}/analytics/files [get]
func (h *Handler) getFileAnalytics(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	files := h.engine.PerformanceByFile(r.Context(), userID)
	respondJSON(w, http.StatusOK, FileAnalyticsResponse{Files: files})
}

// getTopicAnalytics classifies topics into strong and weak.
// @Summary      Strong and weak topics
// @Description  Chunks with enough attempts, split into strong (best-first) and weak (worst-first) topics.
// @Tags         Analytics
// @Produce      json
// @Param        userID  path      string  true  "User ID"
// @Success      200     {object}  TopicAnalyticsResponse
// @Router       /users/{userID}/analytics/topics [get]
func (h *Handler) getTopicAnalytics(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	strong, weak := h.engine.StrongWeakTopics(r.Context(), userID)
	respondJSON(w, http.StatusOK, TopicAnalyticsResponse{Strong: strong, Weak: weak})
}

// getSummary returns the overall performance rollup.
// @Summary      Performance summary
// @Description  Overall attempts, accuracy and chunk coverage across all files.
// @Tags         Analytics
// @Produce      json
// @Param        userID  path      string  true  "User ID"
// @Success      200     {object}  analytics.Summary
// @Router       /users/{userID}/analytics/summary [get]
func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	respondJSON(w, http.StatusOK, h.engine.Summary(r.Context(), userID))
}

// getModeStats exposes the bandit posteriors for inspection.
// @Summary      Mode posteriors
// @Description  Every content mode's reward posterior, observation count and recent average, in priority order.
// @Tags         Analytics
// @Produce      json
// @Param        userID  path      string  true  "User ID"
// @Success      200     {object}  ModeStatsResponse
// @Router       /users/{userID}/analytics/modes [get]
func (h *Handler) getModeStats(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	snaps := h.engine.ModeStatsSnapshot(r.Context(), userID)
	respondJSON(w, http.StatusOK, ModeStatsResponse{Modes: snaps})
}

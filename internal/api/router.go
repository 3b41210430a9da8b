// internal/api/router.go
package api

import "net/http"

// RegisterRoutes attaches every API route to the mux. All routes are
// scoped to a user: the engine keeps fully independent state per user.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Reporting
	mux.HandleFunc("POST /users/{userID}/files", h.registerFile)
	mux.HandleFunc("POST /users/{userID}/feedback", h.reportFeedback)
	mux.HandleFunc("POST /users/{userID}/answers", h.reportAnswer)
	mux.HandleFunc("POST /users/{userID}/survey", h.reportSurvey)

	// Decisions
	mux.HandleFunc("GET /users/{userID}/recommendation", h.getRecommendation)
	mux.HandleFunc("GET /users/{userID}/sizing", h.getSizing)

	// Content generation
	mux.HandleFunc("POST /users/{userID}/bundles", h.generateBundle)

	// Analytics
	mux.HandleFunc("GET /users/{userID}/analytics/files", h.getFileAnalytics)
	mux.HandleFunc("GET /users/{userID}/analytics/topics", h.getTopicAnalytics)
	mux.HandleFunc("GET /users/{userID}/analytics/summary", h.getSummary)
	mux.HandleFunc("GET /users/{userID}/analytics/modes", h.getModeStats)
}

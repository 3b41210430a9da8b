// internal/api/handler.go
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/studypilot/backend/internal/engine"
	"github.com/studypilot/backend/internal/service"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	engine  *engine.Engine
	bundles *service.BundleService
	logger  *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(eng *engine.Engine, bundles *service.BundleService, logger *slog.Logger) *Handler {
	return &Handler{
		engine:  eng,
		bundles: bundles,
		logger:  logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeAndValidate decodes the request body into req and runs its
// Validate method when it has one. Returns false if an error response
// was already written (caller should return).
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	if v, ok := req.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return false
		}
	}
	return true
}

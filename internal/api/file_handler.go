// internal/api/file_handler.go
package api

import (
	"errors"
	"net/http"
)

// ── Request / Response types ────────────────────────────────────────────────

type RegisterFileRequest struct {
	Filename string `json:"filename" example:"biology_chapter_3.pdf"`
}

func (r *RegisterFileRequest) Validate() error {
	if r.Filename == "" {
		return errors.New("filename is required")
	}
	return nil
}

type RegisterFileResponse struct {
	FileHash string `json:"file_hash" example:"a1b2c3d4"`
	Filename string `json:"filename" example:"biology_chapter_3.pdf"`
	Status   string `json:"status" example:"ok"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// registerFile records a friendly name for an uploaded study document.
// @Summary      Register a study file
// @Description  Record a filename and return the short hash that chunks reference it by. Registering the same filename twice returns the same hash.
// @Tags         Reporting
// @Accept       json
// @Produce      json
// @Param        userID  path      string               true  "User ID"
// @Param        body    body      RegisterFileRequest  true  "File to register"
// @Success      201     {object}  RegisterFileResponse
// @Failure      400     {object}  map[string]string
// @Router       /users/{userID}/files [post]
func (h *Handler) registerFile(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	var req RegisterFileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hash, status, err := h.engine.RegisterFile(r.Context(), userID, req.Filename)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusCreated, RegisterFileResponse{
		FileHash: hash,
		Filename: req.Filename,
		Status:   string(status),
	})
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"bugtrack-backend/internal/models"
	"bugtrack-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// BugHandler handles HTTP requests for bug reports.
type BugHandler struct {
	service services.BugServiceProvider
}

// NewBugHandler creates a new BugHandler.
func NewBugHandler(service services.BugServiceProvider) *BugHandler {
	return &BugHandler{service: service}
}

// CreateBugPayload defines the structure for bug submission requests.
type CreateBugPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateBugPayload carries the only mutable bug field.
type UpdateBugPayload struct {
	Status string `json:"status"`
}

// GetAll handles the request to list all bugs.
func (h *BugHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	bugs, err := h.service.GetAllBugs()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve bugs")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve bugs")
		return
	}
	if bugs == nil {
		bugs = []models.Bug{}
	}
	respondJSON(w, http.StatusOK, bugs)
}

// Create handles bug submission.
func (h *BugHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CreateBugPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bug, err := h.service.CreateBug(payload.Title, payload.Description)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create bug")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, bug)
}

// Update handles a bug status change.
func (h *BugHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload UpdateBugPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bug, err := h.service.UpdateBugStatus(id, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			respondError(w, http.StatusNotFound, "Bug not found")
		case errors.Is(err, services.ErrValidation):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Str("bug_id", id).Msg("Failed to update bug")
			respondError(w, http.StatusInternalServerError, "Failed to update bug")
		}
		return
	}
	respondJSON(w, http.StatusOK, bug)
}

// Delete handles bug removal.
func (h *BugHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteBug(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Bug not found")
			return
		}
		log.Error().Err(err).Str("bug_id", id).Msg("Failed to delete bug")
		respondError(w, http.StatusInternalServerError, "Failed to delete bug")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

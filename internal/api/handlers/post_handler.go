package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bugtrack-backend/internal/auth"
	"bugtrack-backend/internal/models"
	"bugtrack-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PostHandler handles HTTP requests for authored posts.
type PostHandler struct {
	service services.PostServiceProvider
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service services.PostServiceProvider) *PostHandler {
	return &PostHandler{service: service}
}

// Create handles post creation for the authenticated caller.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		respondError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	var input models.CreatePostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.service.CreatePost(claims.UserID, input)
	if err != nil {
		log.Warn().Err(err).Str("author", claims.UserID).Msg("Failed to create post")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

// GetAll handles post listing with optional category filter and pagination.
func (h *PostHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	posts, err := h.service.GetPosts(q.Get("category"), page, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve posts")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve posts")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	respondJSON(w, http.StatusOK, posts)
}

// Get handles the request to get a single post by its ID.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.service.GetPostByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Post not found")
			return
		}
		log.Error().Err(err).Str("post_id", id).Msg("Failed to get post")
		respondError(w, http.StatusInternalServerError, "Failed to get post")
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// Update handles an owner-only post edit.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	id := chi.URLParam(r, "id")
	var input models.UpdatePostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.service.UpdatePost(id, claims.UserID, input)
	if err != nil {
		h.respondMutationError(w, err, id)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// Delete handles an owner-only post removal.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.DeletePost(id, claims.UserID); err != nil {
		h.respondMutationError(w, err, id)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
}

func (h *PostHandler) respondMutationError(w http.ResponseWriter, err error, id string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, services.ErrForbidden):
		respondError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, services.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Str("post_id", id).Msg("Post mutation failed")
		respondError(w, http.StatusInternalServerError, "Post mutation failed")
	}
}

package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bloglist/internal/httputil"
	"bloglist/internal/model"
	"bloglist/internal/service"
	"bloglist/internal/transport/http/middleware"
)

type BlogHandler struct {
	blogService *service.BlogService
}

func NewBlogHandler(blogService *service.BlogService) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
	}
}

// blogID parses the id path segment. A syntactically bad id is rejected
// here, before any repository lookup, and is distinct from a missing one.
func blogID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// List handles GET /api/blogs
// Returns all blogs with owner projections. No authentication required.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogService.List(r.Context())
	if err != nil {
		log.Printf("[ERROR] List blogs handler: %v", err)
		httputil.WriteInternalError(w, "Failed to list blogs")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, blogs)
}

// GetByID handles GET /api/blogs/{id}
func (h *BlogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := blogID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "malformatted id")
		return
	}

	blog, err := h.blogService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrBlogNotFound) {
			httputil.WriteNotFound(w, "Blog not found")
			return
		}
		log.Printf("[ERROR] Get blog handler: blog=%d err=%v", id, err)
		httputil.WriteInternalError(w, "Failed to get blog")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, blog)
}

// Create handles POST /api/blogs
// Creates a new blog owned by the authenticated user.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	blog, err := h.blogService.Create(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			// Token signature was fine but its identity no longer exists
			httputil.WriteUnauthorizedWithCode(w, model.CodeTokenInvalid, "Invalid authentication token")
		case errors.Is(err, model.ErrTitleURLRequired):
			httputil.WriteBadRequest(w, "Title and URL are required")
		case errors.Is(err, model.ErrNegativeLikes):
			httputil.WriteBadRequest(w, "Likes must be a non-negative integer")
		default:
			log.Printf("[ERROR] Create blog handler: user=%d err=%v", userID, err)
			httputil.WriteInternalError(w, "Failed to create blog")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, blog)
}

// Update handles PUT /api/blogs/{id}
// Partial field update by id. The endpoint consumes no auth header.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := blogID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "malformatted id")
		return
	}

	var req model.UpdateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	blog, err := h.blogService.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrBlogNotFound):
			httputil.WriteNotFound(w, "Blog not found")
		case errors.Is(err, model.ErrNegativeLikes):
			httputil.WriteBadRequest(w, "Likes must be a non-negative integer")
		default:
			log.Printf("[ERROR] Update blog handler: blog=%d err=%v", id, err)
			httputil.WriteInternalError(w, "Failed to update blog")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, blog)
}

// Delete handles DELETE /api/blogs/{id}
// Only the owner can delete. Success is an empty 204.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	id, err := blogID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "malformatted id")
		return
	}

	err = h.blogService.Delete(r.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrBlogNotFound):
			httputil.WriteNotFound(w, "Blog not found")
		case errors.Is(err, model.ErrNotBlogOwner):
			httputil.WriteForbidden(w, "You can only delete your own blogs")
		default:
			log.Printf("[ERROR] Delete blog handler: user=%d blog=%d err=%v", userID, id, err)
			httputil.WriteInternalError(w, "Failed to delete blog")
		}
		return
	}

	httputil.WriteNoContent(w)
}

// Stats handles GET /api/blogs/stats
// Reports the aggregation summary over the current blog collection.
func (h *BlogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	report, err := h.blogService.Stats(r.Context())
	if err != nil {
		log.Printf("[ERROR] Blog stats handler: %v", err)
		httputil.WriteInternalError(w, "Failed to compute stats")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, report)
}

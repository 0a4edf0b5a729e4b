package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/luthfir/posts-api/internal/api/middleware"
	"github.com/luthfir/posts-api/internal/domain"
	"github.com/luthfir/posts-api/internal/service"
	"go.uber.org/zap"
)

type PostHandler struct {
	postService *service.PostService
	validate    *validator.Validate
	logger      *zap.Logger
}

func NewPostHandler(postService *service.PostService, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		validate:    newValidator(),
		logger:      logger,
	}
}

// PostRequest carries the writable content fields. The owner id is
// never accepted from the client.
type PostRequest struct {
	Title string `json:"title" validate:"required,max=255"`
	Body  string `json:"body" validate:"required"`
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		h.logger.Error("error fetching posts", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, envelope{
			"message": "An error occurred while retrieving posts.",
			"status":  http.StatusInternalServerError,
		})
		return
	}

	if len(posts) == 0 {
		writeJSON(w, http.StatusOK, envelope{
			"message": "No posts available",
			"status":  http.StatusOK,
			"posts":   []*domain.Post{},
		})
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"posts":   posts,
		"message": "Posts retrieved successfully",
		"status":  http.StatusOK,
	})
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	post, err := h.postService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, envelope{
				"message": "Post not found",
				"status":  http.StatusNotFound,
			})
			return
		}
		h.logger.Error("error retrieving post",
			zap.String("post_id", id.String()),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, envelope{
			"message": "An error occurred while retrieving the post.",
			"status":  http.StatusInternalServerError,
		})
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"data":    post,
		"message": "Post retrieved successfully",
		"status":  http.StatusOK,
	})
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, envelope{"message": "Unauthenticated"})
		return
	}

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{"message": "Invalid request body", "status": http.StatusBadRequest})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeValidationErrors(w, err)
		return
	}

	post, err := h.postService.Create(r.Context(), service.PostInput{Title: req.Title, Body: req.Body}, principal.UserID)
	if err != nil {
		h.logger.Error("post creation failed",
			zap.Error(err),
			zap.String("user_id", principal.UserID.String()),
		)
		writeJSON(w, http.StatusInternalServerError, envelope{
			"message": "Failed to create post. Please try again later.",
			"status":  http.StatusInternalServerError,
		})
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		"data":    post,
		"message": "Post created successfully",
		"status":  http.StatusCreated,
	})
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())

	id, ok := postID(w, r)
	if !ok {
		return
	}

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{"message": "Invalid request body", "status": http.StatusBadRequest})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeValidationErrors(w, err)
		return
	}

	post, err := h.postService.Update(r.Context(), id, service.PostInput{Title: req.Title, Body: req.Body})
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, envelope{
				"message": "Post not found",
				"status":  http.StatusNotFound,
			})
			return
		}
		h.logger.Error("post update failed",
			zap.String("post_id", id.String()),
			zap.String("user_id", principal.UserID.String()),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, envelope{
			"message": "Failed to update post. Please try again later.",
			"status":  http.StatusInternalServerError,
		})
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"data":    post,
		"message": "Post updated successfully",
		"status":  http.StatusOK,
	})
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipal(r.Context())

	id, ok := postID(w, r)
	if !ok {
		return
	}

	if err := h.postService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, envelope{
				"message": "Post not found",
				"status":  http.StatusNotFound,
			})
			return
		}
		h.logger.Error("post deletion failed",
			zap.String("post_id", id.String()),
			zap.String("user_id", principal.UserID.String()),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, envelope{
			"message": "Failed to delete post. Please try again later.",
			"status":  http.StatusInternalServerError,
		})
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"message": "Post deleted successfully",
		"status":  http.StatusOK,
	})
}

// postID parses the {id} route parameter; an unparseable id is
// indistinguishable from a missing post.
func postID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, envelope{
			"message": "Post not found",
			"status":  http.StatusNotFound,
		})
		return uuid.Nil, false
	}
	return id, true
}

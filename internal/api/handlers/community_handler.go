package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/farmguru/backend/internal/domain/entities"
	"github.com/farmguru/backend/internal/domain/repositories"
)

// CommunityService is the forum surface the handler needs.
type CommunityService interface {
	CreatePost(ctx context.Context, post *entities.CommunityPost) error
	ListPosts(ctx context.Context, filter repositories.PostFilter) ([]entities.CommunityPost, error)
	GetPost(ctx context.Context, id string) (*entities.CommunityPost, error)
	UpdatePost(ctx context.Context, post *entities.CommunityPost) error
	DeletePost(ctx context.Context, id, userID string) error
	PopularTags(ctx context.Context, limit int) ([]entities.TagCount, error)
}

// CommunityHandler handles forum post requests.
type CommunityHandler struct {
	service CommunityService
}

// NewCommunityHandler creates a new community handler
func NewCommunityHandler(service CommunityService) *CommunityHandler {
	return &CommunityHandler{service: service}
}

type postRequest struct {
	UserID string   `json:"user_id"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Tags   []string `json:"tags"`
}

// CreatePost handles POST /api/community/posts
func (h *CommunityHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var payload postRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	post := &entities.CommunityPost{
		UserID: payload.UserID,
		Title:  payload.Title,
		Body:   payload.Body,
		Tags:   payload.Tags,
	}

	if err := h.service.CreatePost(r.Context(), post); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"post":           post,
		"pending_review": !post.Moderated,
	})
}

// ListPosts handles GET /api/community/posts
func (h *CommunityHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	filter := repositories.PostFilter{Limit: 20}

	if raw := r.URL.Query().Get("tags"); raw != "" {
		filter.Tags = strings.Split(raw, ",")
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			filter.Limit = parsed
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			filter.Offset = parsed
		}
	}

	posts, err := h.service.ListPosts(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"posts": posts,
		"count": len(posts),
	})
}

// GetPost handles GET /api/community/posts/{id}
func (h *CommunityHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "post ID is required")
		return
	}

	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, post)
}

// UpdatePost handles PUT /api/community/posts/{id}
func (h *CommunityHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "post ID is required")
		return
	}

	var payload postRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	post := &entities.CommunityPost{
		ID:     id,
		UserID: payload.UserID,
		Title:  payload.Title,
		Body:   payload.Body,
		Tags:   payload.Tags,
	}

	if err := h.service.UpdatePost(r.Context(), post); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"post":           post,
		"pending_review": !post.Moderated,
	})
}

// DeletePost handles DELETE /api/community/posts/{id}
func (h *CommunityHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "post ID is required")
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if err := h.service.DeletePost(r.Context(), id, userID); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// GetTags handles GET /api/community/tags
func (h *CommunityHandler) GetTags(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 50 {
			limit = parsed
		}
	}

	tags, err := h.service.PopularTags(r.Context(), limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"tags": tags})
}

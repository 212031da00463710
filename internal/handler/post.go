package handler

import (
	"errors"
	"fmt"
	"net/http"

	"microblog/internal/httputil"
	"microblog/internal/model"
	"microblog/internal/service"
	"microblog/internal/transport/http/middleware"
)

// PostHandler serves the home feed, explore page, and post creation.
type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Index handles GET / and GET /index: one page of posts from the caller
// and everyone they follow.
func (h *PostHandler) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	page, err := h.postService.FollowedPosts(r.Context(), userID, parsePage(r))
	if err != nil {
		httputil.WriteInternalError(w, "Failed to load posts")
		return
	}

	h.writePage(w, "/index", page)
}

// Explore handles GET /explore: one page of all posts from all users.
func (h *PostHandler) Explore(w http.ResponseWriter, r *http.Request) {
	page, err := h.postService.Explore(r.Context(), parsePage(r))
	if err != nil {
		httputil.WriteInternalError(w, "Failed to load posts")
		return
	}

	h.writePage(w, "/explore", page)
}

// Create handles POST / with form field body.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	if err := r.ParseForm(); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	post, err := h.postService.Create(r.Context(), userID, r.FormValue("body"))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrBodyRequired):
			httputil.WriteBadRequest(w, "Say something")
		case errors.Is(err, model.ErrBodyTooLong):
			httputil.WriteBadRequest(w, fmt.Sprintf("Posts cannot be longer than %d characters", model.MaxPostBodyLength))
		default:
			httputil.WriteInternalError(w, "Failed to create post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Your post is now live!",
		"post":     post,
		"redirect": "/index",
	})
}

func (h *PostHandler) writePage(w http.ResponseWriter, basePath string, page *model.PostPage) {
	next, prev := pageLinks(basePath, page)
	httputil.WriteJSON(w, http.StatusOK, model.PostListResponse{
		Posts:   page.Posts,
		Page:    page.Page,
		NextURL: next,
		PrevURL: prev,
	})
}

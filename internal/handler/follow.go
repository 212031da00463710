package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"microblog/internal/httputil"
	"microblog/internal/model"
	"microblog/internal/service"
	"microblog/internal/transport/http/middleware"
)

// FollowHandler serves the follow and unfollow endpoints.
type FollowHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// Follow handles POST /follow/{username}.
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	h.change(w, r, h.followService.Follow,
		"You are following %s!", "You cannot follow yourself!")
}

// Unfollow handles POST /unfollow/{username}.
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	h.change(w, r, h.followService.Unfollow,
		"You are not following %s.", "You cannot unfollow yourself!")
}

func (h *FollowHandler) change(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, followerID int64, username string) (*model.User, error),
	successMsg, selfMsg string) {

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	username := chi.URLParam(r, "username")
	if _, err := op(r.Context(), userID, username); err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, fmt.Sprintf("User %s not found.", username))
		case errors.Is(err, model.ErrCannotFollowSelf):
			httputil.WriteBadRequest(w, selfMsg)
		default:
			httputil.WriteInternalError(w, "Failed to update follow state")
		}
		return
	}

	httputil.WriteMessage(w, http.StatusOK, fmt.Sprintf(successMsg, username), "/user/"+username)
}

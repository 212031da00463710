package handler

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"microblog/internal/httputil"
	"microblog/internal/model"
	"microblog/internal/service"
	"microblog/internal/transport/http/middleware"
)

const editProfileMaxMemory = 10 << 20 // 10MB

// UserHandler serves profile pages and profile editing.
type UserHandler struct {
	userService  *service.UserService
	postService  *service.PostService
	mediaService *service.MediaService
}

// NewUserHandler wires dependencies for profile endpoints. mediaService
// may be nil when object storage is not configured; avatar uploads are
// rejected in that case.
func NewUserHandler(userService *service.UserService, postService *service.PostService, mediaService *service.MediaService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		postService:  postService,
		mediaService: mediaService,
	}
}

// Profile handles GET /user/{username}: the user's card plus one page of
// their posts, newest first.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var viewerID *int64
	if id, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		viewerID = &id
	}

	profile, err := h.userService.GetProfile(r.Context(), username, viewerID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, fmt.Sprintf("User %s not found.", username))
			return
		}
		httputil.WriteInternalError(w, "Failed to load profile")
		return
	}

	page, err := h.postService.UserPosts(r.Context(), profile.User.ID, parsePage(r))
	if err != nil {
		httputil.WriteInternalError(w, "Failed to load posts")
		return
	}

	profile.Posts = page.Posts
	profile.NextURL, profile.PrevURL = pageLinks("/user/"+username, page)

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// EditProfileForm handles GET /edit_profile: the caller's current
// editable fields.
func (h *UserHandler) EditProfileForm(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to load profile")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"title": "Edit Profile",
		"user":  user,
	})
}

// EditProfile handles POST /edit_profile with form fields username and
// about_me, plus an optional multipart avatar file.
func (h *UserHandler) EditProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	req := model.UpdateProfileRequest{}
	multipart := false
	if err := r.ParseMultipartForm(editProfileMaxMemory); err == nil {
		multipart = true
	} else if err := r.ParseForm(); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	req.Username = r.FormValue("username")
	if _, ok := r.Form["about_me"]; ok {
		aboutMe := r.FormValue("about_me")
		if utf8.RuneCountInString(aboutMe) > model.MaxPostBodyLength {
			httputil.WriteBadRequest(w, fmt.Sprintf("About me cannot be longer than %d characters", model.MaxPostBodyLength))
			return
		}
		req.AboutMe = &aboutMe
	}

	var oldAvatarKey *string
	if multipart {
		if file, header, err := r.FormFile("avatar"); err == nil {
			defer file.Close()

			if h.mediaService == nil {
				httputil.WriteBadRequest(w, "Avatar uploads are not available")
				return
			}

			result, err := h.mediaService.UploadAvatar(r.Context(), file, header)
			if err != nil {
				switch {
				case errors.Is(err, model.ErrFileTooLarge):
					httputil.WriteBadRequestWithCode(w, model.CodeFileTooLarge, "Avatar file is too large")
				case errors.Is(err, model.ErrInvalidImageType):
					httputil.WriteBadRequestWithCode(w, model.CodeInvalidImageType, "Avatar must be an image")
				default:
					httputil.WriteInternalError(w, "Failed to upload avatar")
				}
				return
			}

			if current, err := h.userService.GetByID(r.Context(), userID); err == nil {
				oldAvatarKey = current.AvatarKey
			}
			req.AvatarURL = &result.URL
			req.AvatarKey = &result.Key
		}
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUsernameExists):
			httputil.WriteConflict(w, "Please use a different username")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		default:
			httputil.WriteBadRequest(w, err.Error())
		}
		return
	}

	// The replaced avatar is garbage once the new one is saved
	if oldAvatarKey != nil && *oldAvatarKey != "" {
		if err := h.mediaService.DeleteObject(r.Context(), *oldAvatarKey); err != nil {
			log.Error().Err(err).Str("key", *oldAvatarKey).Msg("failed to delete old avatar")
		}
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Your changes have been saved.",
		"user":    user,
	})
}

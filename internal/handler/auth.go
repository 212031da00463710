package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"microblog/internal/config"
	"microblog/internal/httputil"
	"microblog/internal/model"
	"microblog/internal/service"
	"microblog/internal/transport/http/middleware"
)

// AuthHandler groups auth-related HTTP endpoints and their dependencies.
type AuthHandler struct {
	userService *service.UserService
	authService *service.AuthService
	mailer      *service.Mailer
	config      *config.Config
}

// NewAuthHandler wires dependencies for authentication endpoints.
func NewAuthHandler(userService *service.UserService, authService *service.AuthService, mailer *service.Mailer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
		mailer:      mailer,
		config:      cfg,
	}
}

// LoginForm handles GET /login. Authenticated callers are sent home.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"title": "Sign In"})
}

// Login handles POST /login with form fields username, password,
// remember_me and next.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	req := model.LoginRequest{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
		Remember: r.FormValue("remember_me") != "",
	}

	if req.Username == "" {
		httputil.WriteBadRequest(w, "Username is required")
		return
	}
	if req.Password == "" {
		httputil.WriteBadRequest(w, "Password is required")
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			// Same message for unknown user and wrong password
			httputil.WriteUnauthorized(w, "Invalid username or password")
			return
		}
		httputil.WriteInternalError(w, "Failed to login")
		return
	}

	accessToken, err := h.authService.GenerateAccessToken(user.ID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to generate session token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   h.config.AccessTokenMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if req.Remember {
		rememberToken, err := h.authService.GenerateRememberToken(r.Context(), user.ID)
		if err != nil {
			log.Error().Err(err).Int64("user", user.ID).Msg("failed to issue remember token")
		} else {
			http.SetCookie(w, &http.Cookie{
				Name:     middleware.RememberTokenCookie,
				Value:    rememberToken,
				Path:     "/",
				MaxAge:   h.config.RememberTokenMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
	}

	if err := h.userService.TouchLastSeen(r.Context(), user.ID); err != nil {
		log.Error().Err(err).Int64("user", user.ID).Msg("failed to update last_seen")
	}

	httputil.WriteJSON(w, http.StatusOK, model.LoginResponse{
		User:        user,
		AccessToken: accessToken,
		ExpiresIn:   h.config.AccessTokenMaxAge,
		Redirect:    safeNext(r.FormValue("next")),
	})
}

// Logout handles GET /logout: revoke the remembered session, clear
// cookies, and send the caller home.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.RememberTokenCookie); err == nil && cookie.Value != "" {
		if err := h.authService.RevokeRememberToken(r.Context(), cookie.Value); err != nil &&
			!errors.Is(err, model.ErrRememberTokenNotFound) {
			log.Error().Err(err).Msg("failed to revoke remember token")
		}
	}

	clearCookie(w, middleware.AccessTokenCookie)
	clearCookie(w, middleware.RememberTokenCookie)

	http.Redirect(w, r, "/", http.StatusFound)
}

// RegisterForm handles GET /register. Authenticated callers are sent home.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"title": "Register"})
}

// Register handles POST /register with form fields username, email,
// password and password2.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	req := model.RegisterRequest{
		Username:  r.FormValue("username"),
		Email:     r.FormValue("email"),
		Password:  r.FormValue("password"),
		Password2: r.FormValue("password2"),
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUsernameExists):
			httputil.WriteConflict(w, "Please use a different username")
		case errors.Is(err, model.ErrEmailExists):
			httputil.WriteConflict(w, "Please use a different email address")
		case errors.Is(err, model.ErrPasswordMismatch):
			httputil.WriteBadRequest(w, "Passwords do not match")
		default:
			httputil.WriteBadRequest(w, err.Error())
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Congratulations, you are now a registered user!",
		"user":     user,
		"redirect": "/login",
	})
}

// ResetPasswordRequestForm handles GET /reset_password_request.
func (h *AuthHandler) ResetPasswordRequestForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"title": "Reset Password"})
}

// ResetPasswordRequest handles POST /reset_password_request. The response
// is identical whether or not the email matches an account.
func (h *AuthHandler) ResetPasswordRequest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	email := r.FormValue("email")
	if email == "" {
		httputil.WriteBadRequest(w, "Email is required")
		return
	}

	if user, err := h.userService.GetByEmail(r.Context(), email); err == nil {
		token, err := h.authService.GenerateResetToken(user.ID)
		if err != nil {
			log.Error().Err(err).Int64("user", user.ID).Msg("failed to generate reset token")
		} else {
			h.mailer.SendPasswordResetEmail(user, token)
		}
	} else if !errors.Is(err, model.ErrUserNotFound) {
		log.Error().Err(err).Msg("failed to look up email for password reset")
	}

	httputil.WriteMessage(w, http.StatusOK,
		"Check your email for the instructions to reset your password", "/login")
}

// ResetPasswordForm handles GET /reset_password/{token}: an invalid or
// expired token silently redirects home.
func (h *AuthHandler) ResetPasswordForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	token := chi.URLParam(r, "token")
	if _, err := h.authService.VerifyResetToken(token); err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"title": "Reset Your Password"})
}

// ResetPassword handles POST /reset_password/{token} with form fields
// password and password2.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	userID, err := h.authService.VerifyResetToken(token)
	if err != nil {
		// Bad signature, expired, malformed: all treated the same
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	password := r.FormValue("password")
	password2 := r.FormValue("password2")
	if password == "" {
		httputil.WriteBadRequest(w, "Password is required")
		return
	}
	if password != password2 {
		httputil.WriteBadRequest(w, "Passwords do not match")
		return
	}

	if err := h.userService.SetPassword(r.Context(), userID, password); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		httputil.WriteInternalError(w, "Failed to reset password")
		return
	}

	// A password change invalidates every remembered session
	if err := h.authService.RevokeAllRememberTokens(r.Context(), userID); err != nil {
		log.Error().Err(err).Int64("user", userID).Msg("failed to revoke remembered sessions")
	}

	httputil.WriteMessage(w, http.StatusOK, "Your password has been reset.", "/login")
}

// safeNext sanitizes the post-login redirect target: only targets without
// a network-location component are allowed, everything else goes home.
func safeNext(next string) string {
	if next == "" {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return "/"
	}
	return next
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

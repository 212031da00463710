package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"microblog/internal/handler"
	"microblog/internal/httputil"
	authmw "microblog/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler      *handler.AuthHandler
	UserHandler      *handler.UserHandler
	FollowHandler    *handler.FollowHandler
	PostHandler      *handler.PostHandler
	TranslateHandler *handler.TranslateHandler
	SessionRefresher authmw.SessionRefresher
	Presence         authmw.PresenceRecorder
	NotifyFailure    func(subject, body string)
	JWTSecret        string
	AccessTokenAge   int
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(authmw.Recoverer(cfg.NotifyFailure))
	r.Use(authmw.RememberMiddleware(cfg.SessionRefresher, cfg.AccessTokenAge))

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	// Credential endpoints are rate limited per client IP
	loginLimiter := authmw.NewRateLimiter(rate.Limit(1), 5)

	// Public routes with optional authentication: logged-in callers get
	// redirected away from the auth forms
	r.Group(func(r chi.Router) {
		r.Use(authmw.OptionalAuthMiddleware(cfg.JWTSecret))

		r.Get("/login", cfg.AuthHandler.LoginForm)
		r.With(loginLimiter.Handler).Post("/login", cfg.AuthHandler.Login)
		r.Get("/logout", cfg.AuthHandler.Logout)
		r.Get("/register", cfg.AuthHandler.RegisterForm)
		r.With(loginLimiter.Handler).Post("/register", cfg.AuthHandler.Register)

		r.Get("/reset_password_request", cfg.AuthHandler.ResetPasswordRequestForm)
		r.With(loginLimiter.Handler).Post("/reset_password_request", cfg.AuthHandler.ResetPasswordRequest)
		r.Get("/reset_password/{token}", cfg.AuthHandler.ResetPasswordForm)
		r.With(loginLimiter.Handler).Post("/reset_password/{token}", cfg.AuthHandler.ResetPassword)
	})

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(cfg.JWTSecret))
		r.Use(authmw.LastSeenMiddleware(cfg.Presence))

		r.Get("/", cfg.PostHandler.Index)
		r.Get("/index", cfg.PostHandler.Index)
		r.Post("/", cfg.PostHandler.Create)
		r.Post("/index", cfg.PostHandler.Create)
		r.Get("/explore", cfg.PostHandler.Explore)

		r.Get("/user/{username}", cfg.UserHandler.Profile)
		r.Get("/edit_profile", cfg.UserHandler.EditProfileForm)
		r.Post("/edit_profile", cfg.UserHandler.EditProfile)

		r.Post("/follow/{username}", cfg.FollowHandler.Follow)
		r.Post("/unfollow/{username}", cfg.FollowHandler.Unfollow)

		r.Post("/translate", cfg.TranslateHandler.Translate)
	})

	return r
}

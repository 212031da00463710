package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
)

// SessionRefresher exchanges a raw remember token for a fresh access token.
type SessionRefresher interface {
	RefreshFromRemember(ctx context.Context, raw string) (string, error)
}

// RememberMiddleware restores an expired session from the remember-token
// cookie. When the request carries no usable access token but a valid
// remember token, it mints a new access token, re-sets the session cookie,
// and lets the auth middleware see the request as authenticated.
func RememberMiddleware(refresher SessionRefresher, accessTokenMaxAge int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hasAccessToken(r) {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(RememberTokenCookie)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			accessToken, err := refresher.RefreshFromRemember(r.Context(), cookie.Value)
			if err != nil {
				log.Debug().Err(err).Msg("remember token rejected")
				next.ServeHTTP(w, r)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     AccessTokenCookie,
				Value:    accessToken,
				Path:     "/",
				MaxAge:   accessTokenMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			r.Header.Set("Authorization", "Bearer "+accessToken)

			next.ServeHTTP(w, r)
		})
	}
}

func hasAccessToken(r *http.Request) bool {
	if r.Header.Get("Authorization") != "" {
		return true
	}
	cookie, err := r.Cookie(AccessTokenCookie)
	return err == nil && cookie.Value != ""
}

package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
)

// PresenceRecorder records that a user was active just now.
type PresenceRecorder interface {
	TouchLastSeen(ctx context.Context, userID int64) error
}

// LastSeenMiddleware updates the user's last_seen timestamp on every
// authenticated request. Must run after the auth middleware.
func LastSeenMiddleware(presence PresenceRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := GetUserIDFromContext(r.Context()); ok {
				if err := presence.TouchLastSeen(r.Context(), userID); err != nil {
					log.Error().Err(err).Int64("user", userID).Msg("failed to update last_seen")
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

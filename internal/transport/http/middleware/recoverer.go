package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	"microblog/internal/httputil"
)

// Recoverer converts panics into 500 responses and, when a notify
// function is provided, mails the failure to the configured admins.
func Recoverer(notify func(subject, body string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					stack := debug.Stack()
					log.Error().
						Interface("panic", rec).
						Str("path", r.URL.Path).
						Bytes("stack", stack).
						Msg("request panicked")

					if notify != nil {
						notify(
							"Microblog Failure",
							fmt.Sprintf("panic on %s %s: %v\n\n%s", r.Method, r.URL.Path, rec, stack),
						)
					}

					httputil.WriteInternalError(w, "An unexpected error has occurred")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

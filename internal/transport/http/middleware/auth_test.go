package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func validToken(t *testing.T, userID int64) string {
	return signToken(t, testSecret, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
}

func TestAuthMiddleware(t *testing.T) {
	var gotUserID int64
	var gotOK bool
	handler := AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = GetUserIDFromContext(r.Context())
	}))

	tests := []struct {
		name       string
		setup      func(r *http.Request)
		wantStatus int
		wantUserID int64
	}{
		{
			name: "bearer header",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+validToken(t, 7))
			},
			wantStatus: http.StatusOK,
			wantUserID: 7,
		},
		{
			name: "session cookie",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: validToken(t, 9)})
			},
			wantStatus: http.StatusOK,
			wantUserID: 9,
		},
		{
			name:       "no credentials",
			setup:      func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong signing key",
			setup: func(r *http.Request) {
				bad := signToken(t, "other-secret", jwt.MapClaims{
					"user_id": float64(7),
					"exp":     time.Now().Add(time.Hour).Unix(),
				})
				r.Header.Set("Authorization", "Bearer "+bad)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			setup: func(r *http.Request) {
				expired := signToken(t, testSecret, jwt.MapClaims{
					"user_id": float64(7),
					"exp":     time.Now().Add(-time.Hour).Unix(),
				})
				r.Header.Set("Authorization", "Bearer "+expired)
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID, gotOK = 0, false
			r := httptest.NewRequest("GET", "/", nil)
			tt.setup(r)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if !gotOK || gotUserID != tt.wantUserID {
					t.Errorf("user ID = %d (ok=%v), want %d", gotUserID, gotOK, tt.wantUserID)
				}
			}
		})
	}
}

func TestOptionalAuthMiddleware_AnonymousPassesThrough(t *testing.T) {
	called := false
	handler := OptionalAuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := GetUserIDFromContext(r.Context()); ok {
			t.Error("anonymous request should carry no user ID")
		}
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if !called {
		t.Error("handler should be reached without credentials")
	}
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

type stubRefresher struct {
	token string
	err   error
	calls int
}

func (s *stubRefresher) RefreshFromRemember(ctx context.Context, raw string) (string, error) {
	s.calls++
	return s.token, s.err
}

func TestRememberMiddleware_RestoresSession(t *testing.T) {
	refresher := &stubRefresher{token: validToken(t, 7)}
	var gotUserID int64
	handler := RememberMiddleware(refresher, 3600)(
		AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserID, _ = GetUserIDFromContext(r.Context())
		})))

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: RememberTokenCookie, Value: "raw-remember-value"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotUserID != 7 {
		t.Errorf("user ID = %d, want 7", gotUserID)
	}

	// The fresh access token is also re-set as a cookie
	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == AccessTokenCookie && c.Value == refresher.token {
			found = true
		}
	}
	if !found {
		t.Error("expected a fresh access_token cookie")
	}
}

func TestRememberMiddleware_SkipsWhenSessionPresent(t *testing.T) {
	refresher := &stubRefresher{token: validToken(t, 7)}
	handler := RememberMiddleware(refresher, 3600)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: validToken(t, 7)})
	r.AddCookie(&http.Cookie{Name: RememberTokenCookie, Value: "raw-remember-value"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if refresher.calls != 0 {
		t.Errorf("refresher called %d times, want 0", refresher.calls)
	}
}

func TestRememberMiddleware_RejectedTokenStaysAnonymous(t *testing.T) {
	refresher := &stubRefresher{err: errors.New("revoked")}
	handler := RememberMiddleware(refresher, 3600)(
		AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: RememberTokenCookie, Value: "stale-value"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

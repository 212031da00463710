package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTranslateService_NoAPIKey(t *testing.T) {
	svc := NewTranslateService("")

	got := string(svc.Translate(context.Background(), "Hola", "es", "en"))
	want := `"Error: the translation service is not configured."`
	if got != want {
		t.Errorf("result = %s, want %s", got, want)
	}
}

func TestTranslateService_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Ocp-Apim-Subscription-Key"); got != "test-key" {
			t.Errorf("subscription key header = %q, want %q", got, "test-key")
		}
		if got := r.URL.Query().Get("text"); got != "Hola" {
			t.Errorf("text param = %q, want %q", got, "Hola")
		}
		if got := r.URL.Query().Get("from"); got != "es" {
			t.Errorf("from param = %q, want %q", got, "es")
		}
		if got := r.URL.Query().Get("to"); got != "en" {
			t.Errorf("to param = %q, want %q", got, "en")
		}
		w.Write([]byte(`"Hello"`))
	}))
	defer server.Close()

	svc := NewTranslateServiceWithEndpoint("test-key", server.URL, server.Client())

	got := string(svc.Translate(context.Background(), "Hola", "es", "en"))
	if got != `"Hello"` {
		t.Errorf("result = %s, want %s", got, `"Hello"`)
	}
}

func TestTranslateService_StripsBOM(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("\xef\xbb\xbf" + `"Hello"`))
	}))
	defer server.Close()

	svc := NewTranslateServiceWithEndpoint("test-key", server.URL, server.Client())

	got := string(svc.Translate(context.Background(), "Hola", "es", "en"))
	if got != `"Hello"` {
		t.Errorf("result = %s, want %s", got, `"Hello"`)
	}
}

func TestTranslateService_UpstreamFailure(t *testing.T) {
	want := `"Error: the translation service failed."`

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		svc := NewTranslateServiceWithEndpoint("test-key", server.URL, server.Client())
		if got := string(svc.Translate(context.Background(), "Hola", "es", "en")); got != want {
			t.Errorf("result = %s, want %s", got, want)
		}
	})

	t.Run("unreachable server", func(t *testing.T) {
		svc := NewTranslateServiceWithEndpoint("test-key", "http://127.0.0.1:1", nil)
		if got := string(svc.Translate(context.Background(), "Hola", "es", "en")); got != want {
			t.Errorf("result = %s, want %s", got, want)
		}
	})

	t.Run("invalid payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		}))
		defer server.Close()

		svc := NewTranslateServiceWithEndpoint("test-key", server.URL, server.Client())
		if got := string(svc.Translate(context.Background(), "Hola", "es", "en")); got != want {
			t.Errorf("result = %s, want %s", got, want)
		}
	})
}

package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"brandforge/pkg/middleware"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if called != nil {
			*called = true
		}
		w.WriteHeader(http.StatusOK)
	})
}

// serve runs one request with an Origin header through the wrapped handler.
func serve(h http.Handler, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestApplyOrder(t *testing.T) {
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	mw := middleware.New()
	mw.Use(tag("first"))
	mw.Use(tag("second"))

	handler := mw.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))
	serve(handler, "GET", "")

	if !slices.Equal(order, []string{"first", "second", "handler"}) {
		t.Errorf("order = %v, want [first second handler]", order)
	}
}

func TestCORS(t *testing.T) {
	const studio = "https://studio.brandforge.dev"

	t.Run("disabled sets no headers", func(t *testing.T) {
		h := middleware.CORS(&middleware.CORSConfig{Enabled: false})(okHandler(nil))
		rec := serve(h, "GET", studio)
		if rec.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Error("CORS headers should not be set when disabled")
		}
	})

	t.Run("allowed origin echoed with policy headers", func(t *testing.T) {
		h := middleware.CORS(&middleware.CORSConfig{
			Enabled:        true,
			Origins:        []string{studio},
			AllowedMethods: []string{"GET", "POST"},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         3600,
		})(okHandler(nil))

		rec := serve(h, "GET", studio)
		headers := map[string]string{
			"Access-Control-Allow-Origin":  studio,
			"Access-Control-Allow-Methods": "GET, POST",
			"Access-Control-Max-Age":       "3600",
		}
		for name, want := range headers {
			if got := rec.Header().Get(name); got != want {
				t.Errorf("%s = %q, want %q", name, got, want)
			}
		}
	})

	t.Run("unlisted origin gets no headers", func(t *testing.T) {
		h := middleware.CORS(&middleware.CORSConfig{
			Enabled: true,
			Origins: []string{"https://app.brandforge.dev"},
		})(okHandler(nil))

		rec := serve(h, "GET", "https://evil.example.net")
		if rec.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Error("should not set allow-origin for disallowed origin")
		}
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		var called bool
		h := middleware.CORS(&middleware.CORSConfig{
			Enabled:        true,
			Origins:        []string{studio},
			AllowedMethods: []string{"GET", "POST"},
		})(okHandler(&called))

		rec := serve(h, "OPTIONS", studio)
		if rec.Code != http.StatusOK {
			t.Errorf("preflight status = %d, want 200", rec.Code)
		}
		if called {
			t.Error("handler should not be called for preflight")
		}
	})

	t.Run("credentials header", func(t *testing.T) {
		h := middleware.CORS(&middleware.CORSConfig{
			Enabled:          true,
			Origins:          []string{studio},
			AllowCredentials: true,
		})(okHandler(nil))

		rec := serve(h, "GET", studio)
		if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("allow-credentials = %q, want true", got)
		}
	})
}

func TestLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var called bool
	h := middleware.Logger(logger)(okHandler(&called))
	rec := serve(h, "GET", "")

	if !called {
		t.Error("inner handler should have been called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestCORSConfig(t *testing.T) {
	t.Run("finalize applies defaults", func(t *testing.T) {
		cfg := middleware.CORSConfig{}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if len(cfg.AllowedMethods) != 5 || len(cfg.AllowedHeaders) != 2 || cfg.MaxAge != 3600 {
			t.Errorf("defaults = %d methods/%d headers/max-age %d, want 5/2/3600",
				len(cfg.AllowedMethods), len(cfg.AllowedHeaders), cfg.MaxAge)
		}
	})

	t.Run("finalize reads env overrides", func(t *testing.T) {
		t.Setenv("TEST_CORS_ENABLED", "true")
		t.Setenv("TEST_CORS_ORIGINS", "https://a.brandforge.dev, https://b.brandforge.dev")
		t.Setenv("TEST_CORS_CREDS", "true")

		cfg := middleware.CORSConfig{}
		err := cfg.Finalize(&middleware.CORSEnv{
			Enabled:          "TEST_CORS_ENABLED",
			Origins:          "TEST_CORS_ORIGINS",
			AllowCredentials: "TEST_CORS_CREDS",
		})
		if err != nil {
			t.Fatalf("finalize failed: %v", err)
		}

		if !cfg.Enabled || !cfg.AllowCredentials {
			t.Errorf("enabled = %v, credentials = %v, want both true", cfg.Enabled, cfg.AllowCredentials)
		}
		want := []string{"https://a.brandforge.dev", "https://b.brandforge.dev"}
		if !slices.Equal(cfg.Origins, want) {
			t.Errorf("origins = %v, want %v", cfg.Origins, want)
		}
	})

	t.Run("merge overlays set fields", func(t *testing.T) {
		base := middleware.CORSConfig{
			Enabled:        false,
			Origins:        []string{"https://base.brandforge.dev"},
			AllowedMethods: []string{"GET"},
			MaxAge:         3600,
		}
		base.Merge(&middleware.CORSConfig{
			Enabled: true,
			Origins: []string{"https://overlay.brandforge.dev"},
			MaxAge:  7200,
		})

		if !base.Enabled {
			t.Error("enabled should be true after merge")
		}
		if !slices.Equal(base.Origins, []string{"https://overlay.brandforge.dev"}) {
			t.Errorf("origins = %v, want overlay value", base.Origins)
		}
		if base.MaxAge != 7200 {
			t.Errorf("max_age = %d, want 7200", base.MaxAge)
		}
	})
}

package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"brandforge/pkg/module"
)

// pathRecorder builds a mux that records the path the inner handler saw.
func pathRecorder(pattern string) (*http.ServeMux, *string) {
	mux := http.NewServeMux()
	var path string
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})
	return mux, &path
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	return rec
}

func TestNewPrefixValidation(t *testing.T) {
	for _, prefix := range []string{"/api", "/admin", "/status"} {
		m := module.New(prefix, http.NewServeMux())
		if m.Prefix() != prefix {
			t.Errorf("prefix = %q, want %q", m.Prefix(), prefix)
		}
	}

	rejected := map[string]string{
		"empty":            "",
		"no leading slash": "api",
		"nested path":      "/api/v1",
	}
	for name, prefix := range rejected {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%q) should panic", prefix)
				}
			}()
			module.New(prefix, http.NewServeMux())
		})
	}
}

func TestServe(t *testing.T) {
	t.Run("strips prefix before dispatch", func(t *testing.T) {
		mux, path := pathRecorder("GET /kits")
		m := module.New("/api", mux)

		rec := httptest.NewRecorder()
		m.Serve(rec, httptest.NewRequest("GET", "/api/kits", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
		if *path != "/kits" {
			t.Errorf("inner path = %q, want /kits", *path)
		}
	})

	t.Run("bare prefix maps to root", func(t *testing.T) {
		mux, path := pathRecorder("GET /")
		m := module.New("/api", mux)

		rec := httptest.NewRecorder()
		m.Serve(rec, httptest.NewRequest("GET", "/api", nil))

		if *path != "/" {
			t.Errorf("root path = %q, want /", *path)
		}
	})

	t.Run("module middleware wraps dispatch", func(t *testing.T) {
		mux, _ := pathRecorder("GET /")
		m := module.New("/api", mux)

		var called bool
		m.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				next.ServeHTTP(w, r)
			})
		})

		rec := httptest.NewRecorder()
		m.Serve(rec, httptest.NewRequest("GET", "/api", nil))

		if !called {
			t.Error("module middleware should have been called")
		}
	})
}

func TestRouter(t *testing.T) {
	echo := func(body string, pattern string) *http.ServeMux {
		mux := http.NewServeMux()
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(body))
		})
		return mux
	}

	t.Run("dispatches by first segment", func(t *testing.T) {
		router := module.NewRouter()
		router.Mount(module.New("/api", echo("api", "GET /health")))
		router.Mount(module.New("/admin", echo("admin", "GET /")))

		paths := map[string]string{
			"/api/health": "api",
			"/admin":      "admin",
		}
		for path, want := range paths {
			rec := get(router, path)
			if rec.Code != http.StatusOK {
				t.Errorf("%s: status = %d, want 200", path, rec.Code)
			}
			if body := rec.Body.String(); body != want {
				t.Errorf("%s: body = %q, want %q", path, body, want)
			}
		}
	})

	t.Run("native handlers outside modules", func(t *testing.T) {
		router := module.NewRouter()
		router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		})

		rec := get(router, "/healthz")
		if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
			t.Errorf("healthz = %d %q, want 200 ok", rec.Code, rec.Body.String())
		}
	})

	t.Run("trailing slash normalized", func(t *testing.T) {
		router := module.NewRouter()
		router.Mount(module.New("/api", echo("", "GET /kits")))

		if rec := get(router, "/api/kits/"); rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})
}

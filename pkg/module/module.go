// Package module mounts routed sub-applications under single-level path
// prefixes, each with its own middleware stack.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"brandforge/pkg/middleware"
)

// Module owns one path prefix. Requests under the prefix are rewritten
// relative to it and handled by the inner router through the module's
// middleware.
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System
}

// New builds a Module for a single-level prefix such as "/api". An
// empty, unrooted, or multi-level prefix panics, since it is a wiring
// mistake rather than a runtime condition.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}

	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
	}
}

// Handler wraps the inner router with the module's middleware stack.
func (m *Module) Handler() http.Handler {
	return m.middleware.Apply(m.router)
}

// Prefix returns the mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Serve rewrites the request path relative to the prefix and dispatches
// through the middleware-wrapped router.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	m.Handler().ServeHTTP(w, stripPrefix(req, m.prefix))
}

// Use appends middleware to the module's stack.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

// stripPrefix returns a shallow clone of req with the prefix removed
// from its path. The original request is left untouched.
func stripPrefix(req *http.Request, prefix string) *http.Request {
	path := req.URL.Path[len(prefix):]
	if path == "" {
		path = "/"
	}

	clone := new(http.Request)
	*clone = *req
	clone.URL = new(url.URL)
	*clone.URL = *req.URL
	clone.URL.Path = path
	clone.URL.RawPath = ""

	return clone
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix cannot be empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	}
	if strings.Count(prefix, "/") != 1 {
		return fmt.Errorf("module prefix must be single-level sub-path: %s", prefix)
	}
	return nil
}

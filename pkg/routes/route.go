// Package routes declares HTTP endpoints as data so handlers can expose
// their surface without touching a mux directly.
package routes

import "net/http"

// Route pairs a method and pattern with its handler. Pattern is relative
// to the enclosing Group's prefix.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

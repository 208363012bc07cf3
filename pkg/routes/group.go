package routes

import "net/http"

// Group nests routes under a shared prefix. Child groups inherit and
// extend the parent prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register walks the groups and installs every route on mux using
// method-qualified patterns.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", group)
	}
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	prefix := parentPrefix + group.Prefix

	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+prefix+route.Pattern, route.Handler)
	}
	for _, child := range group.Children {
		registerGroup(mux, prefix, child)
	}
}

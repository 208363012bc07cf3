package api

import (
	"errors"
	"log/slog"
	"net/http"

	"brandforge/internal/workflow"
	"brandforge/pkg/handlers"
	"brandforge/pkg/routes"
)

var errRunNotFound = errors.New("generation run not found")

// generationsHandler exposes the in-memory run registry for progress
// surfaces. Runs live only for the current process; a restart clears
// them.
type generationsHandler struct {
	runs   *workflow.Registry
	logger *slog.Logger
}

func newGenerationsHandler(runs *workflow.Registry, logger *slog.Logger) *generationsHandler {
	return &generationsHandler{
		runs:   runs,
		logger: logger.With("handler", "generations"),
	}
}

func (h *generationsHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/generations",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.list},
			{Method: "GET", Pattern: "/{id}", Handler: h.find},
		},
	}
}

func (h *generationsHandler) list(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.runs.List())
}

func (h *generationsHandler) find(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.runs.Find(r.PathValue("id"))
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusNotFound, errRunNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, snapshot)
}

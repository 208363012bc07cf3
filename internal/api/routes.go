package api

import (
	"net/http"

	"brandforge/internal/config"
	"brandforge/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Samples.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Prompts.Handler().Routes(),
		domain.Brands.Handler().Routes(),
		newGenerationsHandler(domain.Runs, runtime.Logger).routes(),
		newStorageHandler(
			runtime.Storage,
			runtime.Logger,
			cfg.Storage.MaxListSize,
		).routes(),
	)
}

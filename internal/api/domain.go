package api

import (
	"brandforge/internal/brands"
	"brandforge/internal/config"
	"brandforge/internal/prompts"
	"brandforge/internal/samples"
	"brandforge/internal/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Samples samples.System
	Prompts prompts.System
	Brands  brands.System
	Runs    *workflow.Registry
}

// NewDomain creates all domain systems from the API runtime. The run
// registry is shared between the brands system, which records runs, and
// the generations handler, which exposes them.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	samplesSystem := samples.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	promptsSystem := prompts.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	runs := workflow.NewRegistry(workflow.DefaultRunLimit)

	brandsSystem := brands.New(
		runtime.Database.Connection(),
		runtime.Agent,
		runtime.Logger,
		runtime.Pagination,
		runtime.Storage,
		samplesSystem,
		promptsSystem,
		runs,
		cfg.Workflow.DocumentFormat,
		cfg.Workflow.StatusResetDelayDuration(),
	)

	return &Domain{
		Samples: samplesSystem,
		Prompts: promptsSystem,
		Brands:  brandsSystem,
		Runs:    runs,
	}
}

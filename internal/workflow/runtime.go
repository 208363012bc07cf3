// Package workflow implements the brand-generation pipeline: style
// analysis, visual identity synthesis, document assembly, and asset
// persistence, executed as ordered steps over a shared brand state.
package workflow

import (
	"log/slog"
	"sync"
	"time"

	"brandforge/internal/prompts"
	"brandforge/internal/samples"
	"brandforge/pkg/storage"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Runtime bundles the dependencies that workflow stages require.
// It is constructed by higher-level composition code from Infrastructure
// and Domain systems.
type Runtime struct {
	Agent   gaconfig.AgentConfig
	Storage storage.System
	Samples samples.System
	Prompts prompts.System
	Runs    *Registry
	Logger  *slog.Logger

	// Format is the output format requested from document assembly.
	Format string
	// ResetDelay controls how long a finished run's tracker holds its
	// terminal phase before returning to idle.
	ResetDelay time.Duration

	agentMu sync.Mutex
	cached  agent.Agent
}

package workflow

import (
	"fmt"

	"github.com/JaimeStill/go-agents/pkg/agent"
)

// agentHandle returns the memoized agent, constructing it on first use.
// Construction only validates configuration; no connection is dialed
// until a stage sends a request.
func (rt *Runtime) agentHandle() (agent.Agent, error) {
	rt.agentMu.Lock()
	defer rt.agentMu.Unlock()

	if rt.cached != nil {
		return rt.cached, nil
	}

	a, err := agent.New(&rt.Agent)
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}

	rt.cached = a
	return a, nil
}

// invalidateAgent discards the memoized agent after a failed call so the
// next stage constructs a fresh one instead of reusing a handle in an
// unknown state.
func (rt *Runtime) invalidateAgent() {
	rt.agentMu.Lock()
	defer rt.agentMu.Unlock()
	rt.cached = nil
}

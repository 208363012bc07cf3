// Package pipeline drives a fixed, ordered list of named steps to
// completion, strictly one at a time, stopping at the first failure.
// Per-step status is exposed for progress surfaces, and an optional
// progress.Tracker aggregates the step statuses into an overall phase.
//
// Generation workflows have a natural dependency chain — each stage
// consumes the previous stage's output — so steps are never parallel,
// skipped, reordered, or retried, and the first failing step is the one
// reported to the user.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"brandforge/pkg/progress"
)

// Status represents the state of a single step within a run.
type Status string

// Step statuses. A step moves pending → loading → complete or error;
// there are no other transitions.
const (
	StatusPending  Status = "pending"
	StatusLoading  Status = "loading"
	StatusComplete Status = "complete"
	StatusError    Status = "error"
)

// Step is the observable record of one named unit of work.
type Step struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// StepDefinition configures one step of a run. ID must be unique within
// the run and Run must be non-nil.
type StepDefinition struct {
	ID             string
	Label          string
	Run            func(ctx context.Context) error
	LoadingMessage string
	SuccessMessage string
}

// Runner executes step definitions in strict order. The zero value is
// not usable; create runners with NewRunner. A Runner may be reused for
// subsequent runs; each Execute call resets the step records.
type Runner struct {
	mu      sync.Mutex
	steps   []Step
	tracker *progress.Tracker
}

// NewRunner creates a Runner. The tracker is optional; when non-nil the
// runner keeps its phase and progress in sync with the run.
func NewRunner(tracker *progress.Tracker) *Runner {
	return &Runner{tracker: tracker}
}

// Steps returns a snapshot of the current step records. Concurrent
// readers only ever observe committed, fully-updated states.
func (r *Runner) Steps() []Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Step, len(r.steps))
	copy(out, r.steps)
	return out
}

// FailedStep returns the errored step of the most recent run, if any.
func (r *Runner) FailedStep() (Step, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.steps {
		if s.Status == StatusError {
			return s, true
		}
	}
	return Step{}, false
}

// Execute runs the given steps in order. Every step starts pending; the
// current step transitions to loading, then to complete on success or
// error on failure. The first failure stops the run — later steps never
// leave pending and their executors are never invoked. Context
// cancellation is checked between steps and attributed to the step that
// would have run next. Executor failures (including panics with
// non-error values) are captured as step state and never re-raised.
//
// Returns true iff every step completed. An empty step list completes
// trivially. Panics on misconfigured definitions (duplicate IDs or a
// nil Run), which are programmer errors rather than run failures.
func (r *Runner) Execute(ctx context.Context, defs []StepDefinition) bool {
	validate(defs)
	r.initialize(defs)

	if r.tracker != nil && len(defs) > 0 {
		defer func() {
			if step, failed := r.FailedStep(); failed {
				r.tracker.SetError(step.Message)
			}
		}()
	}

	for i, def := range defs {
		if err := ctx.Err(); err != nil {
			r.setStatus(i, StatusError, progress.ErrorMessage(err))
			return false
		}

		r.setStatus(i, StatusLoading, loadingMessage(def))
		if r.tracker != nil {
			r.tracker.SetLoading(loadingMessage(def))
		}

		if err := runStep(ctx, def); err != nil {
			r.setStatus(i, StatusError, progress.ErrorMessage(err))
			return false
		}

		r.setStatus(i, StatusComplete, def.SuccessMessage)
		if r.tracker != nil {
			r.tracker.SetProgress((i + 1) * 100 / len(defs))
		}
	}

	if r.tracker != nil && len(defs) > 0 {
		r.tracker.SetSuccess(defs[len(defs)-1].SuccessMessage)
	}
	return true
}

func (r *Runner) initialize(defs []StepDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = make([]Step, len(defs))
	for i, def := range defs {
		r.steps[i] = Step{
			ID:     def.ID,
			Label:  def.Label,
			Status: StatusPending,
		}
	}
}

func (r *Runner) setStatus(i int, status Status, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps[i].Status = status
	r.steps[i].Message = message
}

// runStep invokes the executor, converting a panic into an error so a
// misbehaving step cannot crash the run.
func runStep(ctx context.Context, def StepDefinition) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if e, ok := rec.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("unknown error: %v", rec)
		}
	}()
	return def.Run(ctx)
}

func loadingMessage(def StepDefinition) string {
	if def.LoadingMessage != "" {
		return def.LoadingMessage
	}
	return def.Label
}

func validate(defs []StepDefinition) {
	seen := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		if def.ID == "" {
			panic("pipeline: step id cannot be empty")
		}
		if def.Run == nil {
			panic(fmt.Sprintf("pipeline: step %s has no executor", def.ID))
		}
		if _, dup := seen[def.ID]; dup {
			panic(fmt.Sprintf("pipeline: duplicate step id %s", def.ID))
		}
		seen[def.ID] = struct{}{}
	}
}

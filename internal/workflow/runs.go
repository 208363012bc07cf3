package workflow

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"brandforge/pkg/pipeline"
	"brandforge/pkg/progress"
)

// DefaultRunLimit bounds how many finished runs the registry retains.
const DefaultRunLimit = 64

// RunSnapshot is an immutable view of one generation run: the overall
// tracker state plus per-step records.
type RunSnapshot struct {
	ID          string            `json:"id"`
	SampleID    uuid.UUID         `json:"sample_id"`
	StartedAt   time.Time         `json:"started_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Succeeded   *bool             `json:"succeeded,omitempty"`
	Status      progress.Snapshot `json:"status"`
	Steps       []pipeline.Step   `json:"steps"`
}

type run struct {
	id          string
	sampleID    uuid.UUID
	startedAt   time.Time
	completedAt *time.Time
	succeeded   *bool
	tracker     *progress.Tracker
	runner      *pipeline.Runner
}

// Registry is an ephemeral, in-memory record of generation runs. Runs
// are identified by ULID, held only for the life of the process, and
// evicted oldest-first beyond the configured limit. Nothing here is
// ever persisted.
type Registry struct {
	mu    sync.Mutex
	runs  map[string]*run
	order []string
	limit int
}

// NewRegistry creates a run registry retaining at most limit runs.
// Non-positive limits fall back to DefaultRunLimit.
func NewRegistry(limit int) *Registry {
	if limit <= 0 {
		limit = DefaultRunLimit
	}
	return &Registry{
		runs:  make(map[string]*run),
		limit: limit,
	}
}

// Register records a new run and returns its ULID.
func (r *Registry) Register(sampleID uuid.UUID, tracker *progress.Tracker, runner *pipeline.Runner) string {
	id := ulid.Make().String()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.runs[id] = &run{
		id:        id,
		sampleID:  sampleID,
		startedAt: time.Now().UTC(),
		tracker:   tracker,
		runner:    runner,
	}
	r.order = append(r.order, id)
	r.evictLocked()

	return id
}

// Complete marks a run finished with the given outcome.
func (r *Registry) Complete(id string, succeeded bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.runs[id]
	if !ok {
		return
	}

	now := time.Now().UTC()
	rec.completedAt = &now
	rec.succeeded = &succeeded
}

// Find returns a snapshot of the run with the given ULID.
func (r *Registry) Find(id string) (RunSnapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.runs[id]
	if !ok {
		return RunSnapshot{}, false
	}
	return snapshot(rec), true
}

// List returns snapshots of all retained runs, newest first.
func (r *Registry) List() []RunSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]RunSnapshot, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		if rec, ok := r.runs[r.order[i]]; ok {
			out = append(out, snapshot(rec))
		}
	}
	return out
}

func (r *Registry) evictLocked() {
	for len(r.order) > r.limit {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.runs, oldest)
	}
}

func snapshot(rec *run) RunSnapshot {
	return RunSnapshot{
		ID:          rec.id,
		SampleID:    rec.sampleID,
		StartedAt:   rec.startedAt,
		CompletedAt: rec.completedAt,
		Succeeded:   rec.succeeded,
		Status:      rec.tracker.State(),
		Steps:       rec.runner.Steps(),
	}
}

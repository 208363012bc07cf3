// Package progress tracks the observable state of a single unit of
// asynchronous work: a coarse phase, a user-facing message, and a
// completion percentage. A Tracker is the single source of truth for
// "what is happening now" and is safe for concurrent readers.
package progress

import (
	"sync"
	"time"
)

// Phase represents the coarse-grained state of a tracked operation.
type Phase string

// Tracker phases.
const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// DefaultResetDelay is the time a terminal phase (success or error)
// is held before the tracker automatically returns to idle.
const DefaultResetDelay = 3 * time.Second

// Config holds Tracker construction parameters.
type Config struct {
	// ResetDelay overrides DefaultResetDelay when positive.
	ResetDelay time.Duration
	// Announcer receives user-facing status messages. Optional.
	Announcer Announcer
}

// Snapshot is an immutable view of tracker state. Readers only ever
// observe fully-committed snapshots.
type Snapshot struct {
	Phase       Phase  `json:"phase"`
	Message     string `json:"message"`
	ErrorDetail string `json:"error_detail,omitempty"`
	Progress    int    `json:"progress"`
}

// Tracker records the phase, message, and completion percentage of one
// asynchronous operation. After SetSuccess or SetError it schedules an
// automatic return to idle; any subsequent transition preempts the
// pending reset, so stale timers never clobber newer state.
type Tracker struct {
	mu          sync.Mutex
	phase       Phase
	message     string
	errorDetail string
	progress    int

	resetDelay time.Duration
	resetGen   uint64
	resetTimer *time.Timer

	announcer Announcer
}

// New creates an idle Tracker.
func New(cfg Config) *Tracker {
	delay := cfg.ResetDelay
	if delay <= 0 {
		delay = DefaultResetDelay
	}
	return &Tracker{
		phase:      PhaseIdle,
		resetDelay: delay,
		announcer:  cfg.Announcer,
	}
}

// State returns a snapshot of the current tracker state.
func (t *Tracker) State() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		Phase:       t.phase,
		Message:     t.message,
		ErrorDetail: t.errorDetail,
		Progress:    t.progress,
	}
}

// SetLoading transitions to the loading phase, clearing any prior error
// and cancelling a pending auto-reset.
func (t *Tracker) SetLoading(message string) {
	t.mu.Lock()
	t.cancelResetLocked()
	t.phase = PhaseLoading
	t.message = message
	t.errorDetail = ""
	t.mu.Unlock()

	t.announce(message, PriorityStatus)
}

// SetSuccess transitions to the success phase and schedules an automatic
// return to idle after the configured delay.
func (t *Tracker) SetSuccess(message string) {
	t.mu.Lock()
	t.phase = PhaseSuccess
	t.message = message
	t.errorDetail = ""
	t.scheduleResetLocked()
	t.mu.Unlock()

	t.announce(message, PriorityStatus)
}

// SetError transitions to the error phase, zeroes progress, and schedules
// an automatic return to idle after the configured delay.
func (t *Tracker) SetError(message string) {
	t.mu.Lock()
	t.phase = PhaseError
	t.message = ""
	t.errorDetail = message
	t.progress = 0
	t.scheduleResetLocked()
	t.mu.Unlock()

	t.announce(message, PriorityAlert)
}

// Reset unconditionally returns the tracker to idle, clearing message,
// error detail, and progress, and cancelling any pending auto-reset.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelResetLocked()
	t.resetLocked()
}

// SetProgress stores a completion percentage clamped to [0,100].
// The phase is unchanged.
func (t *Tracker) SetProgress(value int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress = clamp(value)
}

// IncrementProgress adjusts the completion percentage by delta,
// clamped to [0,100]. The phase is unchanged.
func (t *Tracker) IncrementProgress(delta int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress = clamp(t.progress + delta)
}

func (t *Tracker) resetLocked() {
	t.phase = PhaseIdle
	t.message = ""
	t.errorDetail = ""
	t.progress = 0
}

// scheduleResetLocked arms the auto-reset timer. The generation counter
// guards against a previously armed timer firing after newer transitions.
func (t *Tracker) scheduleResetLocked() {
	t.cancelResetLocked()

	gen := t.resetGen
	t.resetTimer = time.AfterFunc(t.resetDelay, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.resetGen != gen {
			return
		}
		t.resetLocked()
	})
}

func (t *Tracker) cancelResetLocked() {
	t.resetGen++
	if t.resetTimer != nil {
		t.resetTimer.Stop()
		t.resetTimer = nil
	}
}

// announce forwards a message to the announcer. The channel is
// non-critical: panics are swallowed and empty messages are dropped.
func (t *Tracker) announce(message string, priority Priority) {
	if t.announcer == nil || message == "" {
		return
	}
	defer func() {
		_ = recover()
	}()
	t.announcer.Announce(message, priority)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

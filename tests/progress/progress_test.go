package progress_test

import (
	"sync"
	"testing"
	"time"

	"brandforge/pkg/progress"
)

func TestNewTrackerStartsIdle(t *testing.T) {
	tr := progress.New(progress.Config{})

	got := tr.State()
	if got.Phase != progress.PhaseIdle {
		t.Errorf("Phase = %q, want %q", got.Phase, progress.PhaseIdle)
	}
	if got.Message != "" || got.ErrorDetail != "" || got.Progress != 0 {
		t.Errorf("zero state = %+v, want empty", got)
	}
}

func TestSetLoading(t *testing.T) {
	tr := progress.New(progress.Config{})

	tr.SetError("boom")
	tr.SetLoading("Working...")

	got := tr.State()
	if got.Phase != progress.PhaseLoading {
		t.Errorf("Phase = %q, want %q", got.Phase, progress.PhaseLoading)
	}
	if got.Message != "Working..." {
		t.Errorf("Message = %q, want %q", got.Message, "Working...")
	}
	if got.ErrorDetail != "" {
		t.Errorf("ErrorDetail = %q, want cleared", got.ErrorDetail)
	}
}

func TestSetErrorZeroesProgress(t *testing.T) {
	tr := progress.New(progress.Config{ResetDelay: time.Hour})

	tr.SetLoading("Working...")
	tr.SetProgress(60)
	tr.SetError("upstream failure")

	got := tr.State()
	if got.Phase != progress.PhaseError {
		t.Errorf("Phase = %q, want %q", got.Phase, progress.PhaseError)
	}
	if got.ErrorDetail != "upstream failure" {
		t.Errorf("ErrorDetail = %q, want %q", got.ErrorDetail, "upstream failure")
	}
	if got.Message != "" {
		t.Errorf("Message = %q, want cleared", got.Message)
	}
	if got.Progress != 0 {
		t.Errorf("Progress = %d, want 0", got.Progress)
	}
}

func TestAutoResetAfterError(t *testing.T) {
	tr := progress.New(progress.Config{ResetDelay: 10 * time.Millisecond})

	tr.SetError("boom")

	waitForPhase(t, tr, progress.PhaseIdle)

	got := tr.State()
	if got.ErrorDetail != "" || got.Message != "" || got.Progress != 0 {
		t.Errorf("post-reset state = %+v, want empty", got)
	}
}

func TestAutoResetAfterSuccess(t *testing.T) {
	tr := progress.New(progress.Config{ResetDelay: 10 * time.Millisecond})

	tr.SetSuccess("done")

	waitForPhase(t, tr, progress.PhaseIdle)
}

func TestSetLoadingPreemptsPendingReset(t *testing.T) {
	tr := progress.New(progress.Config{ResetDelay: 20 * time.Millisecond})

	tr.SetSuccess("done")
	tr.SetLoading("next run")

	time.Sleep(60 * time.Millisecond)

	got := tr.State()
	if got.Phase != progress.PhaseLoading {
		t.Errorf("Phase = %q, want %q (stale reset fired)", got.Phase, progress.PhaseLoading)
	}
	if got.Message != "next run" {
		t.Errorf("Message = %q, want %q", got.Message, "next run")
	}
}

func TestResetCancelsPendingAutoReset(t *testing.T) {
	tr := progress.New(progress.Config{ResetDelay: 20 * time.Millisecond})

	tr.SetError("boom")
	tr.Reset()
	tr.SetLoading("recovered")

	time.Sleep(60 * time.Millisecond)

	if got := tr.State().Phase; got != progress.PhaseLoading {
		t.Errorf("Phase = %q, want %q", got, progress.PhaseLoading)
	}
}

func TestSetProgressClamping(t *testing.T) {
	tests := []struct {
		name  string
		value int
		want  int
	}{
		{"negative", -10, 0},
		{"zero", 0, 0},
		{"mid", 42, 42},
		{"upper bound", 100, 100},
		{"overflow", 150, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := progress.New(progress.Config{})
			tr.SetProgress(tt.value)
			if got := tr.State().Progress; got != tt.want {
				t.Errorf("SetProgress(%d) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestIncrementProgressClamping(t *testing.T) {
	tr := progress.New(progress.Config{})

	tr.SetProgress(90)
	tr.IncrementProgress(25)
	if got := tr.State().Progress; got != 100 {
		t.Errorf("Progress = %d, want 100", got)
	}

	tr.IncrementProgress(-300)
	if got := tr.State().Progress; got != 0 {
		t.Errorf("Progress = %d, want 0", got)
	}
}

func TestProgressUnchangedByPhase(t *testing.T) {
	tr := progress.New(progress.Config{ResetDelay: time.Hour})

	tr.SetLoading("Working...")
	tr.SetProgress(50)

	if got := tr.State(); got.Phase != progress.PhaseLoading || got.Progress != 50 {
		t.Errorf("state = %+v, want loading at 50", got)
	}
}

func TestAnnouncerReceivesTransitions(t *testing.T) {
	var mu sync.Mutex
	var announced []string
	var priorities []progress.Priority

	tr := progress.New(progress.Config{
		ResetDelay: time.Hour,
		Announcer: progress.AnnouncerFunc(func(msg string, p progress.Priority) {
			mu.Lock()
			defer mu.Unlock()
			announced = append(announced, msg)
			priorities = append(priorities, p)
		}),
	})

	tr.SetLoading("loading")
	tr.SetSuccess("success")
	tr.SetError("error")

	mu.Lock()
	defer mu.Unlock()

	want := []string{"loading", "success", "error"}
	if len(announced) != len(want) {
		t.Fatalf("announced %d messages, want %d", len(announced), len(want))
	}
	for i, msg := range want {
		if announced[i] != msg {
			t.Errorf("announced[%d] = %q, want %q", i, announced[i], msg)
		}
	}

	if priorities[2] != progress.PriorityAlert {
		t.Errorf("error priority = %q, want %q", priorities[2], progress.PriorityAlert)
	}
}

func TestAnnouncerPanicSwallowed(t *testing.T) {
	tr := progress.New(progress.Config{
		ResetDelay: time.Hour,
		Announcer: progress.AnnouncerFunc(func(string, progress.Priority) {
			panic("announcer broke")
		}),
	})

	tr.SetLoading("still fine")

	if got := tr.State().Phase; got != progress.PhaseLoading {
		t.Errorf("Phase = %q, want %q", got, progress.PhaseLoading)
	}
}

func waitForPhase(t *testing.T, tr *progress.Tracker, want progress.Phase) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if tr.State().Phase == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Phase = %q, want %q before deadline", tr.State().Phase, want)
}

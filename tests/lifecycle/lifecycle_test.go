package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"brandforge/pkg/lifecycle"
)

func TestReadiness(t *testing.T) {
	lc := lifecycle.New()

	if lc.Ready() {
		t.Error("should not be ready before WaitForStartup")
	}

	lc.WaitForStartup()

	if !lc.Ready() {
		t.Error("should be ready after WaitForStartup")
	}
}

func TestStartupHooksAllRun(t *testing.T) {
	lc := lifecycle.New()

	var count atomic.Int32
	for range 4 {
		lc.OnStartup(func() {
			count.Add(1)
		})
	}

	lc.WaitForStartup()

	if got := count.Load(); got != 4 {
		t.Errorf("startup hooks: got %d, want 4", got)
	}
}

func TestStartupGatesReadiness(t *testing.T) {
	lc := lifecycle.New()

	release := make(chan struct{})
	lc.OnStartup(func() {
		<-release
	})

	if lc.Ready() {
		t.Error("should not be ready while a startup hook is blocked")
	}

	close(release)
	lc.WaitForStartup()

	if !lc.Ready() {
		t.Error("should be ready once the blocked hook completes")
	}
}

func TestShutdownRunsHooks(t *testing.T) {
	lc := lifecycle.New()

	var cleaned atomic.Bool
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		cleaned.Store(true)
	})

	lc.WaitForStartup()

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if !cleaned.Load() {
		t.Error("shutdown hook did not execute")
	}
}

func TestShutdownTimesOutOnStuckHook(t *testing.T) {
	lc := lifecycle.New()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		time.Sleep(500 * time.Millisecond)
	})

	lc.WaitForStartup()

	if err := lc.Shutdown(50 * time.Millisecond); err == nil {
		t.Error("expected timeout error, got nil")
	}
}

func TestShutdownCancelsContext(t *testing.T) {
	lc := lifecycle.New()
	lc.WaitForStartup()

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	select {
	case <-lc.Context().Done():
	default:
		t.Error("context should be cancelled after shutdown")
	}
}

package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"brandforge/pkg/pipeline"
	"brandforge/pkg/progress"
)

func noop(context.Context) error { return nil }

func step(id string) pipeline.StepDefinition {
	return pipeline.StepDefinition{ID: id, Label: id, Run: noop}
}

func TestExecuteAllComplete(t *testing.T) {
	r := pipeline.NewRunner(nil)

	var order []string
	defs := []pipeline.StepDefinition{
		{ID: "style", Label: "Style", Run: func(context.Context) error {
			order = append(order, "style")
			return nil
		}},
		{ID: "visual", Label: "Visual", Run: func(context.Context) error {
			order = append(order, "visual")
			return nil
		}},
		{ID: "save", Label: "Save", Run: func(context.Context) error {
			order = append(order, "save")
			return nil
		}},
	}

	if ok := r.Execute(context.Background(), defs); !ok {
		t.Fatal("Execute = false, want true")
	}

	want := []string{"style", "visual", "save"}
	if len(order) != len(want) {
		t.Fatalf("executed %d steps, want %d", len(order), len(want))
	}
	for i, id := range want {
		if order[i] != id {
			t.Errorf("order[%d] = %q, want %q", i, order[i], id)
		}
	}

	for _, s := range r.Steps() {
		if s.Status != pipeline.StatusComplete {
			t.Errorf("step %s status = %q, want %q", s.ID, s.Status, pipeline.StatusComplete)
		}
	}
}

func TestExecuteStopsAtFirstFailure(t *testing.T) {
	r := pipeline.NewRunner(nil)

	var saveRan bool
	defs := []pipeline.StepDefinition{
		step("style"),
		{ID: "visual", Label: "Visual", Run: func(context.Context) error {
			return errors.New("rate limited")
		}},
		{ID: "save", Label: "Save", Run: func(context.Context) error {
			saveRan = true
			return nil
		}},
	}

	if ok := r.Execute(context.Background(), defs); ok {
		t.Fatal("Execute = true, want false")
	}
	if saveRan {
		t.Error("step after failure was executed")
	}

	steps := r.Steps()
	if steps[0].Status != pipeline.StatusComplete {
		t.Errorf("style status = %q, want %q", steps[0].Status, pipeline.StatusComplete)
	}
	if steps[1].Status != pipeline.StatusError {
		t.Errorf("visual status = %q, want %q", steps[1].Status, pipeline.StatusError)
	}
	if steps[1].Message != "rate limited" {
		t.Errorf("visual message = %q, want %q", steps[1].Message, "rate limited")
	}
	if steps[2].Status != pipeline.StatusPending {
		t.Errorf("save status = %q, want %q", steps[2].Status, pipeline.StatusPending)
	}

	failed, ok := r.FailedStep()
	if !ok {
		t.Fatal("FailedStep reported no failure")
	}
	if failed.ID != "visual" {
		t.Errorf("FailedStep ID = %q, want %q", failed.ID, "visual")
	}
}

func TestExecuteEmptyList(t *testing.T) {
	r := pipeline.NewRunner(nil)

	if ok := r.Execute(context.Background(), nil); !ok {
		t.Error("Execute(nil) = false, want true")
	}
	if got := len(r.Steps()); got != 0 {
		t.Errorf("len(Steps()) = %d, want 0", got)
	}
}

func TestExecuteSingleStep(t *testing.T) {
	r := pipeline.NewRunner(nil)

	defs := []pipeline.StepDefinition{step("only")}
	if ok := r.Execute(context.Background(), defs); !ok {
		t.Fatal("Execute = false, want true")
	}

	steps := r.Steps()
	if len(steps) != 1 || steps[0].Status != pipeline.StatusComplete {
		t.Errorf("steps = %+v, want single complete step", steps)
	}
}

func TestExecuteRecoversPanic(t *testing.T) {
	r := pipeline.NewRunner(nil)

	defs := []pipeline.StepDefinition{
		{ID: "boom", Label: "Boom", Run: func(context.Context) error {
			panic(42)
		}},
	}

	if ok := r.Execute(context.Background(), defs); ok {
		t.Fatal("Execute = true, want false after panic")
	}

	steps := r.Steps()
	if steps[0].Status != pipeline.StatusError {
		t.Errorf("status = %q, want %q", steps[0].Status, pipeline.StatusError)
	}
	if steps[0].Message != "unknown error: 42" {
		t.Errorf("message = %q, want coerced panic value", steps[0].Message)
	}
}

func TestExecuteContextCancelled(t *testing.T) {
	r := pipeline.NewRunner(nil)

	ctx, cancel := context.WithCancel(context.Background())

	defs := []pipeline.StepDefinition{
		{ID: "first", Label: "First", Run: func(context.Context) error {
			cancel()
			return nil
		}},
		step("second"),
	}

	if ok := r.Execute(ctx, defs); ok {
		t.Fatal("Execute = true, want false after cancellation")
	}

	steps := r.Steps()
	if steps[0].Status != pipeline.StatusComplete {
		t.Errorf("first status = %q, want %q", steps[0].Status, pipeline.StatusComplete)
	}
	if steps[1].Status != pipeline.StatusError {
		t.Errorf("second status = %q, want %q (cancellation attributed to next step)",
			steps[1].Status, pipeline.StatusError)
	}
	if steps[1].Message != context.Canceled.Error() {
		t.Errorf("second message = %q, want %q", steps[1].Message, context.Canceled.Error())
	}
}

func TestExecutePanicsOnDuplicateID(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Execute did not panic on duplicate step id")
		}
	}()

	r := pipeline.NewRunner(nil)
	r.Execute(context.Background(), []pipeline.StepDefinition{
		step("dup"),
		step("dup"),
	})
}

func TestExecutePanicsOnNilRun(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Execute did not panic on nil Run")
		}
	}()

	r := pipeline.NewRunner(nil)
	r.Execute(context.Background(), []pipeline.StepDefinition{
		{ID: "nil-run", Label: "Broken"},
	})
}

func TestTrackerAggregation(t *testing.T) {
	tr := progress.New(progress.Config{ResetDelay: time.Hour})
	r := pipeline.NewRunner(tr)

	var midRun progress.Snapshot
	defs := []pipeline.StepDefinition{
		{
			ID: "style", Label: "Style",
			LoadingMessage: "Analyzing style...",
			SuccessMessage: "Style complete",
			Run:            noop,
		},
		{
			ID: "save", Label: "Save",
			LoadingMessage: "Saving...",
			SuccessMessage: "All done",
			Run: func(context.Context) error {
				midRun = tr.State()
				return nil
			},
		},
	}

	if ok := r.Execute(context.Background(), defs); !ok {
		t.Fatal("Execute = false, want true")
	}

	if midRun.Phase != progress.PhaseLoading {
		t.Errorf("mid-run phase = %q, want %q", midRun.Phase, progress.PhaseLoading)
	}
	if midRun.Progress != 50 {
		t.Errorf("mid-run progress = %d, want 50", midRun.Progress)
	}

	final := tr.State()
	if final.Phase != progress.PhaseSuccess {
		t.Errorf("final phase = %q, want %q", final.Phase, progress.PhaseSuccess)
	}
	if final.Message != "All done" {
		t.Errorf("final message = %q, want %q", final.Message, "All done")
	}
	if final.Progress != 100 {
		t.Errorf("final progress = %d, want 100", final.Progress)
	}
}

func TestTrackerAggregationOnFailure(t *testing.T) {
	tr := progress.New(progress.Config{ResetDelay: time.Hour})
	r := pipeline.NewRunner(tr)

	defs := []pipeline.StepDefinition{
		{
			ID: "style", Label: "Style",
			SuccessMessage: "Style complete",
			Run:            noop,
		},
		{
			ID: "visual", Label: "Visual",
			Run: func(context.Context) error {
				return errors.New("rate limited")
			},
		},
		{
			ID: "save", Label: "Save",
			Run: noop,
		},
	}

	if ok := r.Execute(context.Background(), defs); ok {
		t.Fatal("Execute = true, want false")
	}

	got := tr.State()
	if got.Phase != progress.PhaseError {
		t.Errorf("phase = %q, want %q", got.Phase, progress.PhaseError)
	}
	if got.ErrorDetail != "rate limited" {
		t.Errorf("error detail = %q, want %q", got.ErrorDetail, "rate limited")
	}
	if got.Progress != 0 {
		t.Errorf("progress = %d, want 0 after error", got.Progress)
	}
}

func TestRunnerReuse(t *testing.T) {
	r := pipeline.NewRunner(nil)

	failing := []pipeline.StepDefinition{
		{ID: "a", Label: "A", Run: func(context.Context) error {
			return errors.New("first run fails")
		}},
	}
	if ok := r.Execute(context.Background(), failing); ok {
		t.Fatal("first Execute = true, want false")
	}

	if ok := r.Execute(context.Background(), []pipeline.StepDefinition{step("a")}); !ok {
		t.Fatal("second Execute = false, want true")
	}

	if _, failed := r.FailedStep(); failed {
		t.Error("FailedStep reports stale failure after successful rerun")
	}
}

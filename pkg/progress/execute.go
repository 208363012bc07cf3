package progress

import (
	"context"
	"fmt"
)

// ExecuteOptions carries the optional messages and callbacks for Execute.
type ExecuteOptions[T any] struct {
	LoadingMessage string
	SuccessMessage string
	OnSuccess      func(T)
	OnError        func(error)
}

// Execute orchestrates a tracked operation: SetLoading, run fn, then
// SetSuccess or SetError based on the outcome. It is the single error
// boundary for the wrapped function — failures (including panics) are
// captured and converted to tracker state, never re-raised. Returns the
// resolved value and true on success, or the zero value and false on
// failure; callers check the bool or rely on OnError.
func Execute[T any](
	ctx context.Context,
	t *Tracker,
	fn func(context.Context) (T, error),
	opts ExecuteOptions[T],
) (T, bool) {
	t.SetLoading(opts.LoadingMessage)

	value, err := run(ctx, fn)
	if err != nil {
		t.SetError(ErrorMessage(err))
		if opts.OnError != nil {
			opts.OnError(err)
		}
		var zero T
		return zero, false
	}

	t.SetSuccess(opts.SuccessMessage)
	if opts.OnSuccess != nil {
		opts.OnSuccess(value)
	}
	return value, true
}

func run[T any](ctx context.Context, fn func(context.Context) (T, error)) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = coerceError(r)
		}
	}()
	return fn(ctx)
}

// ErrorMessage returns a displayable message for err, substituting a
// generic message when the error text is empty.
func ErrorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "unknown error"
	}
	return err.Error()
}

// coerceError converts an arbitrary recovered value into an error so
// callers always have a displayable message.
func coerceError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("unknown error: %v", r)
}

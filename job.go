package lanes

import (
	"context"
	"fmt"
)

// Job is the canonical job shape. It receives the caller context and a copy of the
// result slots taken at the moment the job starts, and returns a value of type R or an error.
//
// The prior slice is a snapshot: slots recorded by other lanes after the job started are
// not visible through it. Jobs own the snapshot and may keep or modify it.
//
// Use JobFunc / JobValue / JobError to adapt functions that don't need prior results.
//
// Example:
//
//	j := lanes.Job[int](func(ctx context.Context, prior []lanes.Result[int]) (int, error) {
//		return len(lanes.Values(prior)), nil
//	})
//	_ = j
type Job[R any] func(ctx context.Context, prior []Result[R]) (R, error)

// JobFunc adapts func(ctx) (R, error) to Job[R].
func JobFunc[R any](fn func(context.Context) (R, error)) Job[R] {
	return func(ctx context.Context, _ []Result[R]) (R, error) { return fn(ctx) }
}

// JobValue adapts func(ctx) R to Job[R].
func JobValue[R any](fn func(context.Context) R) Job[R] {
	return func(ctx context.Context, _ []Result[R]) (R, error) { return fn(ctx), nil }
}

// JobError adapts func(ctx) error to Job[R].
// The returned Job yields the zero value of R alongside the error.
func JobError[R any](fn func(context.Context) error) Job[R] {
	return func(ctx context.Context, _ []Result[R]) (R, error) { var zero R; return zero, fn(ctx) }
}

// execJob invokes the job on the calling goroutine and converts a panic into an error.
// There is no select on ctx.Done(): a started job always runs to completion.
func execJob[R any](ctx context.Context, j Job[R], prior []Result[R]) (result R, err error) {
	defer func() {
		if p := recover(); p != nil {
			var zero R
			result = zero
			err = fmt.Errorf("%w: %v", ErrJobPanicked, p)
		}
	}()

	return j(ctx, prior)
}

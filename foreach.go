package lanes

import "context"

// ForEach applies fn to each item through Run.
// It returns the *AbortError[struct{}] under the abort policy, the cancellation error,
// or, with WithAbortOnFailure(false), the joined errors of all failed items (nil when all succeed).
func ForEach[T any](ctx context.Context, items []T, fn func(context.Context, T) error, opts ...Option) error {
	jobs := make([]Job[struct{}], 0, len(items))
	for _, item := range items {
		jobs = append(jobs, JobError[struct{}](func(c context.Context) error { return fn(c, item) }))
	}

	results, err := Run(ctx, jobs, opts...)
	if err != nil {
		return err
	}
	return Errors(results)
}

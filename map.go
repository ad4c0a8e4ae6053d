package lanes

import "context"

// Map runs fn once per item through Run and returns the slots addressed by item index.
// Options such as WithLanes and WithAbortOnFailure are honored; fn does not see prior results.
func Map[T, R any](
	ctx context.Context,
	items []T,
	fn func(context.Context, T) (R, error),
	opts ...Option,
) ([]Result[R], error) {
	jobs := make([]Job[R], 0, len(items))
	for _, item := range items {
		jobs = append(jobs, JobFunc(func(c context.Context) (R, error) { return fn(c, item) }))
	}
	return Run(ctx, jobs, opts...)
}

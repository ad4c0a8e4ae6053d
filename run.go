package lanes

import (
	"context"
	"strconv"

	"github.com/ygrebnov/errorc"
)

// Run executes jobs on a fixed number of concurrent lanes and returns one result slot
// per job, addressed by the job's index in jobs (not by completion order).
//
// Semantics:
//   - Each lane repeatedly claims the next unclaimed index, runs that job with a snapshot
//     of the slots recorded so far, and records the outcome in the job's slot.
//   - With the default abort-on-failure policy, the first recorded failure stops all lanes
//     from claiming further jobs and Run returns (nil, *AbortError[R]). Jobs already running
//     are not cancelled; their outcomes are discarded. Run returns only after every started
//     job has returned.
//   - With WithAbortOnFailure(false), every job runs and Run returns all slots with a nil
//     error; failures are only visible through the slots (see Errors).
//   - If ctx is done before every job was started, lanes stop claiming and Run returns the
//     partial slots with an error wrapping ErrCancelled and ctx.Err(). ctx is passed to the
//     jobs as is; Run never cancels it.
//   - Zero jobs resolve immediately with an empty list.
func Run[R any](ctx context.Context, jobs []Job[R], opts ...Option) ([]Result[R], error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	for i, j := range jobs {
		if j == nil {
			return nil, errorc.With(ErrInvalidJob, errorc.String("index", strconv.Itoa(i)))
		}
	}

	if len(jobs) == 0 {
		return []Result[R]{}, nil
	}

	s := newScheduler(jobs, cfg)
	s.run(ctx)
	return s.outcome(ctx)
}

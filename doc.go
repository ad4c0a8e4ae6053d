// Package lanes runs an ordered list of jobs on a fixed number of concurrent lanes
// and returns their results addressed by job index.
//
// Entry points
//   - Run(ctx, jobs, opts...): executes []Job[R] and returns []Result[R].
//   - Map(ctx, items, fn, opts...): one job per item.
//   - ForEach(ctx, items, fn, opts...): error-only variant of Map.
//
// Lanes
// Every lane loops: claim the next unclaimed index, run that job with a snapshot of the
// slots recorded so far, record its outcome in the job's slot. Start order follows claim
// order; completion order is arbitrary, so slot i always holds job i's outcome regardless
// of which lane ran it.
//
// Failure policies
//   - Abort on failure (default): the first recorded failure stops further claims and Run
//     returns *AbortError[R] with the failing index, its error and the slot snapshot at
//     that moment. Jobs already running are not cancelled and their outcomes are
//     discarded, but Run returns only after all of them have returned: a hung job on
//     another lane hangs Run.
//   - Collect all (WithAbortOnFailure(false)): every job runs; Run returns every slot,
//     each StatusSuccess or StatusFailure.
//
// Defaults
//   - Lanes: 1
//   - AbortOnFailure: true
//   - ErrorTagging: false
//   - Logger: logrus logger writing to io.Discard
//   - Metrics: metrics.NoopProvider
//
// Panics inside jobs are recovered and recorded as failures wrapping ErrJobPanicked.
// Jobs are never cancelled by the runner; there are no per-job timeouts or retries.
package lanes

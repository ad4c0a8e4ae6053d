package lanes

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// scheduler holds the state shared by all lanes of one Run.
//
// Synchronization:
//   - cursor is claimed with an atomic add, so every index is handed out once;
//   - aborted is read without the lock at claim time but only set while mu is held,
//     together with the failing slot write and the abort snapshot;
//   - results and abort are guarded by mu.
type scheduler[R any] struct {
	jobs  []Job[R]
	cfg   *config
	instr *instruments

	cursor  atomic.Int64
	aborted atomic.Bool

	mu      sync.Mutex
	results []Result[R]
	abort   *AbortError[R]
}

func newScheduler[R any](jobs []Job[R], cfg *config) *scheduler[R] {
	results := make([]Result[R], len(jobs))
	for i := range results {
		results[i] = emptyResult[R](i)
	}
	return &scheduler[R]{
		jobs:    jobs,
		cfg:     cfg,
		instr:   newInstruments(cfg.Metrics),
		results: results,
	}
}

// laneCount is the number of lanes worth starting: lanes past the job count
// could only claim an out-of-range index and stop.
func (s *scheduler[R]) laneCount() int {
	// Compared as uint: Lanes may exceed math.MaxInt.
	if s.cfg.Lanes >= uint(len(s.jobs)) {
		return len(s.jobs)
	}
	return int(s.cfg.Lanes)
}

// run starts the lanes and waits for all of them to terminate.
func (s *scheduler[R]) run(ctx context.Context) {
	var g errgroup.Group
	for id := range s.laneCount() {
		l := newLane(id, s)
		g.Go(func() error {
			l.run(ctx)
			return nil
		})
	}
	// Lanes capture failures as data; the group never carries an error.
	_ = g.Wait()
}

// stopReason describes why a claim did not yield a job.
type stopReason string

const (
	stopExhausted stopReason = "exhausted"
	stopAborted   stopReason = "aborted"
	stopCancelled stopReason = "cancelled"
)

// claim takes the next index from the cursor. When ok is true the caller must run
// jobs[idx] with prior; otherwise reason tells why the lane has to terminate.
func (s *scheduler[R]) claim(ctx context.Context) (idx int, prior []Result[R], reason stopReason, ok bool) {
	idx = int(s.cursor.Add(1) - 1)

	switch {
	case s.aborted.Load():
		return idx, nil, stopAborted, false
	case idx >= len(s.jobs):
		return idx, nil, stopExhausted, false
	case ctx.Err() != nil:
		return idx, nil, stopCancelled, false
	}

	s.mu.Lock()
	prior = s.snapshotLocked()
	s.mu.Unlock()
	return idx, prior, "", true
}

// completion is the bookkeeping decision taken for a finished job.
type completion int

const (
	// recorded: outcome written, the lane claims the next index.
	recorded completion = iota
	// discarded: the batch was aborted while the job ran; nothing written, the lane stops.
	discarded
	// abortedBatch: the failure was written and the lane aborted the batch; the lane stops.
	abortedBatch
)

func (c completion) next() bool { return c == recorded }

// complete records the outcome of jobs[idx].
func (s *scheduler[R]) complete(idx int, v R, err error) completion {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.aborted.Load() {
		return discarded
	}

	if err == nil {
		s.results[idx] = successResult(idx, v)
		return recorded
	}

	s.results[idx] = failureResult[R](idx, err)
	if !s.cfg.AbortOnFailure {
		return recorded
	}

	s.aborted.Store(true)
	s.abort = &AbortError[R]{Index: idx, Err: err, Results: s.snapshotLocked()}
	return abortedBatch
}

func (s *scheduler[R]) snapshotLocked() []Result[R] {
	out := make([]Result[R], len(s.results))
	copy(out, s.results)
	return out
}

// outcome assembles Run's return values once all lanes have terminated.
func (s *scheduler[R]) outcome(ctx context.Context) ([]Result[R], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.abort != nil {
		return nil, s.abort
	}

	if err := ctx.Err(); err != nil {
		for _, r := range s.results {
			if r.IsEmpty() {
				return s.snapshotLocked(), fmt.Errorf("%w: %w", ErrCancelled, err)
			}
		}
	}

	return s.results, nil
}

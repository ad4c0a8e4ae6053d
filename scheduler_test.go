package lanes

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func stubJobs(n int) []Job[string] {
	jobs := make([]Job[string], n)
	for i := range jobs {
		jobs[i] = JobValue[string](func(context.Context) string { return "" })
	}
	return jobs
}

func newTestScheduler(t *testing.T, n int, opts ...Option) *scheduler[string] {
	t.Helper()
	cfg, err := newConfig(opts...)
	require.NoError(t, err)
	return newScheduler(stubJobs(n), cfg)
}

func TestScheduler_NewSlotsAreEmptyAndIndexed(t *testing.T) {
	s := newTestScheduler(t, 3)
	require.Len(t, s.results, 3)
	for i, r := range s.results {
		require.Equal(t, i, r.Index)
		require.True(t, r.IsEmpty())
	}
}

func TestScheduler_Claim_SequentialThenExhausted(t *testing.T) {
	ctx := context.Background()
	s := newTestScheduler(t, 2)

	for want := 0; want < 2; want++ {
		idx, prior, reason, ok := s.claim(ctx)
		require.True(t, ok)
		require.Empty(t, reason)
		require.Equal(t, want, idx)
		require.Len(t, prior, 2)
	}

	idx, prior, reason, ok := s.claim(ctx)
	require.False(t, ok)
	require.Nil(t, prior)
	require.Equal(t, stopExhausted, reason)
	require.Equal(t, 2, idx)

	// Every later claim is out of range as well.
	_, _, reason, ok = s.claim(ctx)
	require.False(t, ok)
	require.Equal(t, stopExhausted, reason)
}

func TestScheduler_Claim_PriorIsSnapshot(t *testing.T) {
	ctx := context.Background()
	s := newTestScheduler(t, 3)

	_, prior0, _, _ := s.claim(ctx)
	require.Equal(t, recorded, s.complete(0, "a", nil))

	// prior0 was taken before job 0 was recorded.
	require.True(t, prior0[0].IsEmpty())

	_, prior1, _, _ := s.claim(ctx)
	require.True(t, prior1[0].IsSuccess())
	require.Equal(t, "a", prior1[0].Value)

	// Mutating a snapshot doesn't leak into scheduler state.
	prior1[0] = failureResult[string](0, errors.New("tampered"))
	require.True(t, s.results[0].IsSuccess())
}

func TestScheduler_Complete_AbortPolicy(t *testing.T) {
	ctx := context.Background()
	errB := errors.New("b failed")
	s := newTestScheduler(t, 4)

	for i := 0; i < 3; i++ {
		_, _, _, ok := s.claim(ctx)
		require.True(t, ok)
	}

	require.Equal(t, recorded, s.complete(0, "a", nil))
	require.Equal(t, abortedBatch, s.complete(1, "", errB))
	require.True(t, s.aborted.Load())

	// Job 2 was running when the batch aborted: its outcome is dropped.
	require.Equal(t, discarded, s.complete(2, "c", nil))
	require.True(t, s.results[2].IsEmpty())

	// No new work after abort.
	_, _, reason, ok := s.claim(ctx)
	require.False(t, ok)
	require.Equal(t, stopAborted, reason)

	results, err := s.outcome(ctx)
	require.Nil(t, results)

	ae, ok := AsAbortError[string](err)
	require.True(t, ok)
	require.Equal(t, 1, ae.Index)
	require.ErrorIs(t, ae.Err, errB)
	require.Equal(t, []Result[string]{
		successResult(0, "a"),
		failureResult[string](1, errB),
		emptyResult[string](2),
		emptyResult[string](3),
	}, ae.Results)
}

func TestScheduler_Complete_SecondFailureAfterAbortIsDiscarded(t *testing.T) {
	ctx := context.Background()
	s := newTestScheduler(t, 2, WithLanes(2))

	s.claim(ctx)
	s.claim(ctx)

	require.Equal(t, abortedBatch, s.complete(1, "", errors.New("first")))
	require.Equal(t, discarded, s.complete(0, "", errors.New("second")))

	_, err := s.outcome(ctx)
	ae, ok := AsAbortError[string](err)
	require.True(t, ok)
	require.Equal(t, 1, ae.Index)
	require.EqualError(t, ae.Err, "first")
	require.True(t, ae.Results[0].IsEmpty())
}

func TestScheduler_Complete_CollectPolicy(t *testing.T) {
	ctx := context.Background()
	errB := errors.New("b failed")
	s := newTestScheduler(t, 3, WithAbortOnFailure(false))

	for i := 0; i < 3; i++ {
		s.claim(ctx)
	}
	require.Equal(t, recorded, s.complete(1, "", errB))
	require.Equal(t, recorded, s.complete(0, "a", nil))
	require.Equal(t, recorded, s.complete(2, "c", nil))
	require.False(t, s.aborted.Load())

	results, err := s.outcome(ctx)
	require.NoError(t, err)
	require.Equal(t, []Result[string]{
		successResult(0, "a"),
		failureResult[string](1, errB),
		successResult(2, "c"),
	}, results)
}

func TestScheduler_Claim_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newTestScheduler(t, 2)

	_, _, _, ok := s.claim(ctx)
	require.True(t, ok)
	require.Equal(t, recorded, s.complete(0, "a", nil))

	cancel()

	_, _, reason, ok := s.claim(ctx)
	require.False(t, ok)
	require.Equal(t, stopCancelled, reason)

	results, err := s.outcome(ctx)
	require.ErrorIs(t, err, ErrCancelled)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 2)
	require.True(t, results[0].IsSuccess())
	require.True(t, results[1].IsEmpty())
}

func TestScheduler_Outcome_CancelledAfterAllRecorded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newTestScheduler(t, 1)

	s.claim(ctx)
	s.complete(0, "a", nil)
	cancel()

	results, err := s.outcome(ctx)
	require.NoError(t, err)
	require.Equal(t, []Result[string]{successResult(0, "a")}, results)
}

func TestScheduler_LaneCount(t *testing.T) {
	tests := []struct {
		name  string
		lanes uint
		jobs  int
		want  int
	}{
		{name: "default single lane", lanes: 1, jobs: 5, want: 1},
		{name: "fewer lanes than jobs", lanes: 3, jobs: 5, want: 3},
		{name: "equal", lanes: 5, jobs: 5, want: 5},
		{name: "saturated lanes are not started", lanes: 64, jobs: 5, want: 5},
		{name: "lane count above max int", lanes: math.MaxUint, jobs: 5, want: 5},
		{name: "lane count at max int", lanes: math.MaxInt, jobs: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScheduler(t, tt.jobs, WithLanes(tt.lanes))
			require.Equal(t, tt.want, s.laneCount())
		})
	}
}

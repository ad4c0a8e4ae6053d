package lanes_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/lanes"
)

func newDebugLogger() (*logrus.Logger, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

func messages(hook *logtest.Hook) []string {
	entries := hook.AllEntries()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Message)
	}
	return out
}

func TestWithLogger_ExhaustedLane(t *testing.T) {
	logger, hook := newDebugLogger()
	jobs := []lanes.Job[int]{
		lanes.JobValue[int](func(context.Context) int { return 1 }),
		lanes.JobValue[int](func(context.Context) int { return 2 }),
	}

	_, err := lanes.Run(context.Background(), jobs, lanes.WithLogger(logger))
	require.NoError(t, err)
	require.Equal(t, []string{"lane started", "lane stopped"}, messages(hook))

	last := hook.LastEntry()
	require.Equal(t, logrus.DebugLevel, last.Level)
	require.Equal(t, 0, last.Data["lane"])
	require.Equal(t, 2, last.Data["index"])
	require.EqualValues(t, "exhausted", last.Data["reason"])
}

func TestWithLogger_Abort(t *testing.T) {
	logger, hook := newDebugLogger()
	boom := errors.New("boom")
	jobs := []lanes.Job[int]{
		lanes.JobValue[int](func(context.Context) int { return 1 }),
		lanes.JobError[int](func(context.Context) error { return boom }),
		lanes.JobValue[int](func(context.Context) int { return 3 }),
	}

	_, err := lanes.Run(context.Background(), jobs, lanes.WithLogger(logger))
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"lane started", "job failed", "batch aborted, lane stopped"}, messages(hook))

	failed := hook.AllEntries()[1]
	require.Equal(t, 1, failed.Data["index"])
	require.Equal(t, boom, failed.Data[logrus.ErrorKey])
}

func TestWithLogger_Entry(t *testing.T) {
	logger, hook := newDebugLogger()
	entry := logger.WithField("batch", "nightly")

	_, err := lanes.Run(context.Background(), []lanes.Job[int]{
		lanes.JobValue[int](func(context.Context) int { return 1 }),
	}, lanes.WithLogger(entry))
	require.NoError(t, err)

	for _, e := range hook.AllEntries() {
		require.Equal(t, "nightly", e.Data["batch"])
	}
}

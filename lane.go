package lanes

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// lane drains the scheduler cursor until the jobs are exhausted, the batch is
// aborted or the caller context is done.
type lane[R any] struct {
	s   *scheduler[R]
	log logrus.FieldLogger
}

func newLane[R any](id int, s *scheduler[R]) *lane[R] {
	return &lane[R]{s: s, log: s.cfg.Logger.WithField("lane", id)}
}

func (l *lane[R]) run(ctx context.Context) {
	l.s.instr.activeLanes.Add(1)
	defer l.s.instr.activeLanes.Add(-1)

	l.log.Debug("lane started")

	for {
		idx, prior, reason, ok := l.s.claim(ctx)
		if !ok {
			l.log.WithFields(logrus.Fields{"index": idx, "reason": reason}).Debug("lane stopped")
			return
		}

		if !l.execute(ctx, idx, prior).next() {
			return
		}
	}
}

// execute runs jobs[idx] and hands its outcome to the scheduler.
func (l *lane[R]) execute(ctx context.Context, idx int, prior []Result[R]) completion {
	l.s.instr.started.Add(1)

	start := time.Now()
	v, err := execJob(ctx, l.s.jobs[idx], prior)
	l.s.instr.duration.Record(time.Since(start).Seconds())

	if err != nil && l.s.cfg.ErrorTagging {
		if _, tagged := ExtractJobIndex(err); !tagged {
			err = newJobTaggedError(err, idx)
		}
	}

	c := l.s.complete(idx, v, err)
	log := l.log.WithField("index", idx)

	switch {
	case c == discarded:
		l.s.instr.discarded.Add(1)
		log.WithField("reason", stopAborted).Debug("job outcome discarded, lane stopped")
	case err != nil:
		l.s.instr.failed.Add(1)
		log.WithError(err).Debug("job failed")
		if c == abortedBatch {
			l.s.instr.aborted.Add(1)
			log.WithField("reason", stopAborted).Debug("batch aborted, lane stopped")
		}
	default:
		l.s.instr.succeeded.Add(1)
	}

	return c
}

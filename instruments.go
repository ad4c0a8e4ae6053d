package lanes

import "github.com/ygrebnov/lanes/metrics"

const (
	MetricJobsStarted     = "lanes_jobs_started_total"
	MetricJobsSucceeded   = "lanes_jobs_succeeded_total"
	MetricJobsFailed      = "lanes_jobs_failed_total"
	MetricJobsDiscarded   = "lanes_jobs_discarded_total"
	MetricBatchesAborted  = "lanes_batches_aborted_total"
	MetricActiveLanes     = "lanes_active"
	MetricJobDurationSecs = "lanes_job_duration_seconds"
)

// instruments is resolved once per Run from the configured provider.
type instruments struct {
	started     metrics.Counter
	succeeded   metrics.Counter
	failed      metrics.Counter
	discarded   metrics.Counter
	aborted     metrics.Counter
	activeLanes metrics.UpDownCounter
	duration    metrics.Histogram
}

func newInstruments(p metrics.Provider) *instruments {
	return &instruments{
		started:     p.Counter(MetricJobsStarted, metrics.WithDescription("jobs claimed and started"), metrics.WithUnit("1")),
		succeeded:   p.Counter(MetricJobsSucceeded, metrics.WithDescription("jobs recorded as success"), metrics.WithUnit("1")),
		failed:      p.Counter(MetricJobsFailed, metrics.WithDescription("jobs recorded as failure"), metrics.WithUnit("1")),
		discarded:   p.Counter(MetricJobsDiscarded, metrics.WithDescription("job outcomes discarded after abort"), metrics.WithUnit("1")),
		aborted:     p.Counter(MetricBatchesAborted, metrics.WithDescription("runs aborted on job failure"), metrics.WithUnit("1")),
		activeLanes: p.UpDownCounter(MetricActiveLanes, metrics.WithDescription("lanes currently running"), metrics.WithUnit("1")),
		duration:    p.Histogram(MetricJobDurationSecs, metrics.WithDescription("job execution time"), metrics.WithUnit("s")),
	}
}

package lanes

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/lanes/metrics"
)

// config holds Run configuration.
type config struct {
	// Lanes defines the number of concurrently executing lanes.
	// Default: 1
	Lanes uint

	// AbortOnFailure stops claiming new jobs once a job fails and makes Run
	// return an *AbortError. When disabled, every job is attempted and failures
	// are only reported through result slots.
	// Default: true
	AbortOnFailure bool

	// ErrorTagging wraps recorded job errors with the job index.
	// Default: false
	ErrorTagging bool

	// Logger receives debug entries about lane lifecycle.
	// Default: a logger writing to io.Discard.
	Logger logrus.FieldLogger

	// Metrics provides instruments for jobs and lanes accounting.
	// Default: metrics.NoopProvider.
	Metrics metrics.Provider
}

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		Lanes:          1,
		AbortOnFailure: true,
		ErrorTagging:   false,
		Logger:         discardLogger(),
		Metrics:        metrics.NewNoopProvider(),
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// validateConfig performs lightweight invariants checks.
func validateConfig(cfg *config) error {
	if cfg.Lanes == 0 {
		return errZeroLanes()
	}
	if cfg.Logger == nil {
		return errNilLogger()
	}
	if cfg.Metrics == nil {
		return errNilMetrics()
	}
	return nil
}

func errZeroLanes() error {
	return errorc.With(ErrInvalidConfig, errorc.String("lanes", "lane count must be > 0"))
}

func errNilLogger() error {
	return errorc.With(ErrInvalidConfig, errorc.String("logger", "logger must not be nil"))
}

func errNilMetrics() error {
	return errorc.With(ErrInvalidConfig, errorc.String("metrics", "metrics provider must not be nil"))
}

// newConfig applies opts on top of the defaults and validates the result.
func newConfig(opts ...Option) (*config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Option configures a Run. Options return an error on invalid input instead of panicking.
type Option func(*config) error

// WithLanes sets the number of concurrent lanes (must be > 0).
func WithLanes(n uint) Option {
	return func(cfg *config) error {
		if n == 0 {
			return errZeroLanes()
		}
		cfg.Lanes = n
		return nil
	}
}

// WithAbortOnFailure selects the failure policy. Enabled (the default) aborts the
// batch on the first recorded failure; disabled collects results of all jobs.
func WithAbortOnFailure(enabled bool) Option {
	return func(cfg *config) error { cfg.AbortOnFailure = enabled; return nil }
}

// WithErrorTagging enables wrapping recorded job errors with the job index.
func WithErrorTagging() Option {
	return func(cfg *config) error { cfg.ErrorTagging = true; return nil }
}

// WithLogger sets the logger used for lane lifecycle debug entries.
func WithLogger(l logrus.FieldLogger) Option {
	return func(cfg *config) error {
		if l == nil {
			return errNilLogger()
		}
		cfg.Logger = l
		return nil
	}
}

// WithMetrics sets the metrics provider. See instruments.go for instrument names.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errNilMetrics()
		}
		cfg.Metrics = p
		return nil
	}
}

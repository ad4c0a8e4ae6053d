package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelProvider adapts an OpenTelemetry meter to Provider.
// Instrument creation errors are reported to the error handler, if set, and
// degrade to no-op instruments.
type OTelProvider struct {
	meter   metric.Meter
	onError func(name string, err error)
}

// NewOTelProvider returns a Provider recording into meter.
func NewOTelProvider(meter metric.Meter) *OTelProvider {
	return &OTelProvider{meter: meter}
}

// WithErrorHandler sets a callback for instrument creation errors.
func (p *OTelProvider) WithErrorHandler(fn func(name string, err error)) *OTelProvider {
	p.onError = fn
	return p
}

func (p *OTelProvider) failed(name string, err error) {
	if p.onError != nil {
		p.onError(name, err)
	}
}

func (p *OTelProvider) Counter(name string, opts ...InstrumentOption) Counter {
	cfg := applyOptions(opts)
	c, err := p.meter.Int64Counter(name, metric.WithDescription(cfg.Description), metric.WithUnit(cfg.Unit))
	if err != nil {
		p.failed(name, err)
		return noop{}
	}
	return &otelCounter{c: c, attrs: measurementAttrs(cfg)}
}

func (p *OTelProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	cfg := applyOptions(opts)
	c, err := p.meter.Int64UpDownCounter(name, metric.WithDescription(cfg.Description), metric.WithUnit(cfg.Unit))
	if err != nil {
		p.failed(name, err)
		return noop{}
	}
	return &otelUpDownCounter{c: c, attrs: measurementAttrs(cfg)}
}

func (p *OTelProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	cfg := applyOptions(opts)
	h, err := p.meter.Float64Histogram(name, metric.WithDescription(cfg.Description), metric.WithUnit(cfg.Unit))
	if err != nil {
		p.failed(name, err)
		return noop{}
	}
	return &otelHistogram{h: h, attrs: measurementAttrs(cfg)}
}

func measurementAttrs(cfg InstrumentConfig) metric.MeasurementOption {
	kvs := make([]attribute.KeyValue, 0, len(cfg.Attributes))
	for k, v := range cfg.Attributes {
		kvs = append(kvs, attribute.String(k, v))
	}
	return metric.WithAttributes(kvs...)
}

// Measurements carry no request context; the Provider interface has none to offer.

type otelCounter struct {
	c     metric.Int64Counter
	attrs metric.MeasurementOption
}

func (o *otelCounter) Add(n int64) { o.c.Add(context.Background(), n, o.attrs) }

type otelUpDownCounter struct {
	c     metric.Int64UpDownCounter
	attrs metric.MeasurementOption
}

func (o *otelUpDownCounter) Add(n int64) { o.c.Add(context.Background(), n, o.attrs) }

type otelHistogram struct {
	h     metric.Float64Histogram
	attrs metric.MeasurementOption
}

func (o *otelHistogram) Record(v float64) { o.h.Record(context.Background(), v, o.attrs) }

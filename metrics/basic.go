package metrics

import (
	"sync"
	"sync/atomic"
)

// BasicProvider is an in-memory Provider. Instruments are created on first use
// and reused for the same name; Config exposes the options they were created with.
type BasicProvider struct {
	mu         sync.RWMutex
	counters   map[string]*BasicCounter
	updowns    map[string]*BasicUpDownCounter
	histograms map[string]*BasicHistogram
	meta       map[string]InstrumentConfig
}

// NewBasicProvider constructs a new BasicProvider.
func NewBasicProvider() *BasicProvider {
	return &BasicProvider{
		counters:   make(map[string]*BasicCounter),
		updowns:    make(map[string]*BasicUpDownCounter),
		histograms: make(map[string]*BasicHistogram),
		meta:       make(map[string]InstrumentConfig),
	}
}

// lookup returns instruments[name], creating it with mk under the write lock when missing.
func lookup[T any](p *BasicProvider, instruments map[string]T, name string, opts []InstrumentOption, mk func() T) T {
	p.mu.RLock()
	v, ok := instruments[name]
	p.mu.RUnlock()
	if ok {
		return v
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok = instruments[name]; ok {
		return v
	}
	p.meta[name] = applyOptions(opts)
	v = mk()
	instruments[name] = v
	return v
}

// Counter returns the monotonic counter registered under name.
func (p *BasicProvider) Counter(name string, opts ...InstrumentOption) Counter {
	return p.BasicCounter(name, opts...)
}

// UpDownCounter returns the up/down counter registered under name.
func (p *BasicProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	return p.BasicUpDownCounter(name, opts...)
}

// Histogram returns the histogram registered under name.
func (p *BasicProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	return p.BasicHistogram(name, opts...)
}

// BasicCounter is Counter with the concrete return type, for reading snapshots.
func (p *BasicProvider) BasicCounter(name string, opts ...InstrumentOption) *BasicCounter {
	return lookup(p, p.counters, name, opts, func() *BasicCounter { return &BasicCounter{} })
}

// BasicUpDownCounter is UpDownCounter with the concrete return type.
func (p *BasicProvider) BasicUpDownCounter(name string, opts ...InstrumentOption) *BasicUpDownCounter {
	return lookup(p, p.updowns, name, opts, func() *BasicUpDownCounter { return &BasicUpDownCounter{} })
}

// BasicHistogram is Histogram with the concrete return type.
func (p *BasicProvider) BasicHistogram(name string, opts ...InstrumentOption) *BasicHistogram {
	return lookup(p, p.histograms, name, opts, func() *BasicHistogram { return &BasicHistogram{} })
}

// Config returns the options an instrument was created with.
func (p *BasicProvider) Config(name string) (InstrumentConfig, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	cfg, ok := p.meta[name]
	return cfg, ok
}

// BasicCounter is a thread-safe monotonic counter.
type BasicCounter struct {
	val atomic.Int64
}

func (c *BasicCounter) Add(n int64) { c.val.Add(n) }

// Snapshot returns the current value.
func (c *BasicCounter) Snapshot() int64 { return c.val.Load() }

// BasicUpDownCounter is a thread-safe up/down counter that also remembers its peak.
type BasicUpDownCounter struct {
	val  atomic.Int64
	peak atomic.Int64
}

func (u *BasicUpDownCounter) Add(n int64) {
	v := u.val.Add(n)
	for {
		p := u.peak.Load()
		if v <= p || u.peak.CompareAndSwap(p, v) {
			return
		}
	}
}

// Snapshot returns the current value.
func (u *BasicUpDownCounter) Snapshot() int64 { return u.val.Load() }

// Peak returns the highest value observed.
func (u *BasicUpDownCounter) Peak() int64 { return u.peak.Load() }

// BasicHistogram tracks count, sum, min and max. It keeps no buckets.
type BasicHistogram struct {
	mu    sync.Mutex
	count int64
	sum   float64
	min   float64
	max   float64
}

func (h *BasicHistogram) Record(v float64) {
	h.mu.Lock()
	if h.count == 0 {
		h.min, h.max = v, v
	} else {
		h.min = min(h.min, v)
		h.max = max(h.max, v)
	}
	h.count++
	h.sum += v
	h.mu.Unlock()
}

// HistSnapshot is an immutable snapshot of a BasicHistogram.
type HistSnapshot struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Mean  float64
}

// Snapshot returns a copy of the histogram state at the time of call.
func (h *BasicHistogram) Snapshot() HistSnapshot {
	h.mu.Lock()
	s := HistSnapshot{Count: h.count, Sum: h.sum, Min: h.min, Max: h.max}
	h.mu.Unlock()
	if s.Count > 0 {
		s.Mean = s.Sum / float64(s.Count)
	}
	return s
}

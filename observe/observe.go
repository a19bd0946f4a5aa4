// Package observe provides inspection and metric instrumentation for
// generator iterators without modifying the data that flows through
// them.
package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/webriots/gentools"
)

// Tap returns a generator that calls inspect with every value g
// yields, then yields it unchanged. Sends, throws, close, and the
// final value pass through untouched.
func Tap[Y, S, R any](g gentools.Generator[Y, S, R], inspect func(Y)) gentools.Generator[Y, S, R] {
	return gentools.YieldMapped(g, func(v Y) Y {
		if inspect != nil {
			inspect(v)
		}
		return v
	})
}

// Counters holds the instruments recorded by Instrument.
type Counters struct {
	resumes     metric.Int64Counter
	yields      metric.Int64Counter
	completions metric.Int64Counter
	closes      metric.Int64Counter
	latency     metric.Int64Histogram
}

// NewCounters creates the generator instruments on the given meter.
func NewCounters(meter metric.Meter) (*Counters, error) {
	resumes, err := meter.Int64Counter("gen.resumes",
		metric.WithDescription("count of generator resumptions"))
	if err != nil {
		return nil, err
	}
	yields, err := meter.Int64Counter("gen.yields",
		metric.WithDescription("count of values yielded"))
	if err != nil {
		return nil, err
	}
	completions, err := meter.Int64Counter("gen.completions",
		metric.WithDescription("count of generators run to completion"))
	if err != nil {
		return nil, err
	}
	closes, err := meter.Int64Counter("gen.closes",
		metric.WithDescription("count of generators closed early"))
	if err != nil {
		return nil, err
	}
	latency, err := meter.Int64Histogram("gen.resume_us",
		metric.WithDescription("time spent inside the generator per resumption, microseconds"))
	if err != nil {
		return nil, err
	}
	return &Counters{
		resumes:     resumes,
		yields:      yields,
		completions: completions,
		closes:      closes,
		latency:     latency,
	}, nil
}

// Instrument returns a generator recording per-resumption metrics for
// g on c. The wrapper changes no values on any channel.
func Instrument[Y, S, R any](ctx context.Context, g gentools.Generator[Y, S, R], c *Counters) gentools.Generator[Y, S, R] {
	return &instrumented[Y, S, R]{ctx: ctx, g: g, c: c}
}

type instrumented[Y, S, R any] struct {
	ctx context.Context
	g   gentools.Generator[Y, S, R]
	c   *Counters
}

func (m *instrumented[Y, S, R]) Next() (Y, bool) {
	return m.record(m.g.Next)
}

func (m *instrumented[Y, S, R]) Send(v S) (Y, bool) {
	return m.record(func() (Y, bool) { return m.g.Send(v) })
}

func (m *instrumented[Y, S, R]) Throw(err error) (Y, bool) {
	return m.record(func() (Y, bool) { return m.g.Throw(err) })
}

func (m *instrumented[Y, S, R]) record(resume func() (Y, bool)) (Y, bool) {
	start := time.Now()
	m.c.resumes.Add(m.ctx, 1)
	v, ok := resume()
	m.c.latency.Record(m.ctx, time.Since(start).Microseconds())
	if ok {
		m.c.yields.Add(m.ctx, 1)
	} else {
		m.c.completions.Add(m.ctx, 1)
	}
	return v, ok
}

func (m *instrumented[Y, S, R]) Close() {
	if !m.g.Done() {
		m.c.closes.Add(m.ctx, 1)
	}
	m.g.Close()
}

func (m *instrumented[Y, S, R]) Done() bool {
	return m.g.Done()
}

func (m *instrumented[Y, S, R]) Result() (R, bool) {
	return m.g.Result()
}

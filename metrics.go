package filesniff

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/gobeaver/filesniff"

// Metrics holds the classification instruments. A nil *Metrics records
// nothing.
type Metrics struct {
	Classifications metric.Int64Counter
	CacheHits       metric.Int64Counter
	CacheMisses     metric.Int64Counter
	ReadErrors      metric.Int64Counter
	HeaderSize      metric.Int64Histogram
}

// NewMetrics creates the instruments on meterProvider, or on the global
// provider when it is nil.
func NewMetrics(meterProvider metric.MeterProvider) (*Metrics, error) {
	if meterProvider == nil {
		meterProvider = otel.GetMeterProvider()
	}

	meter := meterProvider.Meter(instrumentationName)
	m := &Metrics{}

	var err error

	m.Classifications, err = meter.Int64Counter(
		"filesniff.classifications",
		metric.WithDescription("Number of classified headers"),
		metric.WithUnit("{classification}"),
	)
	if err != nil {
		return nil, err
	}

	m.CacheHits, err = meter.Int64Counter(
		"filesniff.cache.hits",
		metric.WithDescription("Number of result cache hits"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, err
	}

	m.CacheMisses, err = meter.Int64Counter(
		"filesniff.cache.misses",
		metric.WithDescription("Number of result cache misses"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, err
	}

	m.ReadErrors, err = meter.Int64Counter(
		"filesniff.read.errors",
		metric.WithDescription("Number of failed header reads"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	m.HeaderSize, err = meter.Int64Histogram(
		"filesniff.header.size",
		metric.WithDescription("Number of header bytes inspected"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(0, 16, 64, 128, 256, 512),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordClassification records one classification of a header of n bytes.
func (m *Metrics) RecordClassification(ctx context.Context, r *Result, n int, cached bool) {
	if m == nil {
		return
	}

	m.Classifications.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", r.Type()),
		attribute.String("stage", r.Stage()),
		attribute.Bool("cached", cached),
	))
	m.HeaderSize.Record(ctx, int64(n))
}

// RecordCache records a cache lookup.
func (m *Metrics) RecordCache(ctx context.Context, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHits.Add(ctx, 1)
		return
	}
	m.CacheMisses.Add(ctx, 1)
}

// RecordReadError records a failed header read.
func (m *Metrics) RecordReadError(ctx context.Context, op string) {
	if m == nil {
		return
	}
	m.ReadErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

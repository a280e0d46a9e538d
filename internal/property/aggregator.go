package property

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"assetoracle/internal/platform/metrics"
	dErrors "assetoracle/pkg/domain-errors"
)

// Aggregator fans out to all sources concurrently and assembles one snapshot.
// Source failures are absorbed into the snapshot's Degraded list; the
// goroutines never return errors, so one outage never cancels the sibling
// fetches or fails the run.
type Aggregator struct {
	sources Sources
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures an Aggregator.
type Option func(*Aggregator)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Aggregator) {
		a.metrics = m
	}
}

// NewAggregator creates an Aggregator over the given provider set.
func NewAggregator(sources Sources, opts ...Option) (*Aggregator, error) {
	if sources.Registry == nil || sources.Valuation == nil || sources.Risk == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "all three property sources are required")
	}
	agg := &Aggregator{sources: sources}
	for _, opt := range opts {
		opt(agg)
	}
	return agg, nil
}

// Aggregate fetches all sources concurrently and builds the snapshot. The
// per-source fields and the Degraded list keep the fixed registry, valuation,
// risk order regardless of completion order.
func (a *Aggregator) Aggregate(ctx context.Context, addr Address) (*Snapshot, error) {
	g, ctx := errgroup.WithContext(ctx)

	snapshot := &Snapshot{
		Address:   addr,
		FetchedAt: time.Now(),
	}

	var registryErr, valuationErr, riskErr error

	g.Go(func() error {
		start := time.Now()
		record, err := a.sources.Registry.FetchRegistry(ctx, addr)
		snapshot.Latencies.Registry = time.Since(start)
		a.observe(SourceRegistry, snapshot.Latencies.Registry)
		if err != nil {
			registryErr = err
			return nil
		}
		snapshot.Registry = record
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		record, err := a.sources.Valuation.FetchValuation(ctx, addr)
		snapshot.Latencies.Valuation = time.Since(start)
		a.observe(SourceValuation, snapshot.Latencies.Valuation)
		if err != nil {
			valuationErr = err
			return nil
		}
		snapshot.Valuation = record
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		record, err := a.sources.Risk.FetchRisk(ctx, addr)
		snapshot.Latencies.Risk = time.Since(start)
		a.observe(SourceRisk, snapshot.Latencies.Risk)
		if err != nil {
			riskErr = err
			return nil
		}
		snapshot.Risk = record
		return nil
	})

	// Err is always nil here; Wait is only used as the join point.
	_ = g.Wait()

	for _, failed := range []struct {
		name SourceName
		err  error
	}{
		{SourceRegistry, registryErr},
		{SourceValuation, valuationErr},
		{SourceRisk, riskErr},
	} {
		if failed.err == nil {
			continue
		}
		snapshot.Degraded = append(snapshot.Degraded, failed.name)
		if a.logger != nil {
			a.logger.WarnContext(ctx, "property source degraded",
				"source", string(failed.name),
				"address", addr.Full(),
				"error", failed.err,
			)
		}
	}

	return snapshot, nil
}

func (a *Aggregator) observe(source SourceName, d time.Duration) {
	if a.metrics != nil {
		a.metrics.ObserveSourceLatency(string(source), d)
	}
}

// Package quorum simulates a fixed-size set of independent verifier nodes
// confirming a snapshot digest. This is a local stand-in for a real
// multi-node agreement protocol: it models the timing and acceptance
// semantics of a quorum round, not distributed consensus. The Confirmer
// strategy is pluggable so a real implementation can replace the simulation
// without touching the verification engine.
package quorum

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"assetoracle/internal/platform/config"
	"assetoracle/internal/platform/metrics"
	dErrors "assetoracle/pkg/domain-errors"
)

// Confirmer performs a single node's confirmation step.
type Confirmer interface {
	Confirm(ctx context.Context, node int, digest string) error
}

// StaticConfirmer always agrees after a fixed latency. This is the default:
// confirmation is deterministic, the simulator's job is timing behavior.
type StaticConfirmer struct {
	Latency time.Duration
}

func (c StaticConfirmer) Confirm(ctx context.Context, _ int, _ string) error {
	select {
	case <-time.After(c.Latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Tally is the outcome of one quorum round.
type Tally struct {
	NodeCount  int
	AgreeCount int
	// NodeLatencies is ordered by node index even though nodes run
	// concurrently.
	NodeLatencies []time.Duration
	Reached       bool
}

// Summary renders the tally for the verification record.
func (t Tally) Summary() string {
	return fmt.Sprintf("%d/%d nodes agree", t.AgreeCount, t.NodeCount)
}

// Simulator runs quorum rounds over N simulated nodes.
type Simulator struct {
	nodeCount int
	confirmer Confirmer
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// Option configures a Simulator.
type Option func(*Simulator)

func WithConfirmer(c Confirmer) Option {
	return func(s *Simulator) {
		s.confirmer = c
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Simulator) {
		s.metrics = m
	}
}

// NewSimulator builds a Simulator from config. The default confirmer agrees
// unconditionally after the configured per-node latency.
func NewSimulator(cfg config.QuorumConfig, opts ...Option) (*Simulator, error) {
	if cfg.NodeCount <= 0 {
		return nil, dErrors.New(dErrors.CodeInternal, "quorum node count must be positive")
	}
	s := &Simulator{
		nodeCount: cfg.NodeCount,
		confirmer: StaticConfirmer{Latency: cfg.NodeLatency},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NodeCount returns the configured quorum size.
func (s *Simulator) NodeCount() int {
	return s.nodeCount
}

// Run simulates one quorum round for the digest. Nodes confirm concurrently;
// agreement is unanimous: Reached only when every node confirms.
func (s *Simulator) Run(ctx context.Context, digest string) Tally {
	start := time.Now()

	agreed := make([]bool, s.nodeCount)
	latencies := make([]time.Duration, s.nodeCount)

	g, ctx := errgroup.WithContext(ctx)
	for node := range s.nodeCount {
		g.Go(func() error {
			nodeStart := time.Now()
			err := s.confirmer.Confirm(ctx, node, digest)
			latencies[node] = time.Since(nodeStart)
			if err != nil {
				if s.logger != nil {
					s.logger.WarnContext(ctx, "quorum node did not confirm",
						"node", node,
						"error", err,
					)
				}
				return nil
			}
			agreed[node] = true
			return nil
		})
	}
	_ = g.Wait()

	tally := Tally{
		NodeCount:     s.nodeCount,
		NodeLatencies: latencies,
	}
	for _, ok := range agreed {
		if ok {
			tally.AgreeCount++
		}
	}
	tally.Reached = tally.AgreeCount == tally.NodeCount

	if s.metrics != nil {
		s.metrics.ObserveQuorumRound(time.Since(start))
	}
	return tally
}

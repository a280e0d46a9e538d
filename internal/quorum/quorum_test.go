package quorum

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetoracle/internal/platform/config"
)

func newTestSimulator(t *testing.T, nodes int, opts ...Option) *Simulator {
	t.Helper()
	sim, err := NewSimulator(config.QuorumConfig{
		NodeCount:   nodes,
		NodeLatency: time.Millisecond,
	}, opts...)
	require.NoError(t, err)
	return sim
}

func TestRunUnanimousByDefault(t *testing.T) {
	sim := newTestSimulator(t, 5)
	tally := sim.Run(context.Background(), "digest-1")

	assert.True(t, tally.Reached)
	assert.Equal(t, 5, tally.AgreeCount)
	assert.Equal(t, 5, tally.NodeCount)
	assert.Len(t, tally.NodeLatencies, 5)
	for i, latency := range tally.NodeLatencies {
		assert.Positive(t, latency, "node %d latency must be recorded", i)
	}
	assert.Equal(t, "5/5 nodes agree", tally.Summary())
}

type flakyConfirmer struct {
	failNode int
}

func (c flakyConfirmer) Confirm(_ context.Context, node int, _ string) error {
	if node == c.failNode {
		return errors.New("node offline")
	}
	return nil
}

func TestRunSingleDissenterBreaksUnanimity(t *testing.T) {
	sim := newTestSimulator(t, 5, WithConfirmer(flakyConfirmer{failNode: 2}))
	tally := sim.Run(context.Background(), "digest-2")

	assert.False(t, tally.Reached, "unanimous policy: one failure means quorum not reached")
	assert.Equal(t, 4, tally.AgreeCount)
	assert.Equal(t, "4/5 nodes agree", tally.Summary())
}

func TestRunLatenciesKeepNodeIndexOrder(t *testing.T) {
	// Nodes run concurrently but latencies land at their node index.
	sim := newTestSimulator(t, 3, WithConfirmer(staggeredConfirmer{}))
	tally := sim.Run(context.Background(), "digest-3")

	require.Len(t, tally.NodeLatencies, 3)
	// staggeredConfirmer sleeps node*10ms, so latencies grow with index.
	assert.Less(t, tally.NodeLatencies[0], tally.NodeLatencies[1])
	assert.Less(t, tally.NodeLatencies[1], tally.NodeLatencies[2])
}

type staggeredConfirmer struct{}

func (staggeredConfirmer) Confirm(_ context.Context, node int, _ string) error {
	time.Sleep(time.Duration(node) * 10 * time.Millisecond)
	return nil
}

func TestRunCancelledContext(t *testing.T) {
	sim, err := NewSimulator(config.QuorumConfig{
		NodeCount:   5,
		NodeLatency: time.Second,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tally := sim.Run(ctx, "digest-4")
	assert.False(t, tally.Reached)
	assert.Zero(t, tally.AgreeCount)
}

func TestNewSimulatorRejectsNonPositiveNodeCount(t *testing.T) {
	_, err := NewSimulator(config.QuorumConfig{NodeCount: 0})
	assert.Error(t, err)
}

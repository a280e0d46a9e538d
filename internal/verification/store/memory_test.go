package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetoracle/internal/verification"
	dErrors "assetoracle/pkg/domain-errors"
)

func TestInMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	run := verification.Run{
		ID:        "run-1",
		AssetID:   "asset-1",
		Status:    verification.RunRunning,
		StartedAt: time.Now(),
	}
	require.NoError(t, s.Save(ctx, run))

	found, err := s.Find(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, verification.RunRunning, found.Status)
	assert.Nil(t, found.Record)

	run.Status = verification.RunFulfilled
	run.Record = &verification.Record{Status: "VERIFIED", QuorumSummary: "5/5 nodes agree"}
	run.CompletedAt = time.Now()
	require.NoError(t, s.Save(ctx, run))

	found, err = s.Find(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, verification.RunFulfilled, found.Status)
	require.NotNil(t, found.Record)
	assert.Equal(t, "VERIFIED", found.Record.Status)
}

func TestInMemoryStoreUnknownRun(t *testing.T) {
	s := NewInMemoryStore()
	_, err := s.Find(context.Background(), "missing")
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}

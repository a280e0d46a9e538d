package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetoracle/internal/asset/models"
	dErrors "assetoracle/pkg/domain-errors"
)

func newAsset(id string, status models.VerificationStatus) models.Asset {
	return models.Asset{
		ID:                 id,
		Name:               "Asset " + id,
		Description:        "test asset",
		Category:           models.CategoryRealEstate,
		EstimatedValue:     500000,
		Location:           models.Location{Address: "123 Main St", City: "San Francisco", State: "CA"},
		OwnerWallet:        "0xowner",
		VerificationStatus: status,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
}

func TestInMemoryStoreSaveAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	require.NoError(t, s.Save(ctx, newAsset("a1", models.StatusPending)))

	found, err := s.FindByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Asset a1", found.Name)

	_, err = s.FindByID(ctx, "missing")
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}

func TestInMemoryStoreTransition(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	require.NoError(t, s.Save(ctx, newAsset("a1", models.StatusPending)))

	t.Run("pending to verified", func(t *testing.T) {
		verifiedAt := time.Now()
		asset, err := s.Transition(ctx, "a1", models.StatusPending, models.StatusVerified, models.BlockchainData{
			DocumentHash:   "abc123",
			VerificationID: "VER-1",
			VerifiedAt:     verifiedAt,
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusVerified, asset.VerificationStatus)
		assert.Equal(t, "abc123", asset.BlockchainData.DocumentHash)
		assert.Equal(t, "VER-1", asset.BlockchainData.VerificationID)
	})

	t.Run("second transition from pending conflicts", func(t *testing.T) {
		_, err := s.Transition(ctx, "a1", models.StatusPending, models.StatusRejected, models.BlockchainData{})
		assert.True(t, dErrors.Is(err, dErrors.CodeConflict))
	})

	t.Run("unknown asset", func(t *testing.T) {
		_, err := s.Transition(ctx, "missing", models.StatusPending, models.StatusVerified, models.BlockchainData{})
		assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
	})
}

func TestInMemoryStoreTransitionSerializesConcurrentRuns(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	require.NoError(t, s.Save(ctx, newAsset("a1", models.StatusPending)))

	results := make(chan error, 2)
	for _, target := range []models.VerificationStatus{models.StatusVerified, models.StatusRejected} {
		go func() {
			_, err := s.Transition(ctx, "a1", models.StatusPending, target, models.BlockchainData{})
			results <- err
		}()
	}

	var failures int
	for range 2 {
		if err := <-results; err != nil {
			assert.True(t, dErrors.Is(err, dErrors.CodeConflict))
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactly one of two racing transitions must lose")
}

func TestInMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	verified := newAsset("v1", models.StatusVerified)
	pending := newAsset("p1", models.StatusPending)
	pending.OwnerWallet = "0xother"
	require.NoError(t, s.Save(ctx, verified))
	require.NoError(t, s.Save(ctx, pending))

	t.Run("verified-only filter hides pending assets", func(t *testing.T) {
		page, err := s.List(ctx, models.ListFilter{VerifiedOnly: true})
		require.NoError(t, err)
		require.Len(t, page.Assets, 1)
		assert.Equal(t, "v1", page.Assets[0].ID)
	})

	t.Run("owner sees own pending assets", func(t *testing.T) {
		page, err := s.List(ctx, models.ListFilter{VerifiedOnly: true, OwnerWallet: "0xother"})
		require.NoError(t, err)
		assert.Len(t, page.Assets, 2)
	})

	t.Run("category filter", func(t *testing.T) {
		page, err := s.List(ctx, models.ListFilter{Category: "VEHICLE"})
		require.NoError(t, err)
		assert.Empty(t, page.Assets)
	})

	t.Run("search matches name and city", func(t *testing.T) {
		page, err := s.List(ctx, models.ListFilter{Search: "francisco"})
		require.NoError(t, err)
		assert.Len(t, page.Assets, 2)
	})
}

func TestInMemoryStoreListPagination(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	for i := range 25 {
		asset := newAsset(fmt.Sprintf("a%02d", i), models.StatusVerified)
		asset.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		require.NoError(t, s.Save(ctx, asset))
	}

	first, err := s.List(ctx, models.ListFilter{VerifiedOnly: true, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, first.Assets, 10)
	assert.Equal(t, 25, first.Total)
	// Newest first.
	assert.Equal(t, "a24", first.Assets[0].ID)

	last, err := s.List(ctx, models.ListFilter{VerifiedOnly: true, Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, last.Assets, 5)

	beyond, err := s.List(ctx, models.ListFilter{VerifiedOnly: true, Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond.Assets)
	assert.Equal(t, 25, beyond.Total)
}

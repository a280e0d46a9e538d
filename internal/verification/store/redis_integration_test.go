//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"assetoracle/internal/verification"
	"assetoracle/internal/verification/store"
	dErrors "assetoracle/pkg/domain-errors"
	"assetoracle/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *store.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = store.NewRedisStore(s.redis.Client, time.Hour)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestRoundTrip() {
	ctx := context.Background()

	run := verification.Run{
		ID:        "run-1",
		AssetID:   "asset-1",
		Status:    verification.RunRunning,
		StartedAt: time.Now().UTC().Truncate(time.Second),
	}
	s.Require().NoError(s.store.Save(ctx, run))

	found, err := s.store.Find(ctx, "run-1")
	s.Require().NoError(err)
	s.Equal(verification.RunRunning, found.Status)

	run.Status = verification.RunFulfilled
	run.Record = &verification.Record{Status: "VERIFIED", DataSourcesVerified: 3}
	s.Require().NoError(s.store.Save(ctx, run))

	found, err = s.store.Find(ctx, "run-1")
	s.Require().NoError(err)
	s.Equal(verification.RunFulfilled, found.Status)
	s.Require().NotNil(found.Record)
	s.Equal(3, found.Record.DataSourcesVerified)
}

func (s *RedisStoreSuite) TestUnknownRun() {
	_, err := s.store.Find(context.Background(), "missing")
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"assetoracle/internal/verification"
	dErrors "assetoracle/pkg/domain-errors"
)

const runKeyPrefix = "verification:run:"

// RedisStore keeps runs in Redis so status checks survive restarts and can
// be served by any instance. Runs expire after the configured TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, run verification.Run) error {
	payload, err := json.Marshal(run)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "marshal run")
	}
	if err := s.client.Set(ctx, runKeyPrefix+run.ID, payload, s.ttl).Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "save run")
	}
	return nil
}

func (s *RedisStore) Find(ctx context.Context, id string) (verification.Run, error) {
	payload, err := s.client.Get(ctx, runKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return verification.Run{}, ErrRunNotFound
	}
	if err != nil {
		return verification.Run{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "find run")
	}
	var run verification.Run
	if err := json.Unmarshal(payload, &run); err != nil {
		return verification.Run{}, dErrors.Wrap(err, dErrors.CodeInternal, "unmarshal run")
	}
	return run, nil
}

// Package idempotencyrepo manages repository layer of idempotency keys.
package idempotencyrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-petr/cash-ledger/pkg/errorspkg"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// Key states.
const (
	StatePending = "pending"
	StateDone    = "done"
)

// RepoRedis facilitates idempotency key repository layer logic.
type RepoRedis struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRepoRedis returns idempotency RepoRedis. Keys expire after ttl.
func NewRepoRedis(rdb *redis.Client, ttl time.Duration) *RepoRedis {
	return &RepoRedis{
		rdb: rdb,
		ttl: ttl,
	}
}

func redisKey(username, key string) string {
	return fmt.Sprintf("idem:%s:%s", username, key)
}

// Reserve marks key of the user as in flight. It returns false when the key is already
// in flight or completed.
func (r *RepoRedis) Reserve(ctx context.Context, username, key string) (bool, error) {
	l := zerolog.Ctx(ctx)

	ok, err := r.rdb.SetNX(ctx, redisKey(username, key), StatePending, r.ttl).Result()
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return ok, nil
}

// Complete marks key of the user as completed, keeping it for the rest of the ttl.
func (r *RepoRedis) Complete(ctx context.Context, username, key string) error {
	l := zerolog.Ctx(ctx)

	if err := r.rdb.Set(ctx, redisKey(username, key), StateDone, r.ttl).Err(); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

// Release forgets key of the user so the request can be retried.
func (r *RepoRedis) Release(ctx context.Context, username, key string) error {
	l := zerolog.Ctx(ctx)

	if err := r.rdb.Del(ctx, redisKey(username, key)).Err(); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

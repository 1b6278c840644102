package idempotency

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/errors"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/logger"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/redis"
	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
)

// RedisGuard stores reservations as Redis keys. The value is a nonce unique to the
// reserving attempt, so a SET NX that the client library resent after a lost reply
// can still be recognised as our own.
type RedisGuard struct {
	redisclient redis.Client
	config      *redis.Config
	ttl         time.Duration
	logger      logger.Interface
	newNonce    func() string
}

// NewRedisGuard creates a guard whose reservations expire after ttl.
func NewRedisGuard(redisclient redis.Client, config *redis.Config, ttl time.Duration, logger logger.Interface) *RedisGuard {
	return &RedisGuard{
		redisclient: redisclient,
		config:      config,
		ttl:         ttl,
		logger:      logger,
		newNonce:    uuid.NewString,
	}
}

// Key returns the Redis key for an idempotency key.
func (g *RedisGuard) Key(key string) string {
	return g.config.Key("idempotency", key)
}

// TryReserve claims key with a single SET NX. When the key already exists and holds this
// attempt's nonce the reservation is ours.
// It returns ErrMissingIdempotencyKey for an empty key and ErrDuplicateIdempotentRequest
// when another request already holds it.
func (g *RedisGuard) TryReserve(ctx context.Context, key string) error {
	if key == "" {
		return v1.ErrMissingIdempotencyKey
	}

	redisKey := g.Key(key)
	nonce := g.newNonce()

	ok, err := g.redisclient.SetNX(ctx, redisKey, nonce, g.ttl)
	if err != nil {
		return errors.NewTracer("idempotency_reserve_error").Wrap(err)
	}

	if !ok {
		holder, found, err := g.redisclient.Get(ctx, redisKey)
		if err != nil {
			return errors.NewTracer("idempotency_reserve_error").Wrap(err)
		}
		if found && holder == nonce {
			return nil
		}

		g.logger.InfoContext(ctx, "Idempotency key already reserved", logger.Field{
			Key:   "idempotency_key",
			Value: key,
		})
		return v1.ErrDuplicateIdempotentRequest
	}

	return nil
}

// Release frees key so the caller may retry.
func (g *RedisGuard) Release(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	if _, err := g.redisclient.Del(ctx, g.Key(key)); err != nil {
		return errors.NewTracer("idempotency_release_error").Wrap(err)
	}
	return nil
}

package pricecache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/errors"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/logger"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/redis"
	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
)

type cachedOrder struct {
	ID            uuid.UUID       `json:"id"`
	Price         decimal.Decimal `json:"price"`
	Amount        decimal.Decimal `json:"amount"`
	Side          v1.Side         `json:"side"`
	EffectiveTime time.Time       `json:"effective_time"`
}

type cachedBook struct {
	Class  v1.AssetClass `json:"class"`
	Symbol string        `json:"symbol"`
	Orders []cachedOrder `json:"orders"`
}

// Store caches order books in Redis as JSON.
type Store struct {
	redisclient redis.Client
	config      *redis.Config
	logger      logger.Interface
}

// NewStore creates a new price cache on top of an already connected Redis client.
func NewStore(redisclient redis.Client, config *redis.Config, logger logger.Interface) *Store {
	return &Store{
		redisclient: redisclient,
		config:      config,
		logger:      logger,
	}
}

// Key returns the Redis key holding the book for asset.
func (s *Store) Key(asset v1.AssetDefinition) string {
	return s.config.Key("book", string(asset.Class), asset.Symbol)
}

// Get returns the cached book, or false when nothing is cached for asset.
func (s *Store) Get(ctx context.Context, asset v1.AssetDefinition) (*v1.OrderBook, bool, error) {
	data, found, err := s.redisclient.Get(ctx, s.Key(asset))
	if err != nil {
		return nil, false, errors.NewTracer("price_cache_get_error").Wrap(err)
	}
	if !found {
		return nil, false, nil
	}

	var cached cachedBook
	if err := json.Unmarshal([]byte(data), &cached); err != nil {
		s.logger.WarnContext(ctx, "Discarding unreadable cached book", logger.Field{
			Key:   "asset",
			Value: asset.String(),
		}, logger.Field{
			Key:   "error",
			Value: err.Error(),
		})
		return nil, false, nil
	}

	book := &v1.OrderBook{
		Asset:  v1.AssetDefinition{Class: cached.Class, Symbol: cached.Symbol},
		Orders: make([]v1.Order, 0, len(cached.Orders)),
	}
	for _, o := range cached.Orders {
		book.Orders = append(book.Orders, v1.Order(o))
	}

	return book, true, nil
}

// Put caches book under asset for ttl.
func (s *Store) Put(ctx context.Context, asset v1.AssetDefinition, book *v1.OrderBook, ttl time.Duration) error {
	cached := cachedBook{
		Class:  asset.Class,
		Symbol: asset.Symbol,
		Orders: make([]cachedOrder, 0, len(book.Orders)),
	}
	for _, o := range book.Orders {
		cached.Orders = append(cached.Orders, cachedOrder(o))
	}

	buf, err := json.Marshal(cached)
	if err != nil {
		return errors.NewTracer("price_cache_marshal_error").Wrap(err)
	}

	if err := s.redisclient.Set(ctx, s.Key(asset), buf, ttl); err != nil {
		return errors.NewTracer("price_cache_put_error").Wrap(err)
	}

	return nil
}

// Invalidate drops the cached book for asset.
func (s *Store) Invalidate(ctx context.Context, asset v1.AssetDefinition) error {
	if _, err := s.redisclient.Del(ctx, s.Key(asset)); err != nil {
		return errors.NewTracer("price_cache_invalidate_error").Wrap(err)
	}
	return nil
}

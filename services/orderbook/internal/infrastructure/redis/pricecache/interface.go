package pricecache

import (
	"context"
	"time"

	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
)

// Cache is a read-through copy of order books keyed by asset.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=pricecache_mock
type Cache interface {
	Get(ctx context.Context, asset v1.AssetDefinition) (*v1.OrderBook, bool, error)
	Put(ctx context.Context, asset v1.AssetDefinition, book *v1.OrderBook, ttl time.Duration) error
	Invalidate(ctx context.Context, asset v1.AssetDefinition) error
}

package orderbook

import (
	"context"

	"github.com/google/uuid"
	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
)

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// OrderBookRepository is the repository for order books.
type OrderBookRepository interface {
	GetBook(ctx context.Context, asset v1.AssetDefinition) (*v1.OrderBook, error)
	AddOrder(ctx context.Context, asset v1.AssetDefinition, order v1.Order) error
	ModifyOrderInPlace(ctx context.Context, asset v1.AssetDefinition, order v1.Order) error
	RemoveOrder(ctx context.Context, asset v1.AssetDefinition, orderID uuid.UUID) error
}

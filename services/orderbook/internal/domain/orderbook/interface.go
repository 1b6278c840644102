package orderbook

import (
	"context"

	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
)

// Usecase is the interface for the order book usecase.
//
//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock
type Usecase interface {
	AddOrder(ctx context.Context, req v1.AddOrderRequest) (v1.AddOrderResult, error)
	ModifyOrder(ctx context.Context, req v1.ModifyOrderRequest) (v1.MutationResult, error)
	RemoveOrder(ctx context.Context, req v1.RemoveOrderRequest) (v1.MutationResult, error)
	GetPrice(ctx context.Context, req v1.PriceRequest) (v1.PriceResult, error)
	GetBook(ctx context.Context, asset v1.AssetDefinition) (*v1.OrderBook, error)
}

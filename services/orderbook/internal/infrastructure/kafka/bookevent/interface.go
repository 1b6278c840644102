package bookevent

import (
	"context"

	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
)

// Publisher notifies downstream consumers that an order book changed.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=bookevent_mock
type Publisher interface {
	Publish(ctx context.Context, event v1.BookEvent) error
	Close() error
}

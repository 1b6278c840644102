package bootstrap

import (
	orderbookDomain "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook"
	orderbookUc "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/usecase/orderbook"
)

// Usecase is the usecase for the order book service.
type Usecase struct {
	OrderBookUsecase orderbookDomain.Usecase
}

// registerUsecase registers the usecase.
func (b *Bootstrap) registerUsecase() {
	b.Usecase.OrderBookUsecase = orderbookUc.NewUsecase(
		b.Repository.OrderBookRepository,
		b.Repository.PriceCache,
		b.Repository.IdempotencyGuard,
		b.Repository.BookEventPublisher,
		b.Config.Cache.PriceTTL,
		b.Logger,
	)
}

package bootstrap

import (
	bookeventInfra "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/infrastructure/kafka/bookevent"
	orderbookInfra "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/infrastructure/postgresql/orderbook"
	idempotencyInfra "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/infrastructure/redis/idempotency"
	pricecacheInfra "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/infrastructure/redis/pricecache"
)

// Repository groups the storage and messaging adapters of the order book service.
type Repository struct {
	OrderBookRepository orderbookInfra.OrderBookRepository
	PriceCache          pricecacheInfra.Cache
	IdempotencyGuard    idempotencyInfra.Guard
	BookEventPublisher  bookeventInfra.Publisher
}

// registerRepository registers the repository.
func (b *Bootstrap) registerRepository() {
	redisConfig := &b.Config.Redis

	b.Repository.OrderBookRepository = orderbookInfra.NewRepository(b.PostgreSQL, b.Logger)
	b.Repository.PriceCache = pricecacheInfra.NewStore(b.Redis, redisConfig, b.Logger)
	b.Repository.IdempotencyGuard = idempotencyInfra.NewRedisGuard(b.Redis, redisConfig, b.Config.Cache.IdempotencyTTL, b.Logger)

	if b.Config.EventKafka.Enabled() {
		b.Repository.BookEventPublisher = bookeventInfra.NewKafkaPublisher(b.Config.EventKafka, b.Logger)
	} else {
		b.Repository.BookEventPublisher = bookeventInfra.NoopPublisher{}
	}
}

package orderbook

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/errors"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/logger"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/util"
	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/infrastructure/kafka/bookevent"
	repo "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/infrastructure/postgresql/orderbook"
	"github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/infrastructure/redis/idempotency"
	"github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/infrastructure/redis/pricecache"
	"github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/usecase/pricing"
)

type usecase struct {
	orderBookRepository repo.OrderBookRepository
	priceCache          pricecache.Cache
	guard               idempotency.Guard
	publisher           bookevent.Publisher
	logger              logger.Interface

	priceTTL time.Duration
	now      func() time.Time
	newID    func() uuid.UUID
}

// Option customises the usecase.
type Option func(*usecase)

// WithClock overrides the source of effective times.
func WithClock(now func() time.Time) Option {
	return func(u *usecase) { u.now = now }
}

// WithIDGenerator overrides how new order ids are minted.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(u *usecase) { u.newID = newID }
}

// NewUsecase creates a new order book usecase.
func NewUsecase(
	orderBookRepository repo.OrderBookRepository,
	priceCache pricecache.Cache,
	guard idempotency.Guard,
	publisher bookevent.Publisher,
	priceTTL time.Duration,
	logger logger.Interface,
	opts ...Option,
) *usecase {
	u := &usecase{
		orderBookRepository: orderBookRepository,
		priceCache:          priceCache,
		guard:               guard,
		publisher:           publisher,
		logger:              logger,
		priceTTL:            priceTTL,
		now:                 func() time.Time { return time.Now().UTC() },
		newID:               uuid.New,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// AddOrder places a new order, creating the asset's book if this is its first order.
func (u *usecase) AddOrder(ctx context.Context, req v1.AddOrderRequest) (v1.AddOrderResult, error) {
	return guarded(ctx, u, req, func(ctx context.Context) (v1.AddOrderResult, error) {
		order := v1.Order{
			ID:            u.newID(),
			Price:         req.Price,
			Amount:        req.Amount,
			Side:          req.Side,
			EffectiveTime: u.now(),
		}

		if err := u.orderBookRepository.AddOrder(ctx, req.Asset, order); err != nil {
			return v1.AddOrderResult{}, u.storeError(ctx, "add_order", err)
		}

		u.afterMutation(ctx, v1.BookEvent{
			Type:          v1.OrderAdded,
			Asset:         req.Asset,
			OrderID:       order.ID,
			EffectiveTime: order.EffectiveTime,
		})

		return v1.AddOrderResult{
			OrderID:       order.ID,
			EffectiveTime: order.EffectiveTime,
		}, nil
	})
}

// ModifyOrder replaces price, amount and side of an existing order and refreshes its effective time.
func (u *usecase) ModifyOrder(ctx context.Context, req v1.ModifyOrderRequest) (v1.MutationResult, error) {
	return guarded(ctx, u, req, func(ctx context.Context) (v1.MutationResult, error) {
		order := v1.Order{
			ID:            req.OrderID,
			Price:         req.Price,
			Amount:        req.Amount,
			Side:          req.Side,
			EffectiveTime: u.now(),
		}

		if err := u.orderBookRepository.ModifyOrderInPlace(ctx, req.Asset, order); err != nil {
			return v1.MutationResult{}, u.storeError(ctx, "modify_order", err)
		}

		u.afterMutation(ctx, v1.BookEvent{
			Type:          v1.OrderModified,
			Asset:         req.Asset,
			OrderID:       order.ID,
			EffectiveTime: order.EffectiveTime,
		})

		return v1.MutationResult{EffectiveTime: order.EffectiveTime}, nil
	})
}

// RemoveOrder deletes an existing order from its book.
func (u *usecase) RemoveOrder(ctx context.Context, req v1.RemoveOrderRequest) (v1.MutationResult, error) {
	return guarded(ctx, u, req, func(ctx context.Context) (v1.MutationResult, error) {
		effectiveTime := u.now()

		if err := u.orderBookRepository.RemoveOrder(ctx, req.Asset, req.OrderID); err != nil {
			return v1.MutationResult{}, u.storeError(ctx, "remove_order", err)
		}

		u.afterMutation(ctx, v1.BookEvent{
			Type:          v1.OrderRemoved,
			Asset:         req.Asset,
			OrderID:       req.OrderID,
			EffectiveTime: effectiveTime,
		})

		return v1.MutationResult{EffectiveTime: effectiveTime}, nil
	})
}

// GetPrice returns the VWAP a fill of req.Amount on req.Side would currently achieve.
// It never mutates the book.
func (u *usecase) GetPrice(ctx context.Context, req v1.PriceRequest) (v1.PriceResult, error) {
	book, err := u.GetBook(ctx, req.Asset)
	if err != nil {
		return v1.PriceResult{}, err
	}

	price, err := pricing.VWAP(book.Orders, req.Side, req.Amount)
	if err != nil {
		return v1.PriceResult{}, err
	}

	return v1.PriceResult{
		Price:   price,
		ValidAt: u.now(),
	}, nil
}

// GetBook returns the current book for asset, reading through the price cache.
func (u *usecase) GetBook(ctx context.Context, asset v1.AssetDefinition) (*v1.OrderBook, error) {
	book, found, err := u.priceCache.Get(ctx, asset)
	if err != nil {
		u.logger.WarnContext(ctx, "Price cache read failed, falling back to store",
			logger.Field{Key: "asset", Value: asset.String()},
			logger.Field{Key: "error", Value: err.Error()},
		)
	}
	if found {
		return book, nil
	}

	book, err = u.orderBookRepository.GetBook(ctx, asset)
	if err != nil {
		return nil, u.storeError(ctx, "get_book", err)
	}

	if err := u.priceCache.Put(ctx, asset, book, u.priceTTL); err != nil {
		u.logger.WarnContext(ctx, "Price cache write failed",
			logger.Field{Key: "asset", Value: asset.String()},
			logger.Field{Key: "error", Value: err.Error()},
		)
	}

	return book, nil
}

// afterMutation drops the cached book and announces the change. Neither step can fail the mutation.
func (u *usecase) afterMutation(ctx context.Context, event v1.BookEvent) {
	if err := u.priceCache.Invalidate(ctx, event.Asset); err != nil {
		u.logger.WarnContext(ctx, "Price cache invalidation failed",
			logger.Field{Key: "asset", Value: event.Asset.String()},
			logger.Field{Key: "error", Value: err.Error()},
		)
	}

	if err := u.publisher.Publish(ctx, event); err != nil {
		u.logger.WarnContext(ctx, "Book event was not published",
			logger.Field{Key: "asset", Value: event.Asset.String()},
			logger.Field{Key: "event_type", Value: string(event.Type)},
		)
	}
}

// storeError passes anticipated order book errors through and hides everything else behind StoreUnavailable.
func (u *usecase) storeError(ctx context.Context, action string, err error) error {
	if v1.IsKnownCode(errors.CodeOf(err)) {
		return err
	}

	u.logger.ErrorContext(ctx, err, logger.Field{
		Key:   "action",
		Value: action,
	})
	return v1.ErrStoreUnavailable
}

// guarded runs fn at most once per idempotency key. The reservation is released when fn fails
// so the caller may retry.
func guarded[T any](ctx context.Context, u *usecase, req v1.IdempotentRequest, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	key := req.GetIdempotencyKey()

	if err := u.guard.TryReserve(ctx, key); err != nil {
		switch {
		case errors.ErrorCodeEquals(err, v1.CodeMissingIdempotencyKey),
			errors.ErrorCodeEquals(err, v1.CodeDuplicateIdempotentRequest):
			return zero, err
		default:
			u.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "reserve_idempotency_key",
			})
			return zero, v1.ErrStoreUnavailable
		}
	}

	ctx = util.WithIdempotencyKey(ctx, key)

	defer func() {
		if p := recover(); p != nil {
			u.releaseKey(ctx, key)
			panic(p)
		}
	}()

	result, err := fn(ctx)
	if err != nil {
		u.releaseKey(ctx, key)
		return zero, err
	}

	return result, nil
}

// releaseKey frees a reservation whose mutation did not complete, so the caller may retry.
func (u *usecase) releaseKey(ctx context.Context, key string) {
	if err := u.guard.Release(context.WithoutCancel(ctx), key); err != nil {
		u.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "action",
			Value: "release_idempotency_key",
		})
	}
}

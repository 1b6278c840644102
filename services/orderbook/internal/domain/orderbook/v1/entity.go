package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetClass is the family of instruments an asset belongs to.
type AssetClass string

const (
	// AssetClassCoinPair is a crypto currency pair such as BTCUSD.
	AssetClassCoinPair AssetClass = "coin_pair"
)

// IsValid reports whether c is a known asset class.
func (c AssetClass) IsValid() bool {
	switch c {
	case AssetClassCoinPair:
		return true
	default:
		return false
	}
}

// AssetDefinition identifies an order book.
type AssetDefinition struct {
	Class  AssetClass
	Symbol string
}

func (a AssetDefinition) String() string {
	return string(a.Class) + ":" + a.Symbol
}

// Side is the direction of an order.
type Side string

const (
	// SideBuy is a bid.
	SideBuy Side = "buy"
	// SideSell is an offer.
	SideSell Side = "sell"
)

// IsValid reports whether s is buy or sell.
func (s Side) IsValid() bool {
	return s == SideBuy || s == SideSell
}

// Opposite returns the side a request on s trades against.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// Order is a resting order inside an order book.
type Order struct {
	ID            uuid.UUID
	Price         decimal.Decimal
	Amount        decimal.Decimal
	Side          Side
	EffectiveTime time.Time
}

// OrderBook is the set of resting orders for one asset.
type OrderBook struct {
	Asset  AssetDefinition
	Orders []Order
}

// FindOrder returns the order with the given id.
func (b *OrderBook) FindOrder(id uuid.UUID) (Order, bool) {
	for _, o := range b.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

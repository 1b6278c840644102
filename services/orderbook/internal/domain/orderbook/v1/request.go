package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IdempotentRequest is implemented by every mutating request.
type IdempotentRequest interface {
	GetIdempotencyKey() string
}

// AddOrderRequest places a new resting order.
type AddOrderRequest struct {
	IdempotencyKey string
	Asset          AssetDefinition
	Price          decimal.Decimal
	Amount         decimal.Decimal
	Side           Side
}

// GetIdempotencyKey implements IdempotentRequest.
func (r AddOrderRequest) GetIdempotencyKey() string { return r.IdempotencyKey }

// ModifyOrderRequest replaces price, amount and side of an existing order.
type ModifyOrderRequest struct {
	IdempotencyKey string
	Asset          AssetDefinition
	OrderID        uuid.UUID
	Price          decimal.Decimal
	Amount         decimal.Decimal
	Side           Side
}

// GetIdempotencyKey implements IdempotentRequest.
func (r ModifyOrderRequest) GetIdempotencyKey() string { return r.IdempotencyKey }

// RemoveOrderRequest deletes an existing order.
type RemoveOrderRequest struct {
	IdempotencyKey string
	Asset          AssetDefinition
	OrderID        uuid.UUID
}

// GetIdempotencyKey implements IdempotentRequest.
func (r RemoveOrderRequest) GetIdempotencyKey() string { return r.IdempotencyKey }

// PriceRequest asks for the VWAP of a hypothetical fill.
type PriceRequest struct {
	Asset  AssetDefinition
	Amount decimal.Decimal
	Side   Side
}

// AddOrderResult is returned by a successful AddOrder.
type AddOrderResult struct {
	OrderID       uuid.UUID
	EffectiveTime time.Time
}

// MutationResult is returned by a successful ModifyOrder or RemoveOrder.
type MutationResult struct {
	EffectiveTime time.Time
}

// PriceResult is returned by a successful GetPrice.
type PriceResult struct {
	Price   decimal.Decimal
	ValidAt time.Time
}

package v1

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	orderbookv1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
)

// CommandType is the mutation a command message asks for.
type CommandType string

const (
	// CommandAddOrder places a new order.
	CommandAddOrder CommandType = "add"
	// CommandModifyOrder replaces price, amount and side of an order.
	CommandModifyOrder CommandType = "modify"
	// CommandRemoveOrder deletes an order.
	CommandRemoveOrder CommandType = "remove"
)

// Asset is the wire form of an asset definition.
type Asset struct {
	Class  string `json:"class"`
	Symbol string `json:"symbol"`
}

// OrderCommand is one message of the command topic. Decimals are strings so
// producers never lose precision.
type OrderCommand struct {
	Type           CommandType `json:"type"`
	IdempotencyKey string      `json:"idempotency_key"`
	Asset          Asset       `json:"asset"`
	OrderID        string      `json:"order_id,omitempty"`
	Price          string      `json:"price,omitempty"`
	Amount         string      `json:"amount,omitempty"`
	Side           string      `json:"side,omitempty"`
}

// ErrUnknownCommandType is returned for a message whose type is not add, modify or remove.
type ErrUnknownCommandType struct {
	Type CommandType
}

func (e ErrUnknownCommandType) Error() string {
	return fmt.Sprintf("unknown command type %q", e.Type)
}

// ToAddOrderRequest validates the command as an add.
func (c OrderCommand) ToAddOrderRequest() (orderbookv1.AddOrderRequest, error) {
	col := orderbookv1.NewCollector()
	req := orderbookv1.AddOrderRequest{
		IdempotencyKey: c.IdempotencyKey,
		Asset:          c.asset(col),
	}
	req.Price, req.Amount, req.Side = c.terms(col)
	return req, col.Err()
}

// ToModifyOrderRequest validates the command as a modify.
func (c OrderCommand) ToModifyOrderRequest() (orderbookv1.ModifyOrderRequest, error) {
	col := orderbookv1.NewCollector()
	req := orderbookv1.ModifyOrderRequest{
		IdempotencyKey: c.IdempotencyKey,
		Asset:          c.asset(col),
		OrderID:        c.orderID(col),
	}
	req.Price, req.Amount, req.Side = c.terms(col)
	return req, col.Err()
}

// ToRemoveOrderRequest validates the command as a remove.
func (c OrderCommand) ToRemoveOrderRequest() (orderbookv1.RemoveOrderRequest, error) {
	col := orderbookv1.NewCollector()
	req := orderbookv1.RemoveOrderRequest{
		IdempotencyKey: c.IdempotencyKey,
		Asset:          c.asset(col),
		OrderID:        c.orderID(col),
	}
	return req, col.Err()
}

func (c OrderCommand) asset(col *orderbookv1.Collector) orderbookv1.AssetDefinition {
	asset, details := orderbookv1.ParseAsset(c.Asset.Class, c.Asset.Symbol)
	col.Add(details...)
	return asset
}

func (c OrderCommand) orderID(col *orderbookv1.Collector) uuid.UUID {
	id, detail := orderbookv1.ParseOrderID(c.OrderID)
	col.Add(detail)
	return id
}

func (c OrderCommand) terms(col *orderbookv1.Collector) (decimal.Decimal, decimal.Decimal, orderbookv1.Side) {
	price, priceErr := orderbookv1.ParsePositive("Price", "price", c.Price)
	amount, amountErr := orderbookv1.ParsePositive("Amount", "amount", c.Amount)
	side, sideErr := orderbookv1.ParseSide(c.Side)
	col.Add(priceErr, amountErr, sideErr)
	return price, amount, side
}

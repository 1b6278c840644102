package v1

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/errors"
	"github.com/shopspring/decimal"
)

// CodeValidation marks a request that failed validation before reaching the order book.
const CodeValidation = "validation_error"

const mandatoryFieldTemplate = "%s is mandatory but was not present in request"

func invalid(message, field string) *errors.ErrorDetails {
	return errors.NewErrorDetails(message, CodeValidation, field)
}

// ParseAsset builds an asset definition from its wire form.
func ParseAsset(class, symbol string) (AssetDefinition, []*errors.ErrorDetails) {
	var details []*errors.ErrorDetails

	c := AssetClass(class)
	if !c.IsValid() {
		details = append(details, invalid(fmt.Sprintf("Asset class %q is not supported", class), "asset.class"))
	}
	if symbol == "" {
		details = append(details, invalid(fmt.Sprintf(mandatoryFieldTemplate, "Symbol"), "asset.symbol"))
	}

	return AssetDefinition{Class: c, Symbol: symbol}, details
}

// ParseSide parses "buy" or "sell".
func ParseSide(raw string) (Side, *errors.ErrorDetails) {
	s := Side(raw)
	if !s.IsValid() {
		return "", invalid("Side is invalid (must be buy or sell)", "side")
	}
	return s, nil
}

// ParseOrderID parses an order id.
func ParseOrderID(raw string) (uuid.UUID, *errors.ErrorDetails) {
	if raw == "" {
		return uuid.Nil, invalid(fmt.Sprintf(mandatoryFieldTemplate, "OrderId"), "order_id")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalid("OrderId is not a valid UUID", "order_id")
	}
	return id, nil
}

// ParsePositive parses a strictly positive decimal. label names the value in the message.
func ParsePositive(label, field, raw string) (decimal.Decimal, *errors.ErrorDetails) {
	if raw == "" {
		return decimal.Zero, invalid(fmt.Sprintf(mandatoryFieldTemplate, label), field)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, invalid(fmt.Sprintf("%s is not a valid decimal", label), field)
	}
	if !d.IsPositive() {
		return decimal.Zero, invalid(fmt.Sprintf("%s is invalid (must be > 0)", label), field)
	}
	return d, nil
}

// Collector gathers validation failures across several fields.
type Collector struct {
	err *errors.BaseError
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{err: errors.NewBaseError()}
}

// Add records details, ignoring nils.
func (c *Collector) Add(details ...*errors.ErrorDetails) {
	for _, d := range details {
		if d != nil {
			c.err.AddErrorDetails(d)
		}
	}
}

// Err returns the collected failures, or nil when there were none.
func (c *Collector) Err() error {
	if !c.err.HasDetails() {
		return nil
	}
	return c.err
}

package orderbook

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
)

// OrderDocument is the JSONB representation of a single order inside order_books.orders.
type OrderDocument struct {
	ID            string          `json:"id"`
	Price         decimal.Decimal `json:"price"`
	Amount        decimal.Decimal `json:"amount"`
	Side          string          `json:"side"`
	EffectiveTime time.Time       `json:"effective_time"`
}

// FromOrder converts a domain order to its document form.
func (d *OrderDocument) FromOrder(o v1.Order) {
	d.ID = o.ID.String()
	d.Price = o.Price
	d.Amount = o.Amount
	d.Side = string(o.Side)
	d.EffectiveTime = o.EffectiveTime.UTC()
}

// ToOrder converts the document back to a domain order.
func (d *OrderDocument) ToOrder() (v1.Order, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return v1.Order{}, err
	}

	return v1.Order{
		ID:            id,
		Price:         d.Price,
		Amount:        d.Amount,
		Side:          v1.Side(d.Side),
		EffectiveTime: d.EffectiveTime,
	}, nil
}

func marshalOrder(o v1.Order) (string, error) {
	doc := &OrderDocument{}
	doc.FromOrder(o)

	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalOrders(raw []byte) ([]v1.Order, error) {
	var docs []OrderDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	orders := make([]v1.Order, 0, len(docs))
	for i := range docs {
		o, err := docs[i].ToOrder()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

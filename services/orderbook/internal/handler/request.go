package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
)

// IdempotencyKeyHeader carries the client supplied idempotency key.
const IdempotencyKeyHeader = "Idempotency-Key"

// orderBody is the JSON body of add and modify requests.
// Decimals travel as strings so no precision is lost.
type orderBody struct {
	Price  string `json:"price"`
	Amount string `json:"amount"`
	Side   string `json:"side"`
}

type orderView struct {
	ID            uuid.UUID       `json:"id"`
	Price         decimal.Decimal `json:"price"`
	Amount        decimal.Decimal `json:"amount"`
	Side          v1.Side         `json:"side"`
	EffectiveTime time.Time       `json:"effective_time"`
}

type assetView struct {
	Class  v1.AssetClass `json:"class"`
	Symbol string        `json:"symbol"`
}

type bookView struct {
	Asset  assetView   `json:"asset"`
	Orders []orderView `json:"orders"`
}

type addOrderView struct {
	OrderID       uuid.UUID `json:"order_id"`
	EffectiveTime time.Time `json:"effective_time"`
}

type mutationView struct {
	EffectiveTime time.Time `json:"effective_time"`
}

type priceView struct {
	Price   decimal.Decimal `json:"price"`
	ValidAt time.Time       `json:"valid_at"`
}

func newBookView(book *v1.OrderBook) bookView {
	view := bookView{
		Asset:  assetView{Class: book.Asset.Class, Symbol: book.Asset.Symbol},
		Orders: make([]orderView, 0, len(book.Orders)),
	}
	for _, o := range book.Orders {
		view.Orders = append(view.Orders, orderView(o))
	}
	return view
}

func assetFromPath(r *http.Request, c *v1.Collector) v1.AssetDefinition {
	asset, details := v1.ParseAsset(chi.URLParam(r, "class"), chi.URLParam(r, "symbol"))
	c.Add(details...)
	return asset
}

func orderIDFromPath(r *http.Request, c *v1.Collector) uuid.UUID {
	id, detail := v1.ParseOrderID(chi.URLParam(r, "orderID"))
	c.Add(detail)
	return id
}

func (b orderBody) parse(c *v1.Collector) (price, amount decimal.Decimal, side v1.Side) {
	price, priceErr := v1.ParsePositive("Price", "price", b.Price)
	amount, amountErr := v1.ParsePositive("Amount", "amount", b.Amount)
	side, sideErr := v1.ParseSide(b.Side)
	c.Add(priceErr, amountErr, sideErr)
	return price, amount, side
}

func parseAddOrder(r *http.Request) (v1.AddOrderRequest, error) {
	var body orderBody
	if err := ParseJSON(r, &body); err != nil {
		return v1.AddOrderRequest{}, err
	}

	c := v1.NewCollector()
	req := v1.AddOrderRequest{
		IdempotencyKey: r.Header.Get(IdempotencyKeyHeader),
		Asset:          assetFromPath(r, c),
	}
	req.Price, req.Amount, req.Side = body.parse(c)

	return req, c.Err()
}

func parseModifyOrder(r *http.Request) (v1.ModifyOrderRequest, error) {
	var body orderBody
	if err := ParseJSON(r, &body); err != nil {
		return v1.ModifyOrderRequest{}, err
	}

	c := v1.NewCollector()
	req := v1.ModifyOrderRequest{
		IdempotencyKey: r.Header.Get(IdempotencyKeyHeader),
		Asset:          assetFromPath(r, c),
		OrderID:        orderIDFromPath(r, c),
	}
	req.Price, req.Amount, req.Side = body.parse(c)

	return req, c.Err()
}

func parseRemoveOrder(r *http.Request) (v1.RemoveOrderRequest, error) {
	c := v1.NewCollector()
	req := v1.RemoveOrderRequest{
		IdempotencyKey: r.Header.Get(IdempotencyKeyHeader),
		Asset:          assetFromPath(r, c),
		OrderID:        orderIDFromPath(r, c),
	}
	return req, c.Err()
}

func parsePrice(r *http.Request) (v1.PriceRequest, error) {
	c := v1.NewCollector()
	req := v1.PriceRequest{Asset: assetFromPath(r, c)}

	q := r.URL.Query()
	amount, amountErr := v1.ParsePositive("Amount", "amount", q.Get("amount"))
	side, sideErr := v1.ParseSide(q.Get("side"))
	c.Add(amountErr, sideErr)
	req.Amount, req.Side = amount, side

	return req, c.Err()
}

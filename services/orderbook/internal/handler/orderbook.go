package handler

import (
	"net/http"

	"github.com/muhammadchandra19/orderbook-pricing/pkg/logger"
	"github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook"
	v1 "github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook/v1"
)

// OrderBookHandler serves the order book endpoints.
type OrderBookHandler struct {
	usecase orderbook.Usecase
	logger  logger.Interface
}

// NewOrderBookHandler creates a new OrderBookHandler.
func NewOrderBookHandler(usecase orderbook.Usecase, logger logger.Interface) *OrderBookHandler {
	return &OrderBookHandler{usecase: usecase, logger: logger}
}

// AddOrder handles POST /orderbooks/{class}/{symbol}/orders.
func (h *OrderBookHandler) AddOrder(w http.ResponseWriter, r *http.Request) {
	req, err := parseAddOrder(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.usecase.AddOrder(r.Context(), req)
	if err != nil {
		h.fail(w, r, "AddOrder", err)
		return
	}

	WriteSuccess(w, http.StatusCreated, "Order added", addOrderView{
		OrderID:       res.OrderID,
		EffectiveTime: res.EffectiveTime,
	})
}

// ModifyOrder handles PUT /orderbooks/{class}/{symbol}/orders/{orderID}.
func (h *OrderBookHandler) ModifyOrder(w http.ResponseWriter, r *http.Request) {
	req, err := parseModifyOrder(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.usecase.ModifyOrder(r.Context(), req)
	if err != nil {
		h.fail(w, r, "ModifyOrder", err)
		return
	}

	WriteSuccess(w, http.StatusOK, "Order modified", mutationView{EffectiveTime: res.EffectiveTime})
}

// RemoveOrder handles DELETE /orderbooks/{class}/{symbol}/orders/{orderID}.
func (h *OrderBookHandler) RemoveOrder(w http.ResponseWriter, r *http.Request) {
	req, err := parseRemoveOrder(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.usecase.RemoveOrder(r.Context(), req)
	if err != nil {
		h.fail(w, r, "RemoveOrder", err)
		return
	}

	WriteSuccess(w, http.StatusOK, "Order removed", mutationView{EffectiveTime: res.EffectiveTime})
}

// GetPrice handles GET /orderbooks/{class}/{symbol}/price?amount=&side=.
func (h *OrderBookHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	req, err := parsePrice(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.usecase.GetPrice(r.Context(), req)
	if err != nil {
		h.fail(w, r, "GetPrice", err)
		return
	}

	WriteSuccess(w, http.StatusOK, "Price calculated", priceView{Price: res.Price, ValidAt: res.ValidAt})
}

// GetBook handles GET /orderbooks/{class}/{symbol}.
func (h *OrderBookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	c := v1.NewCollector()
	asset := assetFromPath(r, c)
	if err := c.Err(); err != nil {
		WriteError(w, err)
		return
	}

	book, err := h.usecase.GetBook(r.Context(), asset)
	if err != nil {
		h.fail(w, r, "GetBook", err)
		return
	}

	WriteSuccess(w, http.StatusOK, "Order book retrieved", newBookView(book))
}

func (h *OrderBookHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, _ := statusOf(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), err,
			logger.Field{Key: "operation", Value: op},
			logger.Field{Key: "status", Value: status},
		)
	}
	WriteError(w, err)
}

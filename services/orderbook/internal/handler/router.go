package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"google.golang.org/grpc/codes"

	"github.com/muhammadchandra19/orderbook-pricing/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/logger"
	"github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/domain/orderbook"
)

// NewRouter creates the HTTP router of the service. GET /health is answered by hc
// before any other routing takes place.
func NewRouter(usecase orderbook.Usecase, hc healthcheck.HealthCheck, log logger.Interface, timeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(requestContext)
	r.Use(requestLogging(log))
	r.Use(middleware.Recoverer)
	if timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}

	orderBookH := NewOrderBookHandler(usecase, log)

	r.Route("/api/v1/orderbooks/{class}/{symbol}", func(r chi.Router) {
		r.Get("/", orderBookH.GetBook)
		r.Get("/price", orderBookH.GetPrice)
		r.Post("/orders", orderBookH.AddOrder)
		r.Put("/orders/{orderID}", orderBookH.ModifyOrder)
		r.Delete("/orders/{orderID}", orderBookH.RemoveOrder)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusNotFound, Response{
			Status:    statusError,
			Message:   "Route not found",
			Code:      codes.NotFound.String(),
			Timestamp: time.Now().UnixMilli(),
		})
	})

	return hc.Handler(r)
}

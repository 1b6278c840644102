package bootstrap

import (
	"net/http"

	"github.com/muhammadchandra19/orderbook-pricing/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/postgresql"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/redis"
	"github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/handler"
)

// Handler holds the HTTP surface of the order book service.
type Handler struct {
	Router      http.Handler
	HealthCheck healthcheck.HealthCheck
}

// registerHandler registers the HTTP handlers and the dependency health check.
func (b *Bootstrap) registerHandler() {
	b.Handler.HealthCheck = healthcheck.New(
		b.Config.App.HealthCheckTimeout,
		postgresql.NewHealthChecker(b.PostgreSQL),
		redis.NewHealthChecker(b.Redis),
	)
	b.Handler.Router = handler.NewRouter(
		b.Usecase.OrderBookUsecase,
		b.Handler.HealthCheck,
		b.Logger,
		b.Config.App.RequestTimeout,
	)
}

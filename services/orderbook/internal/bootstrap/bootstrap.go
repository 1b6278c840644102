package bootstrap

import (
	"github.com/muhammadchandra19/orderbook-pricing/pkg/logger"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/postgresql"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/redis"
	"github.com/muhammadchandra19/orderbook-pricing/services/orderbook/pkg/config"
)

// Bootstrap is the bootstrap for the order book service.
type Bootstrap struct {
	Usecase    Usecase
	Logger     logger.Interface
	Handler    Handler
	Consumer   Consumer
	Repository Repository

	Config     config.Config
	PostgreSQL postgresql.PostgreSQLClient
	Redis      redis.Client
}

// BootstrapConfig is the config for the bootstrap.
type BootstrapConfig struct {
	Config     config.Config
	PostgreSQL postgresql.PostgreSQLClient
	Redis      redis.Client
	Logger     logger.Interface
}

// Init initializes the bootstrap.
func (b *Bootstrap) Init(config BootstrapConfig) Bootstrap {
	b.Config = config.Config
	b.PostgreSQL = config.PostgreSQL
	b.Redis = config.Redis
	b.Logger = config.Logger

	b.registerRepository()
	b.registerUsecase()
	b.registerHandler()
	b.registerConsumer()

	return *b
}

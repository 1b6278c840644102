package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/postgresql"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/redis"
)

// Config represents the application configuration.
type Config struct {
	App          AppConfig          `envPrefix:"APP_"`
	PostgreSQL   postgresql.Config  `envPrefix:"POSTGRES_"`
	Redis        redis.Config       `envPrefix:"REDIS_"`
	Cache        CacheConfig        `envPrefix:"CACHE_"`
	CommandKafka CommandKafkaConfig `envPrefix:"COMMAND_KAFKA_"`
	EventKafka   EventKafkaConfig   `envPrefix:"EVENT_KAFKA_"`
	Log          LogConfig          `envPrefix:"LOG_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name                string        `env:"NAME" envDefault:"orderbook-pricing"`
	Environment         string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort            int           `env:"HTTP_PORT" envDefault:"8080"`
	GRPCPort            int           `env:"GRPC_PORT" envDefault:"7777"`
	RequestTimeout      time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	HealthCheckInterval time.Duration `env:"HEALTH_CHECK_INTERVAL" envDefault:"10s"`
	HealthCheckTimeout  time.Duration `env:"HEALTH_CHECK_TIMEOUT" envDefault:"2s"`
	ShutdownTimeout     time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// CacheConfig holds the lifetimes of cached books and idempotency reservations.
type CacheConfig struct {
	PriceTTL       time.Duration `env:"PRICE_TTL" envDefault:"1m"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"1h"`
}

// CommandKafkaConfig represents the Kafka configuration of the order command consumer.
type CommandKafkaConfig struct {
	Brokers       []string      `env:"BROKERS" envSeparator:","`
	Topic         string        `env:"TOPIC" envDefault:"orderbook-commands"`
	ConsumerGroup string        `env:"CONSUMER_GROUP" envDefault:"orderbook-pricing"`
	RetryBackoff  time.Duration `env:"RETRY_BACKOFF" envDefault:"1s"`
}

// Enabled reports whether the consumer has somewhere to read from.
func (c CommandKafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// EventKafkaConfig represents the Kafka configuration of the book event publisher.
type EventKafkaConfig struct {
	Brokers      []string      `env:"BROKERS" envSeparator:","`
	Topic        string        `env:"TOPIC" envDefault:"orderbook-events"`
	BatchTimeout time.Duration `env:"BATCH_TIMEOUT" envDefault:"10ms"`
}

// Enabled reports whether the publisher has somewhere to write to.
func (c EventKafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// LogConfig represents the logger configuration.
type LogConfig struct {
	Level string `env:"LEVEL" envDefault:"info"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/muhammadchandra19/orderbook-pricing/pkg/grpclib/health"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/logger"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/postgresql"
	"github.com/muhammadchandra19/orderbook-pricing/pkg/redis"
	"github.com/muhammadchandra19/orderbook-pricing/services/orderbook/internal/bootstrap"
	"github.com/muhammadchandra19/orderbook-pricing/services/orderbook/pkg/config"
)

// Server runs the HTTP API, the gRPC health server and the command consumer.
type Server struct {
	HTTPServer *http.Server
	GRPCServer *grpc.Server

	health    *health.Server
	bootstrap bootstrap.Bootstrap
	logger    *logger.Logger
	config    *config.Config

	db    postgresql.PostgreSQLClient
	redis redis.Client

	cancel context.CancelFunc
	wg     sync.WaitGroup
	errCh  chan error
}

// NewServer connects to the backing stores and wires the service.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	l, err := logger.NewLogger(logger.WithLoggingLevel(logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		return nil, err
	}

	s := &Server{
		GRPCServer: grpc.NewServer(),
		health:     health.NewServer(),
		logger:     l,
		config:     cfg,
		errCh:      make(chan error, 2),
	}

	if err := s.initDB(ctx); err != nil {
		return nil, err
	}
	if err := s.initRedis(ctx); err != nil {
		s.db.Close()
		return nil, err
	}

	b := &bootstrap.Bootstrap{}
	s.bootstrap = b.Init(bootstrap.BootstrapConfig{
		Config:     *cfg,
		PostgreSQL: s.db,
		Redis:      s.redis,
		Logger:     l,
	})

	s.HTTPServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.HTTPPort),
		Handler:           s.bootstrap.Handler.Router,
		ReadHeaderTimeout: cfg.App.RequestTimeout,
	}

	s.health.Register(s.GRPCServer)
	if cfg.App.Environment == "development" {
		reflection.Register(s.GRPCServer)
	}

	return s, nil
}

func (s *Server) initDB(ctx context.Context) error {
	db, err := postgresql.NewClient(ctx, s.config.PostgreSQL)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "init_db"})
		return err
	}
	s.db = db
	return nil
}

func (s *Server) initRedis(ctx context.Context) error {
	client := redis.NewClient(s.logger, &s.config.Redis)
	if err := client.Connect(ctx); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "init_redis"})
		return err
	}
	s.redis = client
	return nil
}

// Start launches every listener in the background. Fatal serve errors are
// reported on Errors.
func (s *Server) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.config.App.GRPCPort))
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.health.Watch(runCtx, s.config.App.Name, s.bootstrap.Handler.HealthCheck, s.config.App.HealthCheckInterval)
	}()

	go func() {
		if err := s.GRPCServer.Serve(lis); err != nil {
			s.errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	go func() {
		if err := s.HTTPServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			s.errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	if c := s.bootstrap.Consumer.CommandConsumer; c != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := c.Start(runCtx); err != nil {
				s.logger.ErrorContext(runCtx, err, logger.Field{Key: "action", Value: "command_consumer"})
			}
		}()
	}

	s.logger.Info("Order book service started",
		logger.Field{Key: "http_port", Value: s.config.App.HTTPPort},
		logger.Field{Key: "grpc_port", Value: s.config.App.GRPCPort},
		logger.Field{Key: "command_consumer", Value: s.config.CommandKafka.Enabled()},
		logger.Field{Key: "event_publisher", Value: s.config.EventKafka.Enabled()},
	)

	return nil
}

// Errors reports listeners that stopped unexpectedly.
func (s *Server) Errors() <-chan error {
	return s.errCh
}

// Stop drains in-flight requests and releases every client. ctx bounds the HTTP drain.
func (s *Server) Stop(ctx context.Context) {
	if err := s.HTTPServer.Shutdown(ctx); err != nil {
		s.logger.GetZap().Warn("HTTP server did not drain", zap.Error(err))
	}

	if s.cancel != nil {
		s.cancel()
	}
	if c := s.bootstrap.Consumer.CommandConsumer; c != nil {
		if err := c.Stop(); err != nil {
			s.logger.Error(err, logger.Field{Key: "action", Value: "stop_command_consumer"})
		}
	}
	s.wg.Wait()

	s.health.Shutdown()
	s.GRPCServer.GracefulStop()

	if err := s.bootstrap.Repository.BookEventPublisher.Close(); err != nil {
		s.logger.Error(err, logger.Field{Key: "action", Value: "close_publisher"})
	}
	if err := s.redis.Disconnect(ctx); err != nil {
		s.logger.Error(err, logger.Field{Key: "action", Value: "close_redis"})
	}
	s.db.Close()

	_ = s.logger.Sync()
}

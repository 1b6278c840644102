package health

import (
	"context"
	"time"

	"github.com/muhammadchandra19/orderbook-pricing/pkg/httplib/healthcheck"
	"google.golang.org/grpc"

	healthgrpc "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Server wraps grpc health server
type Server struct {
	server *healthgrpc.Server
}

// NewServer creates health server using default grpc health server.
func NewServer() *Server {
	return &Server{
		server: healthgrpc.NewServer(),
	}
}

// SetServing marks serviceName as SERVING or NOT_SERVING.
func (h *Server) SetServing(serviceName string, serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.server.SetServingStatus(serviceName, status)
}

// Status returns the current status of serviceName.
func (h *Server) Status(ctx context.Context, serviceName string) (healthpb.HealthCheckResponse_ServingStatus, error) {
	res, err := h.server.Check(ctx, &healthpb.HealthCheckRequest{Service: serviceName})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return res.GetStatus(), nil
}

// Watch probes hc every interval and mirrors the outcome as the status of
// serviceName and of the overall server ("") until ctx is done.
func (h *Server) Watch(ctx context.Context, serviceName string, hc healthcheck.HealthCheck, interval time.Duration) {
	update := func() {
		_, healthy := hc.Run(ctx)
		if ctx.Err() != nil {
			return
		}
		h.SetServing(serviceName, healthy)
		h.SetServing("", healthy)
	}

	update()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			update()
		}
	}
}

// Shutdown sets all serving status to NOT_SERVING.
func (h *Server) Shutdown() {
	h.server.Shutdown()
}

// Register registers health server.
func (h *Server) Register(grpc *grpc.Server) {
	healthpb.RegisterHealthServer(grpc, h.server)
}

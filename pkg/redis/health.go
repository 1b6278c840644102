package redis

import "context"

// HealthChecker reports whether Redis answers PING.
type HealthChecker struct {
	client Client
}

// NewHealthChecker creates a HealthChecker over client.
func NewHealthChecker(client Client) *HealthChecker {
	return &HealthChecker{client: client}
}

// Name identifies the dependency in health reports.
func (h *HealthChecker) Name() string {
	return "redis"
}

// Check pings Redis.
func (h *HealthChecker) Check(ctx context.Context) error {
	return h.client.Ping(ctx)
}

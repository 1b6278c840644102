package postgresql

import (
	"context"
	"fmt"
)

// HealthChecker reports whether the database answers queries.
type HealthChecker struct {
	client PostgreSQLClient
}

// NewHealthChecker creates a HealthChecker over client.
func NewHealthChecker(client PostgreSQLClient) *HealthChecker {
	return &HealthChecker{client: client}
}

// Name identifies the dependency in health reports.
func (h *HealthChecker) Name() string {
	return "postgresql"
}

// Check pings the pool and runs a trivial query.
func (h *HealthChecker) Check(ctx context.Context) error {
	if err := h.client.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	var one int
	if err := h.client.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("probe query failed: %w", err)
	}

	return nil
}

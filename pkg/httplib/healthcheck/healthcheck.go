package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Checker probes one dependency.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Report is the body written for GET /health.
type Report struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// HealthCheck is the health check handler.
type HealthCheck struct {
	checkers []Checker
	timeout  time.Duration
}

// New creates a HealthCheck probing checkers, each bounded by timeout.
func New(timeout time.Duration, checkers ...Checker) HealthCheck {
	return HealthCheck{checkers: checkers, timeout: timeout}
}

// Handler is used to control the flow of GET /health endpoint
func (hc HealthCheck) Handler(h http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if IsHealthCheckRequest(r) {
			hc.ServeHTTP(w, r)

			return
		}

		h.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

// Run probes every checker and reports whether all of them passed.
func (hc HealthCheck) Run(ctx context.Context) (Report, bool) {
	report := Report{Status: "ok"}
	healthy := true

	for _, c := range hc.checkers {
		if report.Dependencies == nil {
			report.Dependencies = make(map[string]string, len(hc.checkers))
		}

		checkCtx := ctx
		var cancel context.CancelFunc = func() {}
		if hc.timeout > 0 {
			checkCtx, cancel = context.WithTimeout(ctx, hc.timeout)
		}
		err := c.Check(checkCtx)
		cancel()

		if err != nil {
			healthy = false
			report.Dependencies[c.Name()] = err.Error()
			continue
		}
		report.Dependencies[c.Name()] = "ok"
	}

	if !healthy {
		report.Status = "unavailable"
	}

	return report, healthy
}

// ServeHTTP serve http request for health check
func (hc HealthCheck) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	report, healthy := hc.Run(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(report)
}

// IsHealthCheckRequest is used to check if the request is a health check request
func IsHealthCheckRequest(r *http.Request) bool {
	return r.Method == http.MethodGet && r.URL.Path == "/health"
}

// Package healthcheck provides health and readiness check functionality
// Following the Health Check API pattern for cloud-native applications
package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Status represents the health status
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// Check represents the result of a single health check
type Check struct {
	Name        string        `json:"name"`
	Status      Status        `json:"status"`
	Message     string        `json:"message,omitempty"`
	LastChecked time.Time     `json:"last_checked"`
	Duration    time.Duration `json:"duration_ms"`
}

// Response represents the aggregate health check response
type Response struct {
	Status        Status        `json:"status"`
	Version       string        `json:"version"`
	Timestamp     time.Time     `json:"timestamp"`
	Checks        []Check       `json:"checks"`
	TotalDuration time.Duration `json:"total_duration_ms"`
}

// CheckFunc probes a single dependency
type CheckFunc func(ctx context.Context) error

// Checker manages registered health checks
type Checker struct {
	version  string
	logger   *zap.Logger
	mu       sync.RWMutex
	checks   map[string]CheckFunc
	cache    *Response
	cachedAt time.Time
	cacheTTL time.Duration
}

// New creates a new health checker
func New(version string, logger *zap.Logger) *Checker {
	return &Checker{
		version:  version,
		logger:   logger,
		checks:   make(map[string]CheckFunc),
		cacheTTL: 5 * time.Second,
	}
}

// Register adds a named health check
func (c *Checker) Register(name string, fn CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = fn
}

// Check runs all registered checks and aggregates the result. Responses are
// cached briefly to shield dependencies from health-probe storms.
func (c *Checker) Check(ctx context.Context) Response {
	c.mu.RLock()
	if c.cache != nil && time.Since(c.cachedAt) < c.cacheTTL {
		cached := *c.cache
		c.mu.RUnlock()
		return cached
	}
	checks := make(map[string]CheckFunc, len(c.checks))
	for name, fn := range c.checks {
		checks[name] = fn
	}
	c.mu.RUnlock()

	start := time.Now()
	results := make([]Check, 0, len(checks))
	status := StatusHealthy

	for name, fn := range checks {
		checkStart := time.Now()
		err := fn(ctx)

		result := Check{
			Name:        name,
			Status:      StatusHealthy,
			LastChecked: checkStart,
			Duration:    time.Since(checkStart) / time.Millisecond,
		}
		if err != nil {
			result.Status = StatusUnhealthy
			result.Message = err.Error()
			status = StatusUnhealthy
			c.logger.Warn("Health check failed",
				zap.String("check", name),
				zap.Error(err),
			)
		}
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})

	response := Response{
		Status:        status,
		Version:       c.version,
		Timestamp:     start,
		Checks:        results,
		TotalDuration: time.Since(start) / time.Millisecond,
	}

	c.mu.Lock()
	c.cache = &response
	c.cachedAt = time.Now()
	c.mu.Unlock()

	return response
}

// Handler returns an HTTP handler serving the health check endpoint
func (c *Checker) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := c.Check(r.Context())

		status := http.StatusOK
		if response.Status == StatusUnhealthy {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(response)
	}
}

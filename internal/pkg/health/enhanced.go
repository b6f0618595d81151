package health

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/profleet/fleettrack/internal/pkg/database"
	"github.com/profleet/fleettrack/internal/pkg/logger"
	"github.com/profleet/fleettrack/internal/pkg/nats"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// HealthChecker probes one dependency.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// CheckerFunc adapts a function to HealthChecker
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) CheckHealth(ctx context.Context) error {
	return f(ctx)
}

// NewPostgresHealthChecker checks the sample store connection
func NewPostgresHealthChecker(client *database.PostgresClient) HealthChecker {
	return CheckerFunc(client.Ping)
}

// NewRedisHealthChecker checks the location cache connection
func NewRedisHealthChecker(client *database.RedisClient) HealthChecker {
	return CheckerFunc(client.Ping)
}

// NewNATSHealthChecker checks the live feed bus connection
func NewNATSHealthChecker(client *nats.Client) HealthChecker {
	return CheckerFunc(func(ctx context.Context) error {
		if !client.IsConnected() {
			return errors.New("NATS connection is not established")
		}
		return nil
	})
}

// HealthService runs the registered dependency checks.
type HealthService struct {
	mu       sync.RWMutex
	checkers map[string]HealthChecker
}

func NewHealthService() *HealthService {
	return &HealthService{checkers: make(map[string]HealthChecker)}
}

// AddChecker registers or replaces the checker for name
func (h *HealthService) AddChecker(name string, checker HealthChecker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
}

// HealthResponse is the /ready body.
type HealthResponse struct {
	Status       string                    `json:"status"`
	Timestamp    time.Time                 `json:"timestamp"`
	Service      string                    `json:"service"`
	Dependencies map[string]DependencyInfo `json:"dependencies"`
}

type DependencyInfo struct {
	Status    string `json:"status"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// CheckAllHealth probes every dependency concurrently. One failure marks the whole report unhealthy.
func (h *HealthService) CheckAllHealth(ctx context.Context) HealthResponse {
	h.mu.RLock()
	checkers := make(map[string]HealthChecker, len(h.checkers))
	for name, checker := range h.checkers {
		checkers[name] = checker
	}
	h.mu.RUnlock()

	report := HealthResponse{
		Status:       StatusHealthy,
		Timestamp:    time.Now(),
		Dependencies: make(map[string]DependencyInfo, len(checkers)),
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for name, checker := range checkers {
		wg.Add(1)
		go func(name string, checker HealthChecker) {
			defer wg.Done()
			start := time.Now()
			err := checker.CheckHealth(ctx)
			info := DependencyInfo{Status: StatusHealthy, LatencyMs: time.Since(start).Milliseconds()}
			if err != nil {
				logger.WarnCtx(ctx, "Dependency health check failed",
					logger.String("dependency", name),
					logger.Err(err))
				info.Status = StatusUnhealthy
				info.Error = err.Error()
			}

			mu.Lock()
			defer mu.Unlock()
			report.Dependencies[name] = info
			if err != nil {
				report.Status = StatusUnhealthy
			}
		}(name, checker)
	}
	wg.Wait()

	return report
}

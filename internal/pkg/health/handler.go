package health

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
)

const readyTimeout = 3 * time.Second

// BuildInfo is served on /ping.
type BuildInfo struct {
	ServiceName string    `json:"service_name"`
	Version     string    `json:"version"`
	GitCommit   string    `json:"git_commit"`
	BuildTime   string    `json:"build_time"`
	GoVersion   string    `json:"go_version"`
	Hostname    string    `json:"hostname"`
	ServerTime  time.Time `json:"server_time"`
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadBuildInfo(serviceName string) BuildInfo {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return BuildInfo{
		ServiceName: serviceName,
		Version:     envOr("VERSION", "development"),
		GitCommit:   envOr("GIT_COMMIT", "unknown"),
		BuildTime:   envOr("BUILD_TIME", "unknown"),
		GoVersion:   runtime.Version(),
		Hostname:    hostname,
	}
}

// NewPingHandler answers with build metadata and the current server time
func NewPingHandler(serviceName string) echo.HandlerFunc {
	info := loadBuildInfo(serviceName)
	return func(c echo.Context) error {
		resp := info
		resp.ServerTime = time.Now()
		return c.JSON(http.StatusOK, resp)
	}
}

// RegisterHealthEndpoints mounts /ping, the liveness probes and /ready.
// /ready answers 503 while any registered dependency is unhealthy.
func RegisterHealthEndpoints(e *echo.Echo, serviceName string, healthService *HealthService) {
	e.GET("/ping", NewPingHandler(serviceName))

	alive := func(c echo.Context) error { return c.String(http.StatusOK, "OK") }
	for _, path := range []string{"/health", "/healthz"} {
		e.GET(path, alive)
	}

	e.GET("/ready", func(c echo.Context) error {
		if healthService == nil {
			return alive(c)
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), readyTimeout)
		defer cancel()

		report := healthService.CheckAllHealth(ctx)
		report.Service = serviceName
		status := http.StatusOK
		if report.Status == StatusUnhealthy {
			status = http.StatusServiceUnavailable
		}
		return c.JSON(status, report)
	})
}

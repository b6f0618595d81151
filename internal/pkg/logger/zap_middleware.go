package logger

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// ZapEchoMiddleware logs every request through the Zap logger and annotates the New Relic transaction
func ZapEchoMiddleware(logger *ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())

			start := time.Now()
			path := c.Request().URL.Path
			if raw := c.Request().URL.RawQuery; raw != "" {
				path = path + "?" + raw
			}

			err := next(c)
			if err != nil {
				// let echo write the error response so the status below is final
				c.Error(err)
			}

			latency := time.Since(start)

			entry := HTTPRequestLog{
				Method:    c.Request().Method,
				Path:      path,
				ClientIP:  c.RealIP(),
				UserID:    "anonymous",
				RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
				Status:    c.Response().Status,
				Latency:   latency,
				Err:       err,
			}
			if uid, ok := c.Get("user_id").(string); ok && uid != "" {
				entry.UserID = uid
			}
			if role, ok := c.Get("user_role").(string); ok {
				entry.Role = role
			}

			if txn != nil {
				txn.AddAttribute("user_id", entry.UserID)
				txn.AddAttribute("request_id", entry.RequestID)
				txn.AddAttribute("response_time_ms", latency.Milliseconds())
				if err != nil {
					txn.NoticeError(err)
				}
			}

			logger.LogHTTPRequest(txn, entry)

			return nil
		}
	}
}

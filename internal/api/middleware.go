package api

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"football_bot/internal/logger"
)

// SlogLoggerMiddleware attaches a request-scoped logger to the request context
// and logs every completed request.
func SlogLoggerMiddleware(l *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			req := c.Request()
			res := c.Response()

			requestID := res.Header().Get(echo.HeaderXRequestID)
			reqLogger := l.With("request_id", requestID)

			ctx := logger.WithLogger(req.Context(), reqLogger)
			c.SetRequest(req.WithContext(ctx))

			err := next(c)

			attrs := []any{
				"method", req.Method,
				"uri", req.RequestURI,
				"remote_ip", c.RealIP(),
				"status", res.Status,
				"latency", time.Since(start),
				"bytes_in", req.ContentLength,
				"bytes_out", res.Size,
			}

			if err != nil {
				attrs = append(attrs, "error", err)
				reqLogger.Error("request failed", attrs...)
			} else {
				reqLogger.Info("request completed", attrs...)
			}

			return err
		}
	}
}

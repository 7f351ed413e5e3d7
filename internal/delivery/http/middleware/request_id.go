package middleware

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// HeaderXRequestID is the HTTP header name for request ID
	HeaderXRequestID = "X-Request-Id"

	keyRequestID = "request_id"
	keyLogger    = "logger"
)

// RequestIDMiddleware generates or extracts a unique Request ID for each request and creates a request-scoped logger
type RequestIDMiddleware struct {
	logger *slog.Logger
}

// NewRequestIDMiddleware creates a new Request ID middleware
func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{
		logger: logger,
	}
}

// Process handles the generation or extraction of the Request ID and creates a logger with requestID
func (m *RequestIDMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// Attempt to get Request ID from request headers
		requestID := c.Request().Header.Get(HeaderXRequestID)

		// Generate a new Request ID if not provided by the client
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(keyRequestID, requestID)
		c.Response().Header().Set(HeaderXRequestID, requestID)
		c.Set(keyLogger, m.logger.With(slog.String("request_id", requestID)))

		return next(c)
	}
}

// GetRequestID returns the request ID, generating one if the middleware did not run
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(keyRequestID).(string); ok && id != "" {
		return id
	}
	return uuid.New().String()
}

// GetLogger returns the request-scoped logger, or fallback
func GetLogger(c echo.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := c.Get(keyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return fallback
}

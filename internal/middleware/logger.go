package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/xyz-asif/duetodo/internal/pkg/response"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// Logger configuration
type LoggerConfig struct {
	SkipPaths []string
	// SlowThreshold bumps requests slower than this to warn level. Zero disables.
	SlowThreshold time.Duration
}

func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		SkipPaths:     []string{"/health", "/swagger/*any"},
		SlowThreshold: time.Second,
	}
}

func Logger(base zerolog.Logger) gin.HandlerFunc {
	return LoggerWithConfig(base, DefaultLoggerConfig())
}

// LoggerWithConfig assigns every request an id, attaches a request-scoped
// logger to the request context and writes one access line per request.
func LoggerWithConfig(base zerolog.Logger, config LoggerConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}
		c.Set(response.RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		l := base.With().Str("request_id", requestID).Logger()
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))

		c.Next()

		route := c.FullPath()
		if _, ok := skip[route]; ok {
			return
		}
		if _, ok := skip[c.Request.URL.Path]; ok {
			return
		}

		status := c.Writer.Status()
		latency := time.Since(start)

		var event *zerolog.Event
		switch {
		case status >= 500:
			event = l.Error()
		case status >= 400:
			event = l.Warn()
		case config.SlowThreshold > 0 && latency > config.SlowThreshold:
			event = l.Warn()
		default:
			event = l.Info()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", route).
			Str("query", c.Request.URL.RawQuery).
			Int("status", status).
			Dur("latency", latency).
			Int("size", c.Writer.Size()).
			Str("ip", c.ClientIP()).
			Msgf("[%s] %s %s %d %s", requestID, c.Request.Method, c.Request.URL.Path, status, latency)
	}
}

package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/vovakirdan/burnroom-server/internal/core"
)

const (
	// ContextKeyRequestID is the context key for storing the request ID.
	ContextKeyRequestID = "request_id"
	// HeaderRequestID carries the request ID in both directions.
	HeaderRequestID = "X-Request-ID"
)

// RequestIDMiddleware tags every request with an ID, reusing the caller's if present.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// LoggerMiddleware creates a middleware that logs HTTP requests.
// Query strings are left out so room identifiers stay out of the logs.
func LoggerMiddleware(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info().
			Str("request_id", c.GetString(ContextKeyRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("http request")
	}
}

// AdmissionMiddleware bounds the number of requests being handled at once.
// Excess requests wait for a slot; they are only turned away if the client gives up.
func AdmissionMiddleware(limit int, logger *zerolog.Logger) gin.HandlerFunc {
	if limit <= 0 {
		limit = core.DefaultMaxInFlight
	}
	sem := semaphore.NewWeighted(int64(limit))

	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			logger.Debug().Err(err).Str("request_id", c.GetString(ContextKeyRequestID)).Msg("request abandoned while waiting for a slot")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorResponse{
				Error: "server busy",
				Code:  core.ErrCodeInternal,
			})
			return
		}
		defer sem.Release(1)

		c.Next()
	}
}

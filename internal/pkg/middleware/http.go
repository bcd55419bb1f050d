package middleware

import (
	"net/http"
	"time"

	"github.com/RandalBristow/pizza-palace-sub000/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RequestLogger attaches a request id and logs every request.
func RequestLogger(log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if hdr := c.GetHeader(RequestIDHeader); hdr != "" {
			ctx = WithRequestID(ctx, hdr)
		}
		ctx, id := ensureRequestID(ctx)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		log.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.String("request_id", id),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// RateLimit rejects requests once the shared limiter runs dry.
func RateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

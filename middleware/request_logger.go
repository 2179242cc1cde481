package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger stores a request-scoped logger under "logger" and logs each
// completed request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLogger := logger.With(
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
		)
		c.Set("logger", reqLogger)

		c.Next()

		reqLogger.Info("Request handled",
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", GetClientIP(c)),
			zap.String("clientID", ClientID(c)),
		)
	}
}

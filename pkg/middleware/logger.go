package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/danielolaszy/relay/internal/logging"
)

// RequestLogger returns a gin middleware that logs one line per completed
// request with method, path, status, duration and request ID.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logging.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
			"request_id", GetRequestID(c))
	}
}

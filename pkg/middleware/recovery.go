package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danielolaszy/relay/internal/logging"
)

// Recovery returns a gin middleware that recovers from handler panics,
// logs them and responds with a generic 500 body.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logging.Error("handler panic",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"panic", r,
					"request_id", GetRequestID(c))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
					"kind":  "unknown",
				})
			}
		}()
		c.Next()
	}
}

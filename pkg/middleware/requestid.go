package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestIDHeader carries the request identifier on both request and response.
const requestIDHeader = "X-Request-ID"

// requestIDKey is the gin context key holding the request identifier.
const requestIDKey = "request_id"

// RequestID returns a gin middleware that tags every request with a unique
// identifier. An identifier supplied by the caller is kept so IDs stay stable
// across proxies.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the request identifier set by RequestID, or an empty
// string when the middleware did not run.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is echoed on every response and included in error logs.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "requestID"

// RequestID assigns each request an id, reusing the client's when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom returns the id assigned by RequestID, or empty.
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

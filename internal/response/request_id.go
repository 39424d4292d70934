package response

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextKeyRequestID is the Gin context key for the request ID.
	ContextKeyRequestID = "request_id"
	// ContextKeyStartedAt holds when the request entered the router.
	ContextKeyStartedAt = "request_started_at"

	maxRequestIDLen = 64
)

// RequestIDMiddleware tags every request with an ID, reusing a caller-supplied
// X-Request-ID when it is short enough to be safe to echo and log.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyStartedAt, time.Now())

		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" || len(reqID) > maxRequestIDLen {
			reqID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, reqID)
		c.Header("X-Request-ID", reqID)
		c.Next()
	}
}

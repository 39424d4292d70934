package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/jinro-backend/internal/repository"
	"github.com/stemsi/jinro-backend/internal/response"
	"github.com/stemsi/jinro-backend/internal/service"
	"github.com/stemsi/jinro-backend/internal/session"
)

const (
	// SessionHeader carries the session ID on HTTP requests.
	SessionHeader = "X-Session-ID"
	// SessionQuery carries it on WebSocket upgrades, where browsers cannot set headers.
	SessionQuery = "session_id"

	ContextKeySession = "session"
)

// RequireSession loads the caller's session context and stores it in the Gin context.
func RequireSession(sessions service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id = c.Query(SessionQuery)
		}
		if id == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionRequired)
			return
		}

		sess, err := sessions.Get(c.Request.Context(), id)
		if errors.Is(err, repository.ErrSessionNotFound) {
			response.AbortFail(c, http.StatusNotFound, response.ErrSessionNotFound)
			return
		}
		if err != nil {
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		c.Set(ContextKeySession, sess)
		c.Next()
	}
}

// GetSession extracts the session loaded by RequireSession.
func GetSession(c *gin.Context) (session.Context, bool) {
	v, exists := c.Get(ContextKeySession)
	if !exists {
		return session.Context{}, false
	}
	sess, ok := v.(session.Context)
	return sess, ok
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/jinro-backend/internal/middleware"
	"github.com/stemsi/jinro-backend/internal/repository"
	"github.com/stemsi/jinro-backend/internal/response"
	"github.com/stemsi/jinro-backend/internal/service"
	"github.com/stemsi/jinro-backend/internal/session"
)

type SessionHandler struct {
	sessions service.SessionService
	data     service.DataService
}

func NewSessionHandler(sessions service.SessionService, data service.DataService) *SessionHandler {
	return &SessionHandler{sessions: sessions, data: data}
}

type sessionView struct {
	ID          string       `json:"session_id"`
	Mode        session.Mode `json:"mode"`
	PendingKind string       `json:"pending_kind,omitempty"`
}

func viewOf(sess session.Context) sessionView {
	return sessionView{ID: sess.ID, Mode: sess.Mode, PendingKind: string(sess.PendingKind)}
}

// Create godoc
// POST /api/v1/sessions
// Starts a session on the landing page, with the headline statistics.
func (h *SessionHandler) Create(c *gin.Context) {
	sess, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	c.Header(middleware.SessionHeader, sess.ID)
	response.Success(c, http.StatusCreated, gin.H{
		"session": viewOf(sess),
		"stats":   h.data.Stats(),
	})
}

// Home godoc
// DELETE /api/v1/sessions/current
// Returns the session to the landing state.
func (h *SessionHandler) Home(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrSessionRequired)
		return
	}
	next, err := h.sessions.Home(c.Request.Context(), sess.ID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"session": viewOf(next),
		"stats":   h.data.Stats(),
	})
}

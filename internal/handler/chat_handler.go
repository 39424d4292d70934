package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/jinro-backend/internal/middleware"
	"github.com/stemsi/jinro-backend/internal/model"
	"github.com/stemsi/jinro-backend/internal/response"
	"github.com/stemsi/jinro-backend/internal/service"
	"github.com/stemsi/jinro-backend/internal/validator"
)

type ChatHandler struct {
	chat     service.ChatService
	sessions service.SessionService
	log      zerolog.Logger
}

func NewChatHandler(chat service.ChatService, sessions service.SessionService, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		chat:     chat,
		sessions: sessions,
		log:      log.With().Str("component", "chat_handler").Logger(),
	}
}

// Send godoc
// POST /api/v1/chat/messages
// Handles a question, or the answer to an open visualization offer.
func (h *ChatHandler) Send(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrSessionRequired)
		return
	}

	var req model.SendMessageRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	text := strings.TrimSpace(req.Message)
	if text == "" {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			"message": "message는 공백만으로 이루어질 수 없습니다",
		})
		return
	}

	next, turn := h.chat.Handle(c.Request.Context(), sess, text)
	if err := h.sessions.Save(c.Request.Context(), next); err != nil {
		h.log.Error().Err(err).Str("session_id", sess.ID).Msg("Failed to save session")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"turn":    turn,
		"session": viewOf(next),
	})
}

// List godoc
// GET /api/v1/chat/messages
func (h *ChatHandler) List(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrSessionRequired)
		return
	}
	messages := sess.Messages
	if messages == nil {
		messages = []model.ChatMessage{}
	}
	response.Success(c, http.StatusOK, gin.H{
		"messages": messages,
		"session":  viewOf(sess),
	})
}

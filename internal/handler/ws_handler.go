package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/jinro-backend/internal/middleware"
	"github.com/stemsi/jinro-backend/internal/model"
	"github.com/stemsi/jinro-backend/internal/response"
	"github.com/stemsi/jinro-backend/internal/service"
	ws "github.com/stemsi/jinro-backend/internal/websocket"
)

const maxWSMessageRunes = 500

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams the chat over a WebSocket.
type WSHandler struct {
	chat     service.ChatService
	sessions service.SessionService
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(chat service.ChatService, sessions service.SessionService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		chat:     chat,
		sessions: sessions,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// ChatStream godoc
// WS /ws/v1/chat?session_id=...
// Each ask or reply message produces one answer event.
func (h *WSHandler) ChatStream(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrSessionRequired)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(ws.MaxMessageBytes)

	wsLog := h.log.With().Str("session_id", sess.ID).Logger()
	wsLog.Info().Msg("Client connected")

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		switch msg.Action {
		case ws.ActionPing:
			ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
		case ws.ActionAsk, ws.ActionReply:
			h.handleMessage(conn, wsLog, sess.ID, &msg)
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			ws.WriteError(conn, "unknown action: "+string(msg.Action))
		}
	}
}

// handleMessage reloads the session for every message so HTTP calls made
// between messages are not overwritten.
func (h *WSHandler) handleMessage(conn *websocket.Conn, wsLog zerolog.Logger, sessionID string, msg *ws.RequestPayload) {
	ctx := context.Background()

	text := strings.TrimSpace(msg.Message)
	if text == "" || len([]rune(text)) > maxWSMessageRunes {
		ws.WriteError(conn, "message must be 1-500 characters")
		return
	}

	sess, err := h.sessions.Get(ctx, sessionID)
	if err != nil {
		wsLog.Warn().Err(err).Msg("Session lookup failed")
		ws.WriteError(conn, response.GetMessage(response.ErrSessionNotFound))
		return
	}

	if msg.Action == ws.ActionReply && !sess.AwaitingReply() {
		ws.WriteError(conn, response.GetMessage(response.ErrNoPendingOffer))
		return
	}

	next, turn := h.chat.Handle(ctx, sess, text)
	if err := h.sessions.Save(ctx, next); err != nil {
		wsLog.Error().Err(err).Msg("Failed to save session")
		ws.WriteError(conn, response.GetMessage(response.ErrInternal))
		return
	}

	if turn.Replies == nil {
		turn.Replies = []model.ChatMessage{}
	}
	ws.WriteTyped(conn, ws.AnswerResponse{Event: ws.EventAnswer, Turn: turn})
}

package websocket

import "github.com/stemsi/jinro-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	// ActionAsk sends a new question.
	ActionAsk Action = "ask"
	// ActionReply answers an open visualization offer.
	ActionReply Action = "reply"
	ActionPing  Action = "ping"
)

// RequestPayload is every client message; Message is empty for ping.
type RequestPayload struct {
	Action  Action `json:"action"`
	Message string `json:"message"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError  Event = "error"
	EventAnswer Event = "answer"
	EventPong   Event = "pong"
)

// AnswerResponse carries what one input produced.
type AnswerResponse struct {
	Event Event          `json:"event"`
	Turn  model.ChatTurn `json:"turn"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}

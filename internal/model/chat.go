package model

import "time"

// ChatHistoryEntry is one persisted exchange. Field names match the history document.
type ChatHistoryEntry struct {
	Question string `json:"question"`
	Response string `json:"response"`
	Summary  string `json:"summary"`
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one line of the in-session conversation log.
type ChatMessage struct {
	Role          Role        `json:"role"`
	Content       string      `json:"content"`
	Visualization *Renderable `json:"visualization,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// ChatTurn is what one user input produced.
type ChatTurn struct {
	Replies []ChatMessage `json:"replies"`
	// Category is the classified intent of a question, empty for offer replies.
	Category string `json:"category,omitempty"`
	// PendingKind is set while the session waits for a yes/no on a chart offer.
	PendingKind Kind `json:"pending_kind,omitempty"`
	// Suppressed is true when a repeated unknown question got no reply.
	Suppressed bool `json:"suppressed,omitempty"`
}

// TopicCount is one row of the popular-topics ranking.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// SendMessageRequest is the payload for posting a chat message.
type SendMessageRequest struct {
	Message string `json:"message" binding:"required,min=1,max=500"`
}

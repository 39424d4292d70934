// Package session holds the per-visitor conversation state. A Context is
// treated as a value: handlers receive one and return the next one.
package session

import (
	"slices"
	"strings"
	"time"

	"github.com/stemsi/jinro-backend/internal/model"
)

type Mode string

const (
	ModeHome Mode = "home"
	ModeChat Mode = "chat"
	ModeQuiz Mode = "quiz"
)

// ParseMode accepts the three mode names.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(s); m {
	case ModeHome, ModeChat, ModeQuiz:
		return m, true
	}
	return "", false
}

// MaxMessages bounds the in-session chat log; older lines are dropped.
const MaxMessages = 200

// Context is everything one visitor's session remembers.
type Context struct {
	ID          string              `json:"id"`
	Mode        Mode                `json:"mode"`
	Messages    []model.ChatMessage `json:"messages"`
	QuizAnswers []model.QuizAnswer  `json:"quiz_answers"`
	// PendingKind is set after a visualization offer until the visitor answers it.
	PendingKind model.Kind `json:"pending_kind,omitempty"`
	// LastUnknown is the last question that got the unknown answer.
	LastUnknown string    `json:"last_unknown,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func New(id string, now time.Time) Context {
	return Context{ID: id, Mode: ModeHome, CreatedAt: now, UpdatedAt: now}
}

// Clone returns a copy that shares no slices with c.
func (c Context) Clone() Context {
	c.Messages = slices.Clone(c.Messages)
	c.QuizAnswers = slices.Clone(c.QuizAnswers)
	return c
}

// Home returns c with mode, chat log, quiz progress, pending offer and last
// unknown question cleared. Identity and creation time are kept.
func (c Context) Home(now time.Time) Context {
	next := New(c.ID, c.CreatedAt)
	next.UpdatedAt = now
	return next
}

// AwaitingReply reports whether a visualization offer is open.
func (c Context) AwaitingReply() bool { return c.PendingKind != "" }

// Append returns c with msgs added to the log, trimmed to MaxMessages.
func (c Context) Append(msgs ...model.ChatMessage) Context {
	c = c.Clone()
	c.Messages = append(c.Messages, msgs...)
	if n := len(c.Messages); n > MaxMessages {
		c.Messages = slices.Clone(c.Messages[n-MaxMessages:])
	}
	return c
}

// Reply is how a visitor answered a visualization offer.
type Reply int

const (
	ReplyUnclear Reply = iota
	ReplyYes
	ReplyNo
)

func (r Reply) String() string {
	switch r {
	case ReplyYes:
		return "yes"
	case ReplyNo:
		return "no"
	}
	return "unclear"
}

var (
	affirmativeTokens = []string{"네", "예", "yes", "보여", "보여주", "좋아", "ok", "okay", "좋아요", "보고싶", "보고싶어", "보고 싶"}
	negativeTokens    = []string{"아니", "no", "괜찮", "안", "필요없", "아니요", "괜찮아", "괜찮습니다", "싫", "싫어", "안 보고", "안 보"}
)

// ParseReply looks for affirmative tokens first, then negative ones, anywhere
// in the lowercased text.
func ParseReply(text string) Reply {
	t := normalize(text)
	if containsAny(t, affirmativeTokens) {
		return ReplyYes
	}
	if containsAny(t, negativeTokens) {
		return ReplyNo
	}
	return ReplyUnclear
}

// SameQuestion compares two inputs ignoring case and surrounding space.
func SameQuestion(a, b string) bool {
	return normalize(a) == normalize(b)
}

func normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

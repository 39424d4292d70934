package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/jinro-backend/internal/counsel"
	"github.com/stemsi/jinro-backend/internal/model"
	"github.com/stemsi/jinro-backend/internal/session"
	"github.com/stemsi/jinro-backend/internal/topic"
	"github.com/stemsi/jinro-backend/internal/visual"
)

// Fixed assistant lines of the visualization offer exchange.
const (
	OfferText    = "표나 그래프를 보여줄까요?"
	RepromptText = "표나 그래프를 보여드릴까요? '네' 또는 '아니요'로 답변해주세요."
	ShowText     = "여기 표/그래프입니다:"
	DeclineText  = "알겠습니다"
)

// HistoryEnqueuer hands answered exchanges to the history writer.
type HistoryEnqueuer interface {
	Enqueue(ctx context.Context, entry model.ChatHistoryEntry) error
}

type ChatService interface {
	// Handle applies one visitor input to sess and returns the next session
	// and what the input produced. It never fails; history problems are logged.
	Handle(ctx context.Context, sess session.Context, text string) (session.Context, model.ChatTurn)
}

type chatService struct {
	responder *counsel.Responder
	resolver  *visual.Resolver
	history   HistoryEnqueuer
	log       zerolog.Logger
	now       func() time.Time
}

func NewChatService(responder *counsel.Responder, resolver *visual.Resolver, history HistoryEnqueuer, log zerolog.Logger) ChatService {
	return &chatService{
		responder: responder,
		resolver:  resolver,
		history:   history,
		log:       log.With().Str("component", "chat_service").Logger(),
		now:       time.Now,
	}
}

func (s *chatService) message(role model.Role, content string) model.ChatMessage {
	return model.ChatMessage{Role: role, Content: content, CreatedAt: s.now().UTC()}
}

func (s *chatService) Handle(ctx context.Context, sess session.Context, text string) (session.Context, model.ChatTurn) {
	sess = sess.Clone()
	sess.Mode = session.ModeChat

	if sess.AwaitingReply() {
		return s.handleReply(sess, text)
	}

	if sess.LastUnknown != "" && session.SameQuestion(sess.LastUnknown, text) {
		return sess, model.ChatTurn{Suppressed: true}
	}

	ans := s.responder.Respond(text)
	turn := model.ChatTurn{Category: string(ans.Category)}
	sess = sess.Append(s.message(model.RoleUser, text))

	reply := s.message(model.RoleAssistant, ans.Text)
	sess = sess.Append(reply)
	turn.Replies = append(turn.Replies, reply)

	if !ans.Known() {
		sess.LastUnknown = text
		s.log.Debug().Str("question", text).Msg("Unknown question")
		return sess, turn
	}
	sess.LastUnknown = ""

	if ans.CanVisualize && visual.Offerable(ans.Kind) {
		offer := s.message(model.RoleAssistant, OfferText)
		sess = sess.Append(offer)
		sess.PendingKind = ans.Kind
		turn.Replies = append(turn.Replies, offer)
		turn.PendingKind = ans.Kind
	}

	entry := model.ChatHistoryEntry{Question: text, Response: ans.Text, Summary: topic.Summarize(text)}
	if err := s.history.Enqueue(ctx, entry); err != nil {
		s.log.Error().Err(err).Str("summary", entry.Summary).Msg("Failed to enqueue history entry")
	}
	return sess, turn
}

func (s *chatService) handleReply(sess session.Context, text string) (session.Context, model.ChatTurn) {
	sess = sess.Append(s.message(model.RoleUser, text))
	kind := sess.PendingKind

	var reply model.ChatMessage
	switch session.ParseReply(text) {
	case session.ReplyYes:
		sess.PendingKind = ""
		r, err := s.resolver.Resolve(kind)
		if err != nil || r.Type == model.RenderNone {
			s.log.Warn().Err(err).Str("kind", string(kind)).Msg("Nothing to show for pending visualization")
			reply = s.message(model.RoleAssistant, DeclineText)
			break
		}
		reply = s.message(model.RoleAssistant, ShowText)
		reply.Visualization = &r
	case session.ReplyNo:
		sess.PendingKind = ""
		reply = s.message(model.RoleAssistant, DeclineText)
	default:
		reply = s.message(model.RoleAssistant, RepromptText)
	}

	sess = sess.Append(reply)
	return sess, model.ChatTurn{Replies: []model.ChatMessage{reply}, PendingKind: sess.PendingKind}
}

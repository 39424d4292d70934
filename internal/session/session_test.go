package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/jinro-backend/internal/model"
)

func TestParseReply(t *testing.T) {
	tests := []struct {
		input string
		want  Reply
	}{
		{"네", ReplyYes},
		{"  YES please ", ReplyYes},
		{"OK", ReplyYes},
		{"보고 싶어요", ReplyYes},
		{"아니요", ReplyNo},
		{"No", ReplyNo},
		{"괜찮습니다", ReplyNo},
		{"필요없어", ReplyNo},
		{"아니 네", ReplyYes},
		{"음...", ReplyUnclear},
		{"", ReplyUnclear},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseReply(tt.input))
		})
	}
}

func TestSameQuestion(t *testing.T) {
	assert.True(t, SameQuestion("Hello World", "  hello world "))
	assert.False(t, SameQuestion("hello", "hello!"))
}

func TestContext_Home(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)

	c := New("s1", created)
	c.Mode = ModeChat
	c.PendingKind = model.KindMajorList
	c.LastUnknown = "??"
	c.QuizAnswers = []model.QuizAnswer{{QuestionID: 1, Choice: "A"}}
	c = c.Append(model.ChatMessage{Role: model.RoleUser, Content: "hi"})

	home := c.Home(now)
	assert.Equal(t, "s1", home.ID)
	assert.Equal(t, ModeHome, home.Mode)
	assert.Empty(t, home.Messages)
	assert.Empty(t, home.QuizAnswers)
	assert.False(t, home.AwaitingReply())
	assert.Empty(t, home.LastUnknown)
	assert.Equal(t, created, home.CreatedAt)
	assert.Equal(t, now, home.UpdatedAt)

	assert.Len(t, c.Messages, 1, "original is untouched")
}

func TestContext_AppendCopiesAndCaps(t *testing.T) {
	c := New("s1", time.Now())
	a := c.Append(model.ChatMessage{Content: "1"})
	b := a.Append(model.ChatMessage{Content: "2"})
	require.Len(t, a.Messages, 1)
	require.Len(t, b.Messages, 2)

	for i := 0; i < MaxMessages+5; i++ {
		b = b.Append(model.ChatMessage{Content: "x"})
	}
	assert.Len(t, b.Messages, MaxMessages)
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("quiz")
	assert.True(t, ok)
	assert.Equal(t, ModeQuiz, m)
	_, ok = ParseMode("admin")
	assert.False(t, ok)
}

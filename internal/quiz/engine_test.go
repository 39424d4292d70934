package quiz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/jinro-backend/internal/model"
	"github.com/stemsi/jinro-backend/internal/testutil"
)

func answerAll(t *testing.T, e *Engine, choices string) {
	t.Helper()
	for _, c := range choices {
		require.NoError(t, e.Submit(string(c)))
	}
}

func TestDefaultBank(t *testing.T) {
	b := DefaultBank()
	require.Equal(t, 10, b.Len())
	assert.Equal(t, "문제를 해결할 때 어떤 방식을 선호하나요?", b.Questions[0].Text)
	assert.Equal(t, "미래에 가장 중요하게 생각하는 가치는?", b.Questions[9].Text)

	for i, q := range b.Questions {
		assert.Equal(t, i+1, q.ID)
		require.Len(t, q.Options, 4)
		for j, want := range []string{"탐구형", "예술형", "사회형", "현실형"} {
			assert.Equal(t, string(rune('A'+j)), q.Options[j].Key)
			assert.Equal(t, want, q.Options[j].Type)
		}
	}
	assert.Equal(t, "수학, 과학", b.Questions[2].Options[0].Text)

	p, ok := b.Profile("예술형")
	require.True(t, ok)
	assert.Equal(t, []string{"산업디자인과", "건축학과"}, p.Majors)
	assert.Len(t, p.Careers, 10)
}

func TestEngine_WalksQuestionsInOrder(t *testing.T) {
	e := NewEngine(nil)

	q, ok := e.Current()
	require.True(t, ok)
	assert.Equal(t, 1, q.ID)

	require.NoError(t, e.Submit("B"))
	q, _ = e.Current()
	assert.Equal(t, 2, q.ID)
	assert.Equal(t, Progress{Answered: 1, Total: 10}, e.Progress())

	answerAll(t, e, "ABCDABCDA")
	assert.True(t, e.Complete())
	_, ok = e.Current()
	assert.False(t, ok)

	ids := []int{}
	for _, a := range e.Answers() {
		ids = append(ids, a.QuestionID)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ids)

	assert.ErrorIs(t, e.Submit("A"), ErrQuizComplete)
	assert.Len(t, e.Answers(), 10)
}

func TestEngine_RejectsUnknownChoice(t *testing.T) {
	e := NewEngine(nil)
	assert.ErrorIs(t, e.Submit("E"), ErrInvalidChoice)
	assert.ErrorIs(t, e.Submit(""), ErrInvalidChoice)
	assert.Equal(t, 0, e.Progress().Answered)
}

func TestEngine_Result(t *testing.T) {
	e := NewEngine(nil)
	_, err := e.Result(nil)
	assert.ErrorIs(t, err, ErrQuizIncomplete)

	answerAll(t, e, "CCCCCCAABD")
	res, err := e.Result(testutil.Store(t))
	require.NoError(t, err)

	assert.Equal(t, "사회형", res.PrimaryType)
	assert.Equal(t, []model.TypeCount{
		{Type: "탐구형", Count: 2},
		{Type: "예술형", Count: 1},
		{Type: "사회형", Count: 6},
		{Type: "현실형", Count: 1},
	}, res.Counts)
	assert.Equal(t, "사람들과의 소통을 즐기며, 타인을 돕는 것에서 보람을 느낍니다.", res.Description)
	assert.Equal(t, []string{"심리학과", "간호학과", "교육학과"}, res.RecommendedMajors)
	assert.Len(t, res.RecommendedCareers, 10)

	details := []string{}
	for _, m := range res.MajorDetails {
		details = append(details, m.Name)
	}
	assert.Equal(t, []string{"심리학과", "간호학과", "교육학과"}, details)
}

func TestEngine_TieGoesToCanonicalOrder(t *testing.T) {
	tests := []struct {
		choices string
		want    string
	}{
		{"DDDDDBBBBB", "예술형"},
		{"DDDCCCAACC", "사회형"},
		{"DDDDDAAAAA", "탐구형"},
		{"ABCDABCDDD", "현실형"},
		{"ABCDABCDAB", "탐구형"},
	}
	for _, tt := range tests {
		t.Run(tt.choices, func(t *testing.T) {
			e := NewEngine(nil)
			answerAll(t, e, tt.choices)
			res, err := e.Result(nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.PrimaryType)
			assert.Nil(t, res.MajorDetails)
		})
	}
}

func TestEngine_Reset(t *testing.T) {
	e := NewEngine(nil)
	answerAll(t, e, strings.Repeat("A", 10))
	e.Reset()

	assert.Equal(t, Progress{Total: 10}, e.Progress())
	assert.Empty(t, e.Answers())
	q, ok := e.Current()
	require.True(t, ok)
	assert.Equal(t, 1, q.ID)
}

func TestRestore(t *testing.T) {
	e := NewEngine(nil)
	answerAll(t, e, "ABC")

	restored, err := Restore(nil, e.Answers())
	require.NoError(t, err)
	assert.Equal(t, e.Answers(), restored.Answers())

	_, err = Restore(nil, []model.QuizAnswer{{QuestionID: 2, Choice: "A"}})
	assert.Error(t, err)

	_, err = Restore(nil, []model.QuizAnswer{{QuestionID: 1, Choice: "Z"}})
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

func TestParseBank_Invalid(t *testing.T) {
	tests := map[string]string{
		"empty":            "profiles: []\nquestions: []",
		"unknown type":     "profiles: [{type: X}]\nquestions: [{id: 1, text: q, options: [{key: A, type: Y}]}]",
		"ids not rising":   "profiles: [{type: X}]\nquestions: [{id: 2, options: [{key: A, type: X}]}, {id: 1, options: [{key: A, type: X}]}]",
		"duplicate option": "profiles: [{type: X}]\nquestions: [{id: 1, options: [{key: A, type: X}, {key: A, type: X}]}]",
		"bad yaml":         "profiles: [",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseBank([]byte(raw))
			assert.Error(t, err)
		})
	}
}

package topic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stemsi/jinro-backend/internal/model"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     string
	}{
		{"named university", "연세대 캠퍼스 분위기는?", "연세대학교 정보"},
		{"university name list order", "서강대학교와 서울대학교 비교", "서울대학교 정보"},
		{"generic university", "좋은 대학 알려줘", "대학 정보 문의"},
		{"named major", "컴퓨터공학 전공 전망", "컴퓨터공학 정보"},
		{"generic major", "전공 선택이 고민돼요", "학과 정보 문의"},
		{"grade", "내신 2등급이면?", "내신 기반 대학 추천"},
		{"admission", "올해 진학률 알려줘", "진학률 문의"},
		{"employment", "연봉 높은 직업", "취업 정보 문의"},
		{"recommendation", "어디가 좋을까", "추천 문의"},
		{"short fallback", "안녕하세요", "안녕하세요"},
		{"long fallback cut by character", strings.Repeat("가", 30), strings.Repeat("가", 25) + "..."},
		{"exactly 25 characters", strings.Repeat("가", 25), strings.Repeat("가", 25)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.question))
		})
	}
}

func entries(questions ...string) []model.ChatHistoryEntry {
	out := make([]model.ChatHistoryEntry, len(questions))
	for i, q := range questions {
		out[i] = model.ChatHistoryEntry{Question: q}
	}
	return out
}

func TestPopular_UniversityQuestions(t *testing.T) {
	got := Popular(entries("서울대학교 정보", "연세대 캠퍼스", "고려대 위치"), 5)
	assert.Equal(t, model.TopicCount{Topic: "대학 정보", Count: 3}, got[0])
}

func TestPopular_CountsEveryMatchingBucket(t *testing.T) {
	got := Popular(entries("내신 2등급 갈 수 있는 대학 추천"), 0)
	assert.Equal(t, []model.TopicCount{
		{Topic: "내신 기반 추천", Count: 1},
		{Topic: "대학 정보", Count: 1},
		{Topic: "추천", Count: 1},
	}, got)
}

func TestPopular_TiesKeepFirstSeenOrder(t *testing.T) {
	got := Popular(entries("연봉 높은 직업", "진학률 알려줘", "연봉", "진학"), 5)
	assert.Equal(t, []model.TopicCount{
		{Topic: "취업률", Count: 2},
		{Topic: "진학률", Count: 2},
	}, got)
}

func TestPopular_Limit(t *testing.T) {
	h := entries("내신", "대학", "학과", "진학", "취업", "추천", "추천")
	got := Popular(h, 0)
	assert.Len(t, got, DefaultPopularLimit)
	assert.Equal(t, "추천", got[0].Topic)

	assert.Len(t, Popular(h, 2), 2)
	assert.Empty(t, Popular(nil, 5))
	assert.Empty(t, Popular(entries("", "hello"), 5))
}

// Package topic turns chat questions into short summaries and ranks the topics
// people ask about most.
package topic

import (
	"cmp"
	"slices"
	"strings"

	"github.com/stemsi/jinro-backend/internal/model"
)

// DefaultPopularLimit is how many topics Popular returns when limit <= 0.
const DefaultPopularLimit = 5

const summaryRunes = 25

type bucket struct {
	topic    string
	keywords []string
}

// Buckets are not exclusive; one question can count toward several topics.
var popularBuckets = []bucket{
	{"내신 기반 추천", []string{"내신", "등급", "성적", "갈 수", "들어갈", "입학", "합격 가능"}},
	{"대학 정보", []string{"대학", "학교", "캠퍼스", "서울대", "연세대", "고려대"}},
	{"학과 정보", []string{"학과", "전공", "과", "컴퓨터", "의학", "경영", "공학"}},
	{"진학률", []string{"진학", "입시", "합격", "진학률"}},
	{"취업률", []string{"취업", "연봉", "취직", "직업", "취업률"}},
	{"추천", []string{"추천", "어디", "좋은", "어떤"}},
}

type summaryRule struct {
	keywords []string
	// names are tried in order; the first one found makes the summary specific.
	names []string
	named func(name string) string
	plain string
}

var summaryRules = []summaryRule{
	{
		keywords: []string{"대학", "학교", "서울대", "연세대", "고려대"},
		names:    []string{"서울대", "연세대", "고려대", "카이스트", "포스텍", "성균관", "한양", "서강", "중앙", "경희"},
		named:    func(n string) string { return n + "학교 정보" },
		plain:    "대학 정보 문의",
	},
	{
		keywords: []string{"학과", "전공", "컴퓨터", "의학", "경영", "공학"},
		names:    []string{"컴퓨터공학", "의예과", "경영학", "전기공학", "기계공학", "경제학", "법학", "심리학", "간호학", "건축학", "디자인", "화학공학", "생명과학", "교육학"},
		named:    func(n string) string { return n + " 정보" },
		plain:    "학과 정보 문의",
	},
	{keywords: []string{"내신", "등급", "성적", "갈 수", "들어갈", "입학", "합격 가능"}, plain: "내신 기반 대학 추천"},
	{keywords: []string{"진학", "입시", "합격"}, plain: "진학률 문의"},
	{keywords: []string{"취업", "연봉", "취직"}, plain: "취업 정보 문의"},
	{keywords: []string{"추천", "어디", "좋은"}, plain: "추천 문의"},
}

// Summarize labels a question with its first matching topic. Questions that
// match nothing are echoed back, cut to 25 characters with a trailing "...".
func Summarize(question string) string {
	for _, r := range summaryRules {
		if !containsAny(question, r.keywords) {
			continue
		}
		for _, n := range r.names {
			if strings.Contains(question, n) {
				return r.named(n)
			}
		}
		return r.plain
	}
	runes := []rune(question)
	if len(runes) > summaryRunes {
		return string(runes[:summaryRunes]) + "..."
	}
	return question
}

// Popular counts topic buckets over the questions in entries, highest first.
// Equal counts keep the order in which the topics were first seen.
func Popular(entries []model.ChatHistoryEntry, limit int) []model.TopicCount {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	var counts []model.TopicCount
	index := map[string]int{}
	for _, e := range entries {
		if e.Question == "" {
			continue
		}
		for _, b := range popularBuckets {
			if !containsAny(e.Question, b.keywords) {
				continue
			}
			i, ok := index[b.topic]
			if !ok {
				i = len(counts)
				index[b.topic] = i
				counts = append(counts, model.TopicCount{Topic: b.topic})
			}
			counts[i].Count++
		}
	}
	slices.SortStableFunc(counts, func(a, b model.TopicCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

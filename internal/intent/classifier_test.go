package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Category
		ok    bool
	}{
		{"grade wins over university", "내신 2.5등급으로 갈 수 있는 대학 알려줘", CategoryGrade, true},
		{"grade wins over named university", "성균관대학교 입학 가능할까요?", CategoryGrade, true},
		{"university", "서울대학교에 대해 알려주세요", CategoryUniversity, true},
		{"campus keyword", "캠퍼스가 예쁜 곳", CategoryUniversity, true},
		{"major", "컴퓨터공학과 정보", CategoryMajor, true},
		{"major via single syllable", "공과 계열", CategoryMajor, true},
		{"admission", "최근 진학률은 어떤가요?", CategoryAdmission, true},
		{"admission keyword shadowed by grade", "입시 결과", CategoryGrade, true},
		{"employment", "연봉 높은 직업", CategoryEmployment, true},
		{"recommendation", "어디가 좋을까요?", CategoryRecommendation, true},
		{"unknown", "오늘 날씨 어때?", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultRulesOrder(t *testing.T) {
	var order []Category
	for _, r := range Default().Rules() {
		order = append(order, r.Category)
	}
	assert.Equal(t, []Category{
		CategoryGrade, CategoryUniversity, CategoryMajor,
		CategoryAdmission, CategoryEmployment, CategoryRecommendation,
	}, order)
}

func TestClassifier_OrderIsData(t *testing.T) {
	c := NewClassifier([]Rule{
		{Category: CategoryUniversity, Keywords: []string{"대학"}},
		{Category: CategoryGrade, Keywords: []string{"내신"}},
	})

	got, ok := c.Classify("내신으로 갈 대학")
	require.True(t, ok)
	assert.Equal(t, CategoryUniversity, got)
}

func TestParseRules(t *testing.T) {
	t.Run("unknown category", func(t *testing.T) {
		_, err := ParseRules([]byte("- category: weather\n  keywords: [날씨]\n"))
		assert.ErrorContains(t, err, "unknown category")
	})
	t.Run("missing keywords", func(t *testing.T) {
		_, err := ParseRules([]byte("- category: major\n  keywords: []\n"))
		assert.ErrorContains(t, err, "no keywords")
	})
	t.Run("empty document", func(t *testing.T) {
		_, err := ParseRules([]byte(""))
		assert.Error(t, err)
	})
	t.Run("malformed", func(t *testing.T) {
		_, err := ParseRules([]byte("{not: [a list"))
		assert.Error(t, err)
	})
}

package counsel

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/jinro-backend/internal/dataset"
	"github.com/stemsi/jinro-backend/internal/intent"
	"github.com/stemsi/jinro-backend/internal/model"
	"github.com/stemsi/jinro-backend/internal/testutil"
)

func newResponder(t *testing.T) *Responder {
	t.Helper()
	return NewResponder(testutil.Store(t), nil)
}

func TestRespond_Unknown(t *testing.T) {
	r := newResponder(t)

	for _, q := range []string{"오늘 날씨 어때?", "", "hello", "🙂🙂🙂"} {
		a := r.Respond(q)
		assert.Equal(t, UnknownResponse, a.Text, q)
		assert.False(t, a.CanVisualize)
		assert.Empty(t, a.Kind)
		assert.False(t, a.Known())
	}
}

func TestRespond_GradeWithoutValuePrompts(t *testing.T) {
	a := newResponder(t).Respond("내신으로 갈 수 있는 대학 알려줘")

	assert.Equal(t, intent.CategoryGrade, a.Category)
	assert.Contains(t, a.Text, "내신 등급을 알려주시면")
	assert.False(t, a.CanVisualize)
	assert.Empty(t, a.Kind)
	assert.True(t, a.Known())
}

func TestRespond_NamedUniversityEligibility(t *testing.T) {
	r := newResponder(t)

	a := r.Respond("내신 2.3등급으로 서강대학교 들어갈 수 있나요?")
	assert.Equal(t, model.KindGradeAnalysis, a.Kind)
	assert.True(t, a.CanVisualize)
	assert.Contains(t, a.Text, "✅")
	assert.Contains(t, a.Text, "**서강대학교** 입학 가능성 분석")

	a = r.Respond("내신 2.4등급으로 서강대학교 들어갈 수 있나요?")
	assert.Contains(t, a.Text, "❌")
	assert.Contains(t, a.Text, "필요 등급보다 0.4등급 낮습니다")
}

func TestCheckEligibility_ToleranceBand(t *testing.T) {
	u := model.University{Name: "서강대학교", RequiredGrade: 2.0}

	assert.True(t, CheckEligibility(u, 2.3).Eligible)
	assert.True(t, CheckEligibility(u, 1.5).Eligible)

	e := CheckEligibility(u, 2.4)
	assert.False(t, e.Eligible)
	assert.InDelta(t, 0.4, e.Gap, 1e-9)
}

func TestRecommend(t *testing.T) {
	s := testutil.Store(t)

	t.Run("filters region and lower bound, sorts ascending", func(t *testing.T) {
		recs, total := Recommend(s, 2.5)
		require.Equal(t, 3, total)
		assert.Equal(t, []string{"중앙대학교", "경희대학교", "건국대학교"}, names(recs))
		assert.Equal(t, []Safety{SafetyModerate, SafetyModerate, SafetySafe}, safeties(recs))
	})

	t.Run("strong grade sees every Seoul university", func(t *testing.T) {
		recs, total := Recommend(s, 1.0)
		assert.Equal(t, 5, total)
		assert.Equal(t, []string{"서울대학교", "서강대학교", "중앙대학교", "경희대학교", "건국대학교"}, names(recs))
	})

	t.Run("no match", func(t *testing.T) {
		recs, total := Recommend(s, 3.5)
		assert.Zero(t, total)
		assert.Empty(t, recs)
	})
}

func TestRecommend_CapsAtLimit(t *testing.T) {
	var unis []model.University
	for i := 15; i > 0; i-- {
		unis = append(unis, model.University{
			Name:          fmt.Sprintf("테스트%02d대학교", i),
			Location:      RecommendLocation,
			RequiredGrade: 1 + float64(i)/10,
		})
	}
	s, err := dataset.New(unis, nil, testutil.Admissions())
	require.NoError(t, err)

	const grade = 1.3
	recs, total := Recommend(s, grade)
	assert.Equal(t, 15, total)
	require.Len(t, recs, RecommendLimit)
	for i := 1; i < len(recs); i++ {
		assert.LessOrEqual(t, recs[i-1].University.RequiredGrade, recs[i].University.RequiredGrade)
	}
	for _, rec := range recs {
		assert.Equal(t, grade <= rec.University.RequiredGrade+1e-9, rec.Safety == SafetySafe, rec.University.Name)
	}
}

func TestClassifySafety(t *testing.T) {
	assert.Equal(t, SafetySafe, ClassifySafety(2.0, 2.0))
	assert.Equal(t, SafetyModerate, ClassifySafety(2.2, 2.0))
	assert.Equal(t, SafetyReach, ClassifySafety(2.3, 2.0))
	assert.Equal(t, "✅ 안전", SafetySafe.Label())
}

func TestRespond_GradeRecommendation(t *testing.T) {
	r := newResponder(t)

	a := r.Respond("내신 2.5등급으로 갈 수 있는 대학 알려줘")
	assert.Equal(t, model.KindGradeRecommendation, a.Kind)
	assert.True(t, a.CanVisualize)
	assert.Contains(t, a.Text, "1. **중앙대학교** ⚠️ 적정")
	assert.Contains(t, a.Text, "총 **3개**")
	assert.NotContains(t, a.Text, "부산대학교")

	a = r.Respond("내신 3.5등급으로 갈 수 있는 대학")
	assert.False(t, a.CanVisualize)
	assert.Empty(t, a.Kind)
	assert.Contains(t, a.Text, "다른 지역 대학이나 전문대")
}

func TestRespond_University(t *testing.T) {
	r := newResponder(t)

	a := r.Respond("서울대학교에 대해 알려주세요")
	assert.Equal(t, intent.CategoryUniversity, a.Category)
	assert.Equal(t, model.KindUniversityDetail, a.Kind)
	assert.Contains(t, a.Text, "28,000명")
	assert.Contains(t, a.Text, "1946년")

	a = r.Respond("인서울 대학 정보")
	assert.Equal(t, model.KindUniversityList, a.Kind)
	assert.Contains(t, a.Text, "어떤 대학교")

	a = r.Respond("캠퍼스 구경")
	assert.Equal(t, model.KindUniversityList, a.Kind)
	assert.Equal(t, "대한민국 주요 대학교 정보를 보유하고 있습니다.", a.Text)
}

func TestRespond_Major(t *testing.T) {
	r := newResponder(t)

	a := r.Respond("간호학과 연봉 알려줘")
	assert.Equal(t, intent.CategoryMajor, a.Category)
	assert.Equal(t, model.KindMajorDetail, a.Kind)
	assert.Contains(t, a.Text, "4,200만원")

	a = r.Respond("예술 계열 학과")
	assert.Equal(t, model.KindMajorDetail, a.Kind)
	assert.Contains(t, a.Text, "**산업디자인과**")

	a = r.Respond("학과 정보 알려줘")
	assert.Equal(t, model.KindMajorList, a.Kind)
	assert.True(t, a.CanVisualize)
}

func TestRespond_AdmissionUsesLatestYear(t *testing.T) {
	a := newResponder(t).Respond("진학률 알려줘")

	assert.Equal(t, model.KindAdmissionTrend, a.Kind)
	assert.Contains(t, a.Text, "2023년 전체 진학률: 72.8%")
	assert.Contains(t, a.Text, "전문대 진학률: 19.7%")
}

func TestRespond_EmploymentAndRecommendation(t *testing.T) {
	r := newResponder(t)

	a := r.Respond("취업 잘 되는 직업")
	assert.Equal(t, intent.CategoryEmployment, a.Category)
	assert.Equal(t, model.KindEmploymentChart, a.Kind)

	a = r.Respond("어디가 좋을까?")
	assert.Equal(t, intent.CategoryRecommendation, a.Category)
	assert.Equal(t, model.KindEmploymentChart, a.Kind)
	assert.True(t, strings.Contains(a.Text, "1. **간호학과**"), a.Text)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "3.0", formatNumber(3))
	assert.Equal(t, "2.5", formatNumber(2.5))
	assert.Equal(t, "78.5", formatNumber(78.5))
	assert.Equal(t, "28,000", thousands(28000))
	assert.Equal(t, "950", thousands(950))
	assert.Equal(t, "1,234,567", thousands(1234567))
	assert.Equal(t, "-4,800", thousands(-4800))
}

func names(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.University.Name
	}
	return out
}

func safeties(recs []Recommendation) []Safety {
	out := make([]Safety, len(recs))
	for i, r := range recs {
		out[i] = r.Safety
	}
	return out
}

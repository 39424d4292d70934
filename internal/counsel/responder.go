// Package counsel turns a classified question into a text answer and an
// optional visualization offer, reading only from the tabular store.
package counsel

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/stemsi/jinro-backend/internal/dataset"
	"github.com/stemsi/jinro-backend/internal/intent"
	"github.com/stemsi/jinro-backend/internal/model"
)

// UnknownResponse is returned verbatim for questions no rule matches. Callers
// compare against it to skip history logging and repeated answers.
const UnknownResponse = "죄송합니다 이 질문을 찾지 못하겠습니다 죄송합니다"

// IsUnknown reports whether a response text is the unknown sentinel.
func IsUnknown(text string) bool { return text == UnknownResponse }

var (
	universityListWords = []string{"인서울", "서울", "대학", "학교"}
	majorListWords      = []string{"학과", "전공", "과"}
)

// Answer is the generator output.
type Answer struct {
	Text         string
	CanVisualize bool
	Kind         model.Kind // empty when no visualization applies
	Category     intent.Category
}

// Known is false only for the unknown sentinel.
func (a Answer) Known() bool { return !IsUnknown(a.Text) }

// Responder is a pure function of its inputs and the read-only store.
type Responder struct {
	store      *dataset.Store
	classifier *intent.Classifier
}

func NewResponder(store *dataset.Store, classifier *intent.Classifier) *Responder {
	if classifier == nil {
		classifier = intent.Default()
	}
	return &Responder{store: store, classifier: classifier}
}

// Respond never fails; any input yields an answer.
func (r *Responder) Respond(text string) Answer {
	cat, ok := r.classifier.Classify(text)
	if !ok {
		return unknown()
	}

	var a Answer
	switch cat {
	case intent.CategoryGrade:
		a = r.gradeAnswer(text)
	case intent.CategoryUniversity:
		a = r.universityAnswer(text)
	case intent.CategoryMajor:
		a = r.majorAnswer(text)
	case intent.CategoryAdmission:
		a = r.admissionAnswer()
	case intent.CategoryEmployment:
		a = employmentAnswer()
	case intent.CategoryRecommendation:
		a = r.recommendationAnswer()
	default:
		return unknown()
	}
	a.Category = cat
	return a
}

func unknown() Answer {
	return Answer{Text: UnknownResponse}
}

func (r *Responder) gradeAnswer(text string) Answer {
	grade, ok := intent.ExtractGrade(text)
	if !ok {
		return Answer{Text: "내신 등급을 알려주시면 갈 수 있는 대학을 추천해드릴 수 있습니다.\n" +
			"예: '내신 2.5등급으로 갈 수 있는 대학 알려줘'"}
	}

	if u, found := r.store.FindUniversityIn(text); found {
		return Answer{
			Text:         eligibilityText(CheckEligibility(u, grade)),
			CanVisualize: true,
			Kind:         model.KindGradeAnalysis,
		}
	}

	recs, total := Recommend(r.store, grade)
	if total == 0 {
		return Answer{Text: fmt.Sprintf("내신 %s등급으로는 인서울 대학 입학이 어려울 수 있습니다. "+
			"다른 지역 대학이나 전문대를 고려해보시기 바랍니다.", formatNumber(grade))}
	}
	return Answer{
		Text:         recommendationText(grade, recs, total),
		CanVisualize: true,
		Kind:         model.KindGradeRecommendation,
	}
}

func eligibilityText(e Eligibility) string {
	u := e.University
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** 입학 가능성 분석:\n\n", u.Name)
	fmt.Fprintf(&b, "📊 **내신 등급**: %s등급\n", formatNumber(e.UserGrade))
	fmt.Fprintf(&b, "🎯 **필요 등급**: %s등급\n", formatNumber(u.RequiredGrade))

	if !e.Eligible {
		fmt.Fprintf(&b, "❌ **결과**: 입학이 어려울 수 있습니다. (필요 등급보다 %.1f등급 낮습니다)\n\n", e.Gap)
		b.WriteString("다른 대학을 추천해드릴까요?\n")
		return b.String()
	}

	if e.Gap < 0 {
		fmt.Fprintf(&b, "✅ **결과**: 입학 가능성이 있습니다! (필요 등급보다 %.1f등급 높습니다)\n\n", -e.Gap)
	} else {
		fmt.Fprintf(&b, "✅ **결과**: 입학 가능성이 있습니다! (필요 등급과 비슷합니다, 차이 %.1f등급)\n\n", e.Gap)
	}
	fmt.Fprintf(&b, "📍 **위치**: %s\n", u.Location)
	fmt.Fprintf(&b, "💼 **취업률**: %s%%\n", formatNumber(u.Employment))
	fmt.Fprintf(&b, "🎓 **주요학과**: %s\n", u.FlagshipMajor)
	return b.String()
}

func recommendationText(grade float64, recs []Recommendation, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**내신 %s등급으로 갈 수 있는 인서울 대학교** 추천:\n\n", formatNumber(grade))
	for i, rec := range recs {
		u := rec.University
		fmt.Fprintf(&b, "%d. **%s** %s\n", i+1, u.Name, rec.Safety.Label())
		fmt.Fprintf(&b, "   - 필요 등급: %s등급\n", formatNumber(u.RequiredGrade))
		fmt.Fprintf(&b, "   - 취업률: %s%%\n", formatNumber(u.Employment))
		fmt.Fprintf(&b, "   - 주요학과: %s\n\n", u.FlagshipMajor)
	}
	fmt.Fprintf(&b, "📊 총 **%d개** 대학에 지원 가능합니다.\n\n", total)
	b.WriteString("💡 **안내**: 등급은 참고용이며, 실제 입시 결과는 변동될 수 있습니다.")
	return b.String()
}

func (r *Responder) universityAnswer(text string) Answer {
	if u, ok := r.store.FindUniversityIn(text); ok {
		var b strings.Builder
		fmt.Fprintf(&b, "**%s** 정보를 알려드리겠습니다.\n\n", u.Name)
		fmt.Fprintf(&b, "📍 **위치**: %s\n", u.Location)
		fmt.Fprintf(&b, "📅 **설립연도**: %d년\n", u.FoundedYear)
		fmt.Fprintf(&b, "👥 **학생수**: %s명\n", thousands(u.StudentCount))
		fmt.Fprintf(&b, "🎓 **주요학과**: %s\n", u.FlagshipMajor)
		fmt.Fprintf(&b, "📊 **평균등급**: %s등급\n", formatNumber(u.RequiredGrade))
		fmt.Fprintf(&b, "💼 **취업률**: %s%%\n", formatNumber(u.Employment))
		return Answer{Text: b.String(), CanVisualize: true, Kind: model.KindUniversityDetail}
	}
	if containsAny(text, universityListWords) {
		return Answer{
			Text:         "인서울 주요 대학교 정보를 보유하고 있습니다. 어떤 대학교에 대해 궁금하신가요?",
			CanVisualize: true,
			Kind:         model.KindUniversityList,
		}
	}
	return Answer{Text: "대한민국 주요 대학교 정보를 보유하고 있습니다.", CanVisualize: true, Kind: model.KindUniversityList}
}

func (r *Responder) majorAnswer(text string) Answer {
	if m, ok := r.store.FindMajorIn(text); ok {
		var b strings.Builder
		fmt.Fprintf(&b, "**%s** 정보를 알려드리겠습니다.\n\n", m.Name)
		fmt.Fprintf(&b, "📚 **분야**: %s\n", m.Field)
		fmt.Fprintf(&b, "💰 **평균연봉**: %s만원\n", thousands(m.AvgSalary))
		fmt.Fprintf(&b, "💼 **취업률**: %s%%\n", formatNumber(m.Employment))
		fmt.Fprintf(&b, "🎯 **필요역량**: %s\n", m.Competencies)
		fmt.Fprintf(&b, "✨ **추천적성**: %s\n", m.Aptitude)
		return Answer{Text: b.String(), CanVisualize: true, Kind: model.KindMajorDetail}
	}
	if containsAny(text, majorListWords) {
		return Answer{
			Text:         "다양한 학과의 정보를 보유하고 있습니다. 어떤 학과에 대해 궁금하신가요?",
			CanVisualize: true,
			Kind:         model.KindMajorList,
		}
	}
	return Answer{Text: "다양한 학과의 정보를 보유하고 있습니다.", CanVisualize: true, Kind: model.KindMajorList}
}

func (r *Responder) admissionAnswer() Answer {
	latest := r.store.Latest()
	var b strings.Builder
	b.WriteString("**대학 진학률** 정보를 알려드리겠습니다.\n\n")
	b.WriteString("최근 5년간 대학 진학률 추이를 확인하실 수 있습니다.\n")
	fmt.Fprintf(&b, "- %d년 전체 진학률: %s%%\n", latest.Year, formatNumber(latest.Overall))
	fmt.Fprintf(&b, "- 4년제 진학률: %s%%\n", formatNumber(latest.FourYear))
	fmt.Fprintf(&b, "- 전문대 진학률: %s%%\n", formatNumber(latest.TwoYear))
	return Answer{Text: b.String(), CanVisualize: true, Kind: model.KindAdmissionTrend}
}

func employmentAnswer() Answer {
	return Answer{
		Text: "**취업률** 정보를 알려드리겠습니다.\n\n" +
			"학과별 취업률 및 평균 연봉 정보를 확인하실 수 있습니다.\n",
		CanVisualize: true,
		Kind:         model.KindEmploymentChart,
	}
}

const recommendMajorCount = 5

func (r *Responder) recommendationAnswer() Answer {
	majors := r.store.Majors()
	slices.SortStableFunc(majors, func(a, b model.Major) int {
		return cmp.Compare(b.Employment, a.Employment)
	})
	if len(majors) > recommendMajorCount {
		majors = majors[:recommendMajorCount]
	}

	var b strings.Builder
	b.WriteString("**취업률이 높은 학과** 추천:\n\n")
	for i, m := range majors {
		fmt.Fprintf(&b, "%d. **%s** (%s) - 취업률 %s%%, 평균연봉 %s만원\n",
			i+1, m.Name, m.Field, formatNumber(m.Employment), thousands(m.AvgSalary))
	}
	b.WriteString("\n💡 내신 등급을 알려주시면 갈 수 있는 대학도 추천해드릴 수 있습니다.")
	return Answer{Text: b.String(), CanVisualize: true, Kind: model.KindEmploymentChart}
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

package counsel

import (
	"slices"

	"github.com/stemsi/jinro-backend/internal/dataset"
	"github.com/stemsi/jinro-backend/internal/model"
)

const (
	// Tolerance is how far above a university's required grade a student may be
	// and still count as eligible.
	Tolerance = 0.3
	// ModerateBand separates a moderate match from a reach.
	ModerateBand = 0.2
	// RecommendLimit caps the listed recommendations.
	RecommendLimit = 10
	// RecommendLocation restricts grade recommendations to one region.
	RecommendLocation = "서울"

	gradeEpsilon = 1e-9
)

// atMost compares grades with a small epsilon so 2.0+0.3 admits 2.3.
func atMost(a, b float64) bool { return a <= b+gradeEpsilon }

// Eligibility is the outcome of checking one grade against one university.
type Eligibility struct {
	University model.University
	UserGrade  float64
	Eligible   bool
	// Gap is UserGrade minus the required grade; positive means the student is
	// below the requirement.
	Gap float64
}

func CheckEligibility(u model.University, grade float64) Eligibility {
	return Eligibility{
		University: u,
		UserGrade:  grade,
		Eligible:   atMost(grade, u.RequiredGrade+Tolerance),
		Gap:        grade - u.RequiredGrade,
	}
}

type Safety string

const (
	SafetySafe     Safety = "safe"
	SafetyModerate Safety = "moderate"
	SafetyReach    Safety = "reach"
)

// Label is the display badge.
func (s Safety) Label() string {
	switch s {
	case SafetySafe:
		return "✅ 안전"
	case SafetyModerate:
		return "⚠️ 적정"
	default:
		return "🔶 도전"
	}
}

func ClassifySafety(grade, required float64) Safety {
	switch {
	case atMost(grade, required):
		return SafetySafe
	case atMost(grade, required+ModerateBand):
		return SafetyModerate
	default:
		return SafetyReach
	}
}

type Recommendation struct {
	University model.University
	Safety     Safety
}

// Recommend lists universities in RecommendLocation whose required grade is at
// least grade-Tolerance, ascending by required grade and capped at
// RecommendLimit. total counts every match before the cap.
func Recommend(store *dataset.Store, grade float64) (recs []Recommendation, total int) {
	var matches []model.University
	for _, u := range store.Universities() {
		if u.Location != RecommendLocation {
			continue
		}
		if atMost(grade-Tolerance, u.RequiredGrade) {
			matches = append(matches, u)
		}
	}
	slices.SortStableFunc(matches, func(a, b model.University) int {
		switch {
		case a.RequiredGrade < b.RequiredGrade:
			return -1
		case a.RequiredGrade > b.RequiredGrade:
			return 1
		}
		return 0
	})

	total = len(matches)
	if len(matches) > RecommendLimit {
		matches = matches[:RecommendLimit]
	}
	recs = make([]Recommendation, 0, len(matches))
	for _, u := range matches {
		recs = append(recs, Recommendation{University: u, Safety: ClassifySafety(grade, u.RequiredGrade)})
	}
	return recs, total
}

// Package dataset holds the read-only university, major and admission records.
package dataset

import (
	"math"
	"slices"
	"strings"

	"github.com/stemsi/jinro-backend/internal/model"
)

// Source names used in load errors.
const (
	SourceUniversities = "universities"
	SourceMajors       = "majors"
	SourceAdmissions   = "admission_rates"
)

// Store is immutable after New and safe to share between sessions.
type Store struct {
	universities []model.University
	majors       []model.Major
	admissions   []model.AdmissionYear

	uniIndex   map[string]int
	majorIndex map[string]int
}

// New validates the three record sets and builds the store.
// Admission years are sorted ascending so the last element is the latest.
func New(universities []model.University, majors []model.Major, admissions []model.AdmissionYear) (*Store, error) {
	s := &Store{
		universities: slices.Clone(universities),
		majors:       slices.Clone(majors),
		admissions:   slices.Clone(admissions),
		uniIndex:     make(map[string]int, len(universities)),
		majorIndex:   make(map[string]int, len(majors)),
	}

	for i, u := range s.universities {
		if _, dup := s.uniIndex[u.Name]; dup {
			return nil, &LoadError{Source: SourceUniversities, Row: i + 1, Err: ErrDuplicateName}
		}
		if u.RequiredGrade < 0 || math.IsNaN(u.RequiredGrade) || math.IsInf(u.RequiredGrade, 0) {
			return nil, &LoadError{Source: SourceUniversities, Row: i + 1, Err: ErrInvalidGrade}
		}
		s.uniIndex[u.Name] = i
	}

	for i, m := range s.majors {
		if _, dup := s.majorIndex[m.Name]; dup {
			return nil, &LoadError{Source: SourceMajors, Row: i + 1, Err: ErrDuplicateName}
		}
		s.majorIndex[m.Name] = i
	}

	if len(s.admissions) == 0 {
		return nil, &LoadError{Source: SourceAdmissions, Err: ErrNoAdmission}
	}
	slices.SortStableFunc(s.admissions, func(a, b model.AdmissionYear) int {
		return a.Year - b.Year
	})

	return s, nil
}

// Universities returns the records in source order.
func (s *Store) Universities() []model.University { return slices.Clone(s.universities) }

// Majors returns the records in source order.
func (s *Store) Majors() []model.Major { return slices.Clone(s.majors) }

// AdmissionRates returns the series ordered by year ascending.
func (s *Store) AdmissionRates() []model.AdmissionYear { return slices.Clone(s.admissions) }

// Latest returns the most recent admission year.
func (s *Store) Latest() model.AdmissionYear { return s.admissions[len(s.admissions)-1] }

func (s *Store) UniversityByName(name string) (model.University, bool) {
	i, ok := s.uniIndex[name]
	if !ok {
		return model.University{}, false
	}
	return s.universities[i], true
}

func (s *Store) MajorByName(name string) (model.Major, bool) {
	i, ok := s.majorIndex[name]
	if !ok {
		return model.Major{}, false
	}
	return s.majors[i], true
}

// FindUniversityIn returns the first university, in source order, whose full
// name occurs in text.
func (s *Store) FindUniversityIn(text string) (model.University, bool) {
	for _, u := range s.universities {
		if u.Name != "" && strings.Contains(text, u.Name) {
			return u, true
		}
	}
	return model.University{}, false
}

// FindMajorIn returns the first major whose name or field occurs in text.
func (s *Store) FindMajorIn(text string) (model.Major, bool) {
	for _, m := range s.majors {
		if (m.Name != "" && strings.Contains(text, m.Name)) ||
			(m.Field != "" && strings.Contains(text, m.Field)) {
			return m, true
		}
	}
	return model.Major{}, false
}

// Stats summarizes the data set for the landing page.
func (s *Store) Stats() model.DatasetStats {
	latest := s.Latest()
	stats := model.DatasetStats{
		UniversityCount:   len(s.universities),
		MajorCount:        len(s.majors),
		LatestYear:        latest.Year,
		LatestOverallRate: latest.Overall,
	}
	if len(s.majors) > 0 {
		var sum float64
		for _, m := range s.majors {
			sum += m.Employment
		}
		stats.AvgEmployment = sum / float64(len(s.majors))
	}
	return stats
}

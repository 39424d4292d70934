package visual

import (
	"strconv"

	"github.com/stemsi/jinro-backend/internal/dataset"
	"github.com/stemsi/jinro-backend/internal/model"
)

// sheet is a typed table; cells stay numeric until rendered.
type sheet struct {
	name    string
	columns []string
	rows    [][]any
}

func universitySheet(s *dataset.Store) sheet {
	sh := sheet{
		name:    "대학",
		columns: []string{"대학명", "위치", "설립연도", "학생수", "주요학과", "평균등급", "취업률"},
	}
	for _, u := range s.Universities() {
		sh.rows = append(sh.rows, []any{u.Name, u.Location, u.FoundedYear, u.StudentCount, u.FlagshipMajor, u.RequiredGrade, u.Employment})
	}
	return sh
}

func majorSheet(s *dataset.Store) sheet {
	sh := sheet{
		name:    "학과",
		columns: []string{"학과명", "분야", "평균연봉", "취업률", "필요역량", "추천적성"},
	}
	for _, m := range s.Majors() {
		sh.rows = append(sh.rows, []any{m.Name, m.Field, m.AvgSalary, m.Employment, m.Competencies, m.Aptitude})
	}
	return sh
}

func admissionSheet(s *dataset.Store) sheet {
	sh := sheet{
		name:    "진학률",
		columns: []string{"연도", "대학진학률", "4년제진학률", "전문대진학률"},
	}
	for _, a := range s.AdmissionRates() {
		sh.rows = append(sh.rows, []any{a.Year, a.Overall, a.FourYear, a.TwoYear})
	}
	return sh
}

func (sh sheet) table() *model.Table {
	t := &model.Table{Name: sh.name, Columns: sh.columns, Rows: make([][]string, 0, len(sh.rows))}
	for _, row := range sh.rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cellString(v)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func cellString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}

func itoa(n int) string { return strconv.Itoa(n) }

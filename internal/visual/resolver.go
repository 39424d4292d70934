// Package visual maps visualization kinds to tables and chart specifications
// and renders them to PNG or XLSX.
package visual

import (
	"cmp"
	"errors"
	"slices"

	"github.com/stemsi/jinro-backend/internal/dataset"
	"github.com/stemsi/jinro-backend/internal/model"
)

var ErrUnknownKind = errors.New("unknown visualization kind")

// Offerable reports whether a kind has anything to show beyond the text answer.
func Offerable(kind model.Kind) bool {
	switch kind {
	case model.KindUniversityDetail, model.KindUniversityList,
		model.KindMajorDetail, model.KindMajorList,
		model.KindAdmissionTrend, model.KindEmploymentChart:
		return true
	}
	return false
}

// Resolver builds renderables from the store. With ChartsEnabled false every
// chart kind degrades to the table it is drawn from.
type Resolver struct {
	store         *dataset.Store
	chartsEnabled bool
}

func NewResolver(store *dataset.Store, chartsEnabled bool) *Resolver {
	return &Resolver{store: store, chartsEnabled: chartsEnabled}
}

func (r *Resolver) ChartsEnabled() bool { return r.chartsEnabled }

// Resolve has no side effects and does not depend on any chat state.
func (r *Resolver) Resolve(kind model.Kind) (model.Renderable, error) {
	switch kind {
	case model.KindUniversityList:
		return tableOf(kind, universitySheet(r.store)), nil
	case model.KindMajorList:
		return tableOf(kind, majorSheet(r.store)), nil
	case model.KindGradeAnalysis, model.KindGradeRecommendation:
		return model.Renderable{Type: model.RenderNone, Kind: kind}, nil
	}

	if !r.chartsEnabled {
		switch kind {
		case model.KindUniversityDetail:
			return tableOf(kind, universitySheet(r.store)), nil
		case model.KindMajorDetail, model.KindEmploymentChart:
			return tableOf(kind, majorSheet(r.store)), nil
		case model.KindAdmissionTrend:
			return tableOf(kind, admissionSheet(r.store)), nil
		}
		return model.Renderable{}, ErrUnknownKind
	}

	var spec *model.ChartSpec
	switch kind {
	case model.KindUniversityDetail:
		spec = r.universityEmploymentChart()
	case model.KindMajorDetail:
		spec = r.salaryScatter()
	case model.KindAdmissionTrend:
		spec = r.admissionTrend()
	case model.KindEmploymentChart:
		spec = r.majorEmploymentChart()
	default:
		return model.Renderable{}, ErrUnknownKind
	}
	return model.Renderable{Type: model.RenderChart, Kind: kind, Chart: spec}, nil
}

func tableOf(kind model.Kind, sh sheet) model.Renderable {
	return model.Renderable{Type: model.RenderTable, Kind: kind, Table: sh.table()}
}

// Employment rate per university, highest first.
func (r *Resolver) universityEmploymentChart() *model.ChartSpec {
	unis := r.store.Universities()
	slices.SortStableFunc(unis, func(a, b model.University) int {
		return cmp.Compare(b.Employment, a.Employment)
	})
	s := model.Series{Name: "취업률", Color: "#1f77b4"}
	for i, u := range unis {
		s.Points = append(s.Points, model.Point{Label: u.Name, X: float64(i), Y: u.Employment})
	}
	return &model.ChartSpec{
		Type: model.ChartBar, Title: "대학별 취업률 비교",
		XLabel: "대학교", YLabel: "취업률 (%)",
		Series: []model.Series{s},
	}
}

// Salary against employment rate, one series per field, sized by salary.
func (r *Resolver) salaryScatter() *model.ChartSpec {
	var series []model.Series
	byField := map[string]int{}
	for _, m := range r.store.Majors() {
		i, ok := byField[m.Field]
		if !ok {
			i = len(series)
			byField[m.Field] = i
			series = append(series, model.Series{Name: m.Field, Color: paletteColor(i)})
		}
		series[i].Points = append(series[i].Points, model.Point{
			Label: m.Name, X: float64(m.AvgSalary), Y: m.Employment, Size: float64(m.AvgSalary),
		})
	}
	return &model.ChartSpec{
		Type: model.ChartScatter, Title: "학과별 평균연봉 vs 취업률",
		XLabel: "평균연봉 (만원)", YLabel: "취업률 (%)",
		Series: series,
	}
}

func (r *Resolver) admissionTrend() *model.ChartSpec {
	overall := model.Series{Name: "전체 진학률", Color: "#1f77b4"}
	four := model.Series{Name: "4년제", Color: "#2ca02c"}
	two := model.Series{Name: "전문대", Color: "#ff7f0e"}
	for _, a := range r.store.AdmissionRates() {
		x := float64(a.Year)
		overall.Points = append(overall.Points, model.Point{Label: itoa(a.Year), X: x, Y: a.Overall})
		four.Points = append(four.Points, model.Point{Label: itoa(a.Year), X: x, Y: a.FourYear})
		two.Points = append(two.Points, model.Point{Label: itoa(a.Year), X: x, Y: a.TwoYear})
	}
	return &model.ChartSpec{
		Type: model.ChartLine, Title: "연도별 대학 진학률 추이",
		XLabel: "연도", YLabel: "진학률 (%)",
		Series: []model.Series{overall, four, two},
	}
}

// Employment rate per major, lowest first, drawn horizontally.
func (r *Resolver) majorEmploymentChart() *model.ChartSpec {
	majors := r.store.Majors()
	slices.SortStableFunc(majors, func(a, b model.Major) int {
		return cmp.Compare(a.Employment, b.Employment)
	})
	s := model.Series{Name: "취업률", Color: "#2ca02c"}
	for i, m := range majors {
		s.Points = append(s.Points, model.Point{Label: m.Name, X: m.Employment, Y: float64(i)})
	}
	return &model.ChartSpec{
		Type: model.ChartBarH, Title: "학과별 취업률",
		XLabel: "취업률 (%)", YLabel: "학과",
		Series: []model.Series{s},
	}
}

var palette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf"}

func paletteColor(i int) string { return palette[i%len(palette)] }

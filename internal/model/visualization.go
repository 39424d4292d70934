package model

// Kind selects which table or chart backs a visualization offer.
type Kind string

const (
	KindUniversityDetail    Kind = "university-detail"
	KindUniversityList      Kind = "university-list"
	KindMajorDetail         Kind = "major-detail"
	KindMajorList           Kind = "major-list"
	KindAdmissionTrend      Kind = "admission-trend"
	KindEmploymentChart     Kind = "employment-chart"
	KindGradeAnalysis       Kind = "grade-analysis"
	KindGradeRecommendation Kind = "grade-recommendation"
)

// Kinds lists every known kind.
var Kinds = []Kind{
	KindUniversityDetail,
	KindUniversityList,
	KindMajorDetail,
	KindMajorList,
	KindAdmissionTrend,
	KindEmploymentChart,
	KindGradeAnalysis,
	KindGradeRecommendation,
}

// ParseKind validates a kind string.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

type RenderableType string

const (
	RenderNone  RenderableType = "none"
	RenderTable RenderableType = "table"
	RenderChart RenderableType = "chart"
)

// Renderable is either a table, a chart specification, or nothing.
type Renderable struct {
	Type  RenderableType `json:"type"`
	Kind  Kind           `json:"kind"`
	Table *Table         `json:"table,omitempty"`
	Chart *ChartSpec     `json:"chart,omitempty"`
}

// Table is a full record dump with display headers.
type Table struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type ChartType string

const (
	ChartBar     ChartType = "bar"
	ChartBarH    ChartType = "bar-horizontal"
	ChartScatter ChartType = "scatter"
	ChartLine    ChartType = "line"
)

// ChartSpec describes a chart without rendering it.
type ChartSpec struct {
	Type   ChartType `json:"type"`
	Title  string    `json:"title"`
	XLabel string    `json:"x_label"`
	YLabel string    `json:"y_label"`
	Series []Series  `json:"series"`
}

// Series is one named data series. Points carry an optional label and size.
type Series struct {
	Name   string  `json:"name"`
	Color  string  `json:"color,omitempty"`
	Points []Point `json:"points"`
}

type Point struct {
	Label string  `json:"label,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size,omitempty"`
}

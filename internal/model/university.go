package model

// University is one row of the university record set. Name is unique.
type University struct {
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	FoundedYear   int     `json:"founded_year"`
	StudentCount  int     `json:"student_count"`
	FlagshipMajor string  `json:"flagship_majors"`
	RequiredGrade float64 `json:"required_grade"` // Lower is more competitive.
	Employment    float64 `json:"employment_rate"`
}

// Major is one row of the major record set. Name is unique.
type Major struct {
	Name         string  `json:"name"`
	Field        string  `json:"field"`
	AvgSalary    int     `json:"avg_salary"` // 만원 per year
	Employment   float64 `json:"employment_rate"`
	Competencies string  `json:"competencies"`
	Aptitude     string  `json:"aptitude"`
}

// AdmissionYear is one year of the admission-rate time series.
type AdmissionYear struct {
	Year     int     `json:"year"`
	Overall  float64 `json:"overall_rate"`
	FourYear float64 `json:"four_year_rate"`
	TwoYear  float64 `json:"two_year_rate"`
}

// DatasetStats is the headline summary shown on the landing page.
type DatasetStats struct {
	UniversityCount   int     `json:"university_count"`
	MajorCount        int     `json:"major_count"`
	LatestYear        int     `json:"latest_year"`
	LatestOverallRate float64 `json:"latest_overall_rate"`
	AvgEmployment     float64 `json:"avg_major_employment"`
}

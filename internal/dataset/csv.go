package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/stemsi/jinro-backend/internal/model"
)

// File names inside the data directory.
const (
	UniversityFile = "university_info.csv"
	MajorFile      = "major_info.csv"
	AdmissionFile  = "admission_rate.csv"
)

// Column headers of the source files.
const (
	colUniName       = "대학명"
	colUniLocation   = "위치"
	colUniFounded    = "설립연도"
	colUniStudents   = "학생수"
	colUniMajors     = "주요학과"
	colUniGrade      = "평균등급"
	colEmployment    = "취업률"
	colMajorName     = "학과명"
	colMajorField    = "분야"
	colMajorSalary   = "평균연봉"
	colMajorSkills   = "필요역량"
	colMajorAptitude = "추천적성"
	colYear          = "연도"
	colOverall       = "대학진학률"
	colFourYear      = "4년제진학률"
	colTwoYear       = "전문대진학률"
)

// LoadCSV reads the three record sets from dir and builds a Store.
func LoadCSV(dir string) (*Store, error) {
	unis, err := readFile(filepath.Join(dir, UniversityFile), SourceUniversities, ReadUniversities)
	if err != nil {
		return nil, err
	}
	majors, err := readFile(filepath.Join(dir, MajorFile), SourceMajors, ReadMajors)
	if err != nil {
		return nil, err
	}
	admissions, err := readFile(filepath.Join(dir, AdmissionFile), SourceAdmissions, ReadAdmissions)
	if err != nil {
		return nil, err
	}
	return New(unis, majors, admissions)
}

func readFile[T any](path, source string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	defer f.Close()
	return read(f)
}

// ReadUniversities parses a university CSV document.
func ReadUniversities(r io.Reader) ([]model.University, error) {
	t, err := readTable(r, SourceUniversities,
		colUniName, colUniLocation, colUniFounded, colUniStudents, colUniMajors, colUniGrade, colEmployment)
	if err != nil {
		return nil, err
	}
	out := make([]model.University, 0, len(t.rows))
	for i := range t.rows {
		p := t.parser(i)
		u := model.University{
			Name:          p.str(colUniName),
			Location:      p.str(colUniLocation),
			FoundedYear:   p.integer(colUniFounded),
			StudentCount:  p.integer(colUniStudents),
			FlagshipMajor: p.str(colUniMajors),
			RequiredGrade: p.float(colUniGrade),
			Employment:    p.float(colEmployment),
		}
		if p.err != nil {
			return nil, p.err
		}
		out = append(out, u)
	}
	return out, nil
}

// ReadMajors parses a major CSV document.
func ReadMajors(r io.Reader) ([]model.Major, error) {
	t, err := readTable(r, SourceMajors,
		colMajorName, colMajorField, colMajorSalary, colEmployment, colMajorSkills, colMajorAptitude)
	if err != nil {
		return nil, err
	}
	out := make([]model.Major, 0, len(t.rows))
	for i := range t.rows {
		p := t.parser(i)
		m := model.Major{
			Name:         p.str(colMajorName),
			Field:        p.str(colMajorField),
			AvgSalary:    p.integer(colMajorSalary),
			Employment:   p.float(colEmployment),
			Competencies: p.str(colMajorSkills),
			Aptitude:     p.str(colMajorAptitude),
		}
		if p.err != nil {
			return nil, p.err
		}
		out = append(out, m)
	}
	return out, nil
}

// ReadAdmissions parses an admission-rate CSV document.
func ReadAdmissions(r io.Reader) ([]model.AdmissionYear, error) {
	t, err := readTable(r, SourceAdmissions, colYear, colOverall, colFourYear, colTwoYear)
	if err != nil {
		return nil, err
	}
	out := make([]model.AdmissionYear, 0, len(t.rows))
	for i := range t.rows {
		p := t.parser(i)
		a := model.AdmissionYear{
			Year:     p.integer(colYear),
			Overall:  p.float(colOverall),
			FourYear: p.float(colFourYear),
			TwoYear:  p.float(colTwoYear),
		}
		if p.err != nil {
			return nil, p.err
		}
		out = append(out, a)
	}
	return out, nil
}

type table struct {
	source string
	index  map[string]int
	rows   [][]string
}

func readTable(r io.Reader, source string, required ...string) (*table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty document")
		}
		return nil, &LoadError{Source: source, Err: err}
	}

	t := &table{source: source, index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		t.index[h] = i
	}
	for _, col := range required {
		if _, ok := t.index[col]; !ok {
			return nil, &LoadError{Source: source, Err: fmt.Errorf("%w %q", ErrMissingColumn, col)}
		}
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	t.rows = rows
	return t, nil
}

func (t *table) parser(i int) *rowParser {
	return &rowParser{t: t, row: i}
}

// rowParser keeps the first conversion error so a row can be read field by field.
type rowParser struct {
	t   *table
	row int
	err error
}

func (p *rowParser) str(col string) string {
	return strings.TrimSpace(p.t.rows[p.row][p.t.index[col]])
}

func (p *rowParser) integer(col string) int {
	raw := strings.ReplaceAll(p.str(col), ",", "")
	n, err := strconv.Atoi(raw)
	if err != nil {
		// Tolerate "1946.0" style integers written by spreadsheet tools.
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			p.fail(col, err)
			return 0
		}
		n = int(f)
	}
	return n
}

func (p *rowParser) float(col string) float64 {
	f, err := strconv.ParseFloat(strings.ReplaceAll(p.str(col), ",", ""), 64)
	if err != nil {
		p.fail(col, err)
		return 0
	}
	return f
}

func (p *rowParser) fail(col string, err error) {
	if p.err == nil {
		p.err = &LoadError{Source: p.t.source, Row: p.row + 1, Err: fmt.Errorf("column %q: %w", col, err)}
	}
}

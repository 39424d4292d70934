// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stemsi/jinro-backend/internal/dataset"
	"github.com/stemsi/jinro-backend/internal/model"
)

// Universities is a small fixed record set. 서강대학교 requires exactly 2.0.
func Universities() []model.University {
	return []model.University{
		{Name: "서울대학교", Location: "서울", FoundedYear: 1946, StudentCount: 28000, FlagshipMajor: "의예과, 컴퓨터공학과", RequiredGrade: 1.1, Employment: 78.5},
		{Name: "서강대학교", Location: "서울", FoundedYear: 1960, StudentCount: 12000, FlagshipMajor: "경제학과, 컴퓨터공학과", RequiredGrade: 2.0, Employment: 72.4},
		{Name: "중앙대학교", Location: "서울", FoundedYear: 1918, StudentCount: 22000, FlagshipMajor: "간호학과, 경영학과", RequiredGrade: 2.3, Employment: 70.8},
		{Name: "경희대학교", Location: "서울", FoundedYear: 1949, StudentCount: 25000, FlagshipMajor: "의예과, 간호학과", RequiredGrade: 2.4, Employment: 69.5},
		{Name: "부산대학교", Location: "부산", FoundedYear: 1946, StudentCount: 26000, FlagshipMajor: "기계공학과, 간호학과", RequiredGrade: 2.8, Employment: 66.8},
		{Name: "건국대학교", Location: "서울", FoundedYear: 1946, StudentCount: 20000, FlagshipMajor: "생명과학과, 건축학과", RequiredGrade: 2.9, Employment: 66.2},
	}
}

func Majors() []model.Major {
	return []model.Major{
		{Name: "컴퓨터공학과", Field: "공학", AvgSalary: 4800, Employment: 82.5, Competencies: "논리적 사고, 프로그래밍", Aptitude: "탐구형"},
		{Name: "간호학과", Field: "의학", AvgSalary: 4200, Employment: 91.7, Competencies: "공감 능력, 체력", Aptitude: "사회형"},
		{Name: "심리학과", Field: "사회과학", AvgSalary: 3600, Employment: 60.8, Competencies: "공감 능력, 통계", Aptitude: "사회형"},
		{Name: "산업디자인과", Field: "예술", AvgSalary: 3700, Employment: 62.1, Competencies: "창의력, 스케치", Aptitude: "예술형"},
		{Name: "교육학과", Field: "교육", AvgSalary: 3800, Employment: 64.3, Competencies: "의사소통, 인내심", Aptitude: "사회형"},
	}
}

// Admissions is deliberately out of year order.
func Admissions() []model.AdmissionYear {
	return []model.AdmissionYear{
		{Year: 2023, Overall: 72.8, FourYear: 53.1, TwoYear: 19.7},
		{Year: 2021, Overall: 73.7, FourYear: 52.2, TwoYear: 21.5},
		{Year: 2022, Overall: 73.3, FourYear: 52.6, TwoYear: 20.7},
	}
}

// Store builds a dataset.Store from the fixed records.
func Store(t testing.TB) *dataset.Store {
	t.Helper()
	s, err := dataset.New(Universities(), Majors(), Admissions())
	if err != nil {
		t.Fatalf("build fixture store: %v", err)
	}
	return s
}

// DataDir returns the absolute path of the repository's sample data directory.
func DataDir(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot resolve caller path")
	}
	dir := filepath.Join(filepath.Dir(file), "..", "..", "data")
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("data directory not found: %v", err)
	}
	return dir
}

package intent

import (
	"math"
	"regexp"
	"strconv"

	"golang.org/x/text/width"
)

// Tried in order; the first pattern whose capture parses wins.
var gradePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+\.?\d*)\s*등급`),
	regexp.MustCompile(`등급\s*(\d+\.?\d*)`),
	regexp.MustCompile(`내신\s*(\d+\.?\d*)`),
	regexp.MustCompile(`성적\s*(\d+\.?\d*)`),
}

// ExtractGrade finds a grade value such as "2.5등급" or "내신 3" in text.
// Full-width digits ("２.５등급") are read as their ASCII forms.
// ok is false when no pattern yields a finite number.
func ExtractGrade(text string) (grade float64, ok bool) {
	text = width.Narrow.String(text)
	for _, re := range gradePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil || math.IsInf(v, 0) {
			continue
		}
		return v, true
	}
	return 0, false
}

package intent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractGrade(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"내신 2.5등급으로 갈 수 있는 대학", 2.5, true},
		{"3등급인데 어디 갈까", 3, true},
		{"등급 1.7 정도입니다", 1.7, true},
		{"내신 4.1 이면 어때", 4.1, true},
		{"성적 2 정도", 2, true},
		{"2 등급", 2, true},
		{"내신2.5", 2.5, true},
		{"내신 ２.５등급", 2.5, true},
		{"성적　３", 3, true},
		{"１．７등급", 1.7, true},
		{"value-then-unit wins: 내신 5 인데 2등급", 2, true},
		{"성균관대학교 들어갈 수 있나요?", 0, false},
		{"등급을 모르겠어요", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ExtractGrade(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestExtractGrade_OverflowFallsThrough(t *testing.T) {
	huge := strings.Repeat("9", 400)

	_, ok := ExtractGrade(huge + "등급")
	assert.False(t, ok)

	got, ok := ExtractGrade(huge + "등급 내신 3")
	assert.True(t, ok, "a later pattern may still parse")
	assert.InDelta(t, 3, got, 1e-9)
}

func TestExtractGrade_AnyParseableValue(t *testing.T) {
	for _, v := range []string{"0", "1", "1.5", "2.25", "9.0"} {
		for _, tmpl := range []string{"%s등급", "등급 %s", "내신 %s", "성적 %s"} {
			text := strings.Replace(tmpl, "%s", v, 1)
			_, ok := ExtractGrade(text)
			assert.True(t, ok, text)
		}
	}
}

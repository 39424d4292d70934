package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/jinro-backend/internal/model"
	"github.com/stemsi/jinro-backend/internal/visual"
)

func TestPrintTable_TruncatesLongTables(t *testing.T) {
	tbl := &model.Table{Name: "학과", Columns: []string{"학과명", "취업률"}}
	for i := 0; i < maxTableRows+3; i++ {
		tbl.Rows = append(tbl.Rows, []string{"컴퓨터공학과", "85.0"})
	}

	var buf bytes.Buffer
	printTable(&buf, tbl)

	out := buf.String()
	assert.Contains(t, out, "[학과]")
	assert.Equal(t, maxTableRows, strings.Count(out, "컴퓨터공학과"))
	assert.Contains(t, out, "... 외 3행")
}

func TestPrintRenderable_ChartWithoutRenderer(t *testing.T) {
	spec := &model.ChartSpec{
		Type:   model.ChartLine,
		Title:  "연도별 진학률",
		XLabel: "연도",
		YLabel: "진학률(%)",
		Series: []model.Series{{Name: "전체", Points: []model.Point{{X: 2022, Y: 73.3}, {X: 2023, Y: 72.8}}}},
	}

	var buf bytes.Buffer
	printRenderable(&buf, model.Renderable{Type: model.RenderChart, Kind: model.KindAdmissionTrend, Chart: spec}, nil)

	out := buf.String()
	assert.Contains(t, out, "[연도별 진학률]")
	assert.Contains(t, out, "2022")
	assert.Contains(t, out, "72.8")
}

func TestPrintRenderable_SavesChartPNG(t *testing.T) {
	renderer, err := visual.NewPNGRenderer("")
	require.NoError(t, err)
	dir := t.TempDir()
	spec := &model.ChartSpec{
		Type:   model.ChartBar,
		Title:  "학과별 취업률",
		Series: []model.Series{{Points: []model.Point{{Label: "간호학과", X: 0, Y: 90.1}}}},
	}

	var buf bytes.Buffer
	printRenderable(&buf, model.Renderable{Type: model.RenderChart, Kind: model.KindEmploymentChart, Chart: spec},
		&chartWriter{renderer: renderer, dir: dir})

	path := filepath.Join(dir, "employment-chart.png")
	assert.Contains(t, buf.String(), path)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("\x89PNG")))
}

func TestLinePrompter(t *testing.T) {
	in := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(in, []byte("서울대학교 알려줘\r\n종료\n"), 0o644))
	f, err := os.Open(in)
	require.NoError(t, err)
	defer f.Close()

	var out bytes.Buffer
	p, err := newPrompter(f, &out, "나> ")
	require.NoError(t, err)
	defer p.Close()

	line, err := p.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "서울대학교 알려줘", line)

	line, err = p.ReadLine()
	require.NoError(t, err)
	assert.True(t, isExit(line))

	_, err = p.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
	assert.Contains(t, out.String(), "나> 서울대학교 알려줘")
}

func TestIsExit(t *testing.T) {
	for _, s := range []string{"exit", " QUIT ", "종료", "/q"} {
		assert.True(t, isExit(s), s)
	}
	assert.False(t, isExit("서울대학교 알려줘"))
}

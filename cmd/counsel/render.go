package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/stemsi/jinro-backend/internal/model"
	"github.com/stemsi/jinro-backend/internal/visual"
)

// maxTableRows keeps terminal tables short; the full table is in the xlsx export.
const maxTableRows = 20

// chartWriter saves rendered charts next to the working directory.
type chartWriter struct {
	renderer *visual.PNGRenderer
	dir      string
}

func (cw chartWriter) save(spec *model.ChartSpec, kind model.Kind) (string, error) {
	raw, err := cw.renderer.Render(spec)
	if err != nil {
		return "", err
	}
	path := filepath.Join(cw.dir, string(kind)+".png")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write chart: %w", err)
	}
	return path, nil
}

func printMessage(w io.Writer, msg model.ChatMessage, charts *chartWriter) {
	fmt.Fprintf(w, "상담봇: %s\n", msg.Content)
	if msg.Visualization != nil {
		printRenderable(w, *msg.Visualization, charts)
	}
}

func printRenderable(w io.Writer, r model.Renderable, charts *chartWriter) {
	switch r.Type {
	case model.RenderTable:
		printTable(w, r.Table)
	case model.RenderChart:
		if charts != nil && charts.renderer != nil {
			path, err := charts.save(r.Chart, r.Kind)
			if err == nil {
				fmt.Fprintf(w, "그래프를 %s 에 저장했습니다.\n", path)
				return
			}
			fmt.Fprintf(w, "그래프 저장 실패: %v\n", err)
		}
		printChartSummary(w, r.Chart)
	}
}

func printTable(w io.Writer, t *model.Table) {
	if t == nil {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "[%s]\n", t.Name)
	fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
	for i, row := range t.Rows {
		if i == maxTableRows {
			fmt.Fprintf(tw, "... 외 %d행\n", len(t.Rows)-maxTableRows)
			break
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}

// printChartSummary lists chart points as text when no PNG can be written.
func printChartSummary(w io.Writer, spec *model.ChartSpec) {
	if spec == nil {
		return
	}
	fmt.Fprintf(w, "[%s] (%s / %s)\n", spec.Title, spec.XLabel, spec.YLabel)
	for _, s := range spec.Series {
		if s.Name != "" {
			fmt.Fprintf(w, "  %s\n", s.Name)
		}
		for _, p := range s.Points {
			label := p.Label
			if label == "" {
				label = fmt.Sprintf("%g", p.X)
			}
			fmt.Fprintf(w, "    %-12s %g\n", label, p.Y)
		}
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package visual

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/stemsi/jinro-backend/internal/model"
)

var ErrEmptyChart = errors.New("chart has no data points")

const (
	pngWidth  = 960
	pngHeight = 600

	marginLeft   = 80.0
	marginRight  = 40.0
	marginTop    = 60.0
	marginBottom = 110.0

	yTicks = 5
)

// PNGRenderer draws chart specifications. Without a font path it uses gg's
// built-in bitmap face, which only covers ASCII.
type PNGRenderer struct {
	fontPath string
}

// NewPNGRenderer validates the optional TrueType font up front.
func NewPNGRenderer(fontPath string) (*PNGRenderer, error) {
	if fontPath != "" {
		if _, err := gg.LoadFontFace(fontPath, 12); err != nil {
			return nil, fmt.Errorf("load chart font: %w", err)
		}
	}
	return &PNGRenderer{fontPath: fontPath}, nil
}

type plotArea struct {
	x0, y0, x1, y1 float64
}

func (p plotArea) width() float64  { return p.x1 - p.x0 }
func (p plotArea) height() float64 { return p.y1 - p.y0 }

// Render encodes spec as a PNG image.
func (r *PNGRenderer) Render(spec *model.ChartSpec) ([]byte, error) {
	if spec == nil || pointCount(spec) == 0 {
		return nil, ErrEmptyChart
	}

	dc := gg.NewContext(pngWidth, pngHeight)
	if r.fontPath != "" {
		if err := dc.LoadFontFace(r.fontPath, 12); err != nil {
			return nil, fmt.Errorf("load chart font: %w", err)
		}
	}
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	area := plotArea{marginLeft, marginTop, pngWidth - marginRight, pngHeight - marginBottom}

	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawStringAnchored(spec.Title, pngWidth/2, marginTop/2, 0.5, 0.5)

	switch spec.Type {
	case model.ChartBar:
		drawBars(dc, area, spec)
	case model.ChartBarH:
		drawHorizontalBars(dc, area, spec)
	case model.ChartScatter:
		drawScatter(dc, area, spec)
	case model.ChartLine:
		drawLines(dc, area, spec)
	default:
		return nil, fmt.Errorf("unsupported chart type %q", spec.Type)
	}

	drawAxes(dc, area, spec)
	if len(spec.Series) > 1 {
		drawLegend(dc, area, spec.Series)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func pointCount(spec *model.ChartSpec) int {
	n := 0
	for _, s := range spec.Series {
		n += len(s.Points)
	}
	return n
}

func drawAxes(dc *gg.Context, a plotArea, spec *model.ChartSpec) {
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.SetLineWidth(1.5)
	dc.DrawLine(a.x0, a.y1, a.x1, a.y1)
	dc.DrawLine(a.x0, a.y0, a.x0, a.y1)
	dc.Stroke()

	dc.DrawStringAnchored(spec.XLabel, a.x0+a.width()/2, pngHeight-14, 0.5, 0.5)
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), 18, a.y0+a.height()/2)
	dc.DrawStringAnchored(spec.YLabel, 18, a.y0+a.height()/2, 0.5, 0.5)
	dc.Pop()
}

// valueGrid draws horizontal grid lines with labels for a value range on the y axis.
func valueGrid(dc *gg.Context, a plotArea, lo, hi float64) {
	dc.SetLineWidth(0.5)
	for i := 0; i <= yTicks; i++ {
		v := lo + (hi-lo)*float64(i)/yTicks
		y := a.y1 - a.height()*float64(i)/yTicks
		dc.SetRGB(0.85, 0.85, 0.85)
		dc.DrawLine(a.x0, y, a.x1, y)
		dc.Stroke()
		dc.SetRGB(0.3, 0.3, 0.3)
		dc.DrawStringAnchored(tickLabel(v), a.x0-8, y, 1, 0.5)
	}
}

func drawBars(dc *gg.Context, a plotArea, spec *model.ChartSpec) {
	s := spec.Series[0]
	_, hi := yRange(spec)
	hi = niceMax(hi)
	valueGrid(dc, a, 0, hi)

	band := a.width() / float64(len(s.Points))
	for i, p := range s.Points {
		h := a.height() * p.Y / hi
		x := a.x0 + float64(i)*band + band*0.15
		dc.SetHexColor(colorOr(s.Color, i))
		dc.DrawRectangle(x, a.y1-h, band*0.7, h)
		dc.Fill()

		dc.Push()
		cx := a.x0 + float64(i)*band + band/2
		dc.RotateAbout(gg.Radians(-45), cx, a.y1+10)
		dc.SetRGB(0.2, 0.2, 0.2)
		dc.DrawStringAnchored(p.Label, cx, a.y1+10, 1, 0.5)
		dc.Pop()
	}
}

func drawHorizontalBars(dc *gg.Context, a plotArea, spec *model.ChartSpec) {
	s := spec.Series[0]
	_, hi := xRange(spec)
	hi = niceMax(hi)

	dc.SetLineWidth(0.5)
	for i := 0; i <= yTicks; i++ {
		v := hi * float64(i) / yTicks
		x := a.x0 + a.width()*float64(i)/yTicks
		dc.SetRGB(0.85, 0.85, 0.85)
		dc.DrawLine(x, a.y0, x, a.y1)
		dc.Stroke()
		dc.SetRGB(0.3, 0.3, 0.3)
		dc.DrawStringAnchored(tickLabel(v), x, a.y1+14, 0.5, 0.5)
	}

	band := a.height() / float64(len(s.Points))
	for i, p := range s.Points {
		// The first point sits at the bottom.
		y := a.y1 - float64(i+1)*band + band*0.15
		w := a.width() * p.X / hi
		dc.SetHexColor(colorOr(s.Color, i))
		dc.DrawRectangle(a.x0, y, w, band*0.7)
		dc.Fill()
		dc.SetRGB(0.2, 0.2, 0.2)
		dc.DrawStringAnchored(p.Label, a.x0-8, y+band*0.35, 1, 0.5)
	}
}

func drawScatter(dc *gg.Context, a plotArea, spec *model.ChartSpec) {
	xlo, xhi := padded(xRange(spec))
	ylo, yhi := padded(yRange(spec))
	valueGrid(dc, a, ylo, yhi)
	smin, smax := sizeRange(spec)

	for si, s := range spec.Series {
		for _, p := range s.Points {
			x := a.x0 + a.width()*(p.X-xlo)/(xhi-xlo)
			y := a.y1 - a.height()*(p.Y-ylo)/(yhi-ylo)
			radius := 5.0
			if smax > smin {
				radius = 5 + 15*(p.Size-smin)/(smax-smin)
			}
			dc.SetHexColor(colorOr(s.Color, si))
			dc.DrawCircle(x, y, radius)
			dc.Fill()
			dc.SetRGB(0.2, 0.2, 0.2)
			dc.DrawStringAnchored(p.Label, x, y-radius-6, 0.5, 0)
		}
	}
	for i := 0; i <= yTicks; i++ {
		v := xlo + (xhi-xlo)*float64(i)/yTicks
		dc.DrawStringAnchored(tickLabel(v), a.x0+a.width()*float64(i)/yTicks, a.y1+14, 0.5, 0.5)
	}
}

func drawLines(dc *gg.Context, a plotArea, spec *model.ChartSpec) {
	xlo, xhi := xRange(spec)
	if xhi == xlo {
		xlo, xhi = xlo-1, xhi+1
	}
	ylo, yhi := padded(yRange(spec))
	valueGrid(dc, a, ylo, yhi)

	pos := func(p model.Point) (float64, float64) {
		return a.x0 + a.width()*(p.X-xlo)/(xhi-xlo), a.y1 - a.height()*(p.Y-ylo)/(yhi-ylo)
	}

	for si, s := range spec.Series {
		dc.SetHexColor(colorOr(s.Color, si))
		dc.SetLineWidth(2.5)
		for i, p := range s.Points {
			x, y := pos(p)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
		for _, p := range s.Points {
			x, y := pos(p)
			dc.DrawCircle(x, y, 4)
			dc.Fill()
		}
	}

	dc.SetRGB(0.3, 0.3, 0.3)
	for _, p := range spec.Series[0].Points {
		x, _ := pos(p)
		dc.DrawStringAnchored(p.Label, x, a.y1+14, 0.5, 0.5)
	}
}

func drawLegend(dc *gg.Context, a plotArea, series []model.Series) {
	x := a.x1 - 150
	y := a.y0 + 10
	for i, s := range series {
		dc.SetHexColor(colorOr(s.Color, i))
		dc.DrawRectangle(x, y+float64(i)*20, 12, 12)
		dc.Fill()
		dc.SetRGB(0.2, 0.2, 0.2)
		dc.DrawStringAnchored(s.Name, x+18, y+float64(i)*20+6, 0, 0.5)
	}
}

func xRange(spec *model.ChartSpec) (lo, hi float64) {
	return pointRange(spec, func(p model.Point) float64 { return p.X })
}

func yRange(spec *model.ChartSpec) (lo, hi float64) {
	return pointRange(spec, func(p model.Point) float64 { return p.Y })
}

func sizeRange(spec *model.ChartSpec) (lo, hi float64) {
	return pointRange(spec, func(p model.Point) float64 { return p.Size })
}

func pointRange(spec *model.ChartSpec, v func(model.Point) float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range spec.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, v(p))
			hi = math.Max(hi, v(p))
		}
	}
	return lo, hi
}

// padded widens a range by 10% on each side, or by one unit when it is flat.
func padded(lo, hi float64) (float64, float64) {
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = 1
	}
	return lo - pad, hi + pad
}

// niceMax leaves headroom above the tallest bar.
func niceMax(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v * 1.1
}

func tickLabel(v float64) string {
	if math.Abs(v) >= 100 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func colorOr(hex string, i int) string {
	if hex != "" {
		return hex
	}
	return paletteColor(i)
}

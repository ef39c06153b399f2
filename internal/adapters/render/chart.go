// Package render draws PNG charts with gonum/plot and writes XLSX workbooks
// with excelize.
package render

import (
	"fmt"
	"image/color"
	"io"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/okian/wbdash/internal/domain/model"
)

// Chart size.
const (
	Width  = 10 * vg.Inch
	Height = 6 * vg.Inch
)

var (
	highlightColor = color.RGBA{R: 220, G: 38, B: 38, A: 255}
	baseBarColor   = color.RGBA{R: 59, G: 130, B: 246, A: 255}
	aggregateDash  = []vg.Length{vg.Points(6), vg.Points(3)}
)

// Line is one named series of a line chart.
type Line struct {
	Name      string
	Points    []model.Point
	Highlight bool
	Dashed    bool
}

// Labels are the title and axis captions of a chart.
type Labels struct {
	Title string
	X     string
	Y     string
}

func newPlot(l Labels) *plot.Plot {
	p := plot.New()
	p.Title.Text = l.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = l.X
	p.Y.Label.Text = l.Y
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

func encode(p *plot.Plot, w io.Writer) error {
	wt, err := p.WriterTo(Width, Height, "png")
	if err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}

// LineChart draws one line per series. The highlighted series is red and
// thicker; dashed series are drawn with a dash pattern.
func LineChart(w io.Writer, l Labels, lines []Line) error {
	p := newPlot(l)
	p.X.Tick.Marker = yearTicks{}
	for i, ln := range lines {
		if len(ln.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(ln.Points))
		for j, pt := range ln.Points {
			xys[j].X = float64(pt.Year)
			xys[j].Y = pt.Value
		}
		line, scatter, err := plotter.NewLinePoints(xys)
		if err != nil {
			return fmt.Errorf("line %s: %w", ln.Name, err)
		}
		c := plotutil.Color(i)
		line.LineStyle.Width = vg.Points(1.5)
		if ln.Highlight {
			c = highlightColor
			line.LineStyle.Width = vg.Points(3)
		}
		if ln.Dashed {
			line.LineStyle.Dashes = aggregateDash
		}
		line.LineStyle.Color = c
		scatter.GlyphStyle.Color = c
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(2)
		p.Add(line, scatter)
		p.Legend.Add(ln.Name, line)
	}
	return encode(p, w)
}

// Bar is one labelled bar.
type Bar struct {
	Label     string
	Value     float64
	Highlight bool
}

// BarChart draws vertical bars in the given order; highlighted bars are red.
func BarChart(w io.Writer, l Labels, bars []Bar) error {
	p := newPlot(l)
	p.Legend.Top = false
	base := make(plotter.Values, len(bars))
	hi := make(plotter.Values, len(bars))
	names := make([]string, len(bars))
	for i, b := range bars {
		names[i] = b.Label
		if b.Highlight {
			hi[i] = b.Value
		} else {
			base[i] = b.Value
		}
	}
	width := vg.Points(float64(Width) * 0.6 / float64(max(len(bars), 1)))
	for _, set := range []struct {
		v plotter.Values
		c color.Color
	}{{base, baseBarColor}, {hi, highlightColor}} {
		bc, err := plotter.NewBarChart(set.v, width)
		if err != nil {
			return fmt.Errorf("bar chart: %w", err)
		}
		bc.Color = set.c
		bc.LineStyle.Width = 0
		p.Add(bc)
	}
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 0.8
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return encode(p, w)
}

// Stack is one layer of a stacked bar chart, aligned with the categories.
type Stack struct {
	Name   string
	Values []float64
}

// StackedBars stacks layers per category in order.
func StackedBars(w io.Writer, l Labels, categories []string, stacks []Stack) error {
	p := newPlot(l)
	width := vg.Points(float64(Width) * 0.6 / float64(max(len(categories), 1)))
	var below *plotter.BarChart
	for i, s := range stacks {
		bc, err := plotter.NewBarChart(plotter.Values(s.Values), width)
		if err != nil {
			return fmt.Errorf("stack %s: %w", s.Name, err)
		}
		bc.Color = plotutil.Color(i)
		bc.LineStyle.Width = 0
		if below != nil {
			bc.StackOn(below)
		}
		below = bc
		p.Add(bc)
		p.Legend.Add(s.Name, bc)
	}
	p.NominalX(categories...)
	return encode(p, w)
}

// Point is a labelled scatter point.
type Point struct {
	Label     string
	X, Y      float64
	Highlight bool
}

// Scatter draws labelled points, with an optional y = x reference line.
func Scatter(w io.Writer, l Labels, points []Point, identity bool) error {
	p := newPlot(l)
	xys := make(plotter.XYs, len(points))
	labels := make([]string, len(points))
	for i, pt := range points {
		xys[i].X, xys[i].Y = pt.X, pt.Y
		labels[i] = pt.Label
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("scatter: %w", err)
	}
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyle.Radius = vg.Points(4)
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		gs := sc.GlyphStyle
		gs.Color = baseBarColor
		if points[i].Highlight {
			gs.Color = highlightColor
			gs.Radius = vg.Points(6)
		}
		return gs
	}
	p.Add(sc)

	if identity && len(points) > 0 {
		lo, hi := bounds(points)
		ref, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
		if err != nil {
			return fmt.Errorf("scatter reference: %w", err)
		}
		ref.LineStyle.Dashes = aggregateDash
		ref.LineStyle.Color = color.Gray{Y: 128}
		p.Add(ref)
	}

	if hasLabels(labels) {
		lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
		if err != nil {
			return fmt.Errorf("scatter labels: %w", err)
		}
		p.Add(lbl)
	}
	return encode(p, w)
}

func bounds(points []Point) (float64, float64) {
	vals := make([]float64, 0, 2*len(points))
	for _, pt := range points {
		vals = append(vals, pt.X, pt.Y)
	}
	sort.Float64s(vals)
	return vals[0], vals[len(vals)-1]
}

func hasLabels(labels []string) bool {
	for _, l := range labels {
		if l != "" {
			return true
		}
	}
	return false
}

// yearTicks labels whole years only.
type yearTicks struct{}

func (yearTicks) Ticks(minYear, maxYear float64) []plot.Tick {
	var ticks []plot.Tick
	step := 1
	if span := int(maxYear - minYear); span > 12 {
		step = (span + 11) / 12
	}
	for y := int(minYear); float64(y) <= maxYear; y += step {
		if float64(y) < minYear {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: float64(y), Label: fmt.Sprintf("%d", y)})
	}
	return ticks
}

// Package plot builds and renders the line figure, one series per column.
package plot

import (
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format selects the encoding Render produces.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// Series is one column drawn against row index.
type Series struct {
	Name    string
	Color   drawing.Color
	XValues []float64
	YValues []float64
}

// Figure collects series and renders them into a single chart.
type Figure struct {
	Title  string
	Width  int
	Height int
	Series []Series
}

// NewFigure creates an empty figure of the given pixel size.
func NewFigure(title string, width, height int) *Figure {
	return &Figure{Title: title, Width: width, Height: height}
}

// AddSeries adds values as a line over row indices 0..len(values)-1.
// Non-finite values are left out of the line. Returns false if no point was
// drawable, in which case the series is not added.
func (f *Figure) AddSeries(name string, values []float64, color drawing.Color) bool {
	s := Series{Name: name, Color: color}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		s.XValues = append(s.XValues, float64(i))
		s.YValues = append(s.YValues, v)
	}
	if len(s.XValues) == 0 {
		return false
	}
	f.Series = append(f.Series, s)
	return true
}

// Empty reports whether the figure has nothing to draw.
func (f *Figure) Empty() bool {
	return len(f.Series) == 0
}

// Render writes the figure to w.
func (f *Figure) Render(w io.Writer, format Format) error {
	if f.Empty() {
		return fmt.Errorf("figure has no series to render")
	}

	xr, yr := f.ranges()
	graph := chart.Chart{
		Title:  f.Title,
		Width:  f.Width,
		Height: f.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{Name: "row", Range: xr},
		YAxis: chart.YAxis{Name: "value", Range: yr},
	}
	for _, s := range f.Series {
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: s.XValues,
			YValues: s.YValues,
			Style: chart.Style{
				StrokeColor: s.Color,
				StrokeWidth: 1.5,
			},
		})
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	provider := chart.PNG
	if format == FormatSVG {
		provider = chart.SVG
	}
	if err := graph.Render(provider, w); err != nil {
		return fmt.Errorf("failed to render figure: %w", err)
	}
	return nil
}

// ranges spans every series. Degenerate spans (a single row, or a constant
// column) are widened so the chart still has a non-zero extent.
func (f *Figure) ranges() (*chart.ContinuousRange, *chart.ContinuousRange) {
	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, s := range f.Series {
		for i := range s.XValues {
			xmin = math.Min(xmin, s.XValues[i])
			xmax = math.Max(xmax, s.XValues[i])
			ymin = math.Min(ymin, s.YValues[i])
			ymax = math.Max(ymax, s.YValues[i])
		}
	}
	if xmax == xmin {
		xmax = xmin + 1
	}
	if ymax == ymin {
		pad := math.Max(math.Abs(ymin)*0.05, 0.5)
		ymin, ymax = ymin-pad, ymax+pad
	}
	return &chart.ContinuousRange{Min: xmin, Max: xmax}, &chart.ContinuousRange{Min: ymin, Max: ymax}
}

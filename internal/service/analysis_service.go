package service

import (
	"fmt"
	"path/filepath"

	colerr "github.com/amterp/colplot/internal/errors"
	"github.com/amterp/colplot/internal/model"
	"github.com/amterp/colplot/internal/plot"
	"github.com/amterp/colplot/internal/stats"
	"github.com/amterp/colplot/internal/store"
	"github.com/amterp/colplot/internal/viewer"
)

// Reporter receives the diagnostics of a run, in pipeline order.
type Reporter interface {
	Headers(headers []string)
	NaNRow(row model.Row, columns []string)
	ColumnCount(name string, n int)
	Summary(name string, s stats.Summary, color string)
	Skipped(name string)
	Rendered(path string)
}

// ColumnResult is the outcome for one column.
type ColumnResult struct {
	Column  model.Column
	Summary stats.Summary
	Color   string
	Plotted bool
}

// Result is the outcome of one analysis run.
type Result struct {
	Table        *model.Table
	Columns      []ColumnResult
	ExcludedRows int
	Figure       *plot.Figure
	OutputPath   string
}

// AnalysisService runs the read, extract, summarize and plot pipeline.
type AnalysisService struct {
	tableStore store.TableStore
	renderer   viewer.Renderer
	reporter   Reporter
	config     *model.Config
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(tableStore store.TableStore, renderer viewer.Renderer, reporter Reporter, cfg *model.Config) *AnalysisService {
	return &AnalysisService{
		tableStore: tableStore,
		renderer:   renderer,
		reporter:   reporter,
		config:     cfg,
	}
}

// Analyze runs the whole pipeline over the file at path and hands the figure to
// the renderer. Any error aborts the run; nothing computed so far is kept.
func (s *AnalysisService) Analyze(path string) (*Result, error) {
	result, err := s.Summarize(path)
	if err != nil {
		return nil, err
	}

	if result.Figure.Empty() {
		return result, nil
	}

	out, err := s.renderer.Show(result.Figure)
	if err != nil {
		return nil, err
	}
	result.OutputPath = out
	if out != "" {
		s.reporter.Rendered(out)
	}
	return result, nil
}

// Summarize runs the pipeline up to a built, unrendered figure.
// Headers and NaN rows are reported while the file is read, so rows before a
// bad line are still reported.
func (s *AnalysisService) Summarize(path string) (*Result, error) {
	screen := newRowScreen(s.reporter, s.config.NaNPolicy)
	table, err := s.tableStore.Load(path, s.config.LabelMode, screen)
	if err != nil {
		return nil, err
	}
	excluded := screen.excluded

	columns, err := Extract(table)
	if err != nil {
		return nil, err
	}
	for _, col := range columns {
		s.reporter.ColumnCount(col.Name, col.Len())
	}

	palette, err := model.PaletteByName(s.config.Palette)
	if err != nil {
		return nil, err
	}
	cursor := model.NewCursor(palette)
	fig := plot.NewFigure(s.title(path), s.config.Width, s.config.Height)

	result := &Result{Table: table, Figure: fig, ExcludedRows: len(excluded)}
	for _, col := range columns {
		color := cursor.Next()
		rgb, err := plot.ParseColor(color)
		if err != nil {
			return nil, fmt.Errorf("palette %s: %w", s.config.Palette, err)
		}

		summary := stats.Compute(stats.WithoutRows(col.Values, excluded))
		s.reporter.Summary(col.Name, summary, color)

		plotted := fig.AddSeries(col.Name, col.Values, rgb)
		if !plotted {
			s.reporter.Skipped(col.Name)
		}

		result.Columns = append(result.Columns, ColumnResult{
			Column:  col,
			Summary: summary,
			Color:   color,
			Plotted: plotted,
		})
	}
	return result, nil
}

// rowScreen reports the header and every row holding a NaN as the table is
// read, and applies the NaN policy. excluded holds the row positions to leave
// out of the statistics.
type rowScreen struct {
	reporter Reporter
	policy   model.NaNPolicy
	label    string
	headers  []string
	rows     int
	excluded map[int]bool
}

func newRowScreen(reporter Reporter, policy model.NaNPolicy) *rowScreen {
	return &rowScreen{reporter: reporter, policy: policy, excluded: make(map[int]bool)}
}

func (r *rowScreen) Header(label string, headers []string) {
	r.label = label
	r.headers = headers
	r.reporter.Headers(headers)
}

func (r *rowScreen) Row(row model.Row) error {
	i := r.rows
	r.rows++
	if !row.HasNaN() {
		return nil
	}

	names := columnNames(r.headers, row.NaNColumns())
	if row.LabelNaN {
		label := r.label
		if label == "" {
			label = "label"
		}
		names = append([]string{label}, names...)
	}
	r.reporter.NaNRow(row, names)

	switch r.policy {
	case model.NaNFailFast:
		return &colerr.NaNValueError{Line: row.Line, Columns: names}
	case model.NaNExclude:
		r.excluded[i] = true
	}
	return nil
}

func (s *AnalysisService) title(path string) string {
	if s.config.Title != "" {
		return s.config.Title
	}
	return filepath.Base(path)
}

// columnNames maps value positions to header names. Positions past the last
// header (a row longer than the header) are shown by number.
func columnNames(headers []string, idx []int) []string {
	names := make([]string, len(idx))
	for i, j := range idx {
		if j < len(headers) {
			names[i] = headers[j]
		} else {
			names[i] = fmt.Sprintf("#%d", j+1)
		}
	}
	return names
}

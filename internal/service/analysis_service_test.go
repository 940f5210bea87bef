package service

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	colerr "github.com/amterp/colplot/internal/errors"
	"github.com/amterp/colplot/internal/model"
	"github.com/amterp/colplot/internal/plot"
	"github.com/amterp/colplot/internal/stats"
	"github.com/amterp/colplot/internal/store"
	"github.com/amterp/colplot/testutil"
)

// recordingReporter captures every diagnostic as a line of text.
type recordingReporter struct {
	lines []string
}

func (r *recordingReporter) Headers(headers []string) {
	r.lines = append(r.lines, fmt.Sprintf("headers %v", headers))
}

func (r *recordingReporter) NaNRow(row model.Row, columns []string) {
	r.lines = append(r.lines, fmt.Sprintf("nan line=%d cols=%v", row.Line, columns))
}

func (r *recordingReporter) ColumnCount(name string, n int) {
	r.lines = append(r.lines, fmt.Sprintf("%s %d", name, n))
}

func (r *recordingReporter) Summary(name string, s stats.Summary, color string) {
	r.lines = append(r.lines, stats.FormatSummary(name, s))
}

func (r *recordingReporter) Skipped(name string) {
	r.lines = append(r.lines, "skipped "+name)
}

func (r *recordingReporter) Rendered(path string) {
	r.lines = append(r.lines, "rendered "+path)
}

// fakeRenderer records the figures it is handed.
type fakeRenderer struct {
	figures []*plot.Figure
	path    string
	err     error
}

func (f *fakeRenderer) Show(fig *plot.Figure) (string, error) {
	f.figures = append(f.figures, fig)
	return f.path, f.err
}

func setupAnalysis(t *testing.T, content string, cfg *model.Config) (*AnalysisService, *recordingReporter, *fakeRenderer, string, func()) {
	t.Helper()

	dir, cleanup := testutil.TempDir(t)
	path := testutil.WriteFile(t, dir, "input.tsv", content)

	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	reporter := &recordingReporter{}
	renderer := &fakeRenderer{}
	svc := NewAnalysisService(store.NewTableStore(), renderer, reporter, cfg)

	return svc, reporter, renderer, path, cleanup
}

func TestAnalyze_TwoColumns(t *testing.T) {
	svc, reporter, renderer, path, cleanup := setupAnalysis(t, testutil.SampleTSV, nil)
	defer cleanup()

	result, err := svc.Analyze(path)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	expected := []string{
		"headers [A B]",
		"A 2",
		"B 2",
		"A mean=3 std=1.4142135623730951",
		"B mean=4 std=1.4142135623730951",
	}
	if !reflect.DeepEqual(reporter.lines, expected) {
		t.Errorf("diagnostics =\n%v\nwant\n%v", reporter.lines, expected)
	}

	if len(result.Columns) != 2 {
		t.Fatalf("len(Columns) = %d, want 2", len(result.Columns))
	}
	if !reflect.DeepEqual(result.Columns[0].Column.Values, []float64{2, 4}) {
		t.Errorf("A = %v, want [2 4]", result.Columns[0].Column.Values)
	}
	if !reflect.DeepEqual(result.Columns[1].Column.Values, []float64{3, 5}) {
		t.Errorf("B = %v, want [3 5]", result.Columns[1].Column.Values)
	}

	if len(renderer.figures) != 1 {
		t.Fatalf("renderer called %d times, want 1", len(renderer.figures))
	}
	if got := len(renderer.figures[0].Series); got != 2 {
		t.Errorf("figure has %d series, want 2", got)
	}
}

func TestAnalyze_ColumnShape(t *testing.T) {
	content := testutil.TSV(
		[]string{"label", "w", "x", "y", "z"},
		[]string{"1", "1", "2", "3", "4"},
		[]string{"2", "5", "6", "7", "8"},
		[]string{"3", "9", "10", "11", "12"},
	)
	svc, _, _, path, cleanup := setupAnalysis(t, content, nil)
	defer cleanup()

	result, err := svc.Analyze(path)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if len(result.Columns) != 4 {
		t.Fatalf("len(Columns) = %d, want header fields - 1 = 4", len(result.Columns))
	}
	for _, c := range result.Columns {
		if c.Column.Len() != 3 {
			t.Errorf("column %s has %d values, want 3", c.Column.Name, c.Column.Len())
		}
	}
}

func TestAnalyze_NaNPoisonsOnlyItsColumn(t *testing.T) {
	content := testutil.TSV(
		[]string{"label", "A", "B"},
		[]string{"1", "2.0", "3.0"},
		[]string{"2", "nan", "5.0"},
		[]string{"3", "4.0", "7.0"},
	)
	svc, reporter, _, path, cleanup := setupAnalysis(t, content, nil)
	defer cleanup()

	result, err := svc.Analyze(path)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if reporter.lines[1] != "nan line=3 cols=[A]" {
		t.Errorf("NaN report = %q, want %q", reporter.lines[1], "nan line=3 cols=[A]")
	}

	a := result.Columns[0].Summary
	if !math.IsNaN(a.Mean) || !math.IsNaN(a.StdDev) {
		t.Errorf("A summary = %+v, want NaN mean and std", a)
	}

	b := result.Columns[1].Summary
	if b.Mean != 5 || b.StdDev != 2 {
		t.Errorf("B summary = %+v, want mean 5 std 2", b)
	}
}

func TestAnalyze_NaNExclude(t *testing.T) {
	content := testutil.TSV(
		[]string{"label", "A", "B"},
		[]string{"1", "2.0", "3.0"},
		[]string{"2", "nan", "100.0"},
		[]string{"3", "4.0", "5.0"},
	)
	cfg := model.DefaultConfig()
	cfg.NaNPolicy = model.NaNExclude
	svc, _, renderer, path, cleanup := setupAnalysis(t, content, cfg)
	defer cleanup()

	result, err := svc.Analyze(path)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.ExcludedRows != 1 {
		t.Errorf("ExcludedRows = %d, want 1", result.ExcludedRows)
	}
	if got := result.Columns[0].Summary; got.Mean != 3 || got.N != 2 {
		t.Errorf("A summary = %+v, want mean 3 over 2 rows", got)
	}
	// The whole row is left out, so B's 100 doesn't count either.
	if got := result.Columns[1].Summary; got.Mean != 4 || got.N != 2 {
		t.Errorf("B summary = %+v, want mean 4 over 2 rows", got)
	}
	// Columns keep every row for plotting.
	if got := result.Columns[1].Column.Len(); got != 3 {
		t.Errorf("B has %d values, want 3", got)
	}
	if got := len(renderer.figures[0].Series[0].XValues); got != 2 {
		t.Errorf("A series has %d points, want 2 (NaN skipped)", got)
	}
}

func TestAnalyze_NaNFailFast(t *testing.T) {
	content := testutil.TSV(
		[]string{"label", "A", "B"},
		[]string{"1", "2.0", "3.0"},
		[]string{"2", "4.0", "NaN"},
	)
	cfg := model.DefaultConfig()
	cfg.NaNPolicy = model.NaNFailFast
	svc, reporter, renderer, path, cleanup := setupAnalysis(t, content, cfg)
	defer cleanup()

	_, err := svc.Analyze(path)
	if !colerr.IsNaNValue(err) {
		t.Fatalf("Expected NaNValue error, got: %v", err)
	}
	if nve := err.(*colerr.NaNValueError); nve.Line != 3 || !reflect.DeepEqual(nve.Columns, []string{"B"}) {
		t.Errorf("NaNValueError = %+v, want line 3 column B", nve)
	}

	// The offending row is still reported before the run aborts.
	if last := reporter.lines[len(reporter.lines)-1]; last != "nan line=3 cols=[B]" {
		t.Errorf("last diagnostic = %q, want the NaN row", last)
	}
	if len(renderer.figures) != 0 {
		t.Error("renderer should not be called after a fatal error")
	}
}

func TestAnalyze_ShortRow(t *testing.T) {
	content := testutil.TSV(
		[]string{"label", "A", "B"},
		[]string{"1", "2.0", "3.0"},
		[]string{"2", "4.0"},
	)
	svc, reporter, renderer, path, cleanup := setupAnalysis(t, content, nil)
	defer cleanup()

	_, err := svc.Analyze(path)
	if !colerr.IsMalformedRow(err) {
		t.Fatalf("Expected MalformedRow error, got: %v", err)
	}
	mre := err.(*colerr.MalformedRowError)
	if mre.Line != 3 || mre.Want != 2 || mre.Got != 1 {
		t.Errorf("MalformedRowError = %+v, want line 3 want 2 got 1", mre)
	}

	if !reflect.DeepEqual(reporter.lines, []string{"headers [A B]"}) {
		t.Errorf("diagnostics = %v, want only the headers", reporter.lines)
	}
	if len(renderer.figures) != 0 {
		t.Error("renderer should not be called after a fatal error")
	}
}

func TestAnalyze_LongRow(t *testing.T) {
	content := testutil.TSV(
		[]string{"label", "A"},
		[]string{"1", "2.0", "3.0"},
	)
	svc, _, _, path, cleanup := setupAnalysis(t, content, nil)
	defer cleanup()

	if _, err := svc.Analyze(path); !colerr.IsMalformedRow(err) {
		t.Errorf("Expected MalformedRow error, got: %v", err)
	}
}

func TestAnalyze_ParseError(t *testing.T) {
	content := testutil.TSV(
		[]string{"label", "A"},
		[]string{"first", "2.0"},
	)
	svc, _, _, path, cleanup := setupAnalysis(t, content, nil)
	defer cleanup()

	if _, err := svc.Analyze(path); !colerr.IsParseError(err) {
		t.Errorf("Expected ParseError, got: %v", err)
	}
}

func TestAnalyze_TextLabels(t *testing.T) {
	content := testutil.TSV(
		[]string{"run", "A"},
		[]string{"first", "2.0"},
		[]string{"second", "4.0"},
	)
	cfg := model.DefaultConfig()
	cfg.LabelMode = model.LabelText
	svc, _, _, path, cleanup := setupAnalysis(t, content, cfg)
	defer cleanup()

	result, err := svc.Analyze(path)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if got := result.Columns[0].Summary.Mean; got != 3 {
		t.Errorf("Mean = %v, want 3", got)
	}
}

func TestAnalyze_ColorsCycle(t *testing.T) {
	header := []string{"label"}
	row := []string{"1"}
	for i := 0; i < 9; i++ {
		header = append(header, fmt.Sprintf("c%d", i))
		row = append(row, fmt.Sprintf("%d", i))
	}
	svc, _, _, path, cleanup := setupAnalysis(t, testutil.TSV(header, row), nil)
	defer cleanup()

	result, err := svc.Analyze(path)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	expected := []string{"k", "y", "m", "c", "b", "g", "r", "k", "y"}
	for i, c := range result.Columns {
		if c.Color != expected[i] {
			t.Errorf("column %d color = %q, want %q", i, c.Color, expected[i])
		}
		if c.Color != model.ColorAt(model.ClassicPalette, i) {
			t.Errorf("column %d color = %q, disagrees with ColorAt", i, c.Color)
		}
	}
}

func TestAnalyze_ColorsIgnoreValues(t *testing.T) {
	first, _, _, p1, c1 := setupAnalysis(t, testutil.SampleTSV, nil)
	defer c1()
	other := testutil.TSV(
		[]string{"label", "A", "B"},
		[]string{"1", "-100", "nan"},
	)
	second, _, _, p2, c2 := setupAnalysis(t, other, nil)
	defer c2()

	r1, err := first.Analyze(p1)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	r2, err := second.Analyze(p2)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	for i := range r1.Columns {
		if r1.Columns[i].Color != r2.Columns[i].Color {
			t.Errorf("column %d colors differ: %q vs %q", i, r1.Columns[i].Color, r2.Columns[i].Color)
		}
	}
}

func TestAnalyze_HeaderOnly(t *testing.T) {
	svc, reporter, renderer, path, cleanup := setupAnalysis(t, "label\tA\n", nil)
	defer cleanup()

	result, err := svc.Analyze(path)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	summary := result.Columns[0].Summary
	if summary.N != 0 || !math.IsNaN(summary.Mean) {
		t.Errorf("summary = %+v, want empty NaN summary", summary)
	}
	if last := reporter.lines[len(reporter.lines)-1]; last != "skipped A" {
		t.Errorf("last diagnostic = %q, want %q", last, "skipped A")
	}
	if len(renderer.figures) != 0 {
		t.Error("an empty figure should not be rendered")
	}
}

func TestAnalyze_ReportsRenderedPath(t *testing.T) {
	svc, reporter, renderer, path, cleanup := setupAnalysis(t, testutil.SampleTSV, nil)
	defer cleanup()
	renderer.path = "/tmp/out.png"

	result, err := svc.Analyze(path)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.OutputPath != "/tmp/out.png" {
		t.Errorf("OutputPath = %q, want /tmp/out.png", result.OutputPath)
	}
	if last := reporter.lines[len(reporter.lines)-1]; last != "rendered /tmp/out.png" {
		t.Errorf("last diagnostic = %q", last)
	}
}

func TestAnalyze_RendererError(t *testing.T) {
	svc, _, renderer, path, cleanup := setupAnalysis(t, testutil.SampleTSV, nil)
	defer cleanup()
	renderer.err = fmt.Errorf("no display")

	if _, err := svc.Analyze(path); err == nil {
		t.Error("expected renderer error to propagate")
	}
}

func TestAnalyze_Title(t *testing.T) {
	cfg := model.DefaultConfig()
	svc, _, _, path, cleanup := setupAnalysis(t, testutil.SampleTSV, cfg)
	defer cleanup()

	result, err := svc.Summarize(path)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if result.Figure.Title != "input.tsv" {
		t.Errorf("Title = %q, want input.tsv", result.Figure.Title)
	}

	cfg.Title = "Latency"
	result, err = svc.Summarize(path)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if result.Figure.Title != "Latency" {
		t.Errorf("Title = %q, want Latency", result.Figure.Title)
	}
}

func TestAnalyze_NaNLabel(t *testing.T) {
	content := "label\tA\nnan\t2.0\n1\t4.0\n"

	tests := []struct {
		name     string
		policy   model.NaNPolicy
		wantMean float64
		wantN    int
	}{
		{"propagate", model.NaNPropagate, 3, 2},
		{"exclude", model.NaNExclude, 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := model.DefaultConfig()
			cfg.NaNPolicy = tt.policy
			svc, reporter, _, path, cleanup := setupAnalysis(t, content, cfg)
			defer cleanup()

			result, err := svc.Analyze(path)
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}
			if reporter.lines[1] != "nan line=2 cols=[label]" {
				t.Errorf("NaN report = %q, want %q", reporter.lines[1], "nan line=2 cols=[label]")
			}
			// The label is not a column, so it never poisons A.
			got := result.Columns[0].Summary
			if got.Mean != tt.wantMean || got.N != tt.wantN {
				t.Errorf("A summary = %+v, want mean %v over %d rows", got, tt.wantMean, tt.wantN)
			}
		})
	}
}

func TestAnalyze_NaNLabelFailFast(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.NaNPolicy = model.NaNFailFast
	svc, reporter, renderer, path, cleanup := setupAnalysis(t, "label\tA\nnan\t2.0\n1\t4.0\n", cfg)
	defer cleanup()

	_, err := svc.Analyze(path)
	if !colerr.IsNaNValue(err) {
		t.Fatalf("Expected NaNValue error, got: %v", err)
	}
	if nve := err.(*colerr.NaNValueError); nve.Line != 2 || !reflect.DeepEqual(nve.Columns, []string{"label"}) {
		t.Errorf("NaNValueError = %+v, want line 2 column label", nve)
	}

	expected := []string{"headers [A]", "nan line=2 cols=[label]"}
	if !reflect.DeepEqual(reporter.lines, expected) {
		t.Errorf("diagnostics = %v, want %v", reporter.lines, expected)
	}
	if len(renderer.figures) != 0 {
		t.Error("renderer should not be called after a fatal error")
	}
}

func TestAnalyze_ReportsRowsBeforeParseError(t *testing.T) {
	content := testutil.TSV(
		[]string{"label", "A", "B"},
		[]string{"1", "nan", "3.0"},
		[]string{"2", "4.0", "five"},
	)
	svc, reporter, _, path, cleanup := setupAnalysis(t, content, nil)
	defer cleanup()

	if _, err := svc.Analyze(path); !colerr.IsParseError(err) {
		t.Fatalf("Expected ParseError, got: %v", err)
	}

	expected := []string{"headers [A B]", "nan line=2 cols=[A]"}
	if !reflect.DeepEqual(reporter.lines, expected) {
		t.Errorf("diagnostics = %v, want %v", reporter.lines, expected)
	}
}

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/amterp/colplot/internal/model"
	"github.com/amterp/colplot/internal/plot"
	"github.com/amterp/colplot/internal/stats"
)

// consoleReporter prints run diagnostics, one line each, to out.
type consoleReporter struct {
	out io.Writer
}

func newConsoleReporter(out io.Writer) *consoleReporter {
	return &consoleReporter{out: out}
}

func (r *consoleReporter) Headers(headers []string) {
	fmt.Fprintf(r.out, "%s %s\n", RenderMuted("headers:"), strings.Join(headers, " "))
}

func (r *consoleReporter) NaNRow(row model.Row, columns []string) {
	values := make([]string, len(row.Values))
	for i, v := range row.Values {
		values[i] = stats.FormatValue(v)
	}
	FprintWarning(r.out, "line %d: NaN in %s: %s\t%s",
		row.Line, strings.Join(columns, ", "), row.Label, strings.Join(values, "\t"))
}

func (r *consoleReporter) ColumnCount(name string, n int) {
	fmt.Fprintf(r.out, "%s %d\n", RenderName(name), n)
}

func (r *consoleReporter) Summary(name string, s stats.Summary, color string) {
	line := stats.FormatSummary(name, s)
	fmt.Fprintf(r.out, "%s %s\n", line, ColorSwatch(plot.HexColor(color)))
}

func (r *consoleReporter) Skipped(name string) {
	FprintWarning(r.out, "%s has no finite values to plot", RenderName(name))
}

func (r *consoleReporter) Rendered(path string) {
	FprintSuccess(r.out, "Saved figure to %s", path)
}

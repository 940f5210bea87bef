// Package stats computes the per-column summary statistics.
package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary holds the descriptive statistics of one column.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64 // sample standard deviation (n-1 denominator)
}

// Compute returns the mean and sample standard deviation of values.
// NaN values propagate into both results. An empty slice yields NaN for both,
// and a single value yields a NaN standard deviation.
func Compute(values []float64) Summary {
	s := Summary{N: len(values), Mean: math.NaN(), StdDev: math.NaN()}
	if len(values) == 0 {
		return s
	}
	s.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		s.StdDev = stat.StdDev(values, nil)
	}
	return s
}

// WithoutRows returns values minus the entries at the given row positions.
func WithoutRows(values []float64, skip map[int]bool) []float64 {
	if len(skip) == 0 {
		return values
	}
	kept := make([]float64, 0, len(values))
	for i, v := range values {
		if !skip[i] {
			kept = append(kept, v)
		}
	}
	return kept
}

// FormatSummary renders "<name> mean=<value> std=<value>".
func FormatSummary(name string, s Summary) string {
	return fmt.Sprintf("%s mean=%s std=%s", name, FormatValue(s.Mean), FormatValue(s.StdDev))
}

// FormatValue prints a float the way the summary line shows it; NaN prints as "nan".
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%g", v)
}

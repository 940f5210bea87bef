package model

import "math"

// Table is a parsed input file: the Header Set and the data rows beneath it.
type Table struct {
	Path        string
	LabelHeader string // first field of the header line
	Headers     []string
	Rows        []Row
}

// Row is one data line with its label field split off.
type Row struct {
	Line     int // 1-based line number in the source file
	Label    string
	LabelNaN bool // label was read as a number and is NaN
	Values   []float64
}

// HasNaN reports whether the row's numeric label or any of its values is NaN.
func (r Row) HasNaN() bool {
	if r.LabelNaN {
		return true
	}
	for _, v := range r.Values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// NaNColumns returns the positions of the row's NaN values. The label is not included.
func (r Row) NaNColumns() []int {
	var idx []int
	for i, v := range r.Values {
		if math.IsNaN(v) {
			idx = append(idx, i)
		}
	}
	return idx
}

// Column is a named series of values, one per data row.
type Column struct {
	Name   string
	Values []float64
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	return len(c.Values)
}

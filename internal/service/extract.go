package service

import (
	colerr "github.com/amterp/colplot/internal/errors"
	"github.com/amterp/colplot/internal/model"
)

// Extract reshapes the table's rows into one Column per header, in header order:
// Column[h][i] = Rows[i].Values[index of h].
// Every row must carry exactly one value per header.
func Extract(table *model.Table) ([]model.Column, error) {
	want := len(table.Headers)
	for _, row := range table.Rows {
		if len(row.Values) != want {
			return nil, &colerr.MalformedRowError{Line: row.Line, Want: want, Got: len(row.Values)}
		}
	}

	columns := make([]model.Column, want)
	for i, name := range table.Headers {
		values := make([]float64, len(table.Rows))
		for j, row := range table.Rows {
			values[j] = row.Values[i]
		}
		columns[i] = model.Column{Name: name, Values: values}
	}
	return columns, nil
}

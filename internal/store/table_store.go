package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	colerr "github.com/amterp/colplot/internal/errors"
	"github.com/amterp/colplot/internal/model"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// FileTableStore implements TableStore for tab-delimited files on disk.
type FileTableStore struct{}

// NewTableStore creates a new table store.
func NewTableStore() *FileTableStore {
	return &FileTableStore{}
}

// Load reads the file at path. The first line gives the Header Set (every field
// after the first); each later line becomes a Row. With LabelNumeric the label
// field must parse as a number, matching every other field.
// Row lengths are not checked here.
func (s *FileTableStore) Load(path string, mode model.LabelMode, visitor TableVisitor) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, colerr.InputNotFound(path)
		}
		return nil, err
	}
	defer f.Close()

	return ReadTable(f, path, mode, visitor)
}

// ReadTable parses tab-delimited text from r. path is used in error messages.
// A non-nil visitor is called as the header and each row are read.
func ReadTable(r io.Reader, path string, mode model.LabelMode, visitor TableVisitor) (*model.Table, error) {
	// A leading UTF-8 BOM would otherwise end up in the label header.
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &colerr.EmptyInputError{Path: path}
		}
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	table := &model.Table{
		Path:        path,
		LabelHeader: header[0],
		Headers:     append([]string(nil), header[1:]...),
	}
	if visitor != nil {
		visitor.Header(table.LabelHeader, table.Headers)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		line, _ := reader.FieldPos(0)

		row, err := parseRow(record, path, line, mode)
		if err != nil {
			return nil, err
		}
		if visitor != nil {
			if err := visitor.Row(row); err != nil {
				return nil, err
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func parseRow(record []string, path string, line int, mode model.LabelMode) (model.Row, error) {
	row := model.Row{Line: line, Label: record[0]}

	if mode != model.LabelText {
		v, err := parseField(record[0])
		if err != nil {
			return row, &colerr.ParseError{Path: path, Line: line, Field: 0, Value: record[0]}
		}
		row.LabelNaN = math.IsNaN(v)
	}

	row.Values = make([]float64, 0, len(record)-1)
	for i, field := range record[1:] {
		v, err := parseField(field)
		if err != nil {
			return row, &colerr.ParseError{Path: path, Line: line, Field: i + 1, Value: field}
		}
		row.Values = append(row.Values, v)
	}
	return row, nil
}

// parseField accepts anything strconv.ParseFloat does, including "nan" and "inf",
// after trimming surrounding whitespace.
func parseField(field string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(field), 64)
}

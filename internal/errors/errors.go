package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for type checking
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrParse        = errors.New("parse error")
	ErrMalformedRow = errors.New("malformed row")
	ErrNaNValue     = errors.New("nan value")
	ErrEmptyInput   = errors.New("empty input")
)

// NotFoundError indicates a file doesn't exist.
type NotFoundError struct {
	Resource string // "input file", "config"
	ID       string // The path that wasn't found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError indicates invalid user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// ParseError indicates a field that couldn't be read as a number.
type ParseError struct {
	Path  string
	Line  int
	Field int // 0-based field index within the line
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: field %d: cannot parse %q as a number", e.Path, e.Line, e.Field+1, e.Value)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// MalformedRowError indicates a data row whose value count differs from the header count.
type MalformedRowError struct {
	Line int
	Want int
	Got  int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("line %d: expected %d values, got %d", e.Line, e.Want, e.Got)
}

func (e *MalformedRowError) Unwrap() error {
	return ErrMalformedRow
}

// NaNValueError aborts a run under the fail-fast NaN policy.
type NaNValueError struct {
	Line    int
	Columns []string
}

func (e *NaNValueError) Error() string {
	return fmt.Sprintf("line %d: NaN value in %s", e.Line, strings.Join(e.Columns, ", "))
}

func (e *NaNValueError) Unwrap() error {
	return ErrNaNValue
}

// EmptyInputError indicates an input file without a header line.
type EmptyInputError struct {
	Path string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s is empty (expected a header line)", e.Path)
}

func (e *EmptyInputError) Unwrap() error {
	return ErrEmptyInput
}

// Helper constructors for common cases

func InputNotFound(path string) error {
	return &NotFoundError{Resource: "input file", ID: path}
}

func ConfigNotFound(path string) error {
	return &NotFoundError{Resource: "config", ID: path}
}

func InvalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func InvalidChoice(field, value string, choices []string) error {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%q (expected one of: %s)", value, strings.Join(choices, ", ")),
	}
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsParseError checks if an error is a numeric parse error.
func IsParseError(err error) bool {
	return errors.Is(err, ErrParse)
}

// IsMalformedRow checks if an error is a row/header length mismatch.
func IsMalformedRow(err error) bool {
	return errors.Is(err, ErrMalformedRow)
}

// IsNaNValue checks if an error was raised by the fail-fast NaN policy.
func IsNaNValue(err error) bool {
	return errors.Is(err, ErrNaNValue)
}

// IsEmptyInput checks if an error is an empty-input error.
func IsEmptyInput(err error) bool {
	return errors.Is(err, ErrEmptyInput)
}

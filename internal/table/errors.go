package table

import (
	"errors"
	"fmt"
)

// Sentinel errors for table parsing.
var (
	// ErrNoTable indicates the input contained no line starting with a pipe.
	ErrNoTable = errors.New("no markdown table found")
	// ErrRaggedRow indicates a data row whose field count differs from the header.
	ErrRaggedRow = errors.New("row field count does not match header")
)

// ParseError records where in the source a table row failed to parse.
type ParseError struct {
	Line int // 1-based line number in the source text
	Want int // field count of the header row
	Got  int // field count of the offending row
	Err  error
}

// Error returns a human-readable string including the source line.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: expected %d fields, saw %d", e.Line, e.Err, e.Want, e.Got)
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ParseError) Unwrap() error {
	return e.Err
}

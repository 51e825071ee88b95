package ingest

import (
	"errors"
	"fmt"
)

// Sentinel errors for CSV ingestion.
var (
	ErrMissingColumn = errors.New("missing required column")
	ErrInvalidValue  = errors.New("invalid value")
	ErrEmptyInput    = errors.New("csv input has no header")
)

// RowError locates a bad value. Row is the 1-based CSV line, header included.
type RowError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %s: %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

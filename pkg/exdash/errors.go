package exdash

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a readable xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrSheetNotFound indicates a sheet name the workbook does not contain.
var ErrSheetNotFound = errors.New("sheet not found")

// LoadError represents a failure to load a workbook or one of its sheets.
type LoadError struct {
	Source    string
	SheetName string // empty for workbook-level failures
	Err       error
}

func (e *LoadError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("error loading %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("error loading sheet %q of %s: %v", e.SheetName, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError.
func NewLoadError(source, sheetName string, err error) *LoadError {
	return &LoadError{
		Source:    source,
		SheetName: sheetName,
		Err:       err,
	}
}

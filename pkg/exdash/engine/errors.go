package engine

import (
	"errors"
	"fmt"
)

// ErrColumnNotFound indicates a request referenced a column the dataset lacks.
var ErrColumnNotFound = errors.New("column not found")

// ErrUnsupportedChart indicates an unknown chart family.
var ErrUnsupportedChart = errors.New("unsupported chart type")

// ErrUnsupportedAggregation indicates an unknown reduction.
var ErrUnsupportedAggregation = errors.New("unsupported aggregation")

// ErrEmptySeries indicates a reduction over no numeric values.
var ErrEmptySeries = errors.New("no numeric values to reduce")

// ErrValueColumnRequired indicates a reduction without a value column.
var ErrValueColumnRequired = errors.New("value column required")

// ErrColumnConflict indicates a column name collision.
var ErrColumnConflict = errors.New("column name conflict")

// CoercionWarning reports cells that could not be read as numbers.
// It is informational: coercion still succeeds with missing markers.
type CoercionWarning struct {
	Column string
	// Failed counts non-empty cells that became missing.
	Failed int
	Total  int
	// Err is set when the column could not be coerced at all.
	Err error
}

func (w *CoercionWarning) Error() string {
	if w.Err != nil {
		return fmt.Sprintf("could not convert %s to numeric: %v", w.Column, w.Err)
	}
	return fmt.Sprintf("could not convert %d of %d values in %s to numeric", w.Failed, w.Total, w.Column)
}

func (w *CoercionWarning) Unwrap() error {
	return w.Err
}

// CalculationError represents a failed scalar calculation.
type CalculationError struct {
	Func   Func
	Column string
	Err    error
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("error performing %s calculation on %s: %v", e.Func, e.Column, e.Err)
}

func (e *CalculationError) Unwrap() error {
	return e.Err
}

// ChartError represents a failed chart build.
type ChartError struct {
	Family Family
	Err    error
}

func (e *ChartError) Error() string {
	if errors.Is(e.Err, ErrUnsupportedChart) {
		return fmt.Sprintf("%v: %s", e.Err, e.Family)
	}
	return fmt.Sprintf("error generating %s: %v", e.Family, e.Err)
}

func (e *ChartError) Unwrap() error {
	return e.Err
}

func columnNotFound(name string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

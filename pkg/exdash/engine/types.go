// Package engine implements the aggregation and chart-configuration pipeline.
// It never reads files or renders pixels; all computation is in memory.
package engine

// Func names a reduction applied to a column.
type Func string

const (
	// FuncNone requests no aggregation.
	FuncNone Func = "None"
	// FuncCount counts rows.
	FuncCount Func = "Count"
	// FuncUnique counts distinct stringified values.
	FuncUnique Func = "Unique"
	// FuncSum adds numeric values.
	FuncSum Func = "Sum"
	// FuncMean averages numeric values.
	FuncMean Func = "Mean"
	// FuncMedian takes the middle numeric value.
	FuncMedian Func = "Median"
	// FuncMax takes the largest numeric value.
	FuncMax Func = "Max"
	// FuncMin takes the smallest numeric value.
	FuncMin Func = "Min"
)

// Funcs lists the aggregation vocabulary in menu order.
var Funcs = []Func{FuncCount, FuncUnique, FuncSum, FuncMean, FuncMedian, FuncMax, FuncMin}

// IsNumeric reports whether f needs numeric coercion before reducing.
func (f Func) IsNumeric() bool {
	switch f {
	case FuncSum, FuncMean, FuncMedian, FuncMax, FuncMin:
		return true
	}
	return false
}

// Valid reports whether f is part of the aggregation vocabulary.
func (f Func) Valid() bool {
	return f == FuncCount || f == FuncUnique || f.IsNumeric()
}

// Family names a chart family.
type Family string

const (
	FamilyLine      Family = "Line Chart"
	FamilyBar       Family = "Bar Chart"
	FamilyHistogram Family = "Histogram"
	FamilyScatter   Family = "Scatter Plot"
	FamilyPie       Family = "Pie Chart"
	FamilyBox       Family = "Box Plot"
)

// Families lists the supported chart families in menu order.
var Families = []Family{FamilyLine, FamilyBar, FamilyHistogram, FamilyScatter, FamilyPie, FamilyBox}

// AggregationRequest groups by GroupColumn and reduces ValueColumn with Func.
type AggregationRequest struct {
	GroupColumn string
	// ValueColumn is ignored by FuncCount. Nil means no value column was chosen.
	ValueColumn *string
	Func        Func
}

// ChartRequest describes the chart a caller wants built.
type ChartRequest struct {
	Family  Family
	XColumn string
	// YColumn is optional.
	YColumn *string
	// YAggregation groups by XColumn before charting unless it is FuncNone.
	YAggregation Func
	// ColorColumn is optional and ignored by pie charts.
	ColorColumn *string
}

// ScalarRequest reduces one column to a single value.
type ScalarRequest struct {
	Column string
	Func   Func
}

// Col returns a pointer to name, for optional column fields.
func Col(name string) *string {
	return &name
}

// ResultColumn returns the name of the column an aggregation produces.
func ResultColumn(f Func, valueColumn string) string {
	switch f {
	case FuncCount:
		return "Count"
	case FuncUnique:
		return "Unique " + valueColumn
	default:
		return valueColumn
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Package exdash turns Excel sheets into aggregations, charts and summary statistics.
package exdash

import "go.uber.org/zap"

// Options configures workbook loading.
type Options struct {
	// DetectRegion trims each sheet to the bounding box of its non-empty cells.
	// If nil, defaults to true.
	DetectRegion *bool
	// UsePrintArea restricts each sheet to its first print area when one is defined.
	// If nil, defaults to false.
	UsePrintArea *bool
	// Logger receives load diagnostics. If nil, a no-op logger is used.
	Logger *zap.Logger
}

// DefaultOptions returns default load options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldDetectRegion returns whether to trim sheets to their data region.
func (o Options) ShouldDetectRegion() bool {
	if o.DetectRegion != nil {
		return *o.DetectRegion
	}
	return true
}

// ShouldUsePrintArea returns whether to restrict sheets to print areas.
func (o Options) ShouldUsePrintArea() bool {
	if o.UsePrintArea != nil {
		return *o.UsePrintArea
	}
	return false
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

package engine

import (
	"go.uber.org/zap"

	"github.com/ukaji3/exdash-go/pkg/exdash/models"
)

// ScalarResult is the outcome of a single-column calculation.
type ScalarResult struct {
	Column string       `json:"column" yaml:"column"`
	Func   Func         `json:"func" yaml:"func"`
	Value  models.Value `json:"value" yaml:"value"`
}

// Calculate reduces one column of ds to a single value.
//
// Count is the row count whatever the cells hold. Unique counts distinct
// stringified values. The numeric funcs coerce first and skip missing cells;
// Sum of nothing is 0, the others fail with ErrEmptySeries.
func Calculate(ds *models.Dataset, req ScalarRequest, opts ...Option) (*ScalarResult, error) {
	cfg := applyOptions(opts)

	fail := func(err error) (*ScalarResult, error) {
		return nil, &CalculationError{Func: req.Func, Column: req.Column, Err: err}
	}

	col, ok := ds.Column(req.Column)
	if !ok {
		return fail(columnNotFound(req.Column))
	}

	result := &ScalarResult{Column: req.Column, Func: req.Func}
	switch {
	case req.Func == FuncCount:
		result.Value = models.Number(float64(len(col.Values)))
	case req.Func == FuncUnique:
		seen := make(map[string]struct{}, len(col.Values))
		for _, v := range col.Values {
			seen[v.Text()] = struct{}{}
		}
		result.Value = models.Number(float64(len(seen)))
	case req.Func.IsNumeric():
		coerced, warn := Coerce(ds, req.Column)
		if warn != nil {
			cfg.logger.Warn("numeric coercion incomplete",
				zap.String("column", req.Column),
				zap.Int("failed", warn.Failed),
				zap.Int("total", warn.Total))
		}
		col, _ = coerced.Column(req.Column)
		x, ok := reduce(req.Func, numbers(col.Values))
		if !ok {
			return fail(ErrEmptySeries)
		}
		result.Value = models.Number(x)
	default:
		return fail(ErrUnsupportedAggregation)
	}
	return result, nil
}

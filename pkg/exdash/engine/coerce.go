package engine

import (
	"math"
	"strings"

	"github.com/ukaji3/exdash-go/pkg/exdash/models"
)

// Coerce returns a copy of ds where every cell of column is a number or missing.
// It never fails. The warning is nil when every non-empty cell converted;
// otherwise it reports how many did not. A missing column yields ds itself
// together with a warning.
func Coerce(ds *models.Dataset, column string) (*models.Dataset, *CoercionWarning) {
	col, ok := ds.Column(column)
	if !ok {
		return ds, &CoercionWarning{Column: column, Err: columnNotFound(column)}
	}

	values := make([]models.Value, len(col.Values))
	failed := 0
	for i, v := range col.Values {
		values[i] = ToNumber(v)
		if values[i].IsMissing() && !v.IsMissing() && strings.TrimSpace(v.Str) != "" {
			failed++
		}
	}

	out, err := ds.WithColumn(column, values)
	if err != nil {
		return ds, &CoercionWarning{Column: column, Err: err}
	}
	if failed > 0 {
		return out, &CoercionWarning{Column: column, Failed: failed, Total: len(values)}
	}
	return out, nil
}

// ToNumber interprets v as a number, or returns the missing marker.
func ToNumber(v models.Value) models.Value {
	switch v.Kind {
	case models.KindNumber:
		if math.IsNaN(v.Num) {
			return models.Missing()
		}
		return v
	case models.KindString:
		f, ok := models.ParseNumber(strings.TrimSpace(v.Str))
		if !ok || math.IsNaN(f) {
			return models.Missing()
		}
		return models.Number(f)
	default:
		return models.Missing()
	}
}

// numbers collects the numeric cells of values, skipping missing ones.
func numbers(values []models.Value) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := v.Float(); ok {
			out = append(out, f)
		}
	}
	return out
}

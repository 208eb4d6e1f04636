package engine

import (
	"fmt"
	"strings"

	"github.com/ukaji3/exdash-go/pkg/exdash/models"
)

// DefaultNullMarker replaces empty cells in ReplaceEmpty.
const DefaultNullMarker = "NULL"

// DefaultSerialColumn names the column AddSerialNumbers inserts.
const DefaultSerialColumn = "Serial Number"

// ReplaceEmpty returns a copy of ds where missing cells and whitespace-only
// strings hold marker as text.
func ReplaceEmpty(ds *models.Dataset, marker string) (*models.Dataset, error) {
	cols := ds.Columns()
	for i, col := range cols {
		values := make([]models.Value, len(col.Values))
		for r, v := range col.Values {
			if v.IsMissing() || (v.Kind == models.KindString && strings.TrimSpace(v.Str) == "") {
				v = models.String(marker)
			}
			values[r] = v
		}
		cols[i].Values = values
	}
	return models.NewDataset(cols...)
}

// AddSerialNumbers returns a copy of ds with a first column numbering rows from 1.
func AddSerialNumbers(ds *models.Dataset, name string) (*models.Dataset, error) {
	if ds.Has(name) {
		return nil, fmt.Errorf("%w: cannot insert %q, already exists", ErrColumnConflict, name)
	}
	values := make([]models.Value, ds.Len())
	for i := range values {
		values[i] = models.Number(float64(i + 1))
	}
	return ds.InsertColumn(0, models.Column{Name: name, Values: values})
}

package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ukaji3/exdash-go/pkg/exdash/models"
)

// group is one bucket of row indices sharing a group-column value.
type group struct {
	key  models.Value
	rows []int
}

// groupKey identifies a bucket. Kind is part of the key so the number 10
// and the text "10" stay apart.
type groupKey struct {
	kind models.Kind
	text string
}

// groupRows buckets row indices by value, in first-seen order.
func groupRows(values []models.Value) []group {
	index := make(map[groupKey]int)
	var groups []group
	for i, v := range values {
		k := groupKey{kind: v.Kind, text: v.Text()}
		g, ok := index[k]
		if !ok {
			g = len(groups)
			index[k] = g
			groups = append(groups, group{key: v})
		}
		groups[g].rows = append(groups[g].rows, i)
	}
	return groups
}

// Aggregate groups ds by req.GroupColumn and reduces req.ValueColumn with req.Func.
//
// The result holds one row per distinct group value, in the order each value
// first appears, plus one result column named by ResultColumn. Funcs outside
// the aggregation vocabulary return ds unchanged. Under Sum a group with no
// numeric values totals 0; under Mean, Median, Max and Min it is missing.
func Aggregate(ds *models.Dataset, req AggregationRequest, opts ...Option) (*models.Dataset, error) {
	cfg := applyOptions(opts)

	if !req.Func.Valid() {
		cfg.logger.Debug("aggregation passthrough", zap.String("func", string(req.Func)))
		return ds, nil
	}

	groupCol, ok := ds.Column(req.GroupColumn)
	if !ok {
		return nil, columnNotFound(req.GroupColumn)
	}

	if req.Func == FuncCount {
		groups := groupRows(groupCol.Values)
		counts := make([]models.Value, len(groups))
		for i, g := range groups {
			counts[i] = models.Number(float64(len(g.rows)))
		}
		return assemble(req.GroupColumn, groups, ResultColumn(FuncCount, ""), counts)
	}

	if req.ValueColumn == nil {
		return nil, fmt.Errorf("%w for %s", ErrValueColumnRequired, req.Func)
	}
	valueName := *req.ValueColumn
	if !ds.Has(valueName) {
		return nil, columnNotFound(valueName)
	}
	resultName := ResultColumn(req.Func, valueName)
	if resultName == req.GroupColumn {
		return nil, fmt.Errorf("%w: cannot reduce group column %q into itself", ErrColumnConflict, resultName)
	}

	if req.Func == FuncUnique {
		valueCol, _ := ds.Column(valueName)
		groups := groupRows(groupCol.Values)
		uniques := make([]models.Value, len(groups))
		for i, g := range groups {
			seen := make(map[string]struct{}, len(g.rows))
			for _, r := range g.rows {
				seen[valueCol.Values[r].Text()] = struct{}{}
			}
			uniques[i] = models.Number(float64(len(seen)))
		}
		return assemble(req.GroupColumn, groups, resultName, uniques)
	}

	coerced, warn := Coerce(ds, valueName)
	if warn != nil {
		cfg.logger.Warn("numeric coercion incomplete",
			zap.String("column", valueName),
			zap.Int("failed", warn.Failed),
			zap.Int("total", warn.Total),
			zap.Error(warn.Err))
	}
	valueCol, _ := coerced.Column(valueName)
	groupCol, _ = coerced.Column(req.GroupColumn)

	groups := groupRows(groupCol.Values)
	results := make([]models.Value, len(groups))
	for i, g := range groups {
		vals := make([]models.Value, len(g.rows))
		for j, r := range g.rows {
			vals[j] = valueCol.Values[r]
		}
		if x, ok := reduce(req.Func, numbers(vals)); ok {
			results[i] = models.Number(x)
		} else {
			results[i] = models.Missing()
		}
	}

	cfg.logger.Debug("aggregated",
		zap.String("group", req.GroupColumn),
		zap.String("value", valueName),
		zap.String("func", string(req.Func)),
		zap.Int("groups", len(groups)))

	return assemble(req.GroupColumn, groups, resultName, results)
}

func assemble(groupName string, groups []group, resultName string, results []models.Value) (*models.Dataset, error) {
	keys := make([]models.Value, len(groups))
	for i, g := range groups {
		keys[i] = g.key
	}
	return models.NewDataset(
		models.Column{Name: groupName, Values: keys},
		models.Column{Name: resultName, Values: results},
	)
}

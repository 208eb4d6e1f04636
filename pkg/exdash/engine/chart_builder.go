package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ukaji3/exdash-go/pkg/exdash/models"
)

// BuildChart turns a dataset and a ChartRequest into a ChartDescriptor.
//
// When req.YAggregation is not FuncNone the dataset is first aggregated by
// the x column and the y channel is rebound to the aggregation's result
// column. Pie charts bind x to slice names and y to slice sizes and never
// carry a color split.
func BuildChart(ds *models.Dataset, req ChartRequest, opts ...Option) (*models.ChartDescriptor, error) {
	cfg := applyOptions(opts)

	fail := func(err error) (*models.ChartDescriptor, error) {
		return nil, &ChartError{Family: req.Family, Err: err}
	}

	data := ds
	yName := req.YColumn
	if req.YAggregation != "" && req.YAggregation != FuncNone {
		agg, err := Aggregate(ds, AggregationRequest{
			GroupColumn: req.XColumn,
			ValueColumn: req.YColumn,
			Func:        req.YAggregation,
		}, opts...)
		if err != nil {
			return fail(err)
		}
		data = agg
		if req.YAggregation.Valid() {
			yName = Col(ResultColumn(req.YAggregation, deref(req.YColumn)))
		}
	}

	title := fmt.Sprintf("%s - %s vs %s", req.Family, req.XColumn, labelOrNone(yName))

	desc := &models.ChartDescriptor{Family: string(req.Family), Title: title}
	switch req.Family {
	case FamilyLine, FamilyBar, FamilyHistogram, FamilyScatter, FamilyBox:
		x, err := channel(data, &req.XColumn)
		if err != nil {
			return fail(err)
		}
		y, err := channel(data, yName)
		if err != nil {
			return fail(err)
		}
		color, err := channel(data, req.ColorColumn)
		if err != nil {
			return fail(err)
		}
		desc.X, desc.Y, desc.Color = x, y, color
	case FamilyPie:
		names, err := channel(data, &req.XColumn)
		if err != nil {
			return fail(err)
		}
		values, err := channel(data, yName)
		if err != nil {
			return fail(err)
		}
		desc.Names, desc.Values = names, values
	default:
		return fail(ErrUnsupportedChart)
	}

	cfg.logger.Debug("chart built",
		zap.String("family", string(req.Family)),
		zap.String("title", title),
		zap.Int("rows", data.Len()))

	return desc, nil
}

// channel binds an optional column reference to its values. A nil name
// yields a nil channel.
func channel(ds *models.Dataset, name *string) (*models.Channel, error) {
	if name == nil {
		return nil, nil
	}
	col, ok := ds.Column(*name)
	if !ok {
		return nil, columnNotFound(*name)
	}
	return &models.Channel{Column: col.Name, Values: col.Values}, nil
}

func labelOrNone(name *string) string {
	if name == nil {
		return "None"
	}
	return *name
}

package render

import (
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ukaji3/exdash-go/pkg/exdash/models"
)

// palette holds series colors, cycled by index.
var palette = []drawing.Color{
	drawing.ColorFromHex("4F46E5"), drawing.ColorFromHex("10B981"), drawing.ColorFromHex("F59E0B"),
	drawing.ColorFromHex("EF4444"), drawing.ColorFromHex("8B5CF6"), drawing.ColorFromHex("06B6D4"),
	drawing.ColorFromHex("EC4899"), drawing.ColorFromHex("84CC16"), drawing.ColorFromHex("F97316"),
	drawing.ColorFromHex("6366F1"),
}

func colorAt(i int) drawing.Color {
	return palette[i%len(palette)]
}

// pointStyle renders points only, with no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    4,
		DotColor:    col,
	}
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
	}
}

func fillStyle(col drawing.Color) chart.Style {
	return chart.Style{
		FillColor:   col,
		StrokeColor: col,
	}
}

// pie sums slice sizes per name; without a values channel each row counts once.
func (r *Renderer) pie(desc *models.ChartDescriptor) (renderable, error) {
	if desc.Names == nil {
		return nil, ErrNoData
	}
	totals := tally(labels(desc.Names.Values), weights(desc.Values))
	if len(totals) == 0 {
		return nil, ErrNoData
	}

	values := make([]chart.Value, 0, len(totals))
	for i, t := range totals {
		values = append(values, chart.Value{
			Label: t.label,
			Value: t.total,
			Style: fillStyle(colorAt(i)),
		})
	}
	return chart.PieChart{
		Title:  desc.Title,
		Width:  r.width,
		Height: r.height,
		Values: values,
	}, nil
}

// bar draws one bar per x value, stacked by color when a color channel is set.
// Repeated x values add up.
func (r *Renderer) bar(desc *models.ChartDescriptor) (renderable, error) {
	if desc.X == nil {
		return nil, ErrNoData
	}
	xs := labels(desc.X.Values)

	if desc.Color != nil {
		return r.stacked(desc.Title, xs, labels(desc.Color.Values), weights(desc.Y))
	}

	totals := tally(xs, weights(desc.Y))
	if len(totals) == 0 {
		return nil, ErrNoData
	}
	bars := make([]chart.Value, 0, len(totals))
	for _, t := range totals {
		bars = append(bars, chart.Value{Label: t.label, Value: t.total, Style: fillStyle(colorAt(0))})
	}
	return chart.BarChart{
		Title:    desc.Title,
		Width:    r.width,
		Height:   r.height,
		BarWidth: barWidth(r.width, len(bars)),
		YAxis:    chart.YAxis{Range: barRange(bars)},
		Bars:     bars,
	}, nil
}

func (r *Renderer) stacked(title string, xs, colors []string, ws []float64) (renderable, error) {
	type cell struct{ x, color string }

	var xOrder, colorOrder []string
	seenX := make(map[string]bool)
	colorIdx := make(map[string]int)
	sums := make(map[cell]float64)

	for i, x := range xs {
		w := 1.0
		if ws != nil {
			w = ws[i]
		}
		if math.IsNaN(w) {
			continue
		}
		if !seenX[x] {
			seenX[x] = true
			xOrder = append(xOrder, x)
		}
		if _, ok := colorIdx[colors[i]]; !ok {
			colorIdx[colors[i]] = len(colorOrder)
			colorOrder = append(colorOrder, colors[i])
		}
		sums[cell{x, colors[i]}] += w
	}
	if len(xOrder) == 0 {
		return nil, ErrNoData
	}

	bars := make([]chart.StackedBar, 0, len(xOrder))
	for _, x := range xOrder {
		bar := chart.StackedBar{Name: x}
		for _, c := range colorOrder {
			v, ok := sums[cell{x, c}]
			if !ok {
				continue
			}
			bar.Values = append(bar.Values, chart.Value{Label: c, Value: v, Style: fillStyle(colorAt(colorIdx[c]))})
		}
		bars = append(bars, bar)
	}
	return chart.StackedBarChart{
		Title:  title,
		Width:  r.width,
		Height: r.height,
		Bars:   bars,
	}, nil
}

// histogram counts rows (or sums y) per x value. Numeric x with many
// distinct values is grouped into equal-width bins first.
func (r *Renderer) histogram(desc *models.ChartDescriptor) (renderable, error) {
	if desc.X == nil {
		return nil, ErrNoData
	}
	xs := desc.X.Values
	ws := weights(desc.Y)

	keys := labels(xs)
	var binOrder []string
	if nums, ok := allNumeric(xs); ok {
		if bins := binCount(len(nums)); distinct(nums) > bins {
			keys, binOrder = binLabels(xs, bins)
		}
	}

	totals := tally(keys, ws)
	if binOrder != nil {
		totals = reorder(totals, binOrder)
	}
	if len(totals) == 0 {
		return nil, ErrNoData
	}
	bars := make([]chart.Value, 0, len(totals))
	for _, t := range totals {
		bars = append(bars, chart.Value{Label: t.label, Value: t.total, Style: fillStyle(colorAt(0))})
	}
	return chart.BarChart{
		Title:      desc.Title,
		Width:      r.width,
		Height:     r.height,
		BarWidth:   barWidth(r.width, len(bars)),
		BarSpacing: 1,
		YAxis:      chart.YAxis{Range: barRange(bars)},
		Bars:       bars,
	}, nil
}

// xy draws line or scatter series, one per color value.
// Non-numeric x values are placed at their first-seen index with tick labels.
func (r *Renderer) xy(desc *models.ChartDescriptor, scatter bool) (renderable, error) {
	if desc.X == nil {
		return nil, ErrNoData
	}
	if desc.Y == nil {
		return nil, ErrYRequired
	}

	xPos, ticks := positions(desc.X.Values)
	ys := weights(desc.Y)

	seriesNames := make([]string, len(ys))
	if desc.Color != nil {
		seriesNames = labels(desc.Color.Values)
	} else {
		for i := range seriesNames {
			seriesNames[i] = desc.Y.Column
		}
	}

	var order []string
	index := make(map[string]int)
	var series []chart.ContinuousSeries
	for i := range ys {
		if math.IsNaN(xPos[i]) || math.IsNaN(ys[i]) {
			continue
		}
		name := seriesNames[i]
		s, ok := index[name]
		if !ok {
			s = len(series)
			index[name] = s
			order = append(order, name)
			style := lineStyle(colorAt(s))
			if scatter {
				style = pointStyle(colorAt(s))
			}
			series = append(series, chart.ContinuousSeries{Name: name, Style: style})
		}
		series[s].XValues = append(series[s].XValues, xPos[i])
		series[s].YValues = append(series[s].YValues, ys[i])
	}
	if len(series) == 0 {
		return nil, ErrNoData
	}

	c := chart.Chart{
		Title:  desc.Title,
		Width:  r.width,
		Height: r.height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{Name: desc.X.Column, Ticks: padTicks(ticks)},
		YAxis: chart.YAxis{Name: desc.Y.Column},
	}
	if ticks == nil {
		c.XAxis.Range = xRange(series)
	}
	for _, s := range series {
		c.Series = append(c.Series, s)
	}
	if len(order) > 1 {
		c.Elements = []chart.Renderable{chart.Legend(&c)}
	}
	return c, nil
}

// box draws a Tukey box per x value (and color, when set): the Q1..Q3
// box with a median line, whiskers to the furthest values within 1.5 IQR,
// and the remaining values as points.
func (r *Renderer) box(desc *models.ChartDescriptor) (renderable, error) {
	if desc.X == nil {
		return nil, ErrNoData
	}
	if desc.Y == nil {
		return nil, ErrYRequired
	}

	keys := labels(desc.X.Values)
	if desc.Color != nil {
		colors := labels(desc.Color.Values)
		for i := range keys {
			keys[i] = keys[i] + " / " + colors[i]
		}
	}
	ys := weights(desc.Y)

	var order []string
	groups := make(map[string][]float64)
	for i, k := range keys {
		if math.IsNaN(ys[i]) {
			continue
		}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], ys[i])
	}
	if len(order) == 0 {
		return nil, ErrNoData
	}

	const half = 0.3
	var series []chart.Series
	ticks := make([]chart.Tick, 0, len(order))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, k := range order {
		s := summarize(groups[k])
		x := float64(i)
		style := lineStyle(colorAt(i))
		series = append(series,
			chart.ContinuousSeries{Name: k, Style: style,
				XValues: []float64{x - half, x + half, x + half, x - half, x - half},
				YValues: []float64{s.q1, s.q1, s.q3, s.q3, s.q1}},
			chart.ContinuousSeries{Style: style, XValues: []float64{x - half, x + half}, YValues: []float64{s.median, s.median}},
			chart.ContinuousSeries{Style: style, XValues: []float64{x, x}, YValues: []float64{s.low, s.q1}},
			chart.ContinuousSeries{Style: style, XValues: []float64{x, x}, YValues: []float64{s.q3, s.high}},
		)
		lo, hi = math.Min(lo, s.low), math.Max(hi, s.high)
		if len(s.outliers) > 0 {
			xs := make([]float64, len(s.outliers))
			for j := range xs {
				xs[j] = x
			}
			series = append(series, chart.ContinuousSeries{Style: pointStyle(colorAt(i)), XValues: xs, YValues: s.outliers})
			for _, o := range s.outliers {
				lo, hi = math.Min(lo, o), math.Max(hi, o)
			}
		}
		ticks = append(ticks, chart.Tick{Value: x, Label: k})
	}

	return chart.Chart{
		Title:  desc.Title,
		Width:  r.width,
		Height: r.height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis:  chart.XAxis{Name: desc.X.Column, Ticks: padTicks(ticks)},
		YAxis:  chart.YAxis{Name: desc.Y.Column, Range: paddedRange(lo, hi)},
		Series: series,
	}, nil
}

// xRange spans the x values of every series, widening a single value.
func xRange(series []chart.ContinuousSeries) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, x := range s.XValues {
			lo, hi = math.Min(lo, x), math.Max(hi, x)
		}
	}
	if hi == lo {
		return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

// padTicks adds unlabelled ticks half a slot beyond the first and last so
// categories are not drawn on the plot edges and a single category still
// spans a non-empty range.
func padTicks(ticks []chart.Tick) []chart.Tick {
	if len(ticks) == 0 {
		return ticks
	}
	out := make([]chart.Tick, 0, len(ticks)+2)
	out = append(out, chart.Tick{Value: ticks[0].Value - 0.5})
	out = append(out, ticks...)
	return append(out, chart.Tick{Value: ticks[len(ticks)-1].Value + 0.5})
}

// paddedRange spans lo..hi plus a 5% margin, widening a flat range to one unit.
func paddedRange(lo, hi float64) *chart.ContinuousRange {
	if hi == lo {
		lo, hi = lo-0.5, hi+0.5
	}
	pad := (hi - lo) * 0.05
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// barRange spans zero and every bar, so bars grow from the axis and a
// single bar still has a non-empty range.
func barRange(bars []chart.Value) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, b := range bars {
		lo = math.Min(lo, b.Value)
		hi = math.Max(hi, b.Value)
	}
	if hi == lo {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func barWidth(width, bars int) int {
	if bars == 0 {
		return 0
	}
	w := (width - 100) / (bars * 2)
	if w < 4 {
		return 4
	}
	if w > 80 {
		return 80
	}
	return w
}

// positions maps x values to plot coordinates. Numeric columns plot as is;
// otherwise each distinct label gets the next integer position and a tick.
// Missing cells map to NaN.
func positions(values []models.Value) ([]float64, []chart.Tick) {
	out := make([]float64, len(values))
	if nums, ok := allNumeric(values); ok && len(nums) > 0 {
		for i, v := range values {
			out[i] = plottable(v)
		}
		return out, nil
	}

	var ticks []chart.Tick
	index := make(map[string]int)
	for i, v := range values {
		if v.IsMissing() {
			out[i] = math.NaN()
			continue
		}
		label := v.Text()
		p, ok := index[label]
		if !ok {
			p = len(ticks)
			index[label] = p
			ticks = append(ticks, chart.Tick{Value: float64(p), Label: label})
		}
		out[i] = float64(p)
	}
	return out, ticks
}

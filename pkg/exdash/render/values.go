package render

import (
	"fmt"
	"math"

	"github.com/ukaji3/exdash-go/pkg/exdash/engine"
	"github.com/ukaji3/exdash-go/pkg/exdash/models"
)

// labels stringifies values for axis and legend text.
func labels(values []models.Value) []string {
	out := make([]string, len(values))
	for i, v := range values {
		if v.IsMissing() {
			out[i] = "NaN"
			continue
		}
		out[i] = v.Text()
	}
	return out
}

// weights coerces a channel to numbers, NaN where missing or infinite.
// A nil channel yields nil, meaning "one per row".
func weights(ch *models.Channel) []float64 {
	if ch == nil {
		return nil
	}
	out := make([]float64, len(ch.Values))
	for i, v := range ch.Values {
		out[i] = plottable(v)
	}
	return out
}

// plottable returns v as a finite number, or NaN when it cannot be drawn.
func plottable(v models.Value) float64 {
	n, ok := engine.ToNumber(v).Float()
	if !ok || math.IsInf(n, 0) {
		return math.NaN()
	}
	return n
}

type total struct {
	label string
	total float64
}

// tally sums ws per label in first-seen order, skipping NaN weights.
// A nil ws counts rows.
func tally(keys []string, ws []float64) []total {
	index := make(map[string]int)
	var out []total
	for i, k := range keys {
		w := 1.0
		if ws != nil {
			w = ws[i]
		}
		if math.IsNaN(w) {
			continue
		}
		j, ok := index[k]
		if !ok {
			j = len(out)
			index[k] = j
			out = append(out, total{label: k})
		}
		out[j].total += w
	}
	return out
}

// allNumeric reports whether every non-missing value reads as a number,
// returning the finite ones. Infinities count as numeric but are not returned.
func allNumeric(values []models.Value) ([]float64, bool) {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		n, ok := engine.ToNumber(v).Float()
		if !ok {
			return nil, false
		}
		if !math.IsInf(n, 0) {
			nums = append(nums, n)
		}
	}
	return nums, true
}

func distinct(xs []float64) int {
	seen := make(map[float64]struct{}, len(xs))
	for _, x := range xs {
		seen[x] = struct{}{}
	}
	return len(seen)
}

// binCount applies Sturges' rule.
func binCount(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

// binLabels assigns each value to one of bins equal-width intervals. It
// returns the interval label per value and the labels in ascending order.
// Missing and infinite values are labelled "NaN".
func binLabels(values []models.Value, bins int) ([]string, []string) {
	nums, _ := allNumeric(values)
	lo, _ := engine.Min(nums)
	hi, _ := engine.Max(nums)
	width := (hi - lo) / float64(bins)

	names := make([]string, bins)
	for b := range names {
		names[b] = fmt.Sprintf("%.4g-%.4g", lo+float64(b)*width, lo+float64(b+1)*width)
	}

	out := make([]string, len(values))
	for i, v := range values {
		n := plottable(v)
		if math.IsNaN(n) {
			out[i] = "NaN"
			continue
		}
		b := 0
		if width > 0 {
			b = int((n - lo) / width)
		}
		if b < 0 {
			b = 0
		}
		if b >= bins {
			b = bins - 1
		}
		out[i] = names[b]
	}
	return out, names
}

// reorder arranges totals to follow order; labels outside order keep
// their relative position at the end.
func reorder(totals []total, order []string) []total {
	byLabel := make(map[string]total, len(totals))
	for _, t := range totals {
		byLabel[t.label] = t
	}
	out := make([]total, 0, len(totals))
	for _, name := range order {
		if t, ok := byLabel[name]; ok {
			out = append(out, t)
			delete(byLabel, name)
		}
	}
	for _, t := range totals {
		if _, ok := byLabel[t.label]; ok {
			out = append(out, t)
		}
	}
	return out
}

// boxStats summarizes one box: quartiles, whiskers at the furthest values
// within 1.5 IQR of the box, and the values beyond them.
type boxStats struct {
	q1, median, q3 float64
	low, high      float64
	outliers       []float64
}

func summarize(vals []float64) boxStats {
	s := boxStats{
		q1:     engine.Quantile(vals, 0.25),
		median: engine.Quantile(vals, 0.5),
		q3:     engine.Quantile(vals, 0.75),
	}
	iqr := s.q3 - s.q1
	lowFence, highFence := s.q1-1.5*iqr, s.q3+1.5*iqr

	s.low, s.high = s.q1, s.q3
	for _, v := range vals {
		switch {
		case v < lowFence || v > highFence:
			s.outliers = append(s.outliers, v)
		case v < s.low:
			s.low = v
		case v > s.high:
			s.high = v
		}
	}
	return s
}

package engine

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Sum adds xs using decimal arithmetic so spreadsheet decimals such as
// 0.1 + 0.2 total exactly 0.3. An empty slice sums to 0.
func Sum(xs []float64) float64 {
	if !finite(xs) {
		return sumFloat(xs)
	}
	return sumDecimal(xs).InexactFloat64()
}

// Mean averages xs. The sum is exact; the division is done in float64 so
// very small means keep full precision. ok is false for an empty slice.
func Mean(xs []float64) (mean float64, ok bool) {
	if len(xs) == 0 {
		return 0, false
	}
	if !finite(xs) {
		return sumFloat(xs) / float64(len(xs)), true
	}
	return sumDecimal(xs).InexactFloat64() / float64(len(xs)), true
}

// Median returns the middle value of xs, averaging the two middle values
// for even lengths. ok is false for an empty slice.
func Median(xs []float64) (median float64, ok bool) {
	if len(xs) == 0 {
		return 0, false
	}
	return Quantile(xs, 0.5), true
}

// Max returns the largest value of xs. ok is false for an empty slice.
func Max(xs []float64) (max float64, ok bool) {
	if len(xs) == 0 {
		return 0, false
	}
	max = math.Inf(-1)
	for _, x := range xs {
		if x > max {
			max = x
		}
	}
	return max, true
}

// Min returns the smallest value of xs. ok is false for an empty slice.
func Min(xs []float64) (min float64, ok bool) {
	if len(xs) == 0 {
		return 0, false
	}
	min = math.Inf(1)
	for _, x := range xs {
		if x < min {
			min = x
		}
	}
	return min, true
}

// Quantile returns the q-th quantile (0..1) of xs using linear
// interpolation between closest ranks. xs is not modified.
// Returns NaN for an empty slice.
func Quantile(xs []float64, q float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// reduce applies a numeric Func to xs. ok is false when the result is undefined.
func reduce(f Func, xs []float64) (float64, bool) {
	switch f {
	case FuncSum:
		return Sum(xs), true
	case FuncMean:
		return Mean(xs)
	case FuncMedian:
		return Median(xs)
	case FuncMax:
		return Max(xs)
	case FuncMin:
		return Min(xs)
	}
	return 0, false
}

func sumDecimal(xs []float64) decimal.Decimal {
	total := decimal.Zero
	for _, x := range xs {
		total = total.Add(decimal.NewFromFloat(x))
	}
	return total
}

func sumFloat(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}

// finite reports whether xs holds no infinities; decimal cannot represent them.
func finite(xs []float64) bool {
	for _, x := range xs {
		if math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ukaji3/exdash-go/pkg/exdash/models"
)

func salesDataset() *models.Dataset {
	return models.MustDataset(
		models.Column{Name: "Region", Values: strs("West", "East", "West", "North", "East", "West")},
		models.Column{Name: "Rep", Values: []models.Value{
			models.String("ann"), models.String("bob"), models.String("ann"),
			models.Missing(), models.String("cy"), models.String("dee"),
		}},
		models.Column{Name: "Amount", Values: []models.Value{
			models.Number(10), models.String("20"), models.String("n/a"),
			models.Missing(), models.Number(4), models.Number(0.5),
		}},
	)
}

func TestAggregate_SumScenario(t *testing.T) {
	out, err := Aggregate(deptDataset(), AggregationRequest{GroupColumn: "Dept", ValueColumn: Col("Val"), Func: FuncSum})
	require.NoError(t, err)

	assert.Equal(t, []string{"Dept", "Val"}, out.Names())
	assert.Equal(t, strs("A", "B"), column(t, out, "Dept"))
	assert.Equal(t, nums(10, 5), column(t, out, "Val"))
}

func TestAggregate_Count(t *testing.T) {
	ds := salesDataset()

	out, err := Aggregate(ds, AggregationRequest{GroupColumn: "Region", Func: FuncCount})
	require.NoError(t, err)

	assert.Equal(t, []string{"Region", "Count"}, out.Names())
	// First-seen order, not sorted.
	assert.Equal(t, strs("West", "East", "North"), column(t, out, "Region"))
	assert.Equal(t, nums(3, 2, 1), column(t, out, "Count"))

	var total float64
	for _, v := range column(t, out, "Count") {
		total += v.Num
	}
	assert.Equal(t, float64(ds.Len()), total)
}

func TestAggregate_CountKeepsMissingGroup(t *testing.T) {
	ds := models.MustDataset(
		models.Column{Name: "g", Values: []models.Value{models.String("a"), models.Missing(), models.String("a"), models.Missing()}},
	)

	out, err := Aggregate(ds, AggregationRequest{GroupColumn: "g", Func: FuncCount})
	require.NoError(t, err)

	assert.Equal(t, []models.Value{models.String("a"), models.Missing()}, column(t, out, "g"))
	assert.Equal(t, nums(2, 2), column(t, out, "Count"))
}

func TestAggregate_GroupsSeparateNumberFromText(t *testing.T) {
	ds := models.MustDataset(
		models.Column{Name: "g", Values: []models.Value{models.Number(10), models.String("10"), models.Number(10)}},
	)

	out, err := Aggregate(ds, AggregationRequest{GroupColumn: "g", Func: FuncCount})
	require.NoError(t, err)
	assert.Equal(t, nums(2, 1), column(t, out, "Count"))
}

func TestAggregate_Unique(t *testing.T) {
	ds := salesDataset()

	out, err := Aggregate(ds, AggregationRequest{GroupColumn: "Region", ValueColumn: Col("Rep"), Func: FuncUnique})
	require.NoError(t, err)

	assert.Equal(t, []string{"Region", "Unique Rep"}, out.Names())
	assert.Equal(t, nums(2, 2, 1), column(t, out, "Unique Rep"))
}

func TestAggregate_UniqueIsStringBased(t *testing.T) {
	ds := models.MustDataset(
		models.Column{Name: "g", Values: strs("a", "a", "a")},
		models.Column{Name: "v", Values: []models.Value{models.String("10"), models.String("10.0"), models.Number(10)}},
	)

	out, err := Aggregate(ds, AggregationRequest{GroupColumn: "g", ValueColumn: Col("v"), Func: FuncUnique})
	require.NoError(t, err)
	// "10" and Number(10) stringify alike; "10.0" does not.
	assert.Equal(t, nums(2), column(t, out, "Unique v"))
}

func TestAggregate_UniqueNeverExceedsCount(t *testing.T) {
	ds := salesDataset()

	counts, err := Aggregate(ds, AggregationRequest{GroupColumn: "Region", Func: FuncCount})
	require.NoError(t, err)

	for _, value := range []string{"Rep", "Amount", "Region"} {
		uniques, err := Aggregate(ds, AggregationRequest{GroupColumn: "Region", ValueColumn: Col(value), Func: FuncUnique})
		require.NoError(t, err)

		c := column(t, counts, "Count")
		u := column(t, uniques, "Unique "+value)
		require.Len(t, u, len(c))
		for i := range c {
			assert.LessOrEqual(t, u[i].Num, c[i].Num, "group %d of %s", i, value)
		}
	}
}

func TestAggregate_NumericFuncs(t *testing.T) {
	ds := salesDataset()

	tests := []struct {
		fn       Func
		expected []models.Value
	}{
		// West: 10, n/a, 0.5  East: 20, 4  North: missing
		{FuncSum, nums(10.5, 24, 0)},
		{FuncMean, []models.Value{models.Number(5.25), models.Number(12), models.Missing()}},
		{FuncMedian, []models.Value{models.Number(5.25), models.Number(12), models.Missing()}},
		{FuncMax, []models.Value{models.Number(10), models.Number(20), models.Missing()}},
		{FuncMin, []models.Value{models.Number(0.5), models.Number(4), models.Missing()}},
	}

	for _, tt := range tests {
		t.Run(string(tt.fn), func(t *testing.T) {
			out, err := Aggregate(ds, AggregationRequest{GroupColumn: "Region", ValueColumn: Col("Amount"), Func: tt.fn})
			require.NoError(t, err)

			assert.Equal(t, []string{"Region", "Amount"}, out.Names())
			assert.Equal(t, strs("West", "East", "North"), column(t, out, "Region"))
			assert.Equal(t, tt.expected, column(t, out, "Amount"))
		})
	}
}

func TestAggregate_DoesNotMutateSource(t *testing.T) {
	ds := deptDataset()
	before := ds.Clone()

	_, err := Aggregate(ds, AggregationRequest{GroupColumn: "Dept", ValueColumn: Col("Val"), Func: FuncMean})
	require.NoError(t, err)

	assert.True(t, ds.Equal(before))
}

func TestAggregate_Passthrough(t *testing.T) {
	ds := deptDataset()

	for _, fn := range []Func{FuncNone, "Mode", ""} {
		out, err := Aggregate(ds, AggregationRequest{GroupColumn: "Dept", ValueColumn: Col("Val"), Func: fn})
		require.NoError(t, err)
		assert.Same(t, ds, out, "func %q", fn)
	}
}

func TestAggregate_Errors(t *testing.T) {
	ds := deptDataset()

	tests := []struct {
		name     string
		req      AggregationRequest
		expected error
	}{
		{"unknown group", AggregationRequest{GroupColumn: "Nope", Func: FuncCount}, ErrColumnNotFound},
		{"unknown value", AggregationRequest{GroupColumn: "Dept", ValueColumn: Col("Nope"), Func: FuncSum}, ErrColumnNotFound},
		{"no value column", AggregationRequest{GroupColumn: "Dept", Func: FuncUnique}, ErrValueColumnRequired},
		{"reduce group into itself", AggregationRequest{GroupColumn: "Dept", ValueColumn: Col("Dept"), Func: FuncMax}, ErrColumnConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Aggregate(ds, tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
		})
	}
}

func TestAggregate_LogsCoercionWarning(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)

	_, err := Aggregate(deptDataset(), AggregationRequest{GroupColumn: "Dept", ValueColumn: Col("Val"), Func: FuncSum}, WithLogger(logger))
	require.NoError(t, err)

	entries := logs.FilterMessage("numeric coercion incomplete").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Val", entries[0].ContextMap()["column"])
	assert.EqualValues(t, 1, entries[0].ContextMap()["failed"])
}

package exdash

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/exdash-go/pkg/exdash/engine"
	"github.com/ukaji3/exdash-go/pkg/exdash/models"
)

func TestSession_Flow(t *testing.T) {
	s, err := Open(writeWorkbook(t), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "Sales", s.Sheet())
	assert.NotEqual(t, uuid.Nil, s.ID)

	require.NoError(t, s.ReplaceEmpty(engine.DefaultNullMarker))
	require.NoError(t, s.AddSerialNumbers(engine.DefaultSerialColumn))
	assert.Equal(t, []string{"Serial Number", "Dept", "Val", "Owner"}, s.Data().Names())

	owner, _ := s.Data().Column("Owner")
	assert.Equal(t, models.String("NULL"), owner.Values[2])

	desc, err := s.Chart(engine.ChartRequest{
		Family:       engine.FamilyPie,
		XColumn:      "Dept",
		YColumn:      engine.Col("Val"),
		YAggregation: engine.FuncSum,
	})
	require.NoError(t, err)
	assert.Equal(t, "Pie Chart - Dept vs Val", desc.Title)
	assert.Equal(t, []models.Value{models.Number(10), models.Number(5)}, desc.Values.Values)

	res, err := s.Calculate(engine.ScalarRequest{Column: "Dept", Func: engine.FuncUnique})
	require.NoError(t, err)
	assert.Equal(t, models.Number(2), res.Value)

	// A failed action leaves the session usable.
	_, err = s.Chart(engine.ChartRequest{Family: "Radar", XColumn: "Dept"})
	assert.True(t, errors.Is(err, engine.ErrUnsupportedChart))

	agg, err := s.Aggregate(engine.AggregationRequest{GroupColumn: "Dept", Func: engine.FuncCount})
	require.NoError(t, err)
	assert.Equal(t, 2, agg.Len())
	assert.Equal(t, 3, s.Data().Len())
}

func TestSession_SelectSheetResetsEdits(t *testing.T) {
	s, err := Open(writeWorkbook(t), DefaultOptions())
	require.NoError(t, err)

	require.NoError(t, s.AddSerialNumbers("No"))
	require.NoError(t, s.SelectSheet("Offset"))
	require.NoError(t, s.SelectSheet("Sales"))
	assert.False(t, s.Data().Has("No"))

	sales, _ := s.Workbook.Sheet("Sales")
	assert.False(t, sales.Has("No"), "edits never reach the loaded workbook")

	assert.True(t, errors.Is(s.SelectSheet("Nope"), ErrSheetNotFound))
	assert.Equal(t, "Sales", s.Sheet())
}

func TestSession_Independent(t *testing.T) {
	path := writeWorkbook(t)
	a, err := Open(path, DefaultOptions())
	require.NoError(t, err)
	b, err := NewSession(a.Workbook, nil)
	require.NoError(t, err)

	require.NoError(t, a.ReplaceEmpty("EMPTY"))

	assert.NotEqual(t, a.ID, b.ID)
	owner, _ := b.Data().Column("Owner")
	assert.True(t, owner.Values[2].IsMissing())
}

func TestNewSession_NoSheets(t *testing.T) {
	_, err := NewSession(&models.Workbook{BookName: "empty.xlsx"}, nil)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

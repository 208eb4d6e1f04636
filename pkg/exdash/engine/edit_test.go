package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/exdash-go/pkg/exdash/models"
)

func TestReplaceEmpty(t *testing.T) {
	ds := models.MustDataset(
		models.Column{Name: "a", Values: []models.Value{models.String("x"), models.String("  "), models.Missing()}},
		models.Column{Name: "b", Values: []models.Value{models.Number(0), models.Missing(), models.String("")}},
	)

	out, err := ReplaceEmpty(ds, DefaultNullMarker)
	require.NoError(t, err)

	assert.Equal(t, []models.Value{models.String("x"), models.String("NULL"), models.String("NULL")}, column(t, out, "a"))
	assert.Equal(t, []models.Value{models.Number(0), models.String("NULL"), models.String("NULL")}, column(t, out, "b"))
	assert.True(t, column(t, ds, "a")[2].IsMissing(), "source must be untouched")
}

func TestAddSerialNumbers(t *testing.T) {
	ds := deptDataset()

	out, err := AddSerialNumbers(ds, DefaultSerialColumn)
	require.NoError(t, err)

	assert.Equal(t, []string{"Serial Number", "Dept", "Val"}, out.Names())
	assert.Equal(t, nums(1, 2, 3), column(t, out, "Serial Number"))
	assert.Equal(t, 2, ds.Width())

	_, err = AddSerialNumbers(out, DefaultSerialColumn)
	assert.True(t, errors.Is(err, ErrColumnConflict))
}

package output

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/exdash-go/pkg/exdash/models"
)

func sample() *models.Dataset {
	return models.MustDataset(
		models.Column{Name: "Dept", Values: []models.Value{models.String("A"), models.String("B"), models.String("C")}},
		models.Column{Name: "Val", Values: []models.Value{models.Number(10), models.Missing(), models.Number(2.5)}},
	)
}

func TestToJSON_Table(t *testing.T) {
	data, err := ToJSON(NewTable("Sales", sample(), 0), false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sheet":"Sales","columns":["Dept","Val"],"rows":[["A",10],["B",null],["C",2.5]]}`, string(data))

	pretty, err := ToJSON(NewTable("", sample(), 1), true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  ")

	var decoded Table
	require.NoError(t, json.Unmarshal(pretty, &decoded))
	assert.Len(t, decoded.Rows, 1)
}

func TestToJSON_NonFinite(t *testing.T) {
	ds := models.MustDataset(
		models.Column{Name: "Val", Values: []models.Value{models.Number(math.Inf(1)), models.Number(math.NaN()), models.Number(1)}},
	)
	data, err := ToJSON(NewTable("", ds, 0), false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"columns":["Val"],"rows":[[null],[null],[1]]}`, string(data))
}

func TestToJSON_Descriptor(t *testing.T) {
	desc := &models.ChartDescriptor{
		Family: "Pie Chart",
		Title:  "Pie Chart - Dept vs Val",
		Names:  &models.Channel{Column: "Dept", Values: []models.Value{models.String("A")}},
		Values: &models.Channel{Column: "Val", Values: []models.Value{models.Number(10)}},
	}

	data, err := ToJSON(desc, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"family": "Pie Chart",
		"title": "Pie Chart - Dept vs Val",
		"names": {"column": "Dept", "values": ["A"]},
		"values": {"column": "Val", "values": [10]}
	}`, string(data))
}

func TestToYAML(t *testing.T) {
	data, err := ToYAML(NewTable("Sales", sample(), 0))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "Sales", decoded["sheet"])
	rows := decoded["rows"].([]interface{})
	assert.Len(t, rows, 3)
	assert.Nil(t, rows[1].([]interface{})[1])
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sample(), 2))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Dept  Val", lines[0])
	assert.Equal(t, "A     10", lines[1])
	assert.Equal(t, "B     NaN", lines[2])
	assert.Equal(t, "... 1 more rows", lines[3])
}

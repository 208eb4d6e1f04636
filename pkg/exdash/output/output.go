// Package output serializes datasets, chart descriptors and results.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/exdash-go/pkg/exdash/models"
)

// Table is the serializable form of a Dataset.
type Table struct {
	Sheet   string          `json:"sheet,omitempty" yaml:"sheet,omitempty"`
	Columns []string        `json:"columns" yaml:"columns"`
	Rows    [][]interface{} `json:"rows" yaml:"rows"`
}

// NewTable converts ds into a Table, keeping at most limit rows (0 = all).
func NewTable(sheet string, ds *models.Dataset, limit int) Table {
	n := ds.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	t := Table{Sheet: sheet, Columns: ds.Names(), Rows: make([][]interface{}, n)}
	for i := 0; i < n; i++ {
		row := ds.Row(i)
		cells := make([]interface{}, len(row))
		for c, v := range row {
			cells[c] = v.Interface()
		}
		t.Rows[i] = cells
	}
	return t
}

// ToJSON serializes v to JSON.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// ToYAML serializes v to YAML.
func ToYAML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTable prints ds as aligned text, at most limit rows (0 = all).
func WriteTable(w io.Writer, ds *models.Dataset, limit int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(ds.Names(), "\t"))

	n := ds.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	for i := 0; i < n; i++ {
		row := ds.Row(i)
		cells := make([]string, len(row))
		for c, v := range row {
			cells[c] = cellText(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if n < ds.Len() {
		_, err := fmt.Fprintf(w, "... %d more rows\n", ds.Len()-n)
		return err
	}
	return nil
}

// FormatValue renders a scalar result for humans.
func FormatValue(v models.Value) string {
	return cellText(v)
}

func cellText(v models.Value) string {
	if v.IsMissing() {
		return "NaN"
	}
	return v.Text()
}

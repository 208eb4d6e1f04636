package models

import (
	"errors"
	"fmt"
)

// ErrDuplicateColumn indicates two columns share a name.
var ErrDuplicateColumn = errors.New("duplicate column name")

// ErrColumnLength indicates a column whose length differs from the rest.
var ErrColumnLength = errors.New("column length mismatch")

// Column is a named, ordered sequence of cell values.
type Column struct {
	// Name is the header text of the column.
	Name string `json:"name"`
	// Values holds one entry per row.
	Values []Value `json:"values"`
}

// Dataset is an ordered set of equal-length, uniquely named columns.
// Operations return new datasets; the receiver is never modified.
type Dataset struct {
	columns []Column
	index   map[string]int
}

// NewDataset builds a Dataset, enforcing equal lengths and unique names.
func NewDataset(columns ...Column) (*Dataset, error) {
	ds := &Dataset{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if _, dup := ds.index[col.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, col.Name)
		}
		if i > 0 && len(col.Values) != len(columns[0].Values) {
			return nil, fmt.Errorf("%w: %q has %d rows, expected %d",
				ErrColumnLength, col.Name, len(col.Values), len(columns[0].Values))
		}
		ds.index[col.Name] = i
		ds.columns = append(ds.columns, col)
	}
	return ds, nil
}

// MustDataset is NewDataset that panics on invalid input. Intended for tests and literals.
func MustDataset(columns ...Column) *Dataset {
	ds, err := NewDataset(columns...)
	if err != nil {
		panic(err)
	}
	return ds
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil || len(d.columns) == 0 {
		return 0
	}
	return len(d.columns[0].Values)
}

// Width returns the number of columns.
func (d *Dataset) Width() int {
	if d == nil {
		return 0
	}
	return len(d.columns)
}

// Names returns column names in order.
func (d *Dataset) Names() []string {
	if d == nil {
		return nil
	}
	names := make([]string, len(d.columns))
	for i, col := range d.columns {
		names[i] = col.Name
	}
	return names
}

// Columns returns the columns in order. The slice is a copy; values are shared.
func (d *Dataset) Columns() []Column {
	if d == nil {
		return nil
	}
	out := make([]Column, len(d.columns))
	copy(out, d.columns)
	return out
}

// Index returns the position of the named column, or -1.
func (d *Dataset) Index(name string) int {
	if d == nil {
		return -1
	}
	if i, ok := d.index[name]; ok {
		return i
	}
	return -1
}

// Has reports whether the named column exists.
func (d *Dataset) Has(name string) bool {
	return d.Index(name) >= 0
}

// Column returns the named column.
func (d *Dataset) Column(name string) (Column, bool) {
	i := d.Index(name)
	if i < 0 {
		return Column{}, false
	}
	return d.columns[i], true
}

// Row returns the values of row i in column order.
func (d *Dataset) Row(i int) []Value {
	if i < 0 || i >= d.Len() {
		return nil
	}
	row := make([]Value, len(d.columns))
	for c, col := range d.columns {
		row[c] = col.Values[i]
	}
	return row
}

// WithColumn returns a copy of d where the named column's values are replaced.
// If no such column exists it is appended.
func (d *Dataset) WithColumn(name string, values []Value) (*Dataset, error) {
	cols := d.Columns()
	if i := d.Index(name); i >= 0 {
		cols[i] = Column{Name: name, Values: values}
	} else {
		cols = append(cols, Column{Name: name, Values: values})
	}
	return NewDataset(cols...)
}

// InsertColumn returns a copy of d with col inserted at position pos.
func (d *Dataset) InsertColumn(pos int, col Column) (*Dataset, error) {
	cols := d.Columns()
	if pos < 0 {
		pos = 0
	}
	if pos > len(cols) {
		pos = len(cols)
	}
	cols = append(cols, Column{})
	copy(cols[pos+1:], cols[pos:])
	cols[pos] = col
	return NewDataset(cols...)
}

// Clone returns a deep copy of d.
func (d *Dataset) Clone() *Dataset {
	cols := d.Columns()
	for i := range cols {
		values := make([]Value, len(cols[i].Values))
		copy(values, cols[i].Values)
		cols[i].Values = values
	}
	ds, _ := NewDataset(cols...)
	return ds
}

// Equal reports whether two datasets hold the same columns and values.
func (d *Dataset) Equal(other *Dataset) bool {
	if d.Width() != other.Width() || d.Len() != other.Len() {
		return false
	}
	for i, col := range d.columns {
		oc := other.columns[i]
		if col.Name != oc.Name {
			return false
		}
		for r := range col.Values {
			if col.Values[r] != oc.Values[r] {
				return false
			}
		}
	}
	return true
}

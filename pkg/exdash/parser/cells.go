// Package parser converts excelize worksheets into datasets.
package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/exdash-go/pkg/exdash/models"
	"github.com/xuri/excelize/v2"
)

// ReadRows returns the typed cells of a sheet, row by row.
//
// Numbers come from raw cell values so display formats do not round them.
// Cells whose number format is a date become text such as "2024-03-01",
// booleans become "True" or "False", and text cells stay text even when
// they look numeric.
func ReadRows(f *excelize.File, sheetName string) ([][]models.Value, error) {
	raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	props, err := f.GetWorkbookProps()
	if err != nil {
		return nil, err
	}
	r := &cellReader{
		f:          f,
		sheet:      sheetName,
		dateStyles: make(map[int]bool),
	}
	if props.Date1904 != nil {
		r.date1904 = *props.Date1904
	}

	rows := make([][]models.Value, len(raw))
	for i, row := range raw {
		rows[i] = make([]models.Value, len(row))
		for j, text := range row {
			v, err := r.value(j+1, i+1, text)
			if err != nil {
				return nil, err
			}
			rows[i][j] = v
		}
	}
	return rows, nil
}

// ParseRows types a grid of plain text, as from a CSV export.
func ParseRows(rows [][]string) [][]models.Value {
	out := make([][]models.Value, len(rows))
	for i, row := range rows {
		out[i] = make([]models.Value, len(row))
		for j, s := range row {
			out[i][j] = parseValue(s)
		}
	}
	return out
}

// TextRows returns the text of every cell, "" for missing ones.
func TextRows(rows [][]models.Value) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, v := range row {
			out[i][j] = v.Text()
		}
	}
	return out
}

// BuildDataset converts typed rows into a Dataset.
// The first row inside bounds is the header; the rest are data rows.
// A nil bounds uses every row and column.
func BuildDataset(rows [][]models.Value, bounds *models.Range) (*models.Dataset, error) {
	if bounds == nil {
		full := fullRange(rows)
		if full == nil {
			return models.NewDataset()
		}
		bounds = full
	}

	header := sliceRow(rows, bounds.R1-1, bounds)
	texts := make([]string, len(header))
	for i, v := range header {
		texts[i] = v.Text()
	}
	names := headerNames(texts)

	cols := make([]models.Column, len(names))
	for c, name := range names {
		cols[c] = models.Column{Name: name, Values: make([]models.Value, 0, bounds.Rows()-1)}
	}

	for r := bounds.R1; r < bounds.R2; r++ { // r is the 0-based index of the data row
		cells := sliceRow(rows, r, bounds)
		for c := range cols {
			cols[c].Values = append(cols[c].Values, cells[c])
		}
	}

	return models.NewDataset(cols...)
}

// sliceRow returns the cells of 0-based row idx within bounds, padded with
// missing cells to the bounds width.
func sliceRow(rows [][]models.Value, idx int, bounds *models.Range) []models.Value {
	out := make([]models.Value, bounds.Cols())
	if idx < 0 || idx >= len(rows) {
		return out
	}
	row := rows[idx]
	for c := bounds.C1 - 1; c < bounds.C2 && c < len(row); c++ {
		out[c-(bounds.C1-1)] = row[c]
	}
	return out
}

// headerNames turns header cells into unique column names.
// Blank headers become "Unnamed: <i>"; repeats get ".1", ".2" suffixes.
func headerNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		base := name
		for {
			n, dup := seen[name]
			if !dup {
				break
			}
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", base, n+1)
		}
		seen[name] = 0
		names[i] = name
	}
	return names
}

// fullRange covers every row and the widest row, or nil when rows are empty.
func fullRange(rows [][]models.Value) *models.Range {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if len(rows) == 0 || width == 0 {
		return nil
	}
	return &models.Range{R1: 1, C1: 1, R2: len(rows), C2: width}
}

// parseValue interprets a text cell.
// Empty cells are missing, finite decimal text becomes a number, anything
// else (including "inf", "nan" and hex forms) stays text.
func parseValue(s string) models.Value {
	if s == "" {
		return models.Missing()
	}
	if f, ok := models.ParseNumber(s); ok && finite(f) {
		return models.Number(f)
	}
	return models.String(s)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

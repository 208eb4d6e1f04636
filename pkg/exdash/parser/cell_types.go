package parser

import (
	"strings"
	"time"

	"github.com/ukaji3/exdash-go/pkg/exdash/models"
	"github.com/xuri/excelize/v2"
)

// cellReader types the raw values of one sheet.
type cellReader struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	// dateStyles caches whether a style ID carries a date number format.
	dateStyles map[int]bool
}

// value types the raw text of the cell at 1-based (col, row).
func (r *cellReader) value(col, row int, raw string) (models.Value, error) {
	if raw == "" {
		return models.Missing(), nil
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return models.Value{}, err
	}
	typ, err := r.f.GetCellType(r.sheet, cell)
	if err != nil {
		return models.Value{}, err
	}

	switch typ {
	case excelize.CellTypeBool:
		if raw == "1" || strings.EqualFold(raw, "true") {
			return models.String("True"), nil
		}
		return models.String("False"), nil
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		n, ok := models.ParseNumber(raw)
		if !ok || !finite(n) {
			return models.String(raw), nil
		}
		date, err := r.isDate(cell)
		if err != nil {
			return models.Value{}, err
		}
		if date {
			return r.dateValue(n), nil
		}
		return models.Number(n), nil
	default:
		// Shared and inline strings, formula text results, ISO dates, errors.
		return models.String(raw), nil
	}
}

func (r *cellReader) isDate(cell string) (bool, error) {
	styleID, err := r.f.GetCellStyle(r.sheet, cell)
	if err != nil {
		return false, err
	}
	if date, ok := r.dateStyles[styleID]; ok {
		return date, nil
	}

	date := false
	if style, err := r.f.GetStyle(styleID); err == nil && style != nil {
		if style.CustomNumFmt != nil {
			date = isDateFormat(*style.CustomNumFmt)
		} else {
			date = isBuiltinDateFormat(style.NumFmt)
		}
	}
	r.dateStyles[styleID] = date
	return date, nil
}

// dateValue renders an Excel serial date. Whole days print as a date,
// fractions below one day as a time of day, anything else as both.
func (r *cellReader) dateValue(serial float64) models.Value {
	t, err := excelize.ExcelDateToTime(serial, r.date1904)
	if err != nil {
		return models.Number(serial)
	}
	t = t.Round(time.Second)
	switch {
	case serial < 1:
		return models.String(t.Format("15:04:05"))
	case t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0:
		return models.String(t.Format("2006-01-02"))
	default:
		return models.String(t.Format("2006-01-02 15:04:05"))
	}
}

// isBuiltinDateFormat reports whether a built-in number format ID shows
// dates or times, including the East Asian locale IDs.
func isBuiltinDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormat reports whether a custom number format code contains date
// or time tokens outside quoted literals, escapes and [..] sections.
func isDateFormat(code string) bool {
	if strings.EqualFold(code, "General") {
		return false
	}
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case inQuote:
			inQuote = ch != '"'
		case inBracket:
			inBracket = ch != ']'
		case ch == '"':
			inQuote = true
		case ch == '[':
			inBracket = true
		case ch == '\\' || ch == '_' || ch == '*':
			i++
		default:
			switch ch | 0x20 {
			case 'y', 'm', 'd', 'h', 's':
				return true
			}
		}
	}
	return false
}

// Package models defines data structures for sheet datasets and chart descriptors.
package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	// KindMissing marks an absent or unparseable cell.
	KindMissing Kind = iota
	// KindString marks a text cell.
	KindString
	// KindNumber marks a numeric cell.
	KindNumber
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "missing"
	}
}

// Value is a single cell: a string, a number, or missing.
type Value struct {
	// Kind selects which of Str or Num is meaningful.
	Kind Kind
	// Str is the text content for KindString.
	Str string
	// Num is the numeric content for KindNumber.
	Num float64
}

// String returns a text Value.
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Number returns a numeric Value.
func Number(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

// Missing returns the missing marker.
func Missing() Value {
	return Value{Kind: KindMissing}
}

// IsMissing reports whether v is the missing marker.
func (v Value) IsMissing() bool {
	return v.Kind == KindMissing
}

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool {
	return v.Kind == KindNumber
}

// Float returns the numeric content and whether v is a number.
func (v Value) Float() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	return v.Num, true
}

// Text returns the stringified form of v.
// Numbers use the shortest representation that round-trips (10, 2.5),
// missing values render as the empty string.
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	default:
		return ""
	}
}

// Interface returns v as a plain Go value: string, float64, or nil.
// NaN and infinities have no JSON form and come back as nil.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return nil
		}
		return v.Num
	default:
		return nil
	}
}

// MarshalJSON encodes v as a JSON string, number, or null.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// MarshalYAML encodes v as a YAML scalar or null.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.Interface(), nil
}

// ParseNumber reads s as a decimal number. Hexadecimal forms such as
// "0x1p4" are rejected; "inf" and "nan" are accepted and left to the caller.
func ParseNumber(s string) (float64, bool) {
	unsigned := strings.TrimLeft(s, "+-")
	if len(unsigned) > 1 && unsigned[0] == '0' && (unsigned[1] == 'x' || unsigned[1] == 'X') {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

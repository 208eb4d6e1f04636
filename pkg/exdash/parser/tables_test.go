package parser

import (
	"testing"

	"github.com/ukaji3/exdash-go/pkg/exdash/models"
)

func TestDetectRegion(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		expected *models.Range
	}{
		{"empty", nil, nil},
		{"single cell", [][]string{{"x"}}, nil},
		{
			"offset table",
			[][]string{{}, {"", "h1", "h2"}, {"", "1", "2"}, {"", "3"}},
			&models.Range{R1: 2, C1: 2, R2: 4, C2: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectRegion(tt.rows, DefaultTableParams())
			if tt.expected == nil {
				if got != nil {
					t.Errorf("expected nil, got %v", *got)
				}
				return
			}
			if got == nil || *got != *tt.expected {
				t.Errorf("DetectRegion = %v, expected %v", got, *tt.expected)
			}
		})
	}
}

func TestRangeRef(t *testing.T) {
	if got := RangeRef(models.Range{R1: 2, C1: 2, R2: 10, C2: 4}); got != "B2:D10" {
		t.Errorf("RangeRef = %q, expected B2:D10", got)
	}
}

func TestParseAreaReference(t *testing.T) {
	sheet, areas := parseAreaReference("'My Sheet'!$A$1:$C$5,'My Sheet'!$E$1:$F$2")
	if sheet != "My Sheet" {
		t.Errorf("sheet = %q", sheet)
	}
	if len(areas) != 2 {
		t.Fatalf("expected 2 areas, got %d", len(areas))
	}
	if areas[0] != (models.Range{R1: 1, C1: 1, R2: 5, C2: 3}) {
		t.Errorf("area[0] = %v", areas[0])
	}
	if areas[1] != (models.Range{R1: 1, C1: 5, R2: 2, C2: 6}) {
		t.Errorf("area[1] = %v", areas[1])
	}
}

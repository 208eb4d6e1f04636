package engine

import (
	"testing"

	"github.com/ukaji3/exdash-go/pkg/exdash/models"
)

func strs(ss ...string) []models.Value {
	out := make([]models.Value, len(ss))
	for i, s := range ss {
		out[i] = models.String(s)
	}
	return out
}

func nums(fs ...float64) []models.Value {
	out := make([]models.Value, len(fs))
	for i, f := range fs {
		out[i] = models.Number(f)
	}
	return out
}

// deptDataset is the three-row Dept/Val sample used across tests.
func deptDataset() *models.Dataset {
	return models.MustDataset(
		models.Column{Name: "Dept", Values: strs("A", "A", "B")},
		models.Column{Name: "Val", Values: strs("10", "x", "5")},
	)
}

func column(t testing.TB, ds *models.Dataset, name string) []models.Value {
	t.Helper()
	col, ok := ds.Column(name)
	if !ok {
		t.Fatalf("column %q not found in %v", name, ds.Names())
	}
	return col.Values
}

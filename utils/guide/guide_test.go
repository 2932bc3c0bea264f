package guide

import (
	"testing"
)

func TestElementsCoverCoreCategories(t *testing.T) {
	byCategory := make(map[string]int)
	for _, e := range Elements {
		if e.Name == "" || e.Description == "" {
			t.Errorf("element %+v is incomplete", e)
		}
		byCategory[e.Category]++
	}

	for _, category := range []string{"Events", "Activities", "Gateways", "Connections", "Swimlanes", "Artifacts"} {
		if byCategory[category] == 0 {
			t.Errorf("no elements in category %s", category)
		}
	}
}

func TestElementNamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, e := range Elements {
		if seen[e.Name] {
			t.Errorf("duplicate element %s", e.Name)
		}
		seen[e.Name] = true
	}
}

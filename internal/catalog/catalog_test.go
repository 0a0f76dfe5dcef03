package catalog_test

import (
	"testing"

	"taskBoard/internal/catalog"

	"github.com/stretchr/testify/assert"
)

func TestIsSubcategory(t *testing.T) {
	tests := []struct {
		name        string
		category    string
		subcategory string
		expected    bool
	}{
		{name: "valid pair", category: "HR", subcategory: "Annual Leave", expected: true},
		{name: "subcategory of another category", category: "HR", subcategory: "Repairs", expected: false},
		{name: "unknown category", category: "Marketing", subcategory: "Annual Leave", expected: false},
		{name: "case sensitive", category: "hr", subcategory: "Annual Leave", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, catalog.IsSubcategory(tt.category, tt.subcategory))
		})
	}
}

func TestCategories_ReturnsCopy(t *testing.T) {
	cats := catalog.Categories()
	cats["HR"][0] = "changed"
	delete(cats, "Legal")

	assert.True(t, catalog.IsCategory("Legal"))
	assert.True(t, catalog.IsSubcategory("HR", "Onboarding Staff"))
}

func TestCategoryNames_Sorted(t *testing.T) {
	names := catalog.CategoryNames()
	assert.Len(t, names, 8)
	assert.IsNonDecreasing(t, names)
}

func TestStatuses(t *testing.T) {
	statuses := catalog.Statuses()
	assert.Len(t, statuses, 4)

	done, ok := catalog.StatusByID(3)
	assert.True(t, ok)
	assert.Equal(t, "Done", done.Name)

	_, ok = catalog.StatusByID(5)
	assert.False(t, ok)
}

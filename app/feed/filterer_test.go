package feed

import (
	"strings"
	"testing"
)

func testItems() []Item {
	return []Item{
		{GUID: "1", Title: "Release notes 2.0", Authors: []string{"Jane Doe"}, Categories: []string{"Product"}},
		{GUID: "2", Title: "Draft release plan", Authors: []string{"Sam"}, Categories: []string{"Internal"}},
		{GUID: "3", Title: "Team offsite recap", Link: "https://example.com/culture/offsite"},
	}
}

func TestFiltererNoFilters(t *testing.T) {
	items := NewFilterer().Run(testItems(), &Config{})

	for _, item := range items {
		if item.IsFiltered {
			t.Errorf("Expected item %s not to be filtered", item.GUID)
		}
	}
}

func TestFiltererIncludeAndExclude(t *testing.T) {
	sourceConfig := &Config{
		Filters: []ConfigFilter{
			{Field: "title", Includes: []string{"RELEASE"}, Excludes: []string{"draft"}},
		},
	}

	items := NewFilterer().Run(testItems(), sourceConfig)

	if items[0].IsFiltered {
		t.Errorf("Expected item 1 to pass, got reason '%s'", items[0].FilterReason)
	}
	if !items[1].IsFiltered || !strings.Contains(items[1].FilterReason, "contains 'draft'") {
		t.Errorf("Expected item 2 to be excluded by 'draft', got '%s'", items[1].FilterReason)
	}
	if !items[2].IsFiltered || !strings.Contains(items[2].FilterReason, "does not contain") {
		t.Errorf("Expected item 3 to miss includes, got '%s'", items[2].FilterReason)
	}
}

func TestFiltererFields(t *testing.T) {
	tests := []struct {
		field    string
		pattern  string
		filtered []bool
	}{
		{"authors", "jane", []bool{false, true, true}},
		{"categories", "internal", []bool{true, false, true}},
		{"link", "/culture/", []bool{true, true, false}},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			sourceConfig := &Config{Filters: []ConfigFilter{{Field: tt.field, Includes: []string{tt.pattern}}}}
			items := NewFilterer().Run(testItems(), sourceConfig)

			for i, item := range items {
				if item.IsFiltered != tt.filtered[i] {
					t.Errorf("Expected item %s filtered=%v, got %v", item.GUID, tt.filtered[i], item.IsFiltered)
				}
			}
		})
	}
}

func TestFiltererPreservesOriginalData(t *testing.T) {
	original := testItems()
	sourceConfig := &Config{Filters: []ConfigFilter{{Field: "title", Excludes: []string{"release"}}}}

	items := NewFilterer().Run(original, sourceConfig)

	if original[0].IsFiltered {
		t.Error("Expected input slice to be left untouched")
	}
	if items[0].Title != original[0].Title || len(items) != len(original) {
		t.Error("Expected filtered items to keep their data")
	}
}

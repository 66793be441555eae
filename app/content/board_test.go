package content

import (
	"testing"
)

func TestKanbanColumns(t *testing.T) {
	entries := []Entry{
		{ID: "a", Date: "2024-05-03", WorkflowStatus: WorkflowDraft},
		{ID: "b", Date: "2024-05-01", WorkflowStatus: WorkflowDraft},
		{ID: "c", Date: "2024-05-02", WorkflowStatus: WorkflowPublished},
		{ID: "d", Date: "2024-05-02", WorkflowStatus: WorkflowApproved, DeletedAt: "2024-05-04T00:00:00.000Z"},
		{ID: "e", Date: "2024-05-02", WorkflowStatus: "Legacy"},
	}

	columns := KanbanColumns(entries)
	if len(columns) != 4 {
		t.Fatalf("Expected 4 columns, got %d", len(columns))
	}

	for i, stage := range KanbanStages {
		if columns[i].Stage != stage {
			t.Errorf("Expected column %d to be '%s', got '%s'", i, stage, columns[i].Stage)
		}
	}

	draft := columns[0].Entries
	if len(draft) != 3 || draft[0].ID != "b" || draft[1].ID != "e" || draft[2].ID != "a" {
		t.Errorf("Expected draft column [b e a], got %+v", draft)
	}
	if len(columns[2].Entries) != 0 {
		t.Errorf("Expected deleted entry to be excluded from Approved, got %+v", columns[2].Entries)
	}
	if len(columns[3].Entries) != 1 || columns[3].Entries[0].ID != "c" {
		t.Errorf("Expected Published column [c], got %+v", columns[3].Entries)
	}
}

func TestCalendarDays(t *testing.T) {
	entries := []Entry{
		{ID: "a", Date: "2024-05-03"},
		{ID: "b", Date: "2024-05-01"},
		{ID: "c", Date: "2024-05-01"},
		{ID: "d", Date: "2024-06-01"},
		{ID: "e", Date: "2024-05-02", DeletedAt: "2024-05-04T00:00:00.000Z"},
	}

	days := CalendarDays(entries, "2024-05")
	if len(days) != 2 {
		t.Fatalf("Expected 2 days, got %d", len(days))
	}
	if days[0].Date != "2024-05-01" || len(days[0].Entries) != 2 {
		t.Errorf("Expected 2024-05-01 with 2 entries, got %+v", days[0])
	}
	if days[1].Date != "2024-05-03" {
		t.Errorf("Expected 2024-05-03 second, got %s", days[1].Date)
	}

	all := CalendarDays(entries, "")
	if len(all) != 3 {
		t.Errorf("Expected 3 days without month filter, got %d", len(all))
	}
}

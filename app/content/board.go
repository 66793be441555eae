package content

import (
	"sort"
	"strings"
)

type KanbanColumn struct {
	Stage   WorkflowStatus `json:"stage"`
	Entries []Entry        `json:"entries"`
}

// KanbanColumns groups non-deleted entries by workflow stage, in pipeline order.
// Every stage is present even when empty.
func KanbanColumns(entries []Entry) []KanbanColumn {
	columns := make([]KanbanColumn, len(KanbanStages))
	index := make(map[WorkflowStatus]int, len(KanbanStages))
	for i, stage := range KanbanStages {
		columns[i] = KanbanColumn{Stage: stage, Entries: []Entry{}}
		index[stage] = i
	}

	for _, entry := range entries {
		if entry.IsDeleted() {
			continue
		}
		i, ok := index[entry.WorkflowStatus]
		if !ok {
			i = index[WorkflowDraft]
		}
		columns[i].Entries = append(columns[i].Entries, entry)
	}

	for i := range columns {
		sortByDate(columns[i].Entries)
	}
	return columns
}

type CalendarDay struct {
	Date    string  `json:"date"`
	Entries []Entry `json:"entries"`
}

// CalendarDays groups the non-deleted entries of month (YYYY-MM) by date.
// An empty month selects every entry.
func CalendarDays(entries []Entry, month string) []CalendarDay {
	month = strings.TrimSpace(month)
	byDate := map[string][]Entry{}
	for _, entry := range entries {
		if entry.IsDeleted() {
			continue
		}
		if month != "" && !strings.HasPrefix(entry.Date, month+"-") {
			continue
		}
		byDate[entry.Date] = append(byDate[entry.Date], entry)
	}

	days := make([]CalendarDay, 0, len(byDate))
	for date, dayEntries := range byDate {
		sortByDate(dayEntries)
		days = append(days, CalendarDay{Date: date, Entries: dayEntries})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	return days
}

func sortByDate(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].CreatedAt < entries[j].CreatedAt
	})
}

package content

import (
	"strings"
)

// FindConflicts returns the non-deleted entries scheduled on date, in input
// order. It is advisory: callers decide whether to proceed.
func FindConflicts(entries []Entry, date string) []Entry {
	target := coerceDate(date)
	if target == "" {
		target = strings.TrimSpace(date)
	}

	conflicts := []Entry{}
	if target == "" {
		return conflicts
	}
	for _, entry := range entries {
		if entry.IsDeleted() {
			continue
		}
		if entry.Date == target {
			conflicts = append(conflicts, entry)
		}
	}
	return conflicts
}

// FindConflictsExcluding is FindConflicts minus the entry being edited.
func FindConflictsExcluding(entries []Entry, date, excludeID string) []Entry {
	conflicts := FindConflicts(entries, date)
	if excludeID == "" {
		return conflicts
	}
	kept := conflicts[:0]
	for _, entry := range conflicts {
		if entry.ID != excludeID {
			kept = append(kept, entry)
		}
	}
	return kept
}

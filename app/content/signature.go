package content

import (
	"encoding/json"
	"log/slog"
	"sort"
)

var marshalSignature = json.Marshal

// Signature fingerprints the externally visible fields of an entry. Equal
// signatures mean "unchanged" for refresh and sync purposes. It is a dedup
// key, not a collision-resistant hash.
func Signature(entry Entry) string {
	platforms := append([]string(nil), entry.Platforms...)
	sort.Strings(platforms)

	checklist := make([]bool, len(ChecklistItems))
	for i, item := range ChecklistItems {
		checklist[i] = entry.Checklist[item.Key]
	}

	fields := []any{
		entry.ID,
		entry.UpdatedAt,
		entry.Status,
		StatusDetail(entry.Status, entry.Checklist),
		entry.Campaign,
		entry.ContentPillar,
		entry.Caption,
		entry.PreviewURL,
		platforms,
		checklist,
		len(entry.Comments),
	}

	data, err := marshalSignature(fields)
	if err != nil {
		slog.Warn("Failed to serialize entry signature, falling back to id", "entry", entry.ID, "error", err)
		return entry.ID
	}
	return string(data)
}

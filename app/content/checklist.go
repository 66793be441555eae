package content

// EmptyChecklist returns every checklist item unchecked.
func EmptyChecklist() Checklist {
	checklist := make(Checklist, len(ChecklistItems))
	for _, item := range ChecklistItems {
		checklist[item.Key] = false
	}
	return checklist
}

// NormalizeChecklist merges v onto the empty checklist. Values are coerced to
// booleans and keys outside ChecklistItems are dropped, so the result always
// carries exactly the canonical keys.
func NormalizeChecklist(v any) Checklist {
	checklist := EmptyChecklist()

	var source map[string]any
	switch raw := v.(type) {
	case map[string]any:
		source = raw
	case Checklist:
		source = make(map[string]any, len(raw))
		for k, b := range raw {
			source[k] = b
		}
	case map[string]bool:
		source = make(map[string]any, len(raw))
		for k, b := range raw {
			source[k] = b
		}
	default:
		return checklist
	}

	for _, item := range ChecklistItems {
		if value, ok := source[item.Key]; ok {
			checklist[item.Key] = truthy(value)
		}
	}
	return checklist
}

// ChecklistProgress reports completed and total item counts, e.g. for "3/5 complete".
func ChecklistProgress(checklist Checklist) (done, total int) {
	for _, item := range ChecklistItems {
		if checklist[item.Key] {
			done++
		}
	}
	return done, len(ChecklistItems)
}

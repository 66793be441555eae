// Package content normalizes content-calendar records and derives their
// workflow state. Everything here is a pure in-memory transformation: no I/O,
// no locking, and no errors for malformed input. Bad values fall back to
// defaults; only records that cannot be used at all come back nil.
package content

var defaultNormalizer = NewNormalizer(nil)

// Normalize is Normalizer.Entry with the default vocabulary.
func Normalize(raw any) *Entry {
	return defaultNormalizer.Entry(raw)
}

func NormalizeIdea(raw any) *Idea {
	return defaultNormalizer.Idea(raw)
}

func NormalizeLinkedInSubmission(raw any) *LinkedInSubmission {
	return defaultNormalizer.LinkedInSubmission(raw)
}

func NormalizeTestingFramework(raw any) *TestingFramework {
	return defaultNormalizer.TestingFramework(raw)
}

// Batch normalizes each record independently and reports how many were
// discarded. One bad record never affects the others.
func (n *Normalizer) Batch(raws []any) ([]Entry, int) {
	entries := make([]Entry, 0, len(raws))
	discarded := 0
	for _, raw := range raws {
		entry := n.Entry(raw)
		if entry == nil {
			discarded++
			continue
		}
		entries = append(entries, *entry)
	}
	return entries, discarded
}

package content

import (
	"encoding/json"
	"math"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/cases"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05.000Z"
)

var mentionPattern = regexp.MustCompile(`@([\p{L}\p{N}._-]+)`)

// toRecord turns an arbitrary input into a field map. Structs and JSON
// documents are round-tripped through encoding/json.
func toRecord(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, false
	case map[string]any:
		// nested typed values ([]map[string]any, map[string]string) are
		// flattened to their JSON shapes
		if data, err := json.Marshal(v); err == nil {
			if record, ok := decodeRecord(data); ok {
				return record, true
			}
		}
		return v, true
	case json.RawMessage:
		return decodeRecord(v)
	case []byte:
		return decodeRecord(v)
	case string, bool, float64, float32, int, int64, int32, json.Number, []any:
		return nil, false
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, false
	}
	return decodeRecord(data)
}

func decodeRecord(data []byte) (map[string]any, bool) {
	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil || record == nil {
		return nil, false
	}
	return record, true
}

// str coerces scalars to a string; everything else becomes "".
func str(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return ""
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case json.Number:
		return s.String()
	default:
		return ""
	}
}

func trimmed(v any) string {
	return strings.TrimSpace(str(v))
}

// truthy follows JavaScript Boolean() except that boolean-looking strings
// ("false", "0") are parsed.
func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case float64:
		return b != 0 && !math.IsNaN(b)
	case int:
		return b != 0
	case int64:
		return b != 0
	case json.Number:
		f, err := b.Float64()
		return err == nil && f != 0
	case string:
		s := strings.TrimSpace(b)
		if parsed, err := strconv.ParseBool(s); err == nil {
			return parsed
		}
		return s != ""
	default:
		return true
	}
}

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// matchEnum resolves v against members: exact match first, then case-folded.
func matchEnum[T ~string](v any, members []T) (T, bool) {
	s := strings.TrimSpace(str(v))
	if s == "" {
		return "", false
	}
	for _, m := range members {
		if string(m) == s {
			return m, true
		}
	}
	folded := fold(s)
	for _, m := range members {
		if fold(string(m)) == folded {
			return m, true
		}
	}
	return "", false
}

// enumOrFirst resolves v against members, falling back to the first member.
func enumOrFirst[T ~string](v any, members []T) T {
	if m, ok := matchEnum(v, members); ok {
		return m
	}
	return members[0]
}

// stringList keeps non-blank string items of an array; a lone string becomes
// a one-element list.
func stringList(v any) []string {
	out := []string{}
	switch items := v.(type) {
	case string:
		if s := strings.TrimSpace(items); s != "" {
			out = append(out, s)
		}
	case []string:
		for _, item := range items {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range items {
			if s := trimmed(item); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// peopleList accepts a single name or an array of names. Names are trimmed
// and deduplicated exactly, so spelling and case are kept as entered.
func peopleList(v any) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, name := range stringList(v) {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// linkList accepts a whitespace/comma separated string or an array of links.
func linkList(v any) []string {
	var candidates []string
	switch items := v.(type) {
	case string:
		candidates = strings.FieldsFunc(items, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\n' || r == '\r' || r == '\t'
		})
	default:
		candidates = stringList(v)
	}

	out := []string{}
	seen := make(map[string]bool, len(candidates))
	for _, link := range candidates {
		link = strings.TrimSpace(link)
		if link == "" || seen[link] {
			continue
		}
		seen[link] = true
		out = append(out, link)
	}
	return out
}

func attachmentList(v any, newID func() string) []Attachment {
	out := []Attachment{}
	items, ok := v.([]any)
	if !ok {
		if s, isString := v.(string); isString {
			items = []any{s}
		} else {
			return out
		}
	}

	for _, item := range items {
		var a Attachment
		switch raw := item.(type) {
		case string:
			a.URL = strings.TrimSpace(raw)
		case map[string]any:
			a.ID = trimmed(raw["id"])
			a.Name = trimmed(raw["name"])
			a.URL = trimmed(raw["url"])
			if a.URL == "" {
				a.URL = trimmed(raw["dataUrl"])
			}
			a.Type = trimmed(raw["type"])
			if size, ok := raw["size"].(float64); ok && size > 0 && !math.IsInf(size, 0) {
				a.Size = int64(size)
			}
		}
		if a.URL == "" {
			continue
		}
		if a.Name == "" {
			a.Name = path.Base(a.URL)
		}
		if a.ID == "" {
			a.ID = newID()
		}
		out = append(out, a)
	}
	return out
}

func extractMentions(body string) []string {
	matches := mentionPattern.FindAllStringSubmatch(body, -1)
	names := make([]any, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimRight(m[1], "._-"))
	}
	return peopleList(names)
}

// parseTime reads epoch milliseconds or a loosely formatted date string.
// Years outside 1..9999 are rejected; they do not format back into a
// parseable timestamp.
func parseTime(v any) (time.Time, bool) {
	var parsed time.Time
	switch t := v.(type) {
	case float64:
		if t <= 0 || t >= math.MaxInt64 || math.IsNaN(t) {
			return time.Time{}, false
		}
		parsed = time.UnixMilli(int64(t)).UTC()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		var err error
		parsed, err = dateparse.ParseIn(s, time.UTC)
		if err != nil {
			return time.Time{}, false
		}
	default:
		return time.Time{}, false
	}

	if !inYearRange(parsed) || !inYearRange(parsed.UTC()) {
		return time.Time{}, false
	}
	return parsed, true
}

func inYearRange(t time.Time) bool {
	return t.Year() >= 1 && t.Year() <= 9999
}

// coerceDate returns a YYYY-MM-DD calendar date, or "" when v is not a date.
// The calendar day is taken as written, without shifting to UTC.
func coerceDate(v any) string {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if _, err := time.Parse(dateLayout, s); err == nil {
			return s
		}
	}
	t, ok := parseTime(v)
	if !ok {
		return ""
	}
	return t.Format(dateLayout)
}

// coerceTimestamp returns an ISO-8601 UTC timestamp with millisecond precision,
// or "" when v is not a timestamp.
func coerceTimestamp(v any) string {
	t, ok := parseTime(v)
	if !ok {
		return ""
	}
	return formatTimestamp(t)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

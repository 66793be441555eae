package content

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Normalizer turns loosely shaped records into canonical values. It is safe
// for concurrent use as long as the clock and id functions are.
type Normalizer struct {
	vocab *Vocabulary
	now   func() time.Time
	newID func() string
}

type Option func(*Normalizer)

// WithClock overrides the time source used for date and timestamp defaults.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		n.now = now
	}
}

// WithIDFunc overrides the generator used for missing ids.
func WithIDFunc(newID func() string) Option {
	return func(n *Normalizer) {
		n.newID = newID
	}
}

func NewNormalizer(vocab *Vocabulary, opts ...Option) *Normalizer {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	n := &Normalizer{
		vocab: vocab,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Normalizer) Vocabulary() *Vocabulary {
	return n.vocab
}

// Entry normalizes raw into a canonical Entry. It returns nil only when raw is
// not an object. Invalid field values fall back to defaults.
func (n *Normalizer) Entry(raw any) *Entry {
	record, ok := toRecord(raw)
	if !ok {
		return nil
	}

	now := n.now()
	entry := &Entry{
		ID:                 n.idOf(record["id"]),
		Date:               coerceDate(record["date"]),
		Author:             trimmed(record["author"]),
		Approvers:          peopleList(record["approvers"]),
		Platforms:          stringList(record["platforms"]),
		Caption:            str(record["caption"]),
		PlatformCaptions:   platformCaptions(record["platformCaptions"]),
		FirstComment:       str(record["firstComment"]),
		Status:             coerceStatus(record["status"]),
		WorkflowStatus:     workflowStatusOf(record),
		AssetType:          assetTypeOf(record["assetType"]),
		PreviewURL:         trimmed(record["previewUrl"]),
		URL:                trimmed(record["url"]),
		Campaign:           n.vocab.Campaign(record["campaign"]),
		ContentPillar:      n.vocab.ContentPillar(record["contentPillar"]),
		TestingFrameworkID: trimmed(record["testingFrameworkId"]),
		InfluencerID:       trimmed(record["influencerId"]),
		Links:              linkList(record["links"]),
		Attachments:        attachmentList(record["attachments"], n.newID),
		Checklist:          NormalizeChecklist(record["checklist"]),
		Comments:           n.comments(record["comments"], now),
		Analytics:          analytics(record["analytics"]),
		CreatedAt:          coerceTimestamp(record["createdAt"]),
		UpdatedAt:          coerceTimestamp(record["updatedAt"]),
		DeletedAt:          coerceTimestamp(record["deletedAt"]),
	}

	if entry.Date == "" {
		entry.Date = now.Format(dateLayout)
	}
	if entry.CreatedAt == "" {
		entry.CreatedAt = formatTimestamp(now)
	}
	if entry.UpdatedAt == "" {
		entry.UpdatedAt = entry.CreatedAt
	}

	applyAssetFields(entry, record)
	entry.StatusDetail = StatusDetail(entry.Status, entry.Checklist)

	return entry
}

// applyAssetFields keeps only the type-specific field that matches the asset
// type. It runs on every pass so a type change discards stale fields.
func applyAssetFields(entry *Entry, record map[string]any) {
	entry.Script = ""
	entry.DesignCopy = ""
	entry.CarouselSlides = nil

	switch entry.AssetType {
	case AssetVideo:
		entry.Script = str(record["script"])
	case AssetDesign:
		entry.DesignCopy = str(record["designCopy"])
	case AssetCarousel:
		entry.CarouselSlides = carouselSlides(record["carouselSlides"])
	}
}

func assetTypeOf(v any) AssetType {
	if assetType, ok := matchEnum(v, AssetTypes); ok {
		return assetType
	}
	return AssetDesign
}

func carouselSlides(v any) []string {
	slides := []string{}
	items, ok := v.([]any)
	if !ok {
		return slides
	}
	for _, item := range items {
		if s, isString := item.(string); isString {
			slides = append(slides, s)
		}
	}
	return slides
}

func platformCaptions(v any) map[string]string {
	captions := map[string]string{}
	source, ok := v.(map[string]any)
	if !ok {
		return captions
	}
	for platform, caption := range source {
		if strings.TrimSpace(platform) == "" {
			continue
		}
		if s, isString := caption.(string); isString {
			captions[platform] = s
		}
	}
	return captions
}

func analytics(v any) Analytics {
	out := Analytics{}
	source, ok := v.(map[string]any)
	if !ok {
		return out
	}
	for platform, metricsRaw := range source {
		if strings.TrimSpace(platform) == "" {
			continue
		}
		metrics, isMap := metricsRaw.(map[string]any)
		if !isMap {
			continue
		}
		kept := map[string]any{}
		for metric, value := range metrics {
			if strings.TrimSpace(metric) == "" || blankMetric(value) {
				continue
			}
			kept[metric] = value
		}
		if len(kept) > 0 {
			out[platform] = kept
		}
	}
	return out
}

func blankMetric(v any) bool {
	switch m := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(m) == ""
	case float64, bool, int, int64:
		return false
	default:
		// nested objects and arrays are not metric values
		return true
	}
}

func (n *Normalizer) comments(v any, now time.Time) []Comment {
	out := []Comment{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		raw, isMap := item.(map[string]any)
		if !isMap {
			continue
		}
		body := strings.TrimSpace(str(raw["body"]))
		if body == "" {
			continue
		}

		comment := Comment{
			ID:        n.idOf(raw["id"]),
			Author:    trimmed(raw["author"]),
			Body:      body,
			CreatedAt: coerceTimestamp(raw["createdAt"]),
		}
		if mentions, present := raw["mentions"]; present && mentions != nil {
			comment.Mentions = peopleList(mentions)
		} else {
			comment.Mentions = extractMentions(body)
		}
		if comment.CreatedAt == "" {
			comment.CreatedAt = formatTimestamp(now)
		}
		out = append(out, comment)
	}
	return out
}

func (n *Normalizer) idOf(v any) string {
	if id := trimmed(v); id != "" {
		return id
	}
	return n.newID()
}

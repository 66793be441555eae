package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var defaultCampaigns = []string{
	"Always on",
	"Brand awareness",
	"Product launch",
	"Recruitment",
	"Seasonal",
	"Thought leadership",
}

var defaultContentPillars = []string{
	"Education",
	"Community",
	"Product",
	"Culture",
	"Impact",
}

// Vocabulary holds the deployment-specific enumerations that entries are
// validated against.
type Vocabulary struct {
	Campaigns      []string `yaml:"campaigns"`
	ContentPillars []string `yaml:"content_pillars"`
}

func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Campaigns:      append([]string(nil), defaultCampaigns...),
		ContentPillars: append([]string(nil), defaultContentPillars...),
	}
}

// LoadVocabulary reads a YAML vocabulary file. A missing path or file yields
// the defaults; an empty list falls back to its default.
func LoadVocabulary(path string) (*Vocabulary, error) {
	if path == "" {
		return DefaultVocabulary(), nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultVocabulary(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}

	var vocab Vocabulary
	if err := yaml.Unmarshal(data, &vocab); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	vocab.Campaigns = cleanNames(vocab.Campaigns)
	vocab.ContentPillars = cleanNames(vocab.ContentPillars)
	if len(vocab.Campaigns) == 0 {
		vocab.Campaigns = append([]string(nil), defaultCampaigns...)
	}
	if len(vocab.ContentPillars) == 0 {
		vocab.ContentPillars = append([]string(nil), defaultContentPillars...)
	}

	return &vocab, nil
}

// Campaign returns the canonical campaign name for v, or "" when unknown.
func (v *Vocabulary) Campaign(value any) string {
	name, _ := matchEnum(value, v.Campaigns)
	return name
}

// ContentPillar returns the canonical content pillar for v, or "" when unknown.
func (v *Vocabulary) ContentPillar(value any) string {
	name, _ := matchEnum(value, v.ContentPillars)
	return name
}

// cleanNames trims names and drops blanks and case-insensitive duplicates,
// keeping the first spelling.
func cleanNames(names []string) []string {
	out := []string{}
	seen := make(map[string]bool, len(names))
	for _, name := range stringList(names) {
		key := fold(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

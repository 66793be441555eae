package feed

import (
	"time"
)

// Source feed types

type Metadata struct {
	Title       string
	Link        string
	Description string
	Language    string
}

type Item struct {
	GUID        string
	Title       string
	Link        string
	Description string
	Content     string
	PublishedAt *time.Time
	Authors     []string // "name" or "email (name)"
	Categories  []string
	ImageURL    string // First image enclosure, used as the entry preview

	IsFiltered   bool
	FilterReason string
}

// Configuration types

type Config struct {
	Name     string         // Derived from filename (without .yml extension)
	URL      string         `yaml:"url"`
	Settings ConfigSettings `yaml:"settings"`
	Defaults ConfigDefaults `yaml:"defaults"`
	Filters  []ConfigFilter `yaml:"filters"`
}

type ConfigSettings struct {
	Enabled         bool `yaml:"enabled"`
	RefreshInterval int  `yaml:"refresh_interval"` // seconds
	MaxItems        int  `yaml:"max_items"`
	Timeout         int  `yaml:"timeout"`         // seconds
	ExtractExcerpt  bool `yaml:"extract_excerpt"` // fetch the linked article for a caption excerpt
}

// ConfigDefaults are copied onto every entry imported from the source.
type ConfigDefaults struct {
	Campaign      string   `yaml:"campaign"`
	ContentPillar string   `yaml:"content_pillar"`
	Platforms     []string `yaml:"platforms"`
	Author        string   `yaml:"author"`
}

type ConfigFilter struct {
	Field    string   `yaml:"field"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

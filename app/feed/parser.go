package feed

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses an RSS, Atom or JSON feed document.
func (p *Parser) Run(data []byte) (*Metadata, []Item, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &Metadata{
		Title:       feed.Title,
		Link:        feed.Link,
		Description: feed.Description,
		Language:    feed.Language,
	}

	items := make([]Item, 0, len(feed.Items))
	for _, item := range feed.Items {
		normalized := p.normalizeItem(item)
		if normalized.GUID == "" {
			continue
		}
		items = append(items, normalized)
	}

	return metadata, items, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) Item {
	normalized := Item{
		GUID:        strings.TrimSpace(cmpOr(item.GUID, item.Link)),
		Title:       strings.TrimSpace(item.Title),
		Link:        strings.TrimSpace(item.Link),
		Description: item.Description,
		Content:     item.Content,
		PublishedAt: cmpOr(item.PublishedParsed, item.UpdatedParsed),
		Authors:     p.extractAuthors(item),
		Categories:  item.Categories,
	}

	if item.Image != nil {
		normalized.ImageURL = item.Image.URL
	}
	for _, enclosure := range item.Enclosures {
		if normalized.ImageURL != "" {
			break
		}
		if enclosure != nil && strings.HasPrefix(enclosure.Type, "image/") {
			normalized.ImageURL = enclosure.URL
		}
	}

	return normalized
}

func (p *Parser) extractAuthors(item *gofeed.Item) []string {
	var authors []string

	if len(item.Authors) > 0 {
		for _, author := range item.Authors {
			if author != nil {
				if authorStr := p.formatAuthor(author.Name, author.Email); authorStr != "" {
					authors = append(authors, authorStr)
				}
			}
		}
	} else if item.Author != nil {
		if authorStr := p.formatAuthor(item.Author.Name, item.Author.Email); authorStr != "" {
			authors = append(authors, authorStr)
		}
	}

	return authors
}

func (p *Parser) formatAuthor(name, email string) string {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name != "" && email != "" {
		return fmt.Sprintf("%s (%s)", email, name)
	} else if name != "" {
		return name
	} else if email != "" {
		return email
	}

	return ""
}

// EntryID derives a stable entry id from the source name and item GUID, so a
// refetched item maps onto the entry imported earlier.
func EntryID(sourceName, guid string) string {
	hash := sha256.Sum256([]byte(sourceName + "|" + guid))
	return "src-" + hex.EncodeToString(hash[:8])
}

// EntryRecord builds a raw entry record for an item that was already
// published at the source. The record still goes through the content
// normalizer before it is stored.
func EntryRecord(item Item, sourceConfig *Config, excerpt string) map[string]any {
	caption := item.Title
	if excerpt = strings.TrimSpace(excerpt); excerpt != "" {
		if caption != "" {
			caption += "\n\n" + excerpt
		} else {
			caption = excerpt
		}
	}

	record := map[string]any{
		"id":             EntryID(sourceConfig.Name, item.GUID),
		"caption":        caption,
		"url":            item.Link,
		"assetType":      "No asset",
		"status":         "Approved",
		"workflowStatus": "Published",
		"campaign":       sourceConfig.Defaults.Campaign,
		"contentPillar":  sourceConfig.Defaults.ContentPillar,
		"platforms":      sourceConfig.Defaults.Platforms,
		"author":         sourceConfig.Defaults.Author,
	}

	if item.PublishedAt != nil {
		record["date"] = item.PublishedAt.UTC().Format("2006-01-02")
		record["createdAt"] = item.PublishedAt.UTC().Format(time.RFC3339)
	}
	if item.ImageURL != "" {
		record["previewUrl"] = item.ImageURL
	}
	if sourceConfig.Defaults.Author == "" && len(item.Authors) > 0 {
		record["author"] = item.Authors[0]
	}
	if item.Link != "" {
		record["links"] = []string{item.Link}
	}

	return record
}

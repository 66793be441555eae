package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/lysyi3m/content-ops/app/cfg"
	"github.com/lysyi3m/content-ops/app/content"
)

const maxFeedItems = 100

// Generator renders the content calendar as an RSS 2.0 feed.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Run renders the approved and published entries, newest first.
func (g *Generator) Run(entries []content.Entry) (string, error) {
	items := FeedEntries(entries)

	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	baseURL := g.baseURL()
	g.writeElement(&buf, "title", "Content calendar", 4)
	g.writeElement(&buf, "link", baseURL, 4)
	g.writeElement(&buf, "description", "Approved and published posts from the content calendar", 4)

	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(baseURL+"/feeds/calendar")))

	lastBuildDate := time.Now().UTC()
	if len(items) > 0 {
		if t, ok := entryTime(items[0]); ok {
			lastBuildDate = t
		}
	}

	g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("Content-Ops/%s", cfg.Get().Version), 4)

	for _, entry := range items {
		g.writeItem(&buf, entry)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

// FeedEntries selects live entries that are approved or already published,
// sorted newest first and capped at the feed size.
func FeedEntries(entries []content.Entry) []content.Entry {
	selected := make([]content.Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDeleted() {
			continue
		}
		if entry.Status != content.StatusApproved && entry.WorkflowStatus != content.WorkflowPublished {
			continue
		}
		selected = append(selected, entry)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].Date != selected[j].Date {
			return selected[i].Date > selected[j].Date
		}
		return selected[i].CreatedAt > selected[j].CreatedAt
	})

	if len(selected) > maxFeedItems {
		selected = selected[:maxFeedItems]
	}
	return selected
}

func (g *Generator) writeItem(buf *bytes.Buffer, entry content.Entry) {
	buf.WriteString("    <item>\n")

	buf.WriteString("      <guid isPermaLink=\"false\">")
	xml.EscapeText(buf, []byte(entry.ID))
	buf.WriteString("</guid>\n")

	g.writeElement(buf, "title", cmpOr(entryTitle(entry.Caption), "Untitled post"), 6)

	if entry.URL != "" {
		g.writeElement(buf, "link", entry.URL, 6)
	}

	g.writeElement(buf, "description", cmpOr(entry.Caption, "No caption available"), 6)

	if t, ok := entryTime(entry); ok {
		g.writeElement(buf, "pubDate", t.Format(time.RFC1123Z), 6)
	}

	if entry.Author != "" {
		g.writeElement(buf, "author", entry.Author, 6)
	}

	for _, category := range entryCategories(entry) {
		g.writeElement(buf, "category", category, 6)
	}

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, text string, indent int) {
	if text == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(text))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (g *Generator) baseURL() string {
	if cfg.Get().BaseUrl != "" {
		return strings.TrimRight(cfg.Get().BaseUrl, "/")
	}
	return fmt.Sprintf("http://localhost:%s", cfg.Get().Port)
}

// entryTitle is the first caption line, shortened for feed readers.
func entryTitle(caption string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(caption), "\n")
	return truncate(strings.TrimSpace(line), 120)
}

func entryTime(entry content.Entry) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", entry.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func entryCategories(entry content.Entry) []string {
	categories := make([]string, 0, len(entry.Platforms)+2)
	categories = append(categories, entry.Platforms...)
	if entry.Campaign != "" {
		categories = append(categories, entry.Campaign)
	}
	if entry.ContentPillar != "" {
		categories = append(categories, entry.ContentPillar)
	}
	return categories
}

package feed

import (
	"strings"
	"testing"

	"github.com/lysyi3m/content-ops/app/cfg"
	"github.com/lysyi3m/content-ops/app/content"
)

func setupTestConfig(t *testing.T, baseURL string) {
	t.Helper()
	cfg.Set(&cfg.Cfg{Port: "8080", BaseUrl: baseURL, Version: "test"})
}

func TestGenerateRSS(t *testing.T) {
	setupTestConfig(t, "https://ops.example.com/")

	entries := []content.Entry{
		{ID: "a", Date: "2024-05-01", Status: content.StatusApproved, Caption: "Spring launch\nMore text", Author: "Jane", Platforms: []string{"LinkedIn"}, Campaign: "Seasonal"},
		{ID: "b", Date: "2024-05-03", WorkflowStatus: content.WorkflowPublished, Caption: "Team <recap> & notes", URL: "https://example.com/recap"},
		{ID: "c", Date: "2024-05-04", Status: content.StatusPending, WorkflowStatus: content.WorkflowDraft, Caption: "Not ready"},
		{ID: "d", Date: "2024-05-05", Status: content.StatusApproved, DeletedAt: "2024-05-06T00:00:00.000Z"},
	}

	rss, err := NewGenerator().Run(entries)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	expected := []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<link>https://ops.example.com</link>`,
		`<atom:link href="https://ops.example.com/feeds/calendar" rel="self" type="application/rss+xml" />`,
		`<generator>Content-Ops/test</generator>`,
		`<guid isPermaLink="false">a</guid>`,
		`<title>Spring launch</title>`,
		`<author>Jane</author>`,
		`<category>LinkedIn</category>`,
		`<category>Seasonal</category>`,
		`<title>Team &lt;recap&gt; &amp; notes</title>`,
		`<link>https://example.com/recap</link>`,
		`<lastBuildDate>Fri, 03 May 2024 00:00:00 +0000</lastBuildDate>`,
	}
	for _, fragment := range expected {
		if !strings.Contains(rss, fragment) {
			t.Errorf("Expected RSS to contain %q", fragment)
		}
	}

	if strings.Contains(rss, "Not ready") {
		t.Error("Expected pending draft to be excluded")
	}
	if strings.Contains(rss, "<guid isPermaLink=\"false\">d</guid>") {
		t.Error("Expected deleted entry to be excluded")
	}
	if strings.Index(rss, ">b</guid>") > strings.Index(rss, ">a</guid>") {
		t.Error("Expected newest entry first")
	}
}

func TestGenerateWithEmptyEntries(t *testing.T) {
	setupTestConfig(t, "")

	rss, err := NewGenerator().Run(nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !strings.Contains(rss, "<link>http://localhost:8080</link>") {
		t.Error("Expected localhost link without base URL")
	}
	if strings.Contains(rss, "<item>") {
		t.Error("Expected no items")
	}
	if !strings.HasSuffix(rss, "</channel>\n</rss>") {
		t.Error("Expected well-formed closing tags")
	}
}

func TestGenerateUntitledEntry(t *testing.T) {
	setupTestConfig(t, "")

	rss, _ := NewGenerator().Run([]content.Entry{{ID: "x", Date: "2024-05-01", Status: content.StatusApproved}})

	if !strings.Contains(rss, "<title>Untitled post</title>") {
		t.Error("Expected placeholder title")
	}
	if !strings.Contains(rss, "<description>No caption available</description>") {
		t.Error("Expected placeholder description")
	}
}

func TestFeedEntriesCap(t *testing.T) {
	entries := make([]content.Entry, maxFeedItems+5)
	for i := range entries {
		entries[i] = content.Entry{ID: string(rune('a' + i%26)), Date: "2024-05-01", Status: content.StatusApproved}
	}

	if got := len(FeedEntries(entries)); got != maxFeedItems {
		t.Errorf("Expected %d entries, got %d", maxFeedItems, got)
	}
}

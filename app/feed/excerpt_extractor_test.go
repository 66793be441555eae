package feed

import (
	"strings"
	"testing"
	"unicode/utf8"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Launching the new app</title>
  <meta name="description" content="Our new app makes scheduling posts painless.">
</head>
<body>
  <nav><a href="/">Home</a></nav>
  <article>
    <h1>Launching the new app</h1>
    <p>After a year of work the team is proud to ship a calendar that keeps every channel in sync.
    It replaces three spreadsheets and a shared inbox with one board everybody can read.</p>
    <p>Approvals happen in place, checklists travel with each post, and analytics land next to the copy
    that produced them. We hope you enjoy it as much as we enjoyed building it.</p>
    <p>Over the coming weeks we will publish short guides for editors, reviewers and analysts, covering
    the kanban board, the monthly calendar, imported feeds and the approval flow in more detail.</p>
  </article>
  <footer>Copyright Example</footer>
</body>
</html>`

func TestExcerptExtractorUsesMetaDescription(t *testing.T) {
	excerpt, err := NewExcerptExtractor().Run([]byte(articleHTML), "https://example.com/launch")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if excerpt != "Our new app makes scheduling posts painless." {
		t.Errorf("Expected meta description excerpt, got '%s'", excerpt)
	}
}

func TestExcerptExtractorEmptyData(t *testing.T) {
	_, err := NewExcerptExtractor().Run(nil, "")
	if err == nil {
		t.Fatal("Expected error for empty data")
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Errorf("Expected empty data error, got '%v'", err)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("Expected untouched string, got '%s'", got)
	}

	long := strings.Repeat("word ", 100)
	got := truncate(long, 50)
	if utf8.RuneCountInString(got) > 51 {
		t.Errorf("Expected at most 51 runes, got %d", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "word…") {
		t.Errorf("Expected cut on a word boundary, got '%s'", got)
	}

	accented := strings.Repeat("é", 20)
	if got := truncate(accented, 5); got != "ééééé…" {
		t.Errorf("Expected rune-safe cut, got '%s'", got)
	}
}

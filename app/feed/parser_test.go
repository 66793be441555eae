package feed

import (
	"testing"
	"time"
)

const testRSS = `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Company Blog</title>
    <link>https://example.com</link>
    <description>News from the team</description>
    <language>en-us</language>
    <item>
      <title>  Launching the new app  </title>
      <link>https://example.com/launch</link>
      <description>We shipped it.</description>
      <guid>post-1</guid>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
      <author>press@example.com (Press Team)</author>
      <category>Product</category>
      <enclosure url="https://example.com/launch.png" length="1024" type="image/png" />
    </item>
    <item>
      <title>No guid here</title>
      <link>https://example.com/no-guid</link>
    </item>
    <item>
      <description>Nothing to identify this item</description>
    </item>
  </channel>
</rss>`

func TestParseRSS(t *testing.T) {
	metadata, items, err := NewParser().Run([]byte(testRSS))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if metadata.Title != "Company Blog" || metadata.Language != "en-us" {
		t.Errorf("Unexpected metadata: %+v", metadata)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 identifiable items, got %d", len(items))
	}

	item := items[0]
	if item.GUID != "post-1" {
		t.Errorf("Expected GUID 'post-1', got '%s'", item.GUID)
	}
	if item.Title != "Launching the new app" {
		t.Errorf("Expected trimmed title, got '%s'", item.Title)
	}
	if item.PublishedAt == nil || !item.PublishedAt.Equal(time.Date(2023, 7, 3, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected published time: %v", item.PublishedAt)
	}
	if len(item.Authors) != 1 || item.Authors[0] != "press@example.com (Press Team)" {
		t.Errorf("Unexpected authors: %v", item.Authors)
	}
	if item.ImageURL != "https://example.com/launch.png" {
		t.Errorf("Expected image enclosure as preview, got '%s'", item.ImageURL)
	}

	if items[1].GUID != "https://example.com/no-guid" {
		t.Errorf("Expected link to stand in for a missing GUID, got '%s'", items[1].GUID)
	}
}

func TestParseAtom(t *testing.T) {
	atomData := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Feed</title>
  <link href="https://example.com"/>
  <entry>
    <title>Atom Entry</title>
    <link href="https://example.com/atom-1"/>
    <id>urn:uuid:1</id>
    <updated>2023-07-03T10:00:00Z</updated>
    <author><name>Jane</name></author>
  </entry>
</feed>`

	_, items, err := NewParser().Run([]byte(atomData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if items[0].GUID != "urn:uuid:1" || items[0].PublishedAt == nil {
		t.Errorf("Unexpected atom item: %+v", items[0])
	}
	if len(items[0].Authors) != 1 || items[0].Authors[0] != "Jane" {
		t.Errorf("Expected author 'Jane', got %v", items[0].Authors)
	}
}

func TestParseInvalidFeed(t *testing.T) {
	if _, _, err := NewParser().Run([]byte("not a feed")); err == nil {
		t.Error("Expected error for invalid feed")
	}
}

func TestEntryID(t *testing.T) {
	first := EntryID("blog", "post-1")
	if first != EntryID("blog", "post-1") {
		t.Error("Expected entry id to be stable")
	}
	if first == EntryID("news", "post-1") {
		t.Error("Expected entry id to depend on the source")
	}
	if len(first) != len("src-")+16 {
		t.Errorf("Unexpected entry id length: %s", first)
	}
}

func TestEntryRecord(t *testing.T) {
	published := time.Date(2023, 7, 3, 22, 30, 0, 0, time.UTC)
	item := Item{
		GUID:        "post-1",
		Title:       "Launching the new app",
		Link:        "https://example.com/launch",
		PublishedAt: &published,
		Authors:     []string{"Press Team"},
		ImageURL:    "https://example.com/launch.png",
	}
	sourceConfig := &Config{
		Name:     "blog",
		Defaults: ConfigDefaults{Campaign: "Product launch", Platforms: []string{"Blog"}},
	}

	record := EntryRecord(item, sourceConfig, "  A short excerpt.  ")

	if record["id"] != EntryID("blog", "post-1") {
		t.Errorf("Unexpected id: %v", record["id"])
	}
	if record["caption"] != "Launching the new app\n\nA short excerpt." {
		t.Errorf("Unexpected caption: %q", record["caption"])
	}
	if record["date"] != "2023-07-03" {
		t.Errorf("Expected date '2023-07-03', got %v", record["date"])
	}
	if record["workflowStatus"] != "Published" || record["status"] != "Approved" {
		t.Errorf("Expected imported entry to be approved and published, got %v / %v", record["status"], record["workflowStatus"])
	}
	if record["author"] != "Press Team" {
		t.Errorf("Expected feed author fallback, got %v", record["author"])
	}
	if record["previewUrl"] != "https://example.com/launch.png" {
		t.Errorf("Expected preview url, got %v", record["previewUrl"])
	}

	bare := EntryRecord(Item{GUID: "x"}, sourceConfig, "")
	if _, ok := bare["date"]; ok {
		t.Error("Expected undated item to leave date unset")
	}
}

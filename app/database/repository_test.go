package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/lysyi3m/content-ops/app/content"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func TestRunMigrationsIsRepeatable(t *testing.T) {
	db := newTestDB(t)

	version, dirty, err := RunMigrations(db)
	if err != nil {
		t.Fatalf("Expected second run to succeed, got %v", err)
	}
	if version != 1 || dirty {
		t.Errorf("Expected clean version 1, got %d (dirty=%v)", version, dirty)
	}
}

func TestEntryRepositoryRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewEntryRepository(db, content.NewNormalizer(nil))

	entry := content.Normalize(map[string]any{
		"id":        "e-1",
		"date":      "2024-05-01",
		"caption":   "Launch post",
		"platforms": []any{"LinkedIn"},
		"approvers": "Jane, Sam",
		"createdAt": "2024-04-20T08:00:00Z",
	})
	if err := repo.UpsertEntry(*entry); err != nil {
		t.Fatalf("Failed to upsert entry: %v", err)
	}

	stored, err := repo.GetEntry("e-1")
	if err != nil {
		t.Fatalf("Failed to get entry: %v", err)
	}
	if stored == nil {
		t.Fatal("Expected stored entry")
	}
	if stored.Caption != "Launch post" || len(stored.Approvers) != 2 {
		t.Errorf("Unexpected stored entry: %+v", stored)
	}
	if content.Signature(*stored) != content.Signature(*entry) {
		t.Error("Expected stored entry to keep its signature")
	}

	missing, err := repo.GetEntry("nope")
	if err != nil || missing != nil {
		t.Errorf("Expected (nil, nil) for missing entry, got (%v, %v)", missing, err)
	}

	exists, err := repo.EntryExists("e-1")
	if err != nil || !exists {
		t.Errorf("Expected entry to exist, got %v (%v)", exists, err)
	}

	entry.Caption = "Updated"
	if err := repo.UpsertEntry(*entry); err != nil {
		t.Fatalf("Failed to update entry: %v", err)
	}
	count, err := repo.GetEntryCount()
	if err != nil || count != 1 {
		t.Errorf("Expected 1 entry after update, got %d (%v)", count, err)
	}

	records, err := repo.ListEntryRecords()
	if err != nil || len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d (%v)", len(records), err)
	}
	if records[0].Signature != content.Signature(*entry) {
		t.Error("Expected record signature to follow the latest write")
	}
}

func TestEntryRepositorySoftDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewEntryRepository(db, content.NewNormalizer(nil))

	for _, id := range []string{"a", "b"} {
		entry := content.Normalize(map[string]any{"id": id, "date": "2024-05-01"})
		if err := repo.UpsertEntry(*entry); err != nil {
			t.Fatal(err)
		}
	}

	deletedAt := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	found, err := repo.SoftDeleteEntry("a", deletedAt)
	if err != nil || !found {
		t.Fatalf("Expected soft delete to find entry, got %v (%v)", found, err)
	}

	found, err = repo.SoftDeleteEntry("missing", deletedAt)
	if err != nil || found {
		t.Errorf("Expected missing entry to report not found, got %v (%v)", found, err)
	}

	live, err := repo.ListEntries(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(live) != 1 || live[0].ID != "b" {
		t.Errorf("Expected only 'b' to be live, got %+v", live)
	}

	all, err := repo.ListEntries(true)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 entries including deleted, got %d", len(all))
	}

	deleted, err := repo.GetEntry("a")
	if err != nil {
		t.Fatal(err)
	}
	if deleted.DeletedAt != "2024-05-02T12:00:00.000Z" {
		t.Errorf("Expected deletedAt stamp, got '%s'", deleted.DeletedAt)
	}

	byDate, err := repo.ListEntriesByDate("2024-05-01")
	if err != nil {
		t.Fatal(err)
	}
	if conflicts := content.FindConflicts(byDate, "2024-05-01"); len(conflicts) != 1 {
		t.Errorf("Expected deleted entry to be ignored by conflicts, got %d", len(conflicts))
	}
}

func TestRecordRepository(t *testing.T) {
	db := newTestDB(t)
	normalizer := content.NewNormalizer(nil)
	ideas := NewIdeaRepository(db, normalizer)

	idea := normalizer.Idea(map[string]any{"id": "i-1", "title": "Office tour", "type": "Video"})
	if err := ideas.Upsert(*idea); err != nil {
		t.Fatalf("Failed to upsert idea: %v", err)
	}

	stored, err := ideas.Get("i-1")
	if err != nil || stored == nil {
		t.Fatalf("Expected stored idea, got %v (%v)", stored, err)
	}
	if stored.Title != "Office tour" || stored.Type != content.IdeaVideo {
		t.Errorf("Unexpected stored idea: %+v", stored)
	}

	list, err := ideas.List()
	if err != nil || len(list) != 1 {
		t.Errorf("Expected 1 idea, got %d (%v)", len(list), err)
	}

	deleted, err := ideas.Delete("i-1")
	if err != nil || !deleted {
		t.Errorf("Expected delete to succeed, got %v (%v)", deleted, err)
	}
	deleted, err = ideas.Delete("i-1")
	if err != nil || deleted {
		t.Errorf("Expected second delete to report not found, got %v (%v)", deleted, err)
	}

	frameworks := NewTestingFrameworkRepository(db, normalizer)
	framework := normalizer.TestingFramework(map[string]any{"name": "Hook length"})
	if err := frameworks.Upsert(*framework); err != nil {
		t.Fatal(err)
	}
	count, err := frameworks.Count()
	if err != nil || count != 1 {
		t.Errorf("Expected 1 framework, got %d (%v)", count, err)
	}

	submissions := NewLinkedInRepository(db, normalizer)
	if count, _ := submissions.Count(); count != 0 {
		t.Errorf("Expected empty submissions table, got %d", count)
	}
}

func TestSourceRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewSourceRepository(db)

	if err := repo.UpsertSource("blog", "https://example.com/feed.xml"); err != nil {
		t.Fatalf("Failed to upsert source: %v", err)
	}

	source, err := repo.GetSource("blog")
	if err != nil || source == nil {
		t.Fatalf("Expected source, got %v (%v)", source, err)
	}
	if source.NextFetchAt != nil {
		t.Error("Expected new source to be due immediately")
	}

	fetchedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	if err := repo.UpdateSourceFetch("blog", fetchedAt, fetchedAt.Add(time.Hour), "timeout"); err != nil {
		t.Fatalf("Failed to update fetch: %v", err)
	}

	source, _ = repo.GetSource("blog")
	if source.LastFetchedAt == nil || !source.LastFetchedAt.Equal(fetchedAt) {
		t.Errorf("Expected last fetched %v, got %v", fetchedAt, source.LastFetchedAt)
	}
	if source.LastError != "timeout" {
		t.Errorf("Expected last error 'timeout', got '%s'", source.LastError)
	}

	if err := repo.UpsertSource("blog", "https://example.com/other.xml"); err != nil {
		t.Fatal(err)
	}
	source, _ = repo.GetSource("blog")
	if source.URL != "https://example.com/other.xml" || source.NextFetchAt != nil {
		t.Errorf("Expected URL change to reset schedule, got %+v", source)
	}

	if err := repo.UpdateSourceFetch("missing", fetchedAt, fetchedAt, ""); err == nil {
		t.Error("Expected error for unknown source")
	}

	missing, err := repo.GetSource("missing")
	if err != nil || missing != nil {
		t.Errorf("Expected (nil, nil), got (%v, %v)", missing, err)
	}
}

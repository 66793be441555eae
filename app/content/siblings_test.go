package content

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeIdea(t *testing.T) {
	n := newTestNormalizer()

	if idea := n.Idea("idea"); idea != nil {
		t.Errorf("Expected nil for non-object, got %+v", idea)
	}

	idea := n.Idea(map[string]any{
		"type":        "video",
		"title":       "  Behind the scenes ",
		"links":       "https://a.example.com\nhttps://b.example.com https://a.example.com",
		"attachments": []any{map[string]any{"name": "moodboard", "dataUrl": "data:image/png;base64,AAA"}, map[string]any{"name": "no url"}},
		"targetMonth": "2024-06",
	})

	if idea.ID == "" {
		t.Error("Expected generated id")
	}
	if idea.Type != IdeaVideo {
		t.Errorf("Expected type Video, got '%s'", idea.Type)
	}
	if idea.Title != "Behind the scenes" {
		t.Errorf("Expected trimmed title, got '%s'", idea.Title)
	}
	if len(idea.Links) != 2 {
		t.Errorf("Expected 2 deduplicated links, got %v", idea.Links)
	}
	if len(idea.Attachments) != 1 || idea.Attachments[0].Name != "moodboard" {
		t.Errorf("Expected 1 attachment with a url, got %+v", idea.Attachments)
	}
	if idea.TargetMonth != "2024-06" {
		t.Errorf("Expected target month '2024-06', got '%s'", idea.TargetMonth)
	}
	if idea.CreatedAt != "2024-05-10T09:30:00.000Z" {
		t.Errorf("Expected createdAt to default to now, got '%s'", idea.CreatedAt)
	}

	fallback := n.Idea(map[string]any{"type": "Hologram"})
	if fallback.Type != IdeaTypes[0] {
		t.Errorf("Expected first idea type as fallback, got '%s'", fallback.Type)
	}
}

func TestNormalizeLinkedInSubmission(t *testing.T) {
	n := newTestNormalizer()

	submission := n.LinkedInSubmission(map[string]any{
		"id":             "li-1",
		"submissionType": "someone else's account",
		"status":         "POSTED",
		"targetDate":     "June 3, 2024",
		"links":          []any{"https://linkedin.com/post/1", 5.0},
		"createdAt":      "2024-05-01T08:00:00Z",
	})

	if submission.ID != "li-1" {
		t.Errorf("Expected id 'li-1', got '%s'", submission.ID)
	}
	if submission.SubmissionType != SubmissionOtherAccount {
		t.Errorf("Expected other account submission, got '%s'", submission.SubmissionType)
	}
	if submission.Status != SubmissionPosted {
		t.Errorf("Expected status Posted, got '%s'", submission.Status)
	}
	if submission.TargetDate != "2024-06-03" {
		t.Errorf("Expected target date '2024-06-03', got '%s'", submission.TargetDate)
	}
	if submission.UpdatedAt != submission.CreatedAt {
		t.Errorf("Expected updatedAt to default to createdAt, got '%s'", submission.UpdatedAt)
	}

	defaults := n.LinkedInSubmission(map[string]any{"status": 3.0})
	if defaults.Status != SubmissionDraft || defaults.SubmissionType != SubmissionOwnAccount {
		t.Errorf("Expected first-member fallbacks, got '%s' / '%s'", defaults.Status, defaults.SubmissionType)
	}
}

func TestNormalizeTestingFramework(t *testing.T) {
	n := newTestNormalizer()

	if framework := NormalizeTestingFramework(map[string]any{"name": "   "}); framework != nil {
		t.Errorf("Expected nil for blank name, got %+v", framework)
	}
	if framework := n.TestingFramework(map[string]any{}); framework != nil {
		t.Errorf("Expected nil for missing name, got %+v", framework)
	}
	if framework := n.TestingFramework(nil); framework != nil {
		t.Errorf("Expected nil for nil input, got %+v", framework)
	}

	framework := n.TestingFramework(map[string]any{"name": " Hook length ", "status": "in FLIGHT", "metric": "Watch time"})
	if framework == nil {
		t.Fatal("Expected framework")
	}
	if framework.Name != "Hook length" {
		t.Errorf("Expected trimmed name, got '%s'", framework.Name)
	}
	if framework.Status != FrameworkInFlight {
		t.Errorf("Expected status 'In flight', got '%s'", framework.Status)
	}
	if framework.ID == "" || framework.CreatedAt == "" {
		t.Error("Expected id and createdAt to be auto-filled")
	}
}

func TestLoadVocabulary(t *testing.T) {
	tempDir := t.TempDir()

	content := `
campaigns:
  - "Spring Sale"
  - " spring sale "
  - ""
  - "Founders Series"
content_pillars: []
`
	path := filepath.Join(tempDir, "vocabulary.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	vocab, err := LoadVocabulary(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(vocab.Campaigns) != 2 {
		t.Errorf("Expected 2 campaigns, got %v", vocab.Campaigns)
	}
	if len(vocab.ContentPillars) != len(defaultContentPillars) {
		t.Errorf("Expected default content pillars, got %v", vocab.ContentPillars)
	}

	n := NewNormalizer(vocab)
	entry := n.Entry(map[string]any{"campaign": "FOUNDERS series"})
	if entry.Campaign != "Founders Series" {
		t.Errorf("Expected campaign 'Founders Series', got '%s'", entry.Campaign)
	}
}

func TestLoadVocabularyMissingFile(t *testing.T) {
	vocab, err := LoadVocabulary(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(vocab.Campaigns) != len(defaultCampaigns) {
		t.Errorf("Expected default campaigns, got %v", vocab.Campaigns)
	}
}

func TestLoadVocabularyInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yml")
	if err := os.WriteFile(path, []byte("campaigns: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadVocabulary(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

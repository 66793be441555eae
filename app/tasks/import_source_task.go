package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lysyi3m/content-ops/app/content"
	"github.com/lysyi3m/content-ops/app/database"
	"github.com/lysyi3m/content-ops/app/feed"
)

// ImportSourceTask fetches a source feed and stores its posts as published
// calendar entries. Entries that already exist are left alone, so edits made
// on the dashboard survive later fetches.
type ImportSourceTask struct {
	Task
	SourceConfig *feed.Config
	httpClient   *http.Client
	parser       *feed.Parser
	filterer     *feed.Filterer
	extractor    *feed.ExcerptExtractor
	normalizer   *content.Normalizer
	entryRepo    database.EntryRepository
	sourceRepo   database.SourceRepository
	userAgent    string
}

func NewImportSourceTask(sourceConfig *feed.Config, httpClient *http.Client, parser *feed.Parser,
	filterer *feed.Filterer, extractor *feed.ExcerptExtractor, normalizer *content.Normalizer,
	entryRepo database.EntryRepository, sourceRepo database.SourceRepository, userAgent string) *ImportSourceTask {
	return &ImportSourceTask{
		Task:         NewTask(TaskTypeImportSource, sourceConfig.Name),
		SourceConfig: sourceConfig,
		httpClient:   httpClient,
		parser:       parser,
		filterer:     filterer,
		extractor:    extractor,
		normalizer:   normalizer,
		entryRepo:    entryRepo,
		sourceRepo:   sourceRepo,
		userAgent:    userAgent,
	}
}

func (t *ImportSourceTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.SourceConfig.Settings.Enabled {
		slog.Debug("Source disabled, skipping", "source", t.SourceName)
		return nil
	}

	stats, err := t.importItems(ctx)

	now := time.Now().UTC()
	nextFetch := now.Add(time.Duration(t.SourceConfig.Settings.RefreshInterval) * time.Second)
	lastError := ""
	if err != nil {
		lastError = err.Error()
	}
	if updateErr := t.sourceRepo.UpdateSourceFetch(t.SourceName, now, nextFetch, lastError); updateErr != nil {
		slog.Warn("Failed to update source fetch state", "source", t.SourceName, "error", updateErr)
	}

	if err != nil {
		return err
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"source", t.SourceName,
		"duration", t.GetDuration(),
		"total", stats.total,
		"existing", stats.existing,
		"filtered", stats.filtered,
		"new", stats.created)

	return nil
}

type importStats struct {
	total    int
	existing int
	filtered int
	created  int
}

func (t *ImportSourceTask) importItems(ctx context.Context) (importStats, error) {
	var stats importStats

	data, err := t.fetch(ctx, t.SourceConfig.URL, "")
	if err != nil {
		return stats, fmt.Errorf("failed to fetch source: %w", err)
	}

	_, items, err := t.parser.Run(data)
	if err != nil {
		return stats, fmt.Errorf("failed to parse source: %w", err)
	}

	if maxItems := t.SourceConfig.Settings.MaxItems; maxItems > 0 && len(items) > maxItems {
		items = items[:maxItems]
	}
	stats.total = len(items)

	for _, item := range t.filterer.Run(items, t.SourceConfig) {
		if item.IsFiltered {
			slog.Debug("Source item filtered", "source", t.SourceName, "guid", item.GUID, "reason", item.FilterReason)
			stats.filtered++
			continue
		}

		id := feed.EntryID(t.SourceName, item.GUID)
		exists, err := t.entryRepo.EntryExists(id)
		if err != nil {
			return stats, fmt.Errorf("failed to check entry: %w", err)
		}
		if exists {
			stats.existing++
			continue
		}

		entry := t.normalizer.Entry(feed.EntryRecord(item, t.SourceConfig, t.excerpt(ctx, item)))
		if err := t.entryRepo.UpsertEntry(*entry); err != nil {
			return stats, fmt.Errorf("failed to store entry: %w", err)
		}
		stats.created++
	}

	return stats, nil
}

// excerpt fetches the linked article when the source asks for excerpts.
// Failures only cost the excerpt; the entry is imported either way.
func (t *ImportSourceTask) excerpt(ctx context.Context, item feed.Item) string {
	if !t.SourceConfig.Settings.ExtractExcerpt || item.Link == "" {
		return ""
	}

	data, err := t.fetch(ctx, item.Link, "text/html")
	if err != nil {
		slog.Warn("Failed to fetch article for excerpt", "source", t.SourceName, "url", item.Link, "error", err)
		return ""
	}

	excerpt, err := t.extractor.Run(data, item.Link)
	if err != nil {
		slog.Warn("Failed to extract excerpt", "source", t.SourceName, "url", item.Link, "error", err)
		return ""
	}
	return excerpt
}

func (t *ImportSourceTask) fetch(ctx context.Context, url, wantContentType string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(t.SourceConfig.Settings.Timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	if wantContentType != "" {
		contentType := resp.Header.Get("Content-Type")
		if !strings.Contains(strings.ToLower(contentType), wantContentType) {
			return nil, fmt.Errorf("unexpected content type: %s", contentType)
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

package api

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/content-ops/app/content"
	"github.com/lysyi3m/content-ops/app/feed"
	"github.com/lysyi3m/content-ops/app/tasks"
)

func NewHandler(repos Repositories, normalizer *content.Normalizer, configCache *feed.ConfigCache,
	scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		entryRepo:     repos.Entries,
		ideaRepo:      repos.Ideas,
		linkedInRepo:  repos.LinkedIn,
		frameworkRepo: repos.Frameworks,
		sourceRepo:    repos.Sources,
		normalizer:    normalizer,
		generator:     feed.NewGenerator(),
		configCache:   configCache,
		scheduler:     scheduler,
		now:           time.Now,
	}
}

func (h *Handler) GetCalendarFeed(c *gin.Context) {
	entries, err := h.entryRepo.ListEntries(false)
	if err != nil {
		slog.Error("Database error", "operation", "list_entries", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	rss, err := h.generator.Run(entries)
	if err != nil {
		slog.Error("RSS generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(len(feed.FeedEntries(entries))))

	c.String(http.StatusOK, rss)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": h.now().In(time.Local).Format(time.RFC3339),
	}

	if entryCount, err := h.entryRepo.GetEntryCount(); err == nil {
		health["entries"] = entryCount
	}
	if sourceCount, err := h.sourceRepo.GetSourceCount(); err == nil {
		health["sources"] = sourceCount
	}

	health["loaded_configurations"] = h.configCache.GetConfigCount()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) ListSources(c *gin.Context) {
	names := h.configCache.GetConfigNames()
	sources := make([]map[string]interface{}, 0, len(names))

	for _, name := range names {
		sourceConfig, err := h.configCache.GetConfig(name)
		if err != nil {
			continue
		}

		sourceInfo := map[string]interface{}{
			"name":             sourceConfig.Name,
			"url":              sourceConfig.URL,
			"enabled":          sourceConfig.Settings.Enabled,
			"max_items":        sourceConfig.Settings.MaxItems,
			"refresh_interval": (time.Duration(sourceConfig.Settings.RefreshInterval) * time.Second).String(),
			"extract_excerpt":  sourceConfig.Settings.ExtractExcerpt,
			"filters":          len(sourceConfig.Filters),
		}

		if source, err := h.sourceRepo.GetSource(name); err == nil && source != nil {
			sourceInfo["last_fetched_at"] = source.LastFetchedAt
			sourceInfo["next_fetch_at"] = source.NextFetchAt
			sourceInfo["last_error"] = source.LastError
		}

		sources = append(sources, sourceInfo)
	}

	c.JSON(http.StatusOK, gin.H{
		"sources": sources,
		"total":   len(sources),
	})
}

func (h *Handler) ReloadSource(c *gin.Context) {
	name := c.Param("name")

	sourceConfig, err := h.configCache.LoadConfig(name)
	if errors.Is(err, fs.ErrNotExist) {
		h.configCache.RemoveConfig(name)
		c.JSON(http.StatusNotFound, gin.H{"error": "Source configuration not found"})
		return
	}
	if err != nil {
		slog.Error("Error reloading configuration", "source", name, "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Failed to reload configuration",
			"details": err.Error(),
		})
		return
	}

	if err := h.scheduler.EnqueueImport(name); err != nil {
		slog.Error("Error enqueueing import", "source", name, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Failed to enqueue import",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Configuration reloaded and import enqueued",
		"source": gin.H{
			"name":    sourceConfig.Name,
			"url":     sourceConfig.URL,
			"enabled": sourceConfig.Settings.Enabled,
		},
	})
}

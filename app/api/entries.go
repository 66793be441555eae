package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/content-ops/app/content"
)

const timestampLayout = "2006-01-02T15:04:05.000Z"

func (h *Handler) ListEntries(c *gin.Context) {
	entries, err := h.entryRepo.ListEntries(c.Query("include_deleted") == "true")
	if err != nil {
		slog.Error("Database error", "operation", "list_entries", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   len(entries),
	})
}

func (h *Handler) GetEntry(c *gin.Context) {
	entry, ok := h.loadEntry(c, c.Param("id"))
	if !ok {
		return
	}
	if entry.IsDeleted() && c.Query("include_deleted") != "true" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}

	c.Header("ETag", ETag(*entry))
	c.JSON(http.StatusOK, entry)
}

// CreateEntry stores a new entry. Without an explicit workflow stage the
// entry starts in Draft or Ready for Review depending on whether it needs
// approval. Same-day entries are reported with 409 unless force=true.
func (h *Handler) CreateEntry(c *gin.Context) {
	raw, ok := bindRecord(c)
	if !ok {
		return
	}

	now := h.timestamp()
	if _, set := raw["createdAt"]; !set {
		raw["createdAt"] = now
	}
	raw["updatedAt"] = now

	entry := h.normalizer.Entry(raw)

	if s, _ := raw["workflowStatus"].(string); strings.TrimSpace(s) == "" {
		entry.WorkflowStatus = content.InitialWorkflowStatus(entry.Approvers, entry.AssetType, entry.PreviewURL)
	}

	exists, err := h.entryRepo.EntryExists(entry.ID)
	if err != nil {
		slog.Error("Database error", "operation", "entry_exists", "entry", entry.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Entry already exists", "id": entry.ID})
		return
	}

	conflicts, ok := h.dateConflicts(c, entry.Date, entry.ID)
	if !ok {
		return
	}
	if len(conflicts) > 0 && c.Query("force") != "true" {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Another entry is already scheduled on this date",
			"date":      entry.Date,
			"conflicts": conflicts,
		})
		return
	}

	if err := h.entryRepo.UpsertEntry(*entry); err != nil {
		slog.Error("Database error", "operation", "upsert_entry", "entry", entry.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	slog.Debug("Entry created", "entry", entry.ID, "date", entry.Date, "conflicts", len(conflicts))

	c.Header("ETag", ETag(*entry))
	c.JSON(http.StatusCreated, EntryResponse{Entry: entry, Conflicts: conflicts})
}

// UpdateEntry merges the request body over the stored entry. The stored id
// and createdAt are kept; updatedAt is stamped by the server. Deleted
// entries are not found.
func (h *Handler) UpdateEntry(c *gin.Context) {
	id := c.Param("id")

	stored, ok := h.loadEntry(c, id)
	if !ok {
		return
	}
	if stored.IsDeleted() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}

	if ifMatch := c.GetHeader("If-Match"); ifMatch != "" && !etagMatches(ifMatch, ETag(*stored)) {
		c.Header("ETag", ETag(*stored))
		c.JSON(http.StatusPreconditionFailed, gin.H{
			"error":   "Entry was changed by someone else",
			"current": stored,
		})
		return
	}

	body, ok := bindRecord(c)
	if !ok {
		return
	}

	record, err := entryRecord(*stored)
	if err != nil {
		slog.Error("Failed to encode stored entry", "entry", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode entry"})
		return
	}
	for key, value := range body {
		record[key] = value
	}
	record["id"] = stored.ID
	record["createdAt"] = stored.CreatedAt
	record["deletedAt"] = stored.DeletedAt
	record["updatedAt"] = h.timestamp()

	entry := h.normalizer.Entry(record)

	conflicts, ok := h.dateConflicts(c, entry.Date, entry.ID)
	if !ok {
		return
	}

	if err := h.entryRepo.UpsertEntry(*entry); err != nil {
		slog.Error("Database error", "operation", "upsert_entry", "entry", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.Header("ETag", ETag(*entry))
	c.JSON(http.StatusOK, EntryResponse{Entry: entry, Conflicts: conflicts})
}

func (h *Handler) DeleteEntry(c *gin.Context) {
	id := c.Param("id")

	found, err := h.entryRepo.SoftDeleteEntry(id, h.now())
	if err != nil {
		slog.Error("Database error", "operation", "soft_delete_entry", "entry", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

func (h *Handler) GetConflicts(c *gin.Context) {
	date := c.Query("date")
	if strings.TrimSpace(date) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing date parameter"})
		return
	}

	conflicts, ok := h.dateConflicts(c, date, c.Query("exclude"))
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":      date,
		"conflicts": conflicts,
		"total":     len(conflicts),
	})
}

// ImportEntries normalizes and stores a JSON array of entries. Records that
// are not objects are counted as discarded; the rest are stored.
func (h *Handler) ImportEntries(c *gin.Context) {
	var raws []json.RawMessage
	if err := c.ShouldBindJSON(&raws); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expected a JSON array of entries", "details": err.Error()})
		return
	}

	batch := make([]any, len(raws))
	for i, raw := range raws {
		batch[i] = raw
	}

	entries, discarded := h.normalizer.Batch(batch)

	stored := 0
	for _, entry := range entries {
		if err := h.entryRepo.UpsertEntry(entry); err != nil {
			slog.Error("Failed to store imported entry", "entry", entry.ID, "error", err)
			discarded++
			continue
		}
		stored++
	}

	slog.Info("Entries imported", "stored", stored, "discarded", discarded)

	c.JSON(http.StatusOK, gin.H{
		"stored":    stored,
		"discarded": discarded,
	})
}

func (h *Handler) GetKanban(c *gin.Context) {
	entries, err := h.entryRepo.ListEntries(false)
	if err != nil {
		slog.Error("Database error", "operation", "list_entries", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"columns": content.KanbanColumns(entries)})
}

func (h *Handler) GetCalendar(c *gin.Context) {
	month := c.Query("month")
	if month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month, expected YYYY-MM"})
			return
		}
	}

	entries, err := h.entryRepo.ListEntries(false)
	if err != nil {
		slog.Error("Database error", "operation", "list_entries", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month": month,
		"days":  content.CalendarDays(entries, month),
	})
}

// ETag is a short quoted hash of the entry's change signature.
func ETag(entry content.Entry) string {
	hash := sha256.Sum256([]byte(content.Signature(entry)))
	return `"` + hex.EncodeToString(hash[:])[:16] + `"`
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

func (h *Handler) timestamp() string {
	return h.now().UTC().Format(timestampLayout)
}

func (h *Handler) loadEntry(c *gin.Context, id string) (*content.Entry, bool) {
	entry, err := h.entryRepo.GetEntry(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_entry", "entry", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return nil, false
	}
	return entry, true
}

func (h *Handler) dateConflicts(c *gin.Context, date, excludeID string) ([]content.Entry, bool) {
	entries, err := h.entryRepo.ListEntries(false)
	if err != nil {
		slog.Error("Database error", "operation", "list_entries", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}
	return content.FindConflictsExcluding(entries, date, excludeID), true
}

func bindRecord(c *gin.Context) (map[string]any, bool) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body", "details": err.Error()})
		return nil, false
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, true
}

func entryRecord(entry content.Entry) (map[string]any, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return record, nil
}

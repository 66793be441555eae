package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/content-ops/app/database"
)

func (h *Handler) ListIdeas(c *gin.Context) {
	listRecords(c, h.ideaRepo, "ideas")
}

func (h *Handler) CreateIdea(c *gin.Context) {
	createRecord(c, h.ideaRepo, h.normalizer.Idea, "idea")
}

func (h *Handler) DeleteIdea(c *gin.Context) {
	deleteRecord(c, h.ideaRepo, "idea")
}

func (h *Handler) ListLinkedInSubmissions(c *gin.Context) {
	listRecords(c, h.linkedInRepo, "submissions")
}

func (h *Handler) CreateLinkedInSubmission(c *gin.Context) {
	createRecord(c, h.linkedInRepo, h.normalizer.LinkedInSubmission, "submission")
}

func (h *Handler) DeleteLinkedInSubmission(c *gin.Context) {
	deleteRecord(c, h.linkedInRepo, "submission")
}

func (h *Handler) ListTestingFrameworks(c *gin.Context) {
	listRecords(c, h.frameworkRepo, "frameworks")
}

func (h *Handler) CreateTestingFramework(c *gin.Context) {
	createRecord(c, h.frameworkRepo, h.normalizer.TestingFramework, "framework")
}

func (h *Handler) DeleteTestingFramework(c *gin.Context) {
	deleteRecord(c, h.frameworkRepo, "framework")
}

func listRecords[T any](c *gin.Context, store database.RecordStore[T], key string) {
	records, err := store.List()
	if err != nil {
		slog.Error("Database error", "operation", "list_"+key, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		key:     records,
		"total": len(records),
	})
}

// createRecord normalizes the request body and stores it. A body the
// normalizer discards (for example a testing framework without a name) is
// rejected with 422.
func createRecord[T any](c *gin.Context, store database.RecordStore[T], normalize func(raw any) *T, kind string) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body", "details": err.Error()})
		return
	}

	record := normalize(raw)
	if record == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Record discarded", "details": kind + " is missing required fields"})
		return
	}

	if err := store.Upsert(*record); err != nil {
		slog.Error("Database error", "operation", "upsert_"+kind, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

func deleteRecord[T any](c *gin.Context, store database.RecordStore[T], kind string) {
	id := c.Param("id")

	deleted, err := store.Delete(id)
	if err != nil {
		slog.Error("Database error", "operation", "delete_"+kind, "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": kind + " not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

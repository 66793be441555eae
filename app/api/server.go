package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/content-ops/app/cfg"
)

// NewServer creates the HTTP server with all routes configured. An empty
// apiAccessKey leaves the /api group open.
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
		SkipPaths: []string{"/health"},
	}))

	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-API-Key, If-Match")
		c.Header("Access-Control-Expose-Headers", "ETag")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, apiAccessKey)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey string) {
	r.GET("/feeds/calendar", handler.GetCalendarFeed)
	r.GET("/health", handler.GetHealth)

	api := r.Group("/api")
	if apiAccessKey != "" {
		api.Use(authMiddleware(apiAccessKey))
		slog.Info("API authentication enabled")
	} else {
		slog.Warn("API authentication disabled (API_ACCESS_KEY not set)")
	}
	{
		api.GET("/entries", handler.ListEntries)
		api.POST("/entries", handler.CreateEntry)
		api.GET("/entries/conflicts", handler.GetConflicts)
		api.POST("/entries/import", handler.ImportEntries)
		api.GET("/entries/:id", handler.GetEntry)
		api.PUT("/entries/:id", handler.UpdateEntry)
		api.DELETE("/entries/:id", handler.DeleteEntry)

		api.GET("/kanban", handler.GetKanban)
		api.GET("/calendar", handler.GetCalendar)

		api.GET("/ideas", handler.ListIdeas)
		api.POST("/ideas", handler.CreateIdea)
		api.DELETE("/ideas/:id", handler.DeleteIdea)

		api.GET("/linkedin", handler.ListLinkedInSubmissions)
		api.POST("/linkedin", handler.CreateLinkedInSubmission)
		api.DELETE("/linkedin/:id", handler.DeleteLinkedInSubmission)

		api.GET("/testing-frameworks", handler.ListTestingFrameworks)
		api.POST("/testing-frameworks", handler.CreateTestingFramework)
		api.DELETE("/testing-frameworks/:id", handler.DeleteTestingFramework)

		api.GET("/sources", handler.ListSources)
		api.POST("/sources/:name/reload", handler.ReloadSource)
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":     "Content Ops",
			"version":     cfg.GetVersion(),
			"description": "Content calendar normalization and workflow API",
			"endpoints": map[string]string{
				"entries":            "/api/entries",
				"conflicts":          "/api/entries/conflicts?date=<YYYY-MM-DD>",
				"kanban":             "/api/kanban",
				"calendar":           "/api/calendar?month=<YYYY-MM>",
				"ideas":              "/api/ideas",
				"linkedin":           "/api/linkedin",
				"testing_frameworks": "/api/testing-frameworks",
				"sources":            "/api/sources",
				"feed":               "/feeds/calendar",
				"health":             "/health",
			},
			"api_status": map[string]interface{}{
				"auth_required": apiAccessKey != "",
				"header":        "X-API-Key",
			},
		})
	})

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}

// authMiddleware accepts the key in X-API-Key or as an Authorization bearer token.
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		providedKey := c.GetHeader("X-API-Key")

		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			c.Abort()
			return
		}

		if providedKey != apiAccessKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

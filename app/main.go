package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/content-ops/app/api"
	"github.com/lysyi3m/content-ops/app/cfg"
	"github.com/lysyi3m/content-ops/app/content"
	"github.com/lysyi3m/content-ops/app/database"
	"github.com/lysyi3m/content-ops/app/feed"
	"github.com/lysyi3m/content-ops/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		return
	}

	setupLogger(appCfg.Debug)

	if err := run(appCfg); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

func run(appCfg *cfg.Cfg) error {
	slog.Info("Starting Content Ops server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	vocabulary, err := content.LoadVocabulary(appCfg.VocabularyFile)
	if err != nil {
		return fmt.Errorf("failed to load vocabulary: %w", err)
	}
	slog.Info("Vocabulary loaded", "campaigns", len(vocabulary.Campaigns), "content_pillars", len(vocabulary.ContentPillars))

	normalizer := content.NewNormalizer(vocabulary)

	repos := api.Repositories{
		Entries:    database.NewEntryRepository(db, normalizer),
		Ideas:      database.NewIdeaRepository(db, normalizer),
		LinkedIn:   database.NewLinkedInRepository(db, normalizer),
		Frameworks: database.NewTestingFrameworkRepository(db, normalizer),
		Sources:    database.NewSourceRepository(db),
	}

	configCache := feed.NewConfigCache(appCfg.SourcesDir)
	if err := configCache.Run(); err != nil {
		return fmt.Errorf("failed to load source configurations: %w", err)
	}
	slog.Info("Source configurations loaded", "dir", appCfg.SourcesDir, "count", configCache.GetConfigCount())

	httpClient := &http.Client{Timeout: 60 * time.Second}

	scheduler := tasks.NewScheduler(configCache, repos.Entries, repos.Sources, normalizer,
		httpClient, feed.NewParser(), feed.NewFilterer(), feed.NewExcerptExtractor())
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Background scheduler started", "workers", appCfg.WorkerCount, "interval", time.Duration(appCfg.SchedulerInterval)*time.Second)

	watchCtx, stopWatching := context.WithCancel(context.Background())
	defer stopWatching()

	watcher, err := feed.NewWatcher(configCache)
	if err != nil {
		slog.Warn("Source watcher disabled", "error", err)
	} else {
		defer watcher.Close()
		watcher.OnChange(scheduler.SourceChanged)
		go watcher.Run(watchCtx)
	}

	handler := api.NewHandler(repos, normalizer, configCache, scheduler)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case runErr = <-serverErrChan:
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	return runErr
}

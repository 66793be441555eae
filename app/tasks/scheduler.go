package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/lysyi3m/content-ops/app/cfg"
	"github.com/lysyi3m/content-ops/app/content"
	"github.com/lysyi3m/content-ops/app/database"
	"github.com/lysyi3m/content-ops/app/feed"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	configCache *feed.ConfigCache
	entryRepo   database.EntryRepository
	sourceRepo  database.SourceRepository
	normalizer  *content.Normalizer
	httpClient  *http.Client
	parser      *feed.Parser
	filterer    *feed.Filterer
	extractor   *feed.ExcerptExtractor
	userAgent   string
	interval    time.Duration
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
}

func NewScheduler(configCache *feed.ConfigCache, entryRepo database.EntryRepository,
	sourceRepo database.SourceRepository, normalizer *content.Normalizer, httpClient *http.Client,
	parser *feed.Parser, filterer *feed.Filterer, extractor *feed.ExcerptExtractor) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		configCache: configCache,
		entryRepo:   entryRepo,
		sourceRepo:  sourceRepo,
		normalizer:  normalizer,
		httpClient:  httpClient,
		parser:      parser,
		filterer:    filterer,
		extractor:   extractor,
		userAgent:   cfg.UserAgent,
		interval:    time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount: cfg.WorkerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 300),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueStartupTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

// EnqueueImport syncs one source into the database and queues its import,
// regardless of its schedule. The sync runs inline so the source row exists
// before any worker picks up the import.
func (s *Scheduler) EnqueueImport(sourceName string) error {
	sourceConfig, err := s.configCache.GetConfig(sourceName)
	if err != nil {
		return err
	}

	syncTask := NewSyncSourceTask(sourceConfig, s.sourceRepo)
	syncTask.Start()
	if err := syncTask.Execute(s.ctx); err != nil {
		return err
	}
	if err := s.EnqueueTask(s.newImportTask(sourceConfig)); err != nil {
		return fmt.Errorf("failed to enqueue source import: %w", err)
	}
	return nil
}

// SourceChanged is the watcher callback: a reloaded source is synced and
// imported, a removed one is only logged since its entries stay on the board.
func (s *Scheduler) SourceChanged(sourceName string, sourceConfig *feed.Config) {
	if sourceConfig == nil {
		slog.Debug("Source removed, keeping imported entries", "source", sourceName)
		return
	}
	if err := s.EnqueueImport(sourceName); err != nil {
		slog.Warn("Failed to enqueue import for changed source", "source", sourceName, "error", err)
	}
}

func (s *Scheduler) newImportTask(sourceConfig *feed.Config) *ImportSourceTask {
	return NewImportSourceTask(sourceConfig, s.httpClient, s.parser, s.filterer, s.extractor,
		s.normalizer, s.entryRepo, s.sourceRepo, s.userAgent)
}

func (s *Scheduler) enqueueStartupTasks() {
	if err := s.EnqueueTask(NewRenormalizeTask(s.entryRepo, s.normalizer)); err != nil {
		slog.Warn("Failed to enqueue RenormalizeTask", "error", err)
	}

	sourceConfigs := s.configCache.GetConfigs()
	if len(sourceConfigs) == 0 {
		slog.Debug("No source configurations found")
		return
	}

	slog.Debug("Processing source configurations", "count", len(sourceConfigs))

	for _, sourceConfig := range sourceConfigs {
		if err := s.EnqueueTask(NewSyncSourceTask(sourceConfig, s.sourceRepo)); err != nil {
			slog.Warn("Failed to enqueue SyncSourceTask", "source", sourceConfig.Name, "error", err)
		}
	}
}

func (s *Scheduler) enqueueTasks() {
	sourceConfigs := s.configCache.GetEnabledConfigs()
	if len(sourceConfigs) == 0 {
		slog.Debug("No enabled source configurations found")
		return
	}

	slog.Debug("Processing enabled source configurations for task scheduling", "count", len(sourceConfigs))

	now := time.Now().UTC()
	for _, sourceConfig := range sourceConfigs {
		source, err := s.sourceRepo.GetSource(sourceConfig.Name)
		if err != nil {
			slog.Warn("Failed to get source from database, skipping", "source", sourceConfig.Name, "error", err)
			continue
		}
		if source == nil {
			if err := s.EnqueueTask(NewSyncSourceTask(sourceConfig, s.sourceRepo)); err != nil {
				slog.Warn("Failed to enqueue SyncSourceTask", "source", sourceConfig.Name, "error", err)
			}
			continue
		}

		if source.NextFetchAt != nil && source.NextFetchAt.After(now) {
			slog.Debug("Source not due for refresh yet", "source", sourceConfig.Name, "next_fetch_at", source.NextFetchAt)
			continue
		}

		if err := s.EnqueueTask(s.newImportTask(sourceConfig)); err != nil {
			slog.Warn("Failed to enqueue ImportSourceTask", "source", sourceConfig.Name, "error", err)
		}
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)
	if err == nil {
		return
	}

	slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

	if !task.CanRetry() {
		slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		return
	}

	task.IncrementRetryCount()
	retryDelay := retryDelay(task.GetRetryCount())

	slog.Warn("Task retry scheduled", "type", string(task.GetType()), "source", task.GetSourceName(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

	go func() {
		select {
		case <-s.ctx.Done():
			slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
		case <-time.After(retryDelay):
			if retryErr := s.EnqueueTask(task); retryErr != nil {
				slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
			}
		}
	}()
}

// retryDelay doubles from one second and is capped at 30 seconds.
func retryDelay(retryCount int) time.Duration {
	if retryCount < 1 {
		retryCount = 1
	}
	delay := time.Duration(1<<uint(retryCount-1)) * time.Second
	if delay > 30*time.Second {
		delay = 30 * time.Second
	}
	return delay
}

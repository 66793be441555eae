package tasks

// TaskSchedulerInterface is the background work surface used by main and the
// HTTP API.
//
//	scheduler := NewScheduler(configCache, entryRepo, sourceRepo, normalizer, httpClient, parser, filterer, extractor)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueImport("blog")
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
	EnqueueImport(sourceName string) error
}

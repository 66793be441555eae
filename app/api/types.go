package api

import (
	"time"

	"github.com/lysyi3m/content-ops/app/content"
	"github.com/lysyi3m/content-ops/app/database"
	"github.com/lysyi3m/content-ops/app/feed"
	"github.com/lysyi3m/content-ops/app/tasks"
)

type GeneratorInterface interface {
	Run(entries []content.Entry) (string, error)
}

var _ GeneratorInterface = (*feed.Generator)(nil)

// Repositories groups the stores the handlers read and write.
type Repositories struct {
	Entries    database.EntryRepository
	Ideas      database.RecordStore[content.Idea]
	LinkedIn   database.RecordStore[content.LinkedInSubmission]
	Frameworks database.RecordStore[content.TestingFramework]
	Sources    database.SourceRepository
}

type Handler struct {
	entryRepo     database.EntryRepository
	ideaRepo      database.RecordStore[content.Idea]
	linkedInRepo  database.RecordStore[content.LinkedInSubmission]
	frameworkRepo database.RecordStore[content.TestingFramework]
	sourceRepo    database.SourceRepository
	normalizer    *content.Normalizer
	generator     GeneratorInterface
	configCache   *feed.ConfigCache
	scheduler     tasks.TaskSchedulerInterface
	now           func() time.Time
}

// EntryResponse is returned by entry writes. Conflicts lists other live
// entries on the same date; they never block an update.
type EntryResponse struct {
	Entry     *content.Entry  `json:"entry"`
	Conflicts []content.Entry `json:"conflicts"`
}

package database

import (
	"time"

	"github.com/lysyi3m/content-ops/app/content"
)

type EntryRepository interface {
	GetEntry(id string) (*content.Entry, error)
	GetEntryCount() (int, error)
	EntryExists(id string) (bool, error)
	ListEntries(includeDeleted bool) ([]content.Entry, error)
	ListEntriesByDate(date string) ([]content.Entry, error)
	ListEntryRecords() ([]EntryRecord, error)

	UpsertEntry(entry content.Entry) error
	SoftDeleteEntry(id string, deletedAt time.Time) (bool, error)
}

// RecordStore persists one sibling record kind (ideas, LinkedIn submissions,
// testing frameworks).
type RecordStore[T any] interface {
	List() ([]T, error)
	Get(id string) (*T, error)
	Count() (int, error)

	Upsert(record T) error
	Delete(id string) (bool, error)
}

type SourceRepository interface {
	GetSource(name string) (*Source, error)
	GetSourceCount() (int, error)

	UpsertSource(name, url string) error
	UpdateSourceFetch(name string, fetchedAt time.Time, nextFetch time.Time, lastError string) error
}

package database

import (
	"time"
)

// Source is the stored fetch state of a configured feed source.
type Source struct {
	Name          string // Derived from the source config filename
	URL           string
	LastFetchedAt *time.Time
	NextFetchAt   *time.Time
	LastError     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EntryRecord is a stored entry row before re-normalization.
type EntryRecord struct {
	ID        string
	Signature string
	Payload   string
}

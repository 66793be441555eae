package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ SourceRepository = (*SourceRepositoryImpl)(nil)

const timestampLayout = "2006-01-02T15:04:05.000Z"

type SourceRepositoryImpl struct {
	db *DB
}

func NewSourceRepository(db *DB) *SourceRepositoryImpl {
	return &SourceRepositoryImpl{db: db}
}

// UpsertSource registers a source or updates its URL. A changed URL resets
// the schedule so the source is fetched on the next scheduler pass.
func (r *SourceRepositoryImpl) UpsertSource(name, url string) error {
	now := formatTime(time.Now())

	_, err := r.db.Exec(`
		INSERT INTO sources (name, url, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			next_fetch_at = CASE WHEN sources.url != excluded.url THEN NULL ELSE sources.next_fetch_at END,
			url = excluded.url,
			updated_at = excluded.updated_at
	`, name, url, now, now)

	if err != nil {
		return fmt.Errorf("failed to upsert source: %w", err)
	}

	return nil
}

func (r *SourceRepositoryImpl) GetSource(name string) (*Source, error) {
	var source Source
	var lastFetchedAt, nextFetchAt sql.NullString
	var createdAt, updatedAt string

	err := r.db.QueryRow(`
		SELECT name, url, last_fetched_at, next_fetch_at, last_error, created_at, updated_at
		FROM sources
		WHERE name = ?
	`, name).Scan(&source.Name, &source.URL, &lastFetchedAt, &nextFetchAt,
		&source.LastError, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get source: %w", err)
	}

	source.LastFetchedAt = parseNullTime(lastFetchedAt)
	source.NextFetchAt = parseNullTime(nextFetchAt)
	source.CreatedAt, _ = time.Parse(timestampLayout, createdAt)
	source.UpdatedAt, _ = time.Parse(timestampLayout, updatedAt)

	return &source, nil
}

func (r *SourceRepositoryImpl) UpdateSourceFetch(name string, fetchedAt time.Time, nextFetch time.Time, lastError string) error {
	result, err := r.db.Exec(`
		UPDATE sources
		SET last_fetched_at = ?, next_fetch_at = ?, last_error = ?, updated_at = ?
		WHERE name = ?
	`, formatTime(fetchedAt), formatTime(nextFetch), lastError, formatTime(time.Now()), name)

	if err != nil {
		return fmt.Errorf("failed to update source fetch: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("source not found: %s", name)
	}

	return nil
}

func (r *SourceRepositoryImpl) GetSourceCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM sources").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get source count: %w", err)
	}
	return count, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseNullTime(value sql.NullString) *time.Time {
	if !value.Valid || value.String == "" {
		return nil
	}
	t, err := time.Parse(timestampLayout, value.String)
	if err != nil {
		return nil
	}
	return &t
}

package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/content-ops/app/content"
)

var _ EntryRepository = (*EntryRepositoryImpl)(nil)

// EntryRepositoryImpl stores entries as JSON payloads. Every read runs the
// payload through the normalizer again, so rows written under an older shape
// come back canonical.
type EntryRepositoryImpl struct {
	db         *DB
	normalizer *content.Normalizer
}

func NewEntryRepository(db *DB, normalizer *content.Normalizer) *EntryRepositoryImpl {
	return &EntryRepositoryImpl{db: db, normalizer: normalizer}
}

func (r *EntryRepositoryImpl) UpsertEntry(entry content.Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode entry: %w", err)
	}

	var deletedAt sql.NullString
	if entry.DeletedAt != "" {
		deletedAt = sql.NullString{String: entry.DeletedAt, Valid: true}
	}

	_, err = r.db.Exec(`
		INSERT INTO entries (id, date, workflow_status, deleted_at, signature, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			date = excluded.date,
			workflow_status = excluded.workflow_status,
			deleted_at = excluded.deleted_at,
			signature = excluded.signature,
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, entry.ID, entry.Date, string(entry.WorkflowStatus), deletedAt, content.Signature(entry),
		string(payload), entry.CreatedAt, entry.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert entry: %w", err)
	}

	return nil
}

func (r *EntryRepositoryImpl) GetEntry(id string) (*content.Entry, error) {
	var payload string
	err := r.db.QueryRow(`SELECT payload FROM entries WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	entry := r.normalizer.Entry(json.RawMessage(payload))
	if entry == nil {
		return nil, fmt.Errorf("stored entry %s is not an object", id)
	}
	return entry, nil
}

func (r *EntryRepositoryImpl) EntryExists(id string) (bool, error) {
	var exists int
	err := r.db.QueryRow(`SELECT 1 FROM entries WHERE id = ?`, id).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check entry: %w", err)
	}
	return true, nil
}

func (r *EntryRepositoryImpl) ListEntries(includeDeleted bool) ([]content.Entry, error) {
	query := `SELECT id, payload FROM entries WHERE deleted_at IS NULL ORDER BY date, created_at`
	if includeDeleted {
		query = `SELECT id, payload FROM entries ORDER BY date, created_at`
	}
	return r.queryEntries(query)
}

func (r *EntryRepositoryImpl) ListEntriesByDate(date string) ([]content.Entry, error) {
	return r.queryEntries(`
		SELECT id, payload FROM entries
		WHERE date = ?
		ORDER BY created_at
	`, date)
}

func (r *EntryRepositoryImpl) ListEntryRecords() ([]EntryRecord, error) {
	rows, err := r.db.Query(`SELECT id, signature, payload FROM entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list entry records: %w", err)
	}
	defer rows.Close()

	var records []EntryRecord
	for rows.Next() {
		var record EntryRecord
		if err := rows.Scan(&record.ID, &record.Signature, &record.Payload); err != nil {
			return nil, fmt.Errorf("failed to scan entry record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry records: %w", err)
	}

	return records, nil
}

func (r *EntryRepositoryImpl) SoftDeleteEntry(id string, deletedAt time.Time) (bool, error) {
	entry, err := r.GetEntry(id)
	if err != nil {
		return false, err
	}
	if entry == nil {
		return false, nil
	}
	if entry.IsDeleted() {
		return true, nil
	}

	stamp := formatTime(deletedAt)
	entry.DeletedAt = stamp
	entry.UpdatedAt = stamp

	if err := r.UpsertEntry(*entry); err != nil {
		return false, fmt.Errorf("failed to soft delete entry: %w", err)
	}
	return true, nil
}

func (r *EntryRepositoryImpl) GetEntryCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM entries WHERE deleted_at IS NULL").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get entry count: %w", err)
	}
	return count, nil
}

func (r *EntryRepositoryImpl) queryEntries(query string, args ...any) ([]content.Entry, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []content.Entry{}
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}

		entry := r.normalizer.Entry(json.RawMessage(payload))
		if entry == nil {
			slog.Warn("Skipping unreadable entry payload", "entry", id)
			continue
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	return entries, nil
}

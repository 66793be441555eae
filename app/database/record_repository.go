package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/content-ops/app/content"
)

// RecordRepository is a RecordStore backed by an (id, payload, created_at)
// table. Payloads are normalized again when read.
type RecordRepository[T any] struct {
	db        *DB
	table     string
	normalize func(raw any) *T
	key       func(record T) (id string, createdAt string)
}

func NewIdeaRepository(db *DB, normalizer *content.Normalizer) *RecordRepository[content.Idea] {
	return &RecordRepository[content.Idea]{
		db:        db,
		table:     "ideas",
		normalize: normalizer.Idea,
		key:       func(idea content.Idea) (string, string) { return idea.ID, idea.CreatedAt },
	}
}

func NewLinkedInRepository(db *DB, normalizer *content.Normalizer) *RecordRepository[content.LinkedInSubmission] {
	return &RecordRepository[content.LinkedInSubmission]{
		db:        db,
		table:     "linkedin_submissions",
		normalize: normalizer.LinkedInSubmission,
		key: func(submission content.LinkedInSubmission) (string, string) {
			return submission.ID, submission.CreatedAt
		},
	}
}

func NewTestingFrameworkRepository(db *DB, normalizer *content.Normalizer) *RecordRepository[content.TestingFramework] {
	return &RecordRepository[content.TestingFramework]{
		db:        db,
		table:     "testing_frameworks",
		normalize: normalizer.TestingFramework,
		key: func(framework content.TestingFramework) (string, string) {
			return framework.ID, framework.CreatedAt
		},
	}
}

func (r *RecordRepository[T]) Upsert(record T) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode %s record: %w", r.table, err)
	}

	id, createdAt := r.key(record)
	_, err = r.db.Exec(fmt.Sprintf(`
		INSERT INTO %s (id, payload, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET payload = excluded.payload
	`, r.table), id, string(payload), createdAt)

	if err != nil {
		return fmt.Errorf("failed to upsert %s record: %w", r.table, err)
	}

	return nil
}

func (r *RecordRepository[T]) Get(id string) (*T, error) {
	var payload string
	err := r.db.QueryRow(fmt.Sprintf(`SELECT payload FROM %s WHERE id = ?`, r.table), id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s record: %w", r.table, err)
	}

	record := r.normalize(json.RawMessage(payload))
	if record == nil {
		return nil, fmt.Errorf("stored %s record %s is unreadable", r.table, id)
	}
	return record, nil
}

func (r *RecordRepository[T]) List() ([]T, error) {
	rows, err := r.db.Query(fmt.Sprintf(`SELECT id, payload FROM %s ORDER BY created_at DESC`, r.table))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", r.table, err)
	}
	defer rows.Close()

	records := []T{}
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", r.table, err)
		}

		record := r.normalize(json.RawMessage(payload))
		if record == nil {
			slog.Warn("Skipping unreadable record", "table", r.table, "id", id)
			continue
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", r.table, err)
	}

	return records, nil
}

func (r *RecordRepository[T]) Delete(id string) (bool, error) {
	result, err := r.db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.table), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s record: %w", r.table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected > 0, nil
}

func (r *RecordRepository[T]) Count() (int, error) {
	var count int
	err := r.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", r.table)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s records: %w", r.table, err)
	}
	return count, nil
}

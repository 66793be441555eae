package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/content-ops/app/content"
	"github.com/lysyi3m/content-ops/app/database"
)

// RenormalizeTask runs every stored entry through the current normalizer and
// rewrites rows whose payload or signature is out of date. It brings rows
// written by older versions (legacy statuses, loose dates, removed campaign
// names) into canonical form.
type RenormalizeTask struct {
	Task
	entryRepo  database.EntryRepository
	normalizer *content.Normalizer
}

func NewRenormalizeTask(entryRepo database.EntryRepository, normalizer *content.Normalizer) *RenormalizeTask {
	return &RenormalizeTask{
		Task:       NewTask(TaskTypeRenormalize, ""),
		entryRepo:  entryRepo,
		normalizer: normalizer,
	}
}

func (t *RenormalizeTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	records, err := t.entryRepo.ListEntryRecords()
	if err != nil {
		return fmt.Errorf("failed to list entry records: %w", err)
	}

	rewritten := 0
	unreadable := 0

	for _, record := range records {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		entry := t.normalizer.Entry(json.RawMessage(record.Payload))
		if entry == nil {
			slog.Warn("Stored entry payload is unreadable", "entry", record.ID)
			unreadable++
			continue
		}
		entry.ID = record.ID

		canonical, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to encode entry %s: %w", record.ID, err)
		}

		if content.Signature(*entry) == record.Signature && string(canonical) == record.Payload {
			continue
		}

		if err := t.entryRepo.UpsertEntry(*entry); err != nil {
			return fmt.Errorf("failed to rewrite entry %s: %w", record.ID, err)
		}
		rewritten++
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"total", len(records),
		"rewritten", rewritten,
		"unreadable", unreadable)

	return nil
}

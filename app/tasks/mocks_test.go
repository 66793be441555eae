package tasks

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/lysyi3m/content-ops/app/content"
	"github.com/lysyi3m/content-ops/app/database"
)

// MockEntryRepository keeps entries in memory, stored as JSON payloads the
// way the SQLite repository does.
type MockEntryRepository struct {
	mu      sync.Mutex
	records map[string]database.EntryRecord
	upserts int
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{records: make(map[string]database.EntryRecord)}
}

func (m *MockEntryRepository) put(id, signature, payload string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[id] = database.EntryRecord{ID: id, Signature: signature, Payload: payload}
}

func (m *MockEntryRepository) GetEntry(id string) (*content.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	return content.Normalize(json.RawMessage(record.Payload)), nil
}

func (m *MockEntryRepository) GetEntryCount() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records), nil
}

func (m *MockEntryRepository) EntryExists(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.records[id]
	return ok, nil
}

func (m *MockEntryRepository) ListEntries(includeDeleted bool) ([]content.Entry, error) {
	records, _ := m.ListEntryRecords()
	entries := []content.Entry{}
	for _, record := range records {
		entry := content.Normalize(json.RawMessage(record.Payload))
		if entry.IsDeleted() && !includeDeleted {
			continue
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

func (m *MockEntryRepository) ListEntriesByDate(date string) ([]content.Entry, error) {
	all, _ := m.ListEntries(true)
	entries := []content.Entry{}
	for _, entry := range all {
		if entry.Date == date {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (m *MockEntryRepository) ListEntryRecords() ([]database.EntryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	records := make([]database.EntryRecord, 0, len(m.records))
	for _, record := range m.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (m *MockEntryRepository) UpsertEntry(entry content.Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	m.put(entry.ID, content.Signature(entry), string(payload))
	m.mu.Lock()
	m.upserts++
	m.mu.Unlock()
	return nil
}

func (m *MockEntryRepository) SoftDeleteEntry(id string, deletedAt time.Time) (bool, error) {
	return false, nil
}

type sourceFetch struct {
	fetchedAt time.Time
	nextFetch time.Time
	lastError string
}

type MockSourceRepository struct {
	mu      sync.Mutex
	sources map[string]*database.Source
	fetches []sourceFetch
}

func NewMockSourceRepository() *MockSourceRepository {
	return &MockSourceRepository{sources: make(map[string]*database.Source)}
}

func (m *MockSourceRepository) GetSource(name string) (*database.Source, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sources[name], nil
}

func (m *MockSourceRepository) GetSourceCount() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sources), nil
}

func (m *MockSourceRepository) UpsertSource(name, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[name] = &database.Source{Name: name, URL: url}
	return nil
}

func (m *MockSourceRepository) UpdateSourceFetch(name string, fetchedAt time.Time, nextFetch time.Time, lastError string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches = append(m.fetches, sourceFetch{fetchedAt: fetchedAt, nextFetch: nextFetch, lastError: lastError})
	return nil
}

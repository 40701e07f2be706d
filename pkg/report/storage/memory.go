package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"attest-hq/attest/pkg/report"
)

// MemoryStorage keeps run records in memory.
type MemoryStorage struct {
	mu      sync.RWMutex
	records map[string]*report.RunRecord
}

// NewMemoryStorage creates an empty in-memory backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{records: make(map[string]*report.RunRecord)}
}

// Save stores a record, replacing any record with the same id.
func (s *MemoryStorage) Save(ctx context.Context, record *report.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
	return nil
}

// Get returns the record with the given id.
func (s *MemoryStorage) Get(ctx context.Context, id string) (*report.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, report.ErrNotFound
	}
	return record, nil
}

// List returns up to limit records, newest first.
func (s *MemoryStorage) List(ctx context.Context, limit int) ([]*report.RunRecord, error) {
	s.mu.RLock()
	records := make([]*report.RunRecord, 0, len(s.records))
	for _, r := range s.records {
		records = append(records, r)
	}
	s.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].StartedAt.After(records[j].StartedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Count returns the number of stored records.
func (s *MemoryStorage) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}

// DeleteOlderThan removes records started before cutoff.
func (s *MemoryStorage) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, r := range s.records {
		if r.StartedAt.Before(cutoff) {
			delete(s.records, id)
			removed++
		}
	}
	return removed, nil
}

// TrimToCount keeps only the newest max records.
func (s *MemoryStorage) TrimToCount(ctx context.Context, max int) (int64, error) {
	if max <= 0 {
		return 0, nil
	}

	records, err := s.List(ctx, 0)
	if err != nil {
		return 0, err
	}
	if len(records) <= max {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for _, r := range records[max:] {
		delete(s.records, r.ID)
		removed++
	}
	return removed, nil
}

// Close is a no-op for the memory backend.
func (s *MemoryStorage) Close() error {
	return nil
}

package storage

import (
	"context"
	"sync"
	"time"

	"securehome/server/internal/interfaces"
)

// MemoryVisitorStore keeps visitor records in process memory, most recent
// first. It backs the assistant when MySQL is unavailable; everything is lost
// on restart.
type MemoryVisitorStore struct {
	mu      sync.RWMutex
	nextID  int64
	records []interfaces.VisitorRecord
}

func NewMemoryVisitorStore() *MemoryVisitorStore {
	return &MemoryVisitorStore{nextID: 1}
}

func (s *MemoryVisitorStore) GetLastVisitor(ctx context.Context) (*interfaces.VisitorRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return nil, nil
	}
	rec := s.records[0]
	return &rec, nil
}

func (s *MemoryVisitorStore) GetAllVisitors(ctx context.Context) ([]interfaces.VisitorRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]interfaces.VisitorRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryVisitorStore) LogVisitor(ctx context.Context, name, purpose string) (*interfaces.VisitorRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := interfaces.VisitorRecord{
		ID:        s.nextID,
		Name:      name,
		Purpose:   purpose,
		Timestamp: time.Now(),
	}
	s.nextID++
	s.records = append([]interfaces.VisitorRecord{rec}, s.records...)
	return &rec, nil
}

func (s *MemoryVisitorStore) ClearVisitors(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// IDs are never reused even after a clear
	deleted := int64(len(s.records))
	s.records = nil
	return deleted, nil
}

package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"matmind-server-go/internal/domain/auth/model"
)

type memoryStore struct {
	byEmail map[string]model.UserRecord
	mutex   sync.RWMutex
}

// NewMemory builds an in-memory user store, used by tests and local runs
// without a database file.
func NewMemory() Store {
	return &memoryStore{
		byEmail: make(map[string]model.UserRecord),
	}
}

func (s *memoryStore) FindByEmail(_ context.Context, email string) (model.UserRecord, bool, error) {
	s.mutex.RLock()
	record, ok := s.byEmail[email]
	s.mutex.RUnlock()
	if !ok {
		return model.UserRecord{}, false, nil
	}
	return record, true, nil
}

func (s *memoryStore) Create(_ context.Context, record model.UserRecord) error {
	if record.Email == "" {
		return fmt.Errorf("email required")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, exists := s.byEmail[record.Email]; exists {
		return fmt.Errorf("email already registered: %s", record.Email)
	}
	s.byEmail[record.Email] = record
	return nil
}

func (s *memoryStore) Count(_ context.Context) (int64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return int64(len(s.byEmail)), nil
}

func (s *memoryStore) Close(_ context.Context) error {
	return nil
}

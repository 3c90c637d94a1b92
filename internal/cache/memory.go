package cache

import (
	"context"
	"fmt"
	"sync"
)

// MemoryCertificateIDStore is an in-process CertificateIDStore. It is the
// fallback when Redis is not configured, and the store of choice in tests.
type MemoryCertificateIDStore struct {
	mu  sync.RWMutex
	ids map[string]string
}

// NewMemoryCertificateIDStore returns an empty in-memory store.
func NewMemoryCertificateIDStore() *MemoryCertificateIDStore {
	return &MemoryCertificateIDStore{ids: make(map[string]string)}
}

func (s *MemoryCertificateIDStore) Get(_ context.Context, customerID, courseID int64) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.ids[pairKey(customerID, courseID)]
	return id, ok, nil
}

func (s *MemoryCertificateIDStore) Put(_ context.Context, customerID, courseID int64, certificateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[pairKey(customerID, courseID)] = certificateID
	return nil
}

func pairKey(customerID, courseID int64) string {
	return fmt.Sprintf("%d:%d", customerID, courseID)
}

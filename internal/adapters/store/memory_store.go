package store

import (
	"context"
	"sync"
	"time"

	"github.com/mikey/job-contact-extractor/internal/core"
	"go.uber.org/zap"
)

// MemoryStore is an in-memory implementation of the ResultRepository interface
type MemoryStore struct {
	records     map[string]*core.ContactRecord
	mu          sync.RWMutex
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
	stopOnce    sync.Once
	now         func() time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore(logger *zap.Logger, cleanupFreq time.Duration) *MemoryStore {
	s := &MemoryStore{
		records:     make(map[string]*core.ContactRecord),
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
		now:         time.Now,
	}

	go runCleanup(cleanupFreq, s.stopCh, s.Cleanup, logger)

	return s
}

// Get retrieves the unexpired record for a job reference
func (s *MemoryStore) Get(ctx context.Context, reference string) (*core.ContactRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[reference]
	if !ok || !s.now().Before(record.ExpiresAt) {
		return nil, core.ErrRecordNotFound
	}

	copied := *record
	copied.Emails = append([]string(nil), record.Emails...)
	return &copied, nil
}

// Upsert stores a record, replacing any record with the same reference
func (s *MemoryStore) Upsert(ctx context.Context, record *core.ContactRecord) error {
	copied := *record
	copied.Emails = append([]string(nil), record.Emails...)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.Reference] = &copied
	return nil
}

// Delete removes the record for a job reference
func (s *MemoryStore) Delete(ctx context.Context, reference string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, reference)
	return nil
}

// Cleanup removes expired records
func (s *MemoryStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	expiredCount := 0

	for reference, record := range s.records {
		if !now.Before(record.ExpiresAt) {
			delete(s.records, reference)
			expiredCount++
		}
	}

	s.logger.Debug("Cleaned up expired contact records", zap.Int("expired_count", expiredCount))
	return nil
}

// Stop stops the background cleanup task
func (s *MemoryStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"taxengine/internal/model"
	"taxengine/pkg/pagination"
)

// InMemoryAuditStore implements repository.AuditRepository
type InMemoryAuditStore struct {
	mu      sync.Mutex
	entries []model.AuditLog
	err     error
}

func NewInMemoryAuditStore() *InMemoryAuditStore {
	return &InMemoryAuditStore{}
}

// FailWith makes every subsequent Log call return err.
func (s *InMemoryAuditStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *InMemoryAuditStore) Log(ctx context.Context, entry *model.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now().UTC()
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *InMemoryAuditStore) ListByProfile(ctx context.Context, profileID uuid.UUID, page, limit int) ([]model.AuditLog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := lo.Filter(s.entries, func(e model.AuditLog, _ int) bool { return e.ProfileID == profileID })
	lo.Reverse(matched)
	total := int64(len(matched))

	start, end := pagination.New(page, limit).Window(len(matched))
	return append([]model.AuditLog{}, matched[start:end]...), total, nil
}

// Entries returns every logged entry in insertion order.
func (s *InMemoryAuditStore) Entries() []model.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.AuditLog(nil), s.entries...)
}

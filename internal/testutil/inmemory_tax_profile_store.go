package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	ierr "taxengine/internal/errors"
	"taxengine/internal/model"
	"taxengine/pkg/pagination"
)

// InMemoryTaxProfileStore implements repository.TaxProfileRepository
type InMemoryTaxProfileStore struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]*model.TaxProfile

	// concurrentWrites makes the next N updates lose the version race
	concurrentWrites int
}

// NewInMemoryTaxProfileStore creates a new in-memory tax profile store
func NewInMemoryTaxProfileStore() *InMemoryTaxProfileStore {
	return &InMemoryTaxProfileStore{
		profiles: make(map[uuid.UUID]*model.TaxProfile),
	}
}

// copyTaxProfile deep copies a row through its domain form
func copyTaxProfile(p *model.TaxProfile) *model.TaxProfile {
	if p == nil {
		return nil
	}
	copied := model.TaxProfileFromDomain(p.ToDomain())
	return &copied
}

// SimulateConcurrentWrites bumps the stored version before each of the next n
// updates, as if another writer got there first.
func (s *InMemoryTaxProfileStore) SimulateConcurrentWrites(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.concurrentWrites = n
}

func (s *InMemoryTaxProfileStore) Create(ctx context.Context, profile *model.TaxProfile) error {
	if profile == nil {
		return ierr.NewError("tax profile cannot be nil").
			WithHint("Tax profile cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if _, exists := s.profiles[profile.ID]; exists {
		return ierr.NewError("tax profile already exists").
			WithHint("A tax profile with this ID already exists").
			WithReportableDetails(map[string]interface{}{"id": profile.ID}).
			Mark(ierr.ErrAlreadyExists)
	}

	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	s.profiles[profile.ID] = copyTaxProfile(profile)
	return nil
}

func (s *InMemoryTaxProfileStore) Update(ctx context.Context, profile *model.TaxProfile, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.profiles[profile.ID]
	if !ok {
		return ierr.NewError("tax profile not found").
			WithHint("Tax profile not found").
			Mark(ierr.ErrNotFound)
	}
	if s.concurrentWrites > 0 {
		s.concurrentWrites--
		stored.Version++
	}
	if stored.Version != expectedVersion {
		return ierr.NewErrorf("tax profile %s changed since version %d", profile.ID, expectedVersion).
			WithHint("The tax profile was modified concurrently, please retry").
			WithReportableDetails(map[string]interface{}{
				"profile_id":       profile.ID.String(),
				"expected_version": expectedVersion,
			}).
			Mark(ierr.ErrVersionConflict)
	}

	profile.Version = expectedVersion + 1
	profile.CreatedAt = stored.CreatedAt
	profile.UpdatedAt = time.Now().UTC()
	s.profiles[profile.ID] = copyTaxProfile(profile)
	return nil
}

func (s *InMemoryTaxProfileStore) FindByID(ctx context.Context, id uuid.UUID) (*model.TaxProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, ierr.NewError("tax profile not found").
			WithHint("Tax profile not found").
			WithReportableDetails(map[string]interface{}{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyTaxProfile(p), nil
}

func (s *InMemoryTaxProfileStore) FindActiveByCompany(ctx context.Context, companyID uuid.UUID) (*model.TaxProfile, error) {
	found := s.first(func(p *model.TaxProfile) bool {
		return p.IsActive && p.CompanyID != nil && *p.CompanyID == companyID
	})
	if found == nil {
		return nil, ierr.NewError("no active tax profile for company").
			WithHint("No active tax profile for company").
			Mark(ierr.ErrNotFound)
	}
	return found, nil
}

func (s *InMemoryTaxProfileStore) FindActiveGlobalDefault(ctx context.Context) (*model.TaxProfile, error) {
	found := s.first(func(p *model.TaxProfile) bool {
		return p.IsActive && p.IsGlobalDefault
	})
	if found == nil {
		return nil, ierr.NewError("no active global default tax profile").
			WithHint("No active global default tax profile").
			Mark(ierr.ErrNotFound)
	}
	return found, nil
}

func (s *InMemoryTaxProfileStore) List(ctx context.Context, page, limit int) ([]model.TaxProfile, int64, error) {
	all := s.sorted()
	total := int64(len(all))

	start, end := pagination.New(page, limit).Window(len(all))

	res := make([]model.TaxProfile, 0, end-start)
	for _, p := range all[start:end] {
		res = append(res, *p)
	}
	return res, total, nil
}

func (s *InMemoryTaxProfileStore) DemoteGlobalDefaults(ctx context.Context, exceptID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var demoted int64
	for id, p := range s.profiles {
		if id == exceptID || !p.IsGlobalDefault {
			continue
		}
		p.IsGlobalDefault = false
		p.Version++
		demoted++
	}
	return demoted, nil
}

// sorted returns copies ordered newest first, matching the SQL repository.
func (s *InMemoryTaxProfileStore) sorted() []*model.TaxProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*model.TaxProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		all = append(all, copyTaxProfile(p))
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all
}

func (s *InMemoryTaxProfileStore) first(match func(p *model.TaxProfile) bool) *model.TaxProfile {
	for _, p := range s.sorted() {
		if match(p) {
			return p
		}
	}
	return nil
}

// InMemoryTxManager runs fn directly; the in-memory stores have no rollback.
type InMemoryTxManager struct{}

func (InMemoryTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"taxengine/internal/cache"
	"taxengine/internal/config"
	ierr "taxengine/internal/errors"
	"taxengine/internal/logger"
	"taxengine/internal/metrics"
	"taxengine/internal/model"
	"taxengine/internal/repository"
	"taxengine/internal/tax"
	"taxengine/internal/websocket"
)

const (
	cacheKeyGlobalProfile  = "tax_profile:global"
	cacheKeyCompanyProfile = "tax_profile:company:"
)

// --- DTOs ---

type CreateTaxProfileRequest struct {
	CompanyID                *uuid.UUID            `json:"company_id"`
	Name                     string                `json:"name" binding:"required,max=255"`
	IsGlobalDefault          bool                  `json:"is_global_default"`
	DefaultTaxType           tax.TaxType           `json:"default_tax_type" binding:"required"`
	DefaultCalculationMethod tax.CalculationMethod `json:"default_calculation_method" binding:"required"`
	RoundingMethod           tax.RoundingMethod    `json:"rounding_method" binding:"required"`
	RoundingPrecision        int32                 `json:"rounding_precision"`
	TaxRates                 []tax.TaxRate         `json:"tax_rates"`
	TaxExemptions            []tax.TaxExemption    `json:"tax_exemptions"`
}

// ProfileChangePublisher receives an event after every successful persist.
type ProfileChangePublisher interface {
	PublishProfileChange(change websocket.ProfileChange)
}

// --- Interface ---

type TaxProfileService interface {
	// GetProfile returns the company's active profile, falling back to the
	// active global default. A nil companyID goes straight to the default.
	GetProfile(ctx context.Context, companyID *uuid.UUID) (tax.Profile, error)
	GetProfileByID(ctx context.Context, id uuid.UUID) (tax.Profile, error)
	ListProfiles(ctx context.Context, page, limit int) ([]tax.Profile, int64, error)
	CreateProfile(ctx context.Context, req CreateTaxProfileRequest, userID string) (tax.Profile, error)
	// Persist saves profile, creating it when it has no ID. Promoting a global
	// default demotes every other one in the same transaction.
	Persist(ctx context.Context, profile tax.Profile) (tax.Profile, error)
	SetGlobalDefault(ctx context.Context, id uuid.UUID, userID string) (tax.Profile, error)
	DeactivateProfile(ctx context.Context, id uuid.UUID, userID string) (tax.Profile, error)

	AddTaxRate(ctx context.Context, id uuid.UUID, rate tax.TaxRate, userID string) (tax.Profile, error)
	UpdateTaxRate(ctx context.Context, id uuid.UUID, code string, patch tax.TaxRatePatch, userID string) (tax.Profile, error)
	RemoveTaxRate(ctx context.Context, id uuid.UUID, code string, userID string) (tax.Profile, error)
	AddTaxExemption(ctx context.Context, id uuid.UUID, exemption tax.TaxExemption, userID string) (tax.Profile, error)
	UpdateTaxExemption(ctx context.Context, id uuid.UUID, code string, patch tax.TaxExemptionPatch, userID string) (tax.Profile, error)
	RemoveTaxExemption(ctx context.Context, id uuid.UUID, code string, userID string) (tax.Profile, error)
}

type taxProfileService struct {
	repo      repository.TaxProfileRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
	cache     cache.Cache
	publisher ProfileChangePublisher
	cfg       *config.Configuration
	log       *logger.Logger
}

func NewTaxProfileService(
	repo repository.TaxProfileRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	c cache.Cache,
	publisher ProfileChangePublisher,
	cfg *config.Configuration,
	log *logger.Logger,
) TaxProfileService {
	return &taxProfileService{
		repo:      repo,
		auditRepo: auditRepo,
		txManager: txManager,
		cache:     c,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
	}
}

// --- Implementation ---

func (s *taxProfileService) GetProfile(ctx context.Context, companyID *uuid.UUID) (tax.Profile, error) {
	if companyID != nil {
		key := cacheKeyCompanyProfile + companyID.String()
		profile, err := s.cachedLookup(ctx, key, func() (*model.TaxProfile, error) {
			return s.repo.FindActiveByCompany(ctx, *companyID)
		})
		if err == nil {
			return profile, nil
		}
		if !ierr.Is(err, ierr.ErrNotFound) {
			return tax.Profile{}, err
		}
	}

	profile, err := s.cachedLookup(ctx, cacheKeyGlobalProfile, func() (*model.TaxProfile, error) {
		return s.repo.FindActiveGlobalDefault(ctx)
	})
	if ierr.Is(err, ierr.ErrNotFound) {
		return tax.Profile{}, ierr.WithError(err).
			WithHint("No tax profile applies and no global default is configured").
			Mark(ierr.ErrNoDefaultProfile)
	}
	return profile, err
}

// cachedLookup serves key from the cache, loading and storing it on a miss.
func (s *taxProfileService) cachedLookup(ctx context.Context, key string, load func() (*model.TaxProfile, error)) (tax.Profile, error) {
	if value, ok := s.cache.Get(ctx, key); ok {
		if profile, ok := cache.UnmarshalCacheValue[tax.Profile](value); ok {
			metrics.ObserveCacheLookup(true)
			return profile.Clone(), nil
		}
	}
	metrics.ObserveCacheLookup(false)

	row, err := load()
	if err != nil {
		return tax.Profile{}, err
	}
	profile := row.ToDomain()
	s.cache.Set(ctx, key, lo.ToPtr(profile.Clone()), s.cfg.Cache.TTL)
	return profile, nil
}

func (s *taxProfileService) GetProfileByID(ctx context.Context, id uuid.UUID) (tax.Profile, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return tax.Profile{}, err
	}
	return row.ToDomain(), nil
}

func (s *taxProfileService) ListProfiles(ctx context.Context, page, limit int) ([]tax.Profile, int64, error) {
	rows, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return lo.Map(rows, func(r model.TaxProfile, _ int) tax.Profile { return r.ToDomain() }), total, nil
}

func (s *taxProfileService) CreateProfile(ctx context.Context, req CreateTaxProfileRequest, userID string) (tax.Profile, error) {
	if req.CompanyID != nil {
		_, err := s.repo.FindActiveByCompany(ctx, *req.CompanyID)
		if err == nil {
			return tax.Profile{}, ierr.NewErrorf("company %s already has an active tax profile", req.CompanyID).
				WithHint("The company already has an active tax profile, deactivate it first").
				Mark(ierr.ErrAlreadyExists)
		}
		if !ierr.Is(err, ierr.ErrNotFound) {
			return tax.Profile{}, err
		}
	}

	profile := tax.Profile{
		CompanyID:                req.CompanyID,
		Name:                     req.Name,
		IsActive:                 true,
		IsGlobalDefault:          req.IsGlobalDefault,
		DefaultTaxType:           req.DefaultTaxType,
		DefaultCalculationMethod: req.DefaultCalculationMethod,
		RoundingMethod:           req.RoundingMethod,
		RoundingPrecision:        req.RoundingPrecision,
		TaxRates:                 req.TaxRates,
		TaxExemptions:            req.TaxExemptions,
	}

	saved, err := s.Persist(ctx, profile)
	metrics.ObserveMutation(model.ActionCreateTaxProfile, err)
	if err != nil {
		return tax.Profile{}, err
	}

	s.afterChange(ctx, saved, model.ActionCreateTaxProfile, websocket.EventProfileCreated, "", userID, req)
	return saved, nil
}

func (s *taxProfileService) Persist(ctx context.Context, profile tax.Profile) (tax.Profile, error) {
	if err := tax.ValidateProfile(profile); err != nil {
		return tax.Profile{}, err
	}

	row := model.TaxProfileFromDomain(profile)
	creating := row.ID == uuid.Nil
	if creating {
		row.ID = uuid.New()
		row.Version = 1
	}

	var demoted int64
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if row.IsGlobalDefault {
			n, err := s.repo.DemoteGlobalDefaults(txCtx, row.ID)
			if err != nil {
				return err
			}
			demoted = n
		}

		if creating {
			return s.repo.Create(txCtx, &row)
		}
		return s.repo.Update(txCtx, &row, profile.Version)
	})
	if err != nil {
		if ierr.Is(err, ierr.ErrVersionConflict) {
			metrics.ObserveVersionConflict()
		}
		return tax.Profile{}, err
	}

	s.invalidate(ctx, row)
	if demoted > 0 {
		s.log.WithContext(ctx).Infow("demoted previous global default tax profiles",
			"profile_id", row.ID,
			"demoted", demoted)
	}
	return row.ToDomain(), nil
}

func (s *taxProfileService) invalidate(ctx context.Context, row model.TaxProfile) {
	if row.CompanyID != nil {
		s.cache.Delete(ctx, cacheKeyCompanyProfile+row.CompanyID.String())
	}
	// the profile may be, or may have just stopped being, the global default
	s.cache.Delete(ctx, cacheKeyGlobalProfile)
}

func (s *taxProfileService) SetGlobalDefault(ctx context.Context, id uuid.UUID, userID string) (tax.Profile, error) {
	return s.mutate(ctx, model.ActionSetGlobalDefault, websocket.EventGlobalDefaultChanged, id, "", userID, nil,
		func(p tax.Profile) (tax.Profile, error) {
			if !p.IsActive {
				return tax.Profile{}, ierr.NewErrorf("tax profile %s is inactive", p.ID).
					WithHint("Only an active tax profile can be the global default").
					Mark(ierr.ErrValidation)
			}
			p.IsGlobalDefault = true
			return p, nil
		})
}

func (s *taxProfileService) DeactivateProfile(ctx context.Context, id uuid.UUID, userID string) (tax.Profile, error) {
	return s.mutate(ctx, model.ActionDeactivateTaxProfile, websocket.EventProfileDeactivated, id, "", userID, nil,
		func(p tax.Profile) (tax.Profile, error) {
			p.IsActive = false
			return p, nil
		})
}

func (s *taxProfileService) AddTaxRate(ctx context.Context, id uuid.UUID, rate tax.TaxRate, userID string) (tax.Profile, error) {
	return s.mutate(ctx, model.ActionAddTaxRate, websocket.EventTaxRateAdded, id, rate.Code, userID, rate,
		func(p tax.Profile) (tax.Profile, error) { return p.AddTaxRate(rate) })
}

func (s *taxProfileService) UpdateTaxRate(ctx context.Context, id uuid.UUID, code string, patch tax.TaxRatePatch, userID string) (tax.Profile, error) {
	return s.mutate(ctx, model.ActionUpdateTaxRate, websocket.EventTaxRateUpdated, id, code, userID, patch,
		func(p tax.Profile) (tax.Profile, error) { return p.UpdateTaxRate(code, patch) })
}

func (s *taxProfileService) RemoveTaxRate(ctx context.Context, id uuid.UUID, code string, userID string) (tax.Profile, error) {
	return s.mutate(ctx, model.ActionRemoveTaxRate, websocket.EventTaxRateRemoved, id, code, userID, nil,
		func(p tax.Profile) (tax.Profile, error) { return p.RemoveTaxRate(code) })
}

func (s *taxProfileService) AddTaxExemption(ctx context.Context, id uuid.UUID, exemption tax.TaxExemption, userID string) (tax.Profile, error) {
	return s.mutate(ctx, model.ActionAddTaxExemption, websocket.EventTaxExemptionAdded, id, exemption.Code, userID, exemption,
		func(p tax.Profile) (tax.Profile, error) { return p.AddTaxExemption(exemption) })
}

func (s *taxProfileService) UpdateTaxExemption(ctx context.Context, id uuid.UUID, code string, patch tax.TaxExemptionPatch, userID string) (tax.Profile, error) {
	return s.mutate(ctx, model.ActionUpdateTaxExemption, websocket.EventTaxExemptionUpdated, id, code, userID, patch,
		func(p tax.Profile) (tax.Profile, error) { return p.UpdateTaxExemption(code, patch) })
}

func (s *taxProfileService) RemoveTaxExemption(ctx context.Context, id uuid.UUID, code string, userID string) (tax.Profile, error) {
	return s.mutate(ctx, model.ActionRemoveTaxExemption, websocket.EventTaxExemptionRemoved, id, code, userID, nil,
		func(p tax.Profile) (tax.Profile, error) { return p.RemoveTaxExemption(code) })
}

// mutate loads a fresh snapshot, applies change and persists the result.
// Version conflicts are retried with exponential backoff against a newly
// loaded snapshot; every other error is returned as is.
func (s *taxProfileService) mutate(
	ctx context.Context,
	action, event string,
	id uuid.UUID,
	code, userID string,
	payload interface{},
	change func(tax.Profile) (tax.Profile, error),
) (tax.Profile, error) {
	var saved tax.Profile
	attempt := 0

	operation := func() error {
		attempt++
		row, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return backoff.Permanent(err)
		}

		next, err := change(row.ToDomain())
		if err != nil {
			return backoff.Permanent(err)
		}

		saved, err = s.Persist(ctx, next)
		if err != nil && !ierr.Is(err, ierr.ErrVersionConflict) {
			return backoff.Permanent(err)
		}
		return err
	}

	err := backoff.RetryNotify(operation, s.retryPolicy(ctx), func(err error, wait time.Duration) {
		s.log.WithContext(ctx).Debugw("retrying tax profile mutation after version conflict",
			"profile_id", id,
			"action", action,
			"attempt", attempt,
			"wait", wait.String())
	})
	metrics.ObserveMutation(action, err)
	if err != nil {
		return tax.Profile{}, err
	}

	s.afterChange(ctx, saved, action, event, code, userID, payload)
	return saved, nil
}

func (s *taxProfileService) retryPolicy(ctx context.Context) backoff.BackOffContext {
	exp := backoff.NewExponentialBackOff()
	if s.cfg.Tax.MutationRetryWait > 0 {
		exp.InitialInterval = s.cfg.Tax.MutationRetryWait
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, s.cfg.Tax.MutationMaxRetries), ctx)
}

// afterChange records the audit entry and notifies subscribers. Neither can
// fail the mutation, which is already committed.
func (s *taxProfileService) afterChange(ctx context.Context, p tax.Profile, action, event, code, userID string, payload interface{}) {
	log := s.log.WithContext(ctx)

	details := "{}"
	if payload != nil {
		if b, err := json.Marshal(payload); err == nil {
			details = string(b)
		}
	}

	entry := &model.AuditLog{
		UserID:    parseUserID(userID),
		Action:    action,
		ProfileID: p.ID,
		RuleCode:  code,
		Version:   p.Version,
		Details:   details,
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		log.Warnw("failed to write tax profile audit log",
			"error", err,
			"profile_id", p.ID,
			"action", action)
	}

	if s.publisher != nil {
		s.publisher.PublishProfileChange(websocket.ProfileChange{
			Event:     event,
			ProfileID: p.ID,
			Code:      code,
			Version:   p.Version,
		})
	}

	log.Infow("tax profile changed",
		"profile_id", p.ID,
		"action", action,
		"code", code,
		"version", p.Version)
}

func parseUserID(userID string) *uuid.UUID {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil
	}
	return &id
}

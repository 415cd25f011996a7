package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	ierr "taxengine/internal/errors"
	"taxengine/internal/model"
	"taxengine/pkg/pagination"
)

// TaxProfileRepository persists tax profiles. Update applies an optimistic
// version check; DemoteGlobalDefaults is meant to run in the same transaction
// as the save that promotes a new default.
type TaxProfileRepository interface {
	Create(ctx context.Context, profile *model.TaxProfile) error
	Update(ctx context.Context, profile *model.TaxProfile, expectedVersion int64) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TaxProfile, error)
	FindActiveByCompany(ctx context.Context, companyID uuid.UUID) (*model.TaxProfile, error)
	FindActiveGlobalDefault(ctx context.Context) (*model.TaxProfile, error)
	List(ctx context.Context, page, limit int) ([]model.TaxProfile, int64, error)
	DemoteGlobalDefaults(ctx context.Context, exceptID uuid.UUID) (int64, error)
}

type taxProfileRepository struct {
	db *gorm.DB
}

func NewTaxProfileRepository(db *gorm.DB) TaxProfileRepository {
	return &taxProfileRepository{db: db}
}

func (r *taxProfileRepository) Create(ctx context.Context, profile *model.TaxProfile) error {
	if err := GetDB(ctx, r.db).Create(profile).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create tax profile").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

// Update writes every column of profile, bumping the version, provided the
// stored version still equals expectedVersion.
func (r *taxProfileRepository) Update(ctx context.Context, profile *model.TaxProfile, expectedVersion int64) error {
	profile.Version = expectedVersion + 1

	result := GetDB(ctx, r.db).
		Model(&model.TaxProfile{}).
		Where("id = ? AND version = ?", profile.ID, expectedVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(profile)
	if result.Error != nil {
		profile.Version = expectedVersion
		return ierr.WithError(result.Error).
			WithHint("Failed to update tax profile").
			Mark(ierr.ErrDatabase)
	}
	if result.RowsAffected == 0 {
		profile.Version = expectedVersion
		return versionConflict(profile.ID, expectedVersion)
	}
	return nil
}

func versionConflict(id uuid.UUID, expectedVersion int64) error {
	return ierr.NewErrorf("tax profile %s changed since version %d", id, expectedVersion).
		WithHint("The tax profile was modified concurrently, please retry").
		WithReportableDetails(map[string]interface{}{
			"profile_id":       id.String(),
			"expected_version": expectedVersion,
		}).
		Mark(ierr.ErrVersionConflict)
}

func (r *taxProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TaxProfile, error) {
	var profile model.TaxProfile
	if err := GetDB(ctx, r.db).First(&profile, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "Tax profile not found")
	}
	return &profile, nil
}

func (r *taxProfileRepository) FindActiveByCompany(ctx context.Context, companyID uuid.UUID) (*model.TaxProfile, error) {
	var profile model.TaxProfile
	err := GetDB(ctx, r.db).
		Where("company_id = ? AND is_active = ?", companyID, true).
		Order("created_at DESC").
		First(&profile).Error
	if err != nil {
		return nil, notFoundOr(err, "No active tax profile for company")
	}
	return &profile, nil
}

func (r *taxProfileRepository) FindActiveGlobalDefault(ctx context.Context) (*model.TaxProfile, error) {
	var profile model.TaxProfile
	err := GetDB(ctx, r.db).
		Where("is_global_default = ? AND is_active = ?", true, true).
		Order("updated_at DESC").
		First(&profile).Error
	if err != nil {
		return nil, notFoundOr(err, "No active global default tax profile")
	}
	return &profile, nil
}

func (r *taxProfileRepository) List(ctx context.Context, page, limit int) ([]model.TaxProfile, int64, error) {
	var profiles []model.TaxProfile
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.TaxProfile{}).Count(&total).Error; err != nil {
		return nil, 0, ierr.WithError(err).WithHint("Failed to count tax profiles").Mark(ierr.ErrDatabase)
	}

	p := pagination.New(page, limit)
	if err := db.Order("created_at desc").Offset(p.Offset).Limit(p.Limit).Find(&profiles).Error; err != nil {
		return nil, 0, ierr.WithError(err).WithHint("Failed to list tax profiles").Mark(ierr.ErrDatabase)
	}

	return profiles, total, nil
}

// DemoteGlobalDefaults clears the global default flag on every profile other
// than exceptID and returns how many were demoted.
func (r *taxProfileRepository) DemoteGlobalDefaults(ctx context.Context, exceptID uuid.UUID) (int64, error) {
	result := GetDB(ctx, r.db).
		Model(&model.TaxProfile{}).
		Where("is_global_default = ? AND id <> ?", true, exceptID).
		Updates(map[string]interface{}{
			"is_global_default": false,
			"version":           gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return 0, ierr.WithError(result.Error).
			WithHint("Failed to demote previous global default tax profile").
			Mark(ierr.ErrDatabase)
	}
	return result.RowsAffected, nil
}

func notFoundOr(err error, hint string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ierr.WithError(err).WithHint(hint).Mark(ierr.ErrNotFound)
	}
	return ierr.WithError(err).WithHint(hint).Mark(ierr.ErrDatabase)
}

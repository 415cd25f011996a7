package model

import (
	"time"

	"github.com/google/uuid"

	"taxengine/internal/tax"
)

// TaxProfile is the persisted form of a tax.Profile. Rates and exemptions are
// kept as ordered JSONB arrays so their insertion order survives a round trip.
type TaxProfile struct {
	ID                       uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID                *uuid.UUID         `gorm:"type:uuid;index" json:"company_id"` // nil for the global default
	Name                     string             `gorm:"type:varchar(255);not null" json:"name"`
	IsActive                 bool               `gorm:"not null;index" json:"is_active"`
	IsGlobalDefault          bool               `gorm:"not null;index" json:"is_global_default"`
	DefaultTaxType           string             `gorm:"type:varchar(20);not null" json:"default_tax_type"`
	DefaultCalculationMethod string             `gorm:"type:varchar(20);not null" json:"default_calculation_method"`
	RoundingMethod           string             `gorm:"type:varchar(10);not null" json:"rounding_method"`
	RoundingPrecision        int32              `gorm:"not null" json:"rounding_precision"`
	TaxRates                 []tax.TaxRate      `gorm:"type:jsonb;serializer:json;not null" json:"tax_rates"`
	TaxExemptions            []tax.TaxExemption `gorm:"type:jsonb;serializer:json;not null" json:"tax_exemptions"`
	Version                  int64              `gorm:"not null" json:"version"` // optimistic concurrency
	CreatedAt                time.Time          `json:"created_at"`
	UpdatedAt                time.Time          `json:"updated_at"`
}

// ToDomain converts the row into the engine's profile value.
func (p TaxProfile) ToDomain() tax.Profile {
	profile := tax.Profile{
		ID:                       p.ID,
		CompanyID:                p.CompanyID,
		Name:                     p.Name,
		IsActive:                 p.IsActive,
		IsGlobalDefault:          p.IsGlobalDefault,
		DefaultTaxType:           tax.TaxType(p.DefaultTaxType),
		DefaultCalculationMethod: tax.CalculationMethod(p.DefaultCalculationMethod),
		RoundingMethod:           tax.RoundingMethod(p.RoundingMethod),
		RoundingPrecision:        p.RoundingPrecision,
		TaxRates:                 p.TaxRates,
		TaxExemptions:            p.TaxExemptions,
		Version:                  p.Version,
		CreatedAt:                p.CreatedAt,
		UpdatedAt:                p.UpdatedAt,
	}
	return profile.Clone()
}

// TaxProfileFromDomain converts an engine profile into its row.
func TaxProfileFromDomain(p tax.Profile) TaxProfile {
	p = p.Clone()
	row := TaxProfile{
		ID:                       p.ID,
		CompanyID:                p.CompanyID,
		Name:                     p.Name,
		IsActive:                 p.IsActive,
		IsGlobalDefault:          p.IsGlobalDefault,
		DefaultTaxType:           string(p.DefaultTaxType),
		DefaultCalculationMethod: string(p.DefaultCalculationMethod),
		RoundingMethod:           string(p.RoundingMethod),
		RoundingPrecision:        p.RoundingPrecision,
		TaxRates:                 p.TaxRates,
		TaxExemptions:            p.TaxExemptions,
		Version:                  p.Version,
		CreatedAt:                p.CreatedAt,
		UpdatedAt:                p.UpdatedAt,
	}
	if row.TaxRates == nil {
		row.TaxRates = []tax.TaxRate{}
	}
	if row.TaxExemptions == nil {
		row.TaxExemptions = []tax.TaxExemption{}
	}
	return row
}

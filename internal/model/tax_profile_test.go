package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"taxengine/internal/tax"
)

func TestTaxProfileDomainRoundTrip(t *testing.T) {
	companyID := uuid.New()
	profile := tax.Profile{
		ID:                       uuid.New(),
		CompanyID:                &companyID,
		Name:                     "ACME staffing",
		IsActive:                 true,
		DefaultTaxType:           tax.TaxTypeVAT,
		DefaultCalculationMethod: tax.CalculationMethodExclusive,
		RoundingMethod:           tax.RoundingMethodNearest,
		RoundingPrecision:        2,
		TaxRates: []tax.TaxRate{{
			Code:          "VAT",
			Name:          "VAT",
			Type:          tax.TaxTypeVAT,
			Rate:          decimal.NewFromInt(20),
			IsActive:      true,
			EffectiveFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
		Version: 3,
	}

	row := TaxProfileFromDomain(profile)
	assert.Equal(t, "VAT", row.DefaultTaxType)
	assert.Equal(t, "NEAREST", row.RoundingMethod)
	assert.NotNil(t, row.TaxExemptions, "nil lists are stored as empty arrays")

	back := row.ToDomain()
	assert.Equal(t, profile.ID, back.ID)
	assert.Equal(t, companyID, *back.CompanyID)
	assert.Equal(t, profile.DefaultCalculationMethod, back.DefaultCalculationMethod)
	assert.Equal(t, int64(3), back.Version)
	assert.Len(t, back.TaxRates, 1)

	back.TaxRates[0].Code = "CHANGED"
	assert.Equal(t, "VAT", row.TaxRates[0].Code, "conversion must not share slices")
}

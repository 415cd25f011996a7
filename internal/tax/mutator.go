package tax

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	ierr "taxengine/internal/errors"
)

// The operations below never modify the receiver. Each returns a new profile
// value, leaving persistence to the caller.

// TaxRatePatch holds the fields to change on an existing rate. Nil fields are
// left untouched. The code identifies the rate and cannot be patched.
// The Clear flags drop an optional bound and win over a value in the same patch.
type TaxRatePatch struct {
	Name               *string            `json:"name,omitempty"`
	Type               *TaxType           `json:"type,omitempty"`
	Rate               *decimal.Decimal   `json:"rate,omitempty"`
	CalculationMethod  *CalculationMethod `json:"calculation_method,omitempty"`
	IsCompound         *bool              `json:"is_compound,omitempty"`
	Priority           *int               `json:"priority,omitempty"`
	IsActive           *bool              `json:"is_active,omitempty"`
	EffectiveFrom      *time.Time         `json:"effective_from,omitempty"`
	EffectiveTo        *time.Time         `json:"effective_to,omitempty"`
	Jurisdictions      *[]Jurisdiction    `json:"jurisdictions,omitempty"`
	ProductCategories  *[]string          `json:"product_categories,omitempty"`
	CustomerCategories *[]string          `json:"customer_categories,omitempty"`
	MinAmount          *decimal.Decimal   `json:"min_amount,omitempty"`
	MaxAmount          *decimal.Decimal   `json:"max_amount,omitempty"`
	Description        *string            `json:"description,omitempty"`
	ClearEffectiveTo   bool               `json:"clear_effective_to,omitempty"`
	ClearMinAmount     bool               `json:"clear_min_amount,omitempty"`
	ClearMaxAmount     bool               `json:"clear_max_amount,omitempty"`
}

func (p TaxRatePatch) apply(r TaxRate) TaxRate {
	assign(&r.Name, p.Name)
	assign(&r.Type, p.Type)
	assign(&r.Rate, p.Rate)
	assign(&r.CalculationMethod, p.CalculationMethod)
	assign(&r.IsCompound, p.IsCompound)
	assign(&r.Priority, p.Priority)
	assign(&r.IsActive, p.IsActive)
	assign(&r.EffectiveFrom, p.EffectiveFrom)
	assign(&r.Jurisdictions, p.Jurisdictions)
	assign(&r.ProductCategories, p.ProductCategories)
	assign(&r.CustomerCategories, p.CustomerCategories)
	assign(&r.Description, p.Description)
	if p.EffectiveTo != nil {
		r.EffectiveTo = lo.ToPtr(*p.EffectiveTo)
	}
	if p.MinAmount != nil {
		r.MinAmount = lo.ToPtr(*p.MinAmount)
	}
	if p.MaxAmount != nil {
		r.MaxAmount = lo.ToPtr(*p.MaxAmount)
	}
	if p.ClearEffectiveTo {
		r.EffectiveTo = nil
	}
	if p.ClearMinAmount {
		r.MinAmount = nil
	}
	if p.ClearMaxAmount {
		r.MaxAmount = nil
	}
	return r.clone()
}

type TaxExemptionPatch struct {
	Name              *string         `json:"name,omitempty"`
	Description       *string         `json:"description,omitempty"`
	TaxTypes          *[]TaxType      `json:"tax_types,omitempty"`
	Jurisdictions     *[]Jurisdiction `json:"jurisdictions,omitempty"`
	IsActive          *bool           `json:"is_active,omitempty"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	CertificateNumber *string         `json:"certificate_number,omitempty"`
	ClearExpiryDate   bool            `json:"clear_expiry_date,omitempty"`
}

func (p TaxExemptionPatch) apply(e TaxExemption) TaxExemption {
	assign(&e.Name, p.Name)
	assign(&e.Description, p.Description)
	assign(&e.TaxTypes, p.TaxTypes)
	assign(&e.Jurisdictions, p.Jurisdictions)
	assign(&e.IsActive, p.IsActive)
	assign(&e.CertificateNumber, p.CertificateNumber)
	if p.ExpiryDate != nil {
		e.ExpiryDate = lo.ToPtr(*p.ExpiryDate)
	}
	if p.ClearExpiryDate {
		e.ExpiryDate = nil
	}
	return e.clone()
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// TaxRate looks a rate up by code.
func (p Profile) TaxRate(code string) (TaxRate, bool) {
	return lo.Find(p.TaxRates, func(r TaxRate) bool { return r.Code == code })
}

// TaxExemption looks an exemption up by code.
func (p Profile) TaxExemption(code string) (TaxExemption, bool) {
	return lo.Find(p.TaxExemptions, func(e TaxExemption) bool { return e.Code == code })
}

func (p Profile) rateIndex(code string) int {
	_, idx, ok := lo.FindIndexOf(p.TaxRates, func(r TaxRate) bool { return r.Code == code })
	if !ok {
		return -1
	}
	return idx
}

func (p Profile) exemptionIndex(code string) int {
	_, idx, ok := lo.FindIndexOf(p.TaxExemptions, func(e TaxExemption) bool { return e.Code == code })
	if !ok {
		return -1
	}
	return idx
}

// AddTaxRate appends rate to the profile.
func (p Profile) AddTaxRate(rate TaxRate) (Profile, error) {
	if err := ValidateTaxRate(rate); err != nil {
		return Profile{}, err
	}
	if p.rateIndex(rate.Code) >= 0 {
		return Profile{}, ierr.NewErrorf("tax rate %s already exists", rate.Code).
			WithHintf("A tax rate with code %q already exists in this profile", rate.Code).
			Mark(ierr.ErrDuplicateRule)
	}

	next := p.Clone()
	next.TaxRates = append(next.TaxRates, rate.clone())
	return next, nil
}

// UpdateTaxRate merges patch into the rate with the given code.
func (p Profile) UpdateTaxRate(code string, patch TaxRatePatch) (Profile, error) {
	idx := p.rateIndex(code)
	if idx < 0 {
		return Profile{}, rateNotFound(code)
	}

	updated := patch.apply(p.TaxRates[idx])
	if err := ValidateTaxRate(updated); err != nil {
		return Profile{}, err
	}

	next := p.Clone()
	next.TaxRates[idx] = updated
	return next, nil
}

func (p Profile) RemoveTaxRate(code string) (Profile, error) {
	idx := p.rateIndex(code)
	if idx < 0 {
		return Profile{}, rateNotFound(code)
	}

	next := p.Clone()
	next.TaxRates = append(next.TaxRates[:idx], next.TaxRates[idx+1:]...)
	return next, nil
}

func (p Profile) AddTaxExemption(exemption TaxExemption) (Profile, error) {
	if err := ValidateTaxExemption(exemption); err != nil {
		return Profile{}, err
	}
	if p.exemptionIndex(exemption.Code) >= 0 {
		return Profile{}, ierr.NewErrorf("tax exemption %s already exists", exemption.Code).
			WithHintf("A tax exemption with code %q already exists in this profile", exemption.Code).
			Mark(ierr.ErrDuplicateRule)
	}

	next := p.Clone()
	next.TaxExemptions = append(next.TaxExemptions, exemption.clone())
	return next, nil
}

func (p Profile) UpdateTaxExemption(code string, patch TaxExemptionPatch) (Profile, error) {
	idx := p.exemptionIndex(code)
	if idx < 0 {
		return Profile{}, exemptionNotFound(code)
	}

	updated := patch.apply(p.TaxExemptions[idx])
	if err := ValidateTaxExemption(updated); err != nil {
		return Profile{}, err
	}

	next := p.Clone()
	next.TaxExemptions[idx] = updated
	return next, nil
}

func (p Profile) RemoveTaxExemption(code string) (Profile, error) {
	idx := p.exemptionIndex(code)
	if idx < 0 {
		return Profile{}, exemptionNotFound(code)
	}

	next := p.Clone()
	next.TaxExemptions = append(next.TaxExemptions[:idx], next.TaxExemptions[idx+1:]...)
	return next, nil
}

func rateNotFound(code string) error {
	return ierr.NewErrorf("tax rate %s not found", code).
		WithHintf("No tax rate with code %q exists in this profile", code).
		Mark(ierr.ErrRuleNotFound)
}

func exemptionNotFound(code string) error {
	return ierr.NewErrorf("tax exemption %s not found", code).
		WithHintf("No tax exemption with code %q exists in this profile", code).
		Mark(ierr.ErrRuleNotFound)
}

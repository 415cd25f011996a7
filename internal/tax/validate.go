package tax

import (
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	ierr "taxengine/internal/errors"
)

var (
	validate    = validator.New()
	hundredRate = decimal.NewFromInt(100)
)

// ValidateTaxRate rejects malformed rate definitions so that calculation can
// assume well formed input.
func ValidateTaxRate(r TaxRate) error {
	if err := validate.Struct(r); err != nil {
		return ierr.WithError(err).
			WithHintf("Tax rate %q is invalid: %s", r.Code, err.Error()).
			Mark(ierr.ErrInvalidRule)
	}
	if r.Rate.IsNegative() || r.Rate.GreaterThan(hundredRate) {
		return ierr.NewErrorf("tax rate %s has rate %s outside [0, 100]", r.Code, r.Rate.String()).
			WithHint("Rate must be a percentage between 0 and 100").
			Mark(ierr.ErrInvalidRule)
	}
	if r.EffectiveTo != nil && r.EffectiveTo.Before(r.EffectiveFrom) {
		return ierr.NewErrorf("tax rate %s ends before it starts", r.Code).
			WithHint("effective_to must not be before effective_from").
			Mark(ierr.ErrInvalidRule)
	}
	if r.MinAmount != nil && r.MinAmount.IsNegative() {
		return ierr.NewErrorf("tax rate %s has negative min_amount", r.Code).
			WithHint("min_amount must be zero or positive").
			Mark(ierr.ErrInvalidRule)
	}
	if r.MinAmount != nil && r.MaxAmount != nil && r.MaxAmount.LessThan(*r.MinAmount) {
		return ierr.NewErrorf("tax rate %s has max_amount below min_amount", r.Code).
			WithHint("max_amount must not be below min_amount").
			Mark(ierr.ErrInvalidRule)
	}
	return nil
}

func ValidateTaxExemption(e TaxExemption) error {
	if err := validate.Struct(e); err != nil {
		return ierr.WithError(err).
			WithHintf("Tax exemption %q is invalid: %s", e.Code, err.Error()).
			Mark(ierr.ErrInvalidRule)
	}
	return nil
}

// ValidateProfile checks the profile settings, every rule, and code
// uniqueness within each list.
func ValidateProfile(p Profile) error {
	if err := validate.Struct(p); err != nil {
		return ierr.WithError(err).
			WithHintf("Tax profile is invalid: %s", err.Error()).
			Mark(ierr.ErrValidation)
	}

	for _, r := range p.TaxRates {
		if err := ValidateTaxRate(r); err != nil {
			return err
		}
	}
	for _, e := range p.TaxExemptions {
		if err := ValidateTaxExemption(e); err != nil {
			return err
		}
	}

	rateCodes := lo.Map(p.TaxRates, func(r TaxRate, _ int) string { return r.Code })
	if dup := lo.FindDuplicates(rateCodes); len(dup) > 0 {
		return ierr.NewErrorf("tax rate code %s is used more than once", dup[0]).
			WithHintf("Tax rate code %q must be unique within the profile", dup[0]).
			Mark(ierr.ErrDuplicateRule)
	}
	exemptionCodes := lo.Map(p.TaxExemptions, func(e TaxExemption, _ int) string { return e.Code })
	if dup := lo.FindDuplicates(exemptionCodes); len(dup) > 0 {
		return ierr.NewErrorf("tax exemption code %s is used more than once", dup[0]).
			WithHintf("Tax exemption code %q must be unique within the profile", dup[0]).
			Mark(ierr.ErrDuplicateRule)
	}
	return nil
}

package tax

import (
	"math"
	"strings"
	"time"

	ierr "taxengine/internal/errors"

	"github.com/shopspring/decimal"
)

// CalculateTax computes the tax owed on amount under profile for the
// transaction described by ctx. It has no side effects: for a fixed profile,
// amount and evaluation date the result is always the same.
//
// A zero ctx.EvaluationDate means now. An empty ctx.TaxType falls back to the
// profile's default type.
func CalculateTax(profile Profile, amount decimal.Decimal, ctx CalculationContext) (CalculationResult, error) {
	if amount.IsNegative() {
		return CalculationResult{}, ierr.NewErrorf("amount %s is negative", amount.String()).
			WithHint("Amount must be zero or positive").
			Mark(ierr.ErrInvalidAmount)
	}

	if ctx.EvaluationDate.IsZero() {
		ctx.EvaluationDate = time.Now().UTC()
	}
	if ctx.TaxType == "" {
		ctx.TaxType = profile.DefaultTaxType
	}

	candidates := ResolveRates(profile.TaxRates, ctx, amount)
	applicable := FilterExempt(candidates, profile.TaxExemptions, ctx.Exemptions, ctx.EvaluationDate)
	computed := Compute(applicable, amount, profile.Rounder())

	result := CalculationResult{
		TotalTax:     computed.TotalTax,
		TaxBreakdown: computed.Breakdown,
	}
	if profile.DefaultCalculationMethod == CalculationMethodInclusive {
		result.TotalAmount = amount
		result.TaxableAmount = amount.Sub(computed.TotalTax)
	} else {
		result.TotalAmount = amount.Add(computed.TotalTax)
		result.TaxableAmount = amount
	}
	return result, nil
}

// AmountFromFloat converts a float principal, rejecting NaN, infinities and
// negative values.
func AmountFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, ierr.NewErrorf("amount %v is not finite", f).
			WithHint("Amount must be a finite number").
			Mark(ierr.ErrInvalidAmount)
	}
	return checkAmount(decimal.NewFromFloat(f))
}

// ParseAmount parses a decimal string principal.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHintf("Amount %q is not a valid decimal number", s).
			Mark(ierr.ErrInvalidAmount)
	}
	return checkAmount(amount)
}

func checkAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, ierr.NewErrorf("amount %s is negative", amount.String()).
			WithHint("Amount must be zero or positive").
			Mark(ierr.ErrInvalidAmount)
	}
	return amount, nil
}

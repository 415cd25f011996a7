package tax

import (
	"cmp"
	"slices"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ResolveRates returns the rates applicable to ctx and amount, highest
// priority first. Rates with equal priority keep their order in the profile.
//
// ctx.TaxType must already hold the effective tax type; an empty type does
// not filter.
func ResolveRates(rates []TaxRate, ctx CalculationContext, amount decimal.Decimal) []TaxRate {
	candidates := lo.Filter(rates, func(r TaxRate, _ int) bool {
		return r.appliesTo(ctx, amount)
	})

	slices.SortStableFunc(candidates, func(a, b TaxRate) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
	return candidates
}

func (r TaxRate) appliesTo(ctx CalculationContext, amount decimal.Decimal) bool {
	if !r.IsActive {
		return false
	}
	if ctx.TaxType != "" && r.Type != ctx.TaxType {
		return false
	}
	if !r.effectiveOn(ctx.EvaluationDate) {
		return false
	}
	if !r.coversAmount(amount) {
		return false
	}
	if !categoryMatches(r.ProductCategories, ctx.ProductCategory) {
		return false
	}
	if !categoryMatches(r.CustomerCategories, ctx.CustomerCategory) {
		return false
	}
	if len(r.Jurisdictions) > 0 && len(ctx.Jurisdictions) > 0 {
		return jurisdictionsIntersect(refs(r.Jurisdictions), ctx.Jurisdictions)
	}
	return true
}

// effectiveOn treats a zero EffectiveFrom as "since always" and a nil
// EffectiveTo as open-ended. Both bounds are inclusive.
func (r TaxRate) effectiveOn(date time.Time) bool {
	if !r.EffectiveFrom.IsZero() && r.EffectiveFrom.After(date) {
		return false
	}
	if r.EffectiveTo != nil && r.EffectiveTo.Before(date) {
		return false
	}
	return true
}

func (r TaxRate) coversAmount(amount decimal.Decimal) bool {
	if r.MinAmount != nil && amount.LessThan(*r.MinAmount) {
		return false
	}
	if r.MaxAmount != nil && amount.GreaterThan(*r.MaxAmount) {
		return false
	}
	return true
}

// An empty category list places no constraint. Otherwise the transaction's
// category must be listed, and an absent category never matches.
func categoryMatches(allowed []string, category string) bool {
	if len(allowed) == 0 {
		return true
	}
	return category != "" && lo.Contains(allowed, category)
}

func refs(jurisdictions []Jurisdiction) []JurisdictionRef {
	return lo.Map(jurisdictions, func(j Jurisdiction, _ int) JurisdictionRef {
		return j.Ref()
	})
}

func jurisdictionsIntersect(a, b []JurisdictionRef) bool {
	return lo.SomeBy(a, func(ref JurisdictionRef) bool {
		return lo.Contains(b, ref)
	})
}

package tax

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evalDate = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func activeRate(code string, typ TaxType, rate string) TaxRate {
	return TaxRate{
		Code:          code,
		Name:          code + " tax",
		Type:          typ,
		Rate:          d(rate),
		IsActive:      true,
		EffectiveFrom: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func codes(rates []TaxRate) []string {
	return lo.Map(rates, func(r TaxRate, _ int) string { return r.Code })
}

func TestResolveRates_Filters(t *testing.T) {
	base := CalculationContext{TaxType: TaxTypeVAT, EvaluationDate: evalDate}
	ended := evalDate.Add(-24 * time.Hour)
	endsToday := evalDate

	tests := []struct {
		name    string
		rate    func(r TaxRate) TaxRate
		ctx     func(c CalculationContext) CalculationContext
		amount  string
		applies bool
	}{
		{name: "active_matching_rate", applies: true},
		{name: "inactive_rate", rate: func(r TaxRate) TaxRate { r.IsActive = false; return r }},
		{name: "different_type", rate: func(r TaxRate) TaxRate { r.Type = TaxTypeGST; return r }},
		{
			name:    "no_type_in_context_does_not_filter",
			rate:    func(r TaxRate) TaxRate { r.Type = TaxTypeGST; return r },
			ctx:     func(c CalculationContext) CalculationContext { c.TaxType = ""; return c },
			applies: true,
		},
		{name: "not_yet_effective", rate: func(r TaxRate) TaxRate { r.EffectiveFrom = evalDate.Add(time.Hour); return r }},
		{name: "effective_from_equals_date", rate: func(r TaxRate) TaxRate { r.EffectiveFrom = evalDate; return r }, applies: true},
		{name: "zero_effective_from_is_unbounded", rate: func(r TaxRate) TaxRate { r.EffectiveFrom = time.Time{}; return r }, applies: true},
		{name: "expired", rate: func(r TaxRate) TaxRate { r.EffectiveTo = &ended; return r }},
		{name: "effective_to_equals_date", rate: func(r TaxRate) TaxRate { r.EffectiveTo = &endsToday; return r }, applies: true},
		{name: "below_min_amount", rate: func(r TaxRate) TaxRate { r.MinAmount = lo.ToPtr(d("500")); return r }},
		{name: "at_min_amount", rate: func(r TaxRate) TaxRate { r.MinAmount = lo.ToPtr(d("100")); return r }, applies: true},
		{name: "above_max_amount", rate: func(r TaxRate) TaxRate { r.MaxAmount = lo.ToPtr(d("99.99")); return r }},
		{name: "at_max_amount", rate: func(r TaxRate) TaxRate { r.MaxAmount = lo.ToPtr(d("100")); return r }, applies: true},
		{
			name:    "product_category_member",
			rate:    func(r TaxRate) TaxRate { r.ProductCategories = []string{"staffing", "consulting"}; return r },
			ctx:     func(c CalculationContext) CalculationContext { c.ProductCategory = "consulting"; return c },
			applies: true,
		},
		{
			name: "product_category_not_member",
			rate: func(r TaxRate) TaxRate { r.ProductCategories = []string{"staffing"}; return r },
			ctx:  func(c CalculationContext) CalculationContext { c.ProductCategory = "software"; return c },
		},
		{
			name: "product_category_absent_from_context",
			rate: func(r TaxRate) TaxRate { r.ProductCategories = []string{"staffing"}; return r },
		},
		{
			name:    "empty_category_list_is_unconstrained",
			ctx:     func(c CalculationContext) CalculationContext { c.ProductCategory = "anything"; c.CustomerCategory = "b2b"; return c },
			applies: true,
		},
		{
			name: "customer_category_not_member",
			rate: func(r TaxRate) TaxRate { r.CustomerCategories = []string{"b2c"}; return r },
			ctx:  func(c CalculationContext) CalculationContext { c.CustomerCategory = "b2b"; return c },
		},
		{
			name: "jurisdiction_match",
			rate: func(r TaxRate) TaxRate {
				r.Jurisdictions = []Jurisdiction{{Level: JurisdictionLevelCountry, Code: "DE", Name: "Germany"}}
				return r
			},
			ctx: func(c CalculationContext) CalculationContext {
				c.Jurisdictions = []JurisdictionRef{{Level: JurisdictionLevelCity, Code: "BER"}, {Level: JurisdictionLevelCountry, Code: "DE"}}
				return c
			},
			applies: true,
		},
		{
			name: "jurisdiction_code_matches_level_differs",
			rate: func(r TaxRate) TaxRate {
				r.Jurisdictions = []Jurisdiction{{Level: JurisdictionLevelState, Code: "DE"}}
				return r
			},
			ctx: func(c CalculationContext) CalculationContext {
				c.Jurisdictions = []JurisdictionRef{{Level: JurisdictionLevelCountry, Code: "DE"}}
				return c
			},
		},
		{
			name: "rate_jurisdictions_without_context_jurisdictions",
			rate: func(r TaxRate) TaxRate {
				r.Jurisdictions = []Jurisdiction{{Level: JurisdictionLevelCountry, Code: "DE"}}
				return r
			},
			applies: true,
		},
		{
			name: "context_jurisdictions_without_rate_jurisdictions",
			ctx: func(c CalculationContext) CalculationContext {
				c.Jurisdictions = []JurisdictionRef{{Level: JurisdictionLevelCountry, Code: "FR"}}
				return c
			},
			applies: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate := activeRate("VAT", TaxTypeVAT, "20")
			if tt.rate != nil {
				rate = tt.rate(rate)
			}
			ctx := base
			if tt.ctx != nil {
				ctx = tt.ctx(ctx)
			}
			amount := "100"
			if tt.amount != "" {
				amount = tt.amount
			}

			got := ResolveRates([]TaxRate{rate}, ctx, d(amount))
			if tt.applies {
				assert.Equal(t, []string{"VAT"}, codes(got))
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestResolveRates_OrdersByPriorityDescending(t *testing.T) {
	low := activeRate("LOW", TaxTypeVAT, "1")
	low.Priority = 1
	high := activeRate("HIGH", TaxTypeVAT, "2")
	high.Priority = 10
	mid := activeRate("MID", TaxTypeVAT, "3")
	mid.Priority = 5

	got := ResolveRates([]TaxRate{low, high, mid}, CalculationContext{EvaluationDate: evalDate}, d("100"))
	assert.Equal(t, []string{"HIGH", "MID", "LOW"}, codes(got))
}

func TestResolveRates_EqualPriorityKeepsInsertionOrder(t *testing.T) {
	rates := []TaxRate{
		activeRate("A", TaxTypeVAT, "1"),
		activeRate("B", TaxTypeVAT, "1"),
		activeRate("C", TaxTypeVAT, "1"),
		activeRate("D", TaxTypeVAT, "1"),
	}
	rates[2].Priority = 3

	for i := 0; i < 20; i++ {
		got := ResolveRates(rates, CalculationContext{EvaluationDate: evalDate}, d("100"))
		require.Equal(t, []string{"C", "A", "B", "D"}, codes(got))
	}
}

func TestResolveRates_DoesNotModifyInput(t *testing.T) {
	a := activeRate("A", TaxTypeVAT, "1")
	b := activeRate("B", TaxTypeVAT, "1")
	b.Priority = 9
	rates := []TaxRate{a, b}

	_ = ResolveRates(rates, CalculationContext{EvaluationDate: evalDate}, d("100"))
	assert.Equal(t, []string{"A", "B"}, codes(rates))
}

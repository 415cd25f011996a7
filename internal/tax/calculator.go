package tax

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Computation is the raw output of Compute before the calculation method is
// applied.
type Computation struct {
	TotalTax  decimal.Decimal
	Breakdown []TaxBreakdownItem
}

// Compute applies rates to principal. rates must already be resolved,
// filtered and ordered.
//
// Non-compound rates are each applied to the unmodified principal. Compound
// rates follow in list order, each applied to the principal plus every tax
// amount accumulated before it.
func Compute(rates []TaxRate, principal decimal.Decimal, rounder Rounder) Computation {
	nonCompound := lo.Filter(rates, func(r TaxRate, _ int) bool { return !r.IsCompound })
	compound := lo.Filter(rates, func(r TaxRate, _ int) bool { return r.IsCompound })

	out := Computation{
		TotalTax:  decimal.Zero,
		Breakdown: make([]TaxBreakdownItem, 0, len(rates)),
	}

	for _, r := range nonCompound {
		out.add(r, rounder.Round(percentOf(principal, r.Rate)))
	}
	for _, r := range compound {
		base := principal.Add(out.TotalTax)
		out.add(r, rounder.Round(percentOf(base, r.Rate)))
	}
	return out
}

func (c *Computation) add(r TaxRate, amount decimal.Decimal) {
	c.Breakdown = append(c.Breakdown, TaxBreakdownItem{
		Name:   r.Name,
		Code:   r.Code,
		Type:   r.Type,
		Rate:   r.Rate,
		Amount: amount,
	})
	c.TotalTax = c.TotalTax.Add(amount)
}

// percentOf is exact: shifting by two places avoids decimal division.
func percentOf(value, percent decimal.Decimal) decimal.Decimal {
	return value.Mul(percent.Shift(-2))
}

package tax

import (
	"time"

	"github.com/samber/lo"
)

// FilterExempt drops every candidate covered by an exemption the transaction
// claimed. Only active exemptions whose expiry date lies after date count.
func FilterExempt(candidates []TaxRate, exemptions []TaxExemption, claimed []string, date time.Time) []TaxRate {
	if len(claimed) == 0 {
		return candidates
	}

	selected := lo.Filter(exemptions, func(e TaxExemption, _ int) bool {
		return e.IsActive &&
			lo.Contains(claimed, e.Code) &&
			(e.ExpiryDate == nil || e.ExpiryDate.After(date))
	})
	if len(selected) == 0 {
		return candidates
	}

	return lo.Reject(candidates, func(r TaxRate, _ int) bool {
		return lo.SomeBy(selected, func(e TaxExemption) bool {
			return e.covers(r)
		})
	})
}

// covers reports whether e suppresses r. When either side carries no
// jurisdictions the jurisdiction check passes, so an unrestricted exemption
// suppresses a regional tax anywhere and vice versa.
func (e TaxExemption) covers(r TaxRate) bool {
	if !lo.Contains(e.TaxTypes, r.Type) {
		return false
	}
	if len(e.Jurisdictions) == 0 || len(r.Jurisdictions) == 0 {
		return true
	}
	return jurisdictionsIntersect(refs(e.Jurisdictions), refs(r.Jurisdictions))
}

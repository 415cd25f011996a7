package tax

import "github.com/shopspring/decimal"

// Rounder applies a rounding method at a fixed number of decimal places.
type Rounder struct {
	Method    RoundingMethod
	Precision int32
}

func NewRounder(method RoundingMethod, precision int32) Rounder {
	return Rounder{Method: method, Precision: precision}
}

// Round rounds value according to the rounder's policy.
//
// UP and DOWN are ceiling and floor at the given precision. NEAREST rounds
// half away from zero, so 0.125 at precision 2 becomes 0.13.
func (r Rounder) Round(value decimal.Decimal) decimal.Decimal {
	return Round(value, r.Method, r.Precision)
}

func Round(value decimal.Decimal, method RoundingMethod, precision int32) decimal.Decimal {
	switch method {
	case RoundingMethodUp:
		return value.RoundCeil(precision)
	case RoundingMethodDown:
		return value.RoundFloor(precision)
	default:
		return value.Round(precision)
	}
}

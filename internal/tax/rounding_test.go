package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRound(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		method    RoundingMethod
		precision int32
		expected  string
	}{
		{name: "up_zero_precision", value: "0.333", method: RoundingMethodUp, precision: 0, expected: "1"},
		{name: "up_two_places", value: "8.871", method: RoundingMethodUp, precision: 2, expected: "8.88"},
		{name: "up_exact_value_unchanged", value: "5.5", method: RoundingMethodUp, precision: 2, expected: "5.5"},
		{name: "down_two_places", value: "8.879", method: RoundingMethodDown, precision: 2, expected: "8.87"},
		{name: "down_zero_precision", value: "0.999", method: RoundingMethodDown, precision: 0, expected: "0"},
		{name: "nearest_half_away_from_zero", value: "0.125", method: RoundingMethodNearest, precision: 2, expected: "0.13"},
		{name: "nearest_below_half", value: "8.8749", method: RoundingMethodNearest, precision: 2, expected: "8.87"},
		{name: "nearest_half_on_even_digit", value: "2.5", method: RoundingMethodNearest, precision: 0, expected: "3"},
		{name: "nearest_six_places", value: "1.23456789", method: RoundingMethodNearest, precision: 6, expected: "1.234568"},
		{name: "unknown_method_rounds_nearest", value: "1.005", method: RoundingMethod("BANKERS"), precision: 2, expected: "1.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round(d(tt.value), tt.method, tt.precision)
			assert.True(t, got.Equal(d(tt.expected)), "expected %s, got %s", tt.expected, got)
			assert.True(t, NewRounder(tt.method, tt.precision).Round(d(tt.value)).Equal(got))
		})
	}
}

func TestRoundBounds(t *testing.T) {
	values := []string{"0.0001", "1.999999", "10.5", "123.456789", "99.995", "0.3333333"}
	for _, precision := range []int32{0, 1, 2, 4, 6} {
		unit := decimal.New(1, -precision)
		half := unit.Div(decimal.NewFromInt(2))
		for _, v := range values {
			value := d(v)

			up := Round(value, RoundingMethodUp, precision)
			assert.True(t, up.GreaterThanOrEqual(value), "UP %s@%d", v, precision)
			assert.True(t, up.Sub(value).LessThan(unit), "UP within one unit %s@%d", v, precision)

			down := Round(value, RoundingMethodDown, precision)
			assert.True(t, down.LessThanOrEqual(value), "DOWN %s@%d", v, precision)
			assert.True(t, value.Sub(down).LessThan(unit), "DOWN within one unit %s@%d", v, precision)

			nearest := Round(value, RoundingMethodNearest, precision)
			assert.True(t, nearest.Sub(value).Abs().LessThanOrEqual(half), "NEAREST %s@%d", v, precision)
		}
	}
}

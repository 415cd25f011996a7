package tax

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "taxengine/internal/errors"
)

func testProfile(method CalculationMethod, rates ...TaxRate) Profile {
	return Profile{
		Name:                     "Default",
		IsActive:                 true,
		DefaultTaxType:           TaxTypeVAT,
		DefaultCalculationMethod: method,
		RoundingMethod:           RoundingMethodNearest,
		RoundingPrecision:        2,
		TaxRates:                 rates,
	}
}

func TestCalculateTax_Scenarios(t *testing.T) {
	ctx := CalculationContext{EvaluationDate: evalDate}

	t.Run("A_exclusive_single_rate", func(t *testing.T) {
		profile := testProfile(CalculationMethodExclusive, activeRate("VAT", TaxTypeVAT, "20"))

		res, err := CalculateTax(profile, d("100"), ctx)
		require.NoError(t, err)
		assert.True(t, res.TotalTax.Equal(d("20")))
		assert.True(t, res.TotalAmount.Equal(d("120")))
		assert.True(t, res.TaxableAmount.Equal(d("100")))
		require.Len(t, res.TaxBreakdown, 1)
		assert.Equal(t, "VAT", res.TaxBreakdown[0].Code)
		assert.Equal(t, TaxTypeVAT, res.TaxBreakdown[0].Type)
		assert.True(t, res.TaxBreakdown[0].Rate.Equal(d("20")))
	})

	t.Run("B_inclusive_single_rate", func(t *testing.T) {
		profile := testProfile(CalculationMethodInclusive, activeRate("VAT", TaxTypeVAT, "20"))

		res, err := CalculateTax(profile, d("100"), ctx)
		require.NoError(t, err)
		assert.True(t, res.TotalTax.Equal(d("20")))
		assert.True(t, res.TotalAmount.Equal(d("100")))
		assert.True(t, res.TaxableAmount.Equal(d("80")))
	})

	t.Run("C_compound_after_non_compound", func(t *testing.T) {
		a := activeRate("A", TaxTypeVAT, "10")
		a.Priority = 10
		b := compound(activeRate("B", TaxTypeVAT, "5"))
		b.Priority = 1
		profile := testProfile(CalculationMethodExclusive, b, a)

		res, err := CalculateTax(profile, d("100"), ctx)
		require.NoError(t, err)
		require.Len(t, res.TaxBreakdown, 2)
		assert.True(t, res.TaxBreakdown[0].Amount.Equal(d("10")))
		assert.True(t, res.TaxBreakdown[1].Amount.Equal(d("5.5")))
		assert.True(t, res.TotalTax.Equal(d("15.5")))
	})

	t.Run("D_claimed_unrestricted_exemption", func(t *testing.T) {
		profile := testProfile(CalculationMethodExclusive, activeRate("VAT", TaxTypeVAT, "20"))
		profile.TaxExemptions = []TaxExemption{exemption("EXPORT", TaxTypeVAT)}

		claimed := ctx
		claimed.Exemptions = []string{"EXPORT"}
		res, err := CalculateTax(profile, d("100"), claimed)
		require.NoError(t, err)
		assert.True(t, res.TotalTax.IsZero())
		assert.Empty(t, res.TaxBreakdown)
		assert.True(t, res.TotalAmount.Equal(d("100")))
	})

	t.Run("E_round_up_zero_precision", func(t *testing.T) {
		profile := testProfile(CalculationMethodExclusive, activeRate("VAT", TaxTypeVAT, "3.33"))
		profile.RoundingMethod = RoundingMethodUp
		profile.RoundingPrecision = 0

		res, err := CalculateTax(profile, d("10"), ctx)
		require.NoError(t, err)
		assert.True(t, res.TotalTax.Equal(d("1")))
		assert.True(t, res.TotalAmount.Equal(d("11")))
	})
}

func TestCalculateTax_DefaultTaxType(t *testing.T) {
	vat := activeRate("VAT", TaxTypeVAT, "20")
	wht := activeRate("WHT", TaxTypeWithholding, "15")
	profile := testProfile(CalculationMethodExclusive, vat, wht)

	res, err := CalculateTax(profile, d("200"), CalculationContext{EvaluationDate: evalDate})
	require.NoError(t, err)
	require.Len(t, res.TaxBreakdown, 1)
	assert.Equal(t, "VAT", res.TaxBreakdown[0].Code)

	res, err = CalculateTax(profile, d("200"), CalculationContext{TaxType: TaxTypeWithholding, EvaluationDate: evalDate})
	require.NoError(t, err)
	require.Len(t, res.TaxBreakdown, 1)
	assert.Equal(t, "WHT", res.TaxBreakdown[0].Code)
	assert.True(t, res.TotalTax.Equal(d("30")))
}

func TestCalculateTax_ProfileMethodGovernsOverRateMethod(t *testing.T) {
	vat := activeRate("VAT", TaxTypeVAT, "20")
	vat.CalculationMethod = CalculationMethodInclusive
	profile := testProfile(CalculationMethodExclusive, vat)

	res, err := CalculateTax(profile, d("100"), CalculationContext{EvaluationDate: evalDate})
	require.NoError(t, err)
	assert.True(t, res.TotalTax.Equal(d("20")))
	assert.True(t, res.TaxableAmount.Equal(d("100")))
	assert.True(t, res.TotalAmount.Equal(d("120")))
}

func TestCalculateTax_EmptyProfileIsZeroTax(t *testing.T) {
	res, err := CalculateTax(testProfile(CalculationMethodExclusive), d("42.50"), CalculationContext{})
	require.NoError(t, err)
	assert.True(t, res.TotalTax.IsZero())
	assert.True(t, res.TotalAmount.Equal(d("42.50")))
	assert.NotNil(t, res.TaxBreakdown)
}

func TestCalculateTax_RejectsNegativeAmount(t *testing.T) {
	profile := testProfile(CalculationMethodExclusive, activeRate("VAT", TaxTypeVAT, "20"))

	_, err := CalculateTax(profile, d("-0.01"), CalculationContext{EvaluationDate: evalDate})
	require.Error(t, err)
	assert.True(t, ierr.Is(err, ierr.ErrInvalidAmount))
}

func TestCalculateTax_IsIdempotent(t *testing.T) {
	a := activeRate("A", TaxTypeVAT, "7.7")
	b := compound(activeRate("B", TaxTypeVAT, "2.5"))
	profile := testProfile(CalculationMethodInclusive, a, b)
	ctx := CalculationContext{EvaluationDate: evalDate}

	first, err := CalculateTax(profile, d("1999.99"), ctx)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := CalculateTax(profile, d("1999.99"), ctx)
		require.NoError(t, err)
		assert.Equal(t, first.TotalTax.String(), again.TotalTax.String())
		assert.Equal(t, first.TaxableAmount.String(), again.TaxableAmount.String())
		assert.Equal(t, first.TotalAmount.String(), again.TotalAmount.String())
		assert.Equal(t, len(first.TaxBreakdown), len(again.TaxBreakdown))
	}
}

func TestCalculateTax_DoesNotModifyProfile(t *testing.T) {
	low := activeRate("LOW", TaxTypeVAT, "1")
	high := activeRate("HIGH", TaxTypeVAT, "2")
	high.Priority = 5
	profile := testProfile(CalculationMethodExclusive, low, high)

	_, err := CalculateTax(profile, d("100"), CalculationContext{EvaluationDate: evalDate})
	require.NoError(t, err)
	assert.Equal(t, []string{"LOW", "HIGH"}, codes(profile.TaxRates))
}

func TestAmountFromFloat(t *testing.T) {
	amount, err := AmountFromFloat(100.25)
	require.NoError(t, err)
	assert.True(t, amount.Equal(d("100.25")))

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -1} {
		_, err := AmountFromFloat(bad)
		require.Error(t, err)
		assert.True(t, ierr.Is(err, ierr.ErrInvalidAmount), "value %v", bad)
	}
}

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount(" 12.345 ")
	require.NoError(t, err)
	assert.True(t, amount.Equal(d("12.345")))

	for _, bad := range []string{"", "abc", "NaN", "-5"} {
		_, err := ParseAmount(bad)
		require.Error(t, err)
		assert.True(t, ierr.Is(err, ierr.ErrInvalidAmount), "value %q", bad)
	}
}

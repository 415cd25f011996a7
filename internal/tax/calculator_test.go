package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var twoPlaces = NewRounder(RoundingMethodNearest, 2)

func compound(r TaxRate) TaxRate {
	r.IsCompound = true
	return r
}

func TestCompute_NonCompoundUsesPrincipal(t *testing.T) {
	rates := []TaxRate{
		activeRate("STATE", TaxTypeSales, "6"),
		activeRate("CITY", TaxTypeSales, "2.875"),
	}

	got := Compute(rates, d("100"), twoPlaces)

	require.Len(t, got.Breakdown, 2)
	assert.True(t, got.Breakdown[0].Amount.Equal(d("6")))
	assert.True(t, got.Breakdown[1].Amount.Equal(d("2.88")))
	assert.True(t, got.TotalTax.Equal(d("8.88")))
}

func TestCompute_NonCompoundIsOrderIndependent(t *testing.T) {
	a := activeRate("A", TaxTypeSales, "7.25")
	b := activeRate("B", TaxTypeSales, "1.333")
	c := activeRate("C", TaxTypeSales, "0.5")

	forward := Compute([]TaxRate{a, b, c}, d("123.45"), twoPlaces)
	backward := Compute([]TaxRate{c, b, a}, d("123.45"), twoPlaces)

	expected := d("8.95").Add(d("1.65")).Add(d("0.62"))
	assert.True(t, forward.TotalTax.Equal(expected), "got %s", forward.TotalTax)
	assert.True(t, forward.TotalTax.Equal(backward.TotalTax))
}

func TestCompute_CompoundSeesEarlierTaxes(t *testing.T) {
	gst := activeRate("GST", TaxTypeGST, "5")
	qst := compound(activeRate("QST", TaxTypeSales, "9.975"))
	extra := compound(activeRate("EXTRA", TaxTypeCustom, "10"))

	got := Compute([]TaxRate{qst, gst, extra}, d("100"), twoPlaces)

	require.Len(t, got.Breakdown, 3)
	// non-compound items come first regardless of position in the input
	assert.Equal(t, []string{"GST", "QST", "EXTRA"}, []string{got.Breakdown[0].Code, got.Breakdown[1].Code, got.Breakdown[2].Code})
	assert.True(t, got.Breakdown[0].Amount.Equal(d("5")))
	// 105 * 9.975% = 10.47375
	assert.True(t, got.Breakdown[1].Amount.Equal(d("10.47")))
	// (100 + 5 + 10.47) * 10% = 11.547
	assert.True(t, got.Breakdown[2].Amount.Equal(d("11.55")))
	assert.True(t, got.TotalTax.Equal(d("27.02")))
}

func TestCompute_CompoundOrderMatters(t *testing.T) {
	first := compound(activeRate("FIRST", TaxTypeCustom, "10"))
	second := compound(activeRate("SECOND", TaxTypeCustom, "20"))

	ab := Compute([]TaxRate{first, second}, d("100"), twoPlaces)
	ba := Compute([]TaxRate{second, first}, d("100"), twoPlaces)

	// 10 then 22; 20 then 12
	assert.True(t, ab.Breakdown[1].Amount.Equal(d("22")))
	assert.True(t, ba.Breakdown[1].Amount.Equal(d("12")))
	assert.True(t, ab.TotalTax.Equal(ba.TotalTax))
}

func TestCompute_CompoundAmplification(t *testing.T) {
	principals := []string{"0.01", "1", "99.99", "1000", "123456.78"}
	for _, p := range principals {
		nonCompound := activeRate("N", TaxTypeVAT, "8")
		comp := compound(activeRate("C", TaxTypeCustom, "3.5"))

		standalone := twoPlaces.Round(percentOf(d(p), comp.Rate))
		got := Compute([]TaxRate{nonCompound, comp}, d(p), twoPlaces)

		assert.True(t, got.Breakdown[1].Amount.GreaterThanOrEqual(standalone), "principal %s", p)
	}
}

func TestCompute_Empty(t *testing.T) {
	got := Compute(nil, d("100"), twoPlaces)
	assert.True(t, got.TotalTax.IsZero())
	assert.NotNil(t, got.Breakdown)
	assert.Empty(t, got.Breakdown)
}

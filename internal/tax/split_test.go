package tax_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/tax"
)

func TestSplit_SameState(t *testing.T) {
	lines := []tax.Line{{Amount: 1180.00, TaxRate: 18}}

	breakdowns, totals := tax.Split(lines, false, true)

	require.Len(t, breakdowns, 1)
	assert.InDelta(t, 1000.00, breakdowns[0].Taxable, 0.001)
	assert.InDelta(t, 180.00, breakdowns[0].Tax, 0.001)
	assert.Equal(t, 1180.00, breakdowns[0].Total)

	assert.InDelta(t, 1000.00, totals.SubTotal, 0.001)
	assert.InDelta(t, 90.00, totals.CGST, 0.001)
	assert.InDelta(t, 90.00, totals.SGST, 0.001)
	assert.Zero(t, totals.IGST)
	assert.InDelta(t, 1180.00, totals.GrandTotal, 0.001)
}

func TestSplit_CrossState(t *testing.T) {
	lines := []tax.Line{{Amount: 1180.00, TaxRate: 18}}

	_, totals := tax.Split(lines, false, false)

	assert.InDelta(t, 180.00, totals.IGST, 0.001)
	assert.Zero(t, totals.CGST)
	assert.Zero(t, totals.SGST)
	assert.InDelta(t, 1180.00, totals.GrandTotal, 0.001)
}

func TestSplit_ExemptForcesZeroRate(t *testing.T) {
	lines := []tax.Line{{Amount: 500.00, TaxRate: 18}}

	breakdowns, totals := tax.Split(lines, true, true)

	require.Len(t, breakdowns, 1)
	assert.Equal(t, 500.00, breakdowns[0].Taxable)
	assert.Zero(t, breakdowns[0].Tax)
	assert.Zero(t, totals.IGST)
	assert.Zero(t, totals.CGST)
	assert.Zero(t, totals.SGST)
	assert.Equal(t, 500.00, totals.SubTotal)
	assert.Equal(t, 500.00, totals.GrandTotal)
}

func TestSplit_TaxablePlusTaxEqualsInclusive(t *testing.T) {
	lines := []tax.Line{
		{Amount: 1180.00, TaxRate: 18},
		{Amount: 999.99, TaxRate: 12},
		{Amount: 53.17, TaxRate: 5},
		{Amount: 10500.01, TaxRate: 28},
	}

	breakdowns, _ := tax.Split(lines, false, true)

	for i, b := range breakdowns {
		assert.InDeltaf(t, lines[i].Amount, b.Taxable+b.Tax, 0.01,
			"line %d: taxable %.2f + tax %.2f should equal inclusive %.2f",
			i, b.Taxable, b.Tax, lines[i].Amount)
	}
}

func TestSplit_OddPaisaGoesToSGST(t *testing.T) {
	// 100.05 at 5% gives taxable 95.29, tax 4.76: an odd paisa.
	lines := []tax.Line{{Amount: 100.05, TaxRate: 5}}

	breakdowns, totals := tax.Split(lines, false, true)

	require.Len(t, breakdowns, 1)
	assert.InDelta(t, breakdowns[0].Tax, totals.CGST+totals.SGST, 1e-9)
	assert.LessOrEqual(t, math.Abs(totals.CGST-totals.SGST), 0.01)
}

func TestSplit_GrandTotalReconciles(t *testing.T) {
	lines := []tax.Line{
		{Amount: 1234.56, TaxRate: 18},
		{Amount: 789.01, TaxRate: 28},
		{Amount: 42.42, TaxRate: 0},
	}

	for _, sameState := range []bool{true, false} {
		_, totals := tax.Split(lines, false, sameState)
		sum := totals.SubTotal + totals.IGST + totals.CGST + totals.SGST
		assert.InDelta(t, totals.GrandTotal, sum, 0.005)
	}
}

func TestSplit_ExactlyOneTaxBucket(t *testing.T) {
	lines := []tax.Line{{Amount: 1180.00, TaxRate: 18}}

	_, same := tax.Split(lines, false, true)
	assert.True(t, same.CGST > 0 && same.SGST > 0 && same.IGST == 0)

	_, cross := tax.Split(lines, false, false)
	assert.True(t, cross.IGST > 0 && cross.CGST == 0 && cross.SGST == 0)

	_, exempt := tax.Split(lines, true, true)
	assert.True(t, exempt.IGST == 0 && exempt.CGST == 0 && exempt.SGST == 0)
}

func TestSameState(t *testing.T) {
	assert.True(t, tax.SameState("09ENEPM4809Q1Z8", "09AAACB1234F1Z5"))
	assert.False(t, tax.SameState("09ENEPM4809Q1Z8", "27AAACB1234F1Z5"))
	// Blank or malformed buyer GSTIN defaults to inter-state.
	assert.False(t, tax.SameState("09ENEPM4809Q1Z8", ""))
	assert.False(t, tax.SameState("09ENEPM4809Q1Z8", "0"))
	assert.False(t, tax.SameState("", "09AAACB1234F1Z5"))
}

func TestHalve(t *testing.T) {
	cgst, sgst := tax.Halve(180.00)
	assert.InDelta(t, 90.00, cgst, 1e-9)
	assert.InDelta(t, 90.00, sgst, 1e-9)

	// Odd paisa lands on the SGST side.
	cgst, sgst = tax.Halve(0.03)
	assert.InDelta(t, 0.02, cgst, 1e-9)
	assert.InDelta(t, 0.01, sgst, 1e-9)

	// 5.35/2 = 2.675 rounds half away from zero to 2.68; naive float
	// rounding lands on 2.67 because 2.675 has no exact representation.
	cgst, sgst = tax.Halve(5.35)
	assert.InDelta(t, 2.68, cgst, 1e-9)
	assert.InDelta(t, 2.67, sgst, 1e-9)

	// Credit-note figures keep their sign through the halving.
	cgst, sgst = tax.Halve(-180.00)
	assert.InDelta(t, -90.00, cgst, 1e-9)
	assert.InDelta(t, -90.00, sgst, 1e-9)
}

func TestHalve_MatchesSplitAggregates(t *testing.T) {
	lines := []tax.Line{
		{Amount: 100.05, TaxRate: 5},
		{Amount: 1234.56, TaxRate: 18},
		{Amount: 789.01, TaxRate: 28},
	}

	breakdowns, totals := tax.Split(lines, false, true)

	var cgstSum, sgstSum float64
	for _, b := range breakdowns {
		cgst, sgst := tax.Halve(b.Tax)
		cgstSum += cgst
		sgstSum += sgst
	}
	assert.InDelta(t, totals.CGST, cgstSum, 0.001)
	assert.InDelta(t, totals.SGST, sgstSum, 0.001)
}

func TestNegate(t *testing.T) {
	assert.Equal(t, -5.0, tax.Negate(5))
	assert.Equal(t, -5.0, tax.Negate(-5))
	assert.Equal(t, 0.0, tax.Negate(0))
}

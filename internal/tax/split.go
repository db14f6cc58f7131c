// Package tax derives the GST breakdown for tax-inclusive line amounts.
//
// Each inclusive amount is split into a taxable value and a tax amount at
// the line's rate, then the tax is routed either to IGST (inter-state) or
// evenly to CGST+SGST (intra-state), or zeroed entirely for exempt
// documents (bill of supply).
package tax

import (
	"math"

	"github.com/shopspring/decimal"
)

// Line is one input row: the tax-inclusive amount and the rate applied.
type Line struct {
	Amount  float64
	TaxRate float64
}

// LineBreakdown is the derived per-line split. Total always equals the
// original inclusive amount; Taxable + Tax == Total within a paisa.
type LineBreakdown struct {
	Taxable float64
	Tax     float64
	Total   float64
}

// Totals is the aggregate breakdown across all lines.
type Totals struct {
	SubTotal   float64
	IGST       float64
	CGST       float64
	SGST       float64
	GrandTotal float64
}

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)
var two = decimal.NewFromInt(2)

// Split computes per-line and aggregate figures. exempt forces every rate
// to zero regardless of the supplied values; sameState routes tax to
// CGST+SGST instead of IGST. The SGST half takes the odd paisa so the two
// halves always reconstruct the line tax exactly.
func Split(lines []Line, exempt, sameState bool) ([]LineBreakdown, Totals) {
	breakdowns := make([]LineBreakdown, 0, len(lines))

	subTotal := decimal.Zero
	igst := decimal.Zero
	cgst := decimal.Zero
	sgst := decimal.Zero

	for _, line := range lines {
		amount := decimal.NewFromFloat(line.Amount)
		rate := decimal.NewFromFloat(line.TaxRate)
		if exempt {
			rate = decimal.Zero
		}

		taxable := amount.Div(one.Add(rate.Div(hundred))).Round(2)
		lineTax := amount.Sub(taxable)

		breakdowns = append(breakdowns, LineBreakdown{
			Taxable: taxable.InexactFloat64(),
			Tax:     lineTax.InexactFloat64(),
			Total:   line.Amount,
		})

		subTotal = subTotal.Add(taxable)
		switch {
		case exempt:
			// no tax accrues anywhere
		case sameState:
			half := lineTax.Div(two).Round(2)
			cgst = cgst.Add(half)
			sgst = sgst.Add(lineTax.Sub(half))
		default:
			igst = igst.Add(lineTax)
		}
	}

	grand := subTotal.Add(igst).Add(cgst).Add(sgst).Round(2)
	return breakdowns, Totals{
		SubTotal:   subTotal.Round(2).InexactFloat64(),
		IGST:       igst.InexactFloat64(),
		CGST:       cgst.InexactFloat64(),
		SGST:       sgst.InexactFloat64(),
		GrandTotal: grand.InexactFloat64(),
	}
}

// Halve splits a line tax into its CGST and SGST components using the
// same arithmetic as Split, so recomputed halves always reconcile with
// the stored aggregates. The SGST side takes the odd paisa.
func Halve(lineTax float64) (cgst, sgst float64) {
	t := decimal.NewFromFloat(lineTax)
	half := t.Div(two).Round(2)
	return half.InexactFloat64(), t.Sub(half).InexactFloat64()
}

// stateCodeLen is the jurisdiction prefix of a GSTIN (e.g. "09" = UP).
const stateCodeLen = 2

// SameState reports whether buyer and seller share a GSTIN state code.
// A blank or short buyer GSTIN is treated as inter-state, so unregistered
// buyers default to IGST.
func SameState(sellerGSTIN, buyerGSTIN string) bool {
	if len(buyerGSTIN) < stateCodeLen || len(sellerGSTIN) < stateCodeLen {
		return false
	}
	return buyerGSTIN[:stateCodeLen] == sellerGSTIN[:stateCodeLen]
}

// Negate returns -abs(v), the normal form for credit-note figures.
func Negate(v float64) float64 {
	return -math.Abs(v)
}

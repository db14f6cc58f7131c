package render_test

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/domain"
	"invoicegen/internal/render"
)

func sampleInvoice() *domain.Invoice {
	return &domain.Invoice{
		BillNo:      "INV/25-26/0001",
		InvoiceDate: "31-Aug-2025",
		Seller: domain.SellerSnapshot{
			CompanyName:   "MB Collection",
			AddressLine1:  "3A Shri Krishana Vatika, Vijaynagar",
			AddressLine2:  "Ghaziabad, Uttar Pradesh - 201001",
			Phone:         "+91-8651537856",
			Email:         "billing@example.com",
			GSTIN:         "09ENEPM4809Q1Z8",
			BankName:      "Yes Bank",
			AccountHolder: "MB Collection",
			AccountNumber: "003861900014956",
			IFSCCode:      "YESB0000038",
		},
		Buyer: domain.Party{
			Name:         "Acme Traders",
			AddressLine1: "12 Market Road",
			AddressLine2: "Lucknow",
			GSTIN:        "09AAACB1234F1Z5",
		},
		Items: domain.LineItems{
			{Particular: "Design consulting", HSNCode: "998222", Quantity: 1,
				Rate: 1180, TaxRate: 18, TaxableValue: 1000, TaxAmount: 180, Total: 1180},
		},
		SubTotal:   1000,
		CGST:       90,
		SGST:       90,
		GrandTotal: 1180,
	}
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRender_TaxInvoice(t *testing.T) {
	out, err := render.Render(sampleInvoice(), render.Assets{})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output should be a PDF document")
	assert.Greater(t, len(out), 1000)
}

func TestRender_CreditNote(t *testing.T) {
	inv := sampleInvoice()
	inv.IsCreditNote = true
	inv.OriginalBillNo = "INV/25-26/0001"
	inv.BillNo = "INV-CN/25-26/0001"
	inv.SubTotal, inv.CGST, inv.SGST, inv.GrandTotal = -1000, -90, -90, -1180
	inv.Items[0].Quantity = -1
	inv.Items[0].TaxableValue = -1000
	inv.Items[0].TaxAmount = -180
	inv.Items[0].Total = -1180

	out, err := render.Render(inv, render.Assets{})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRender_WithBrandingImages(t *testing.T) {
	img := tinyPNG(t)

	out, err := render.Render(sampleInvoice(), render.Assets{Logo: img, Signature: img})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRender_CorruptImageDegradesGracefully(t *testing.T) {
	junk := []byte("definitely not an image")

	out, err := render.Render(sampleInvoice(), render.Assets{Logo: junk, Signature: junk})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRender_ManyRowsPaginates(t *testing.T) {
	inv := sampleInvoice()
	inv.Items = nil
	long := strings.Repeat("a very long particular description that wraps across lines ", 3)
	for i := 0; i < 60; i++ {
		inv.Items = append(inv.Items, domain.LineItem{
			Particular:   fmt.Sprintf("%d: %s", i, long),
			HSNCode:      "998222",
			Quantity:     2,
			Rate:         590,
			TaxRate:      18,
			TaxableValue: 1000,
			TaxAmount:    180,
			Total:        1180,
		})
	}

	out, err := render.Render(inv, render.Assets{})

	require.NoError(t, err)
	// 60 wrapped rows cannot fit one page; the document must have broken
	// into several without erroring.
	assert.Greater(t, bytes.Count(out, []byte("/Page")), 2)
}

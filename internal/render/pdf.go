// Package render lays an issued document out on an A4 page and produces
// the PDF bytes. Geometry and styling follow the business's established
// invoice format: centered header with optional logo, a colored banner per
// document variant, two side-by-side party blocks, a bordered line-item
// table with measured row heights, shaded totals, and a signed footer with
// the grand total in words.
package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/go-pdf/fpdf"

	"invoicegen/internal/domain"
	"invoicegen/internal/words"
)

const (
	margin     = 15.0
	pageWidth  = 210.0
	pageHeight = 297.0
	usableW    = pageWidth - 2*margin
	lineH      = 5.0
	rowLineH   = 6.0
)

// Table column widths, left to right. They sum to usableW.
var colWidths = [8]float64{58, 18, 14, 20, 14, 22, 18, 16}

var colHeaders = [8]string{
	"Particulars", "HSN", "Qty", "Rate", "Tax %", "Taxable", "Tax Amt", "Total",
}

// Assets carries the optional branding images, already fetched from
// storage. Either may be nil or corrupt; rendering proceeds without them.
type Assets struct {
	Logo      []byte
	Signature []byte
}

type banner struct {
	text    string
	r, g, b int
}

func bannerFor(kind domain.DocumentKind) banner {
	switch kind {
	case domain.KindCreditNote:
		return banner{"CREDIT NOTE", 255, 204, 204}
	case domain.KindBillOfSupply:
		return banner{"BILL OF SUPPLY", 204, 229, 255}
	default:
		return banner{"TAX INVOICE", 255, 204, 153}
	}
}

type renderer struct {
	pdf *fpdf.Fpdf
	inv *domain.Invoice
}

// Render produces the PDF for an issued document.
func Render(inv *domain.Invoice, assets Assets) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()

	r := &renderer{pdf: pdf, inv: inv}
	r.header(assets.Logo)
	r.partyBlocks()
	r.itemTable()
	r.totalsBlock()
	r.footer(assets.Signature)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render.Render: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *renderer) header(logo []byte) {
	pdf := r.pdf
	seller := r.inv.Seller

	r.drawImage("logo", logo, margin, 8, 30, 0)

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(255, 165, 0)
	pdf.CellFormat(usableW, 10, seller.CompanyName, "", 1, "C", false, 0, "")

	b := bannerFor(r.inv.Kind())
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(b.r, b.g, b.b)
	pdf.CellFormat(usableW, 8, b.text, "", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	address := fmt.Sprintf("%s\n%s\nPhone: %s | E-mail: %s\nGSTIN: %s",
		seller.AddressLine1, seller.AddressLine2, seller.Phone, seller.Email, seller.GSTIN)
	pdf.MultiCell(usableW, lineH, address, "", "C", false)

	if r.inv.IsCreditNote && r.inv.OriginalBillNo != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(usableW, 6, "Against Invoice No: "+r.inv.OriginalBillNo, "", 1, "C", false, 0, "")
	}

	pdf.Ln(3)
	pdf.Line(margin, pdf.GetY(), pageWidth-margin, pdf.GetY())
	pdf.Ln(3)
}

// twoColumns draws a left multi-line block and a right list of lines
// starting at the same y, then advances the cursor past the taller one so
// long addresses never overlap the next section.
func (r *renderer) twoColumns(leftTitle, leftBody string, rightLines []string) {
	pdf := r.pdf
	const rightX = 140.0
	top := pdf.GetY()

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, lineH, leftTitle, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(rightX-margin-5, lineH, leftBody, "", "L", false)
	leftY := pdf.GetY()

	pdf.SetXY(rightX, top)
	pdf.SetFont("Helvetica", "B", 10)
	for _, line := range rightLines {
		pdf.CellFormat(0, lineH, line, "", 1, "L", false, 0, "")
		pdf.SetX(rightX)
	}
	rightY := pdf.GetY()

	pdf.SetY(math.Max(leftY, rightY))
	pdf.Ln(3)
}

func (r *renderer) partyBlocks() {
	inv := r.inv

	buyer := fmt.Sprintf("%s\n%s\n%s\nGSTIN: %s",
		inv.Buyer.Name, inv.Buyer.AddressLine1, inv.Buyer.AddressLine2, inv.Buyer.GSTIN)
	r.twoColumns("Bill To:", buyer, []string{
		"Invoice No: " + inv.BillNo,
		"Date: " + inv.InvoiceDate,
	})

	if inv.ShipTo.Name != "" {
		shipTo := fmt.Sprintf("%s\n%s\n%s",
			inv.ShipTo.Name, inv.ShipTo.AddressLine1, inv.ShipTo.AddressLine2)
		var right []string
		if inv.PORef != "" {
			right = append(right, "PO Ref: "+inv.PORef)
		}
		r.twoColumns("Ship To:", shipTo, right)
	} else if inv.PORef != "" {
		r.twoColumns("PO Ref:", inv.PORef, nil)
	}
}

// ensureRoom starts a new page when a block of height h would cross the
// bottom margin, keeping each table row atomic.
func (r *renderer) ensureRoom(h float64) {
	if r.pdf.GetY()+h > pageHeight-margin {
		r.pdf.AddPage()
	}
}

func (r *renderer) itemTable() {
	pdf := r.pdf

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(255, 204, 153)
	for i, h := range colHeaders {
		ln := 0
		if i == len(colHeaders)-1 {
			ln = 1
		}
		pdf.CellFormat(colWidths[i], 8, h, "1", ln, "C", true, 0, "")
	}

	pdf.SetFont("Helvetica", "", 10)
	for i, item := range r.inv.Items {
		if i%2 == 0 {
			pdf.SetFillColor(255, 255, 204)
		} else {
			pdf.SetFillColor(255, 255, 230)
		}
		r.itemRow(&item)
	}
}

// itemRow measures the wrapped description first, then draws every
// bordered cell at that uniform height and places the text on top.
func (r *renderer) itemRow(item *domain.LineItem) {
	pdf := r.pdf

	lines := pdf.SplitText(item.Particular, colWidths[0]-2)
	if len(lines) == 0 {
		lines = []string{""}
	}
	rowH := float64(len(lines)) * rowLineH
	r.ensureRoom(rowH)

	startX, startY := pdf.GetXY()

	x := startX
	for _, w := range colWidths {
		pdf.Rect(x, startY, w, rowH, "DF")
		x += w
	}

	pdf.SetXY(startX+1, startY)
	pdf.MultiCell(colWidths[0]-2, rowLineH, item.Particular, "", "L", false)

	hsn := item.HSNCode
	if r.inv.IsNonGST {
		hsn = ""
	}
	cells := [7]string{
		hsn,
		formatQty(item.Quantity),
		formatAmount(item.Rate),
		formatRate(item.TaxRate),
		formatAmount(item.TaxableValue),
		formatAmount(item.TaxAmount),
		formatAmount(item.Total),
	}
	aligns := [7]string{"C", "C", "R", "C", "R", "R", "R"}

	x = startX + colWidths[0]
	for i, cell := range cells {
		pdf.SetXY(x, startY)
		pdf.CellFormat(colWidths[i+1], rowH, cell, "", 0, aligns[i], false, 0, "")
		x += colWidths[i+1]
	}

	pdf.SetXY(startX, startY+rowH)
}

func (r *renderer) totalsBlock() {
	pdf := r.pdf
	t := r.inv

	labelW := usableW - colWidths[7]
	rows := []struct {
		label string
		value float64
	}{
		{"Sub Total", t.SubTotal},
		{"IGST", t.IGST},
		{"CGST", t.CGST},
		{"SGST", t.SGST},
		{"Grand Total", t.GrandTotal},
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, row := range rows {
		r.ensureRoom(7)
		pdf.CellFormat(labelW, 7, row.label, "1", 0, "R", true, 0, "")
		pdf.CellFormat(colWidths[7], 7, formatAmount(row.value), "1", 1, "R", true, 0, "")
	}
	pdf.Ln(8)
}

func (r *renderer) footer(signature []byte) {
	pdf := r.pdf
	seller := r.inv.Seller

	r.ensureRoom(50)

	pdf.SetFont("Helvetica", "", 10)
	details := fmt.Sprintf("Rupees: %s\nBank Name: %s\nAccount Holder Name: %s\nAccount No: %s\nIFSC Code: %s",
		words.Words(r.inv.GrandTotal), seller.BankName, seller.AccountHolder,
		seller.AccountNumber, seller.IFSCCode)
	pdf.MultiCell(usableW, lineH, details, "", "L", false)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, lineH, "For "+seller.CompanyName, "", 1, "R", false, 0, "")

	r.drawImage("signature", signature, 150, pdf.GetY(), 40, 0)
	pdf.Ln(18)
	pdf.CellFormat(0, lineH, "Authorised Signatory", "", 1, "R", false, 0, "")
}

// drawImage places an optional image, silently skipping anything that is
// missing or does not decode. A bad branding upload must never abort a
// render.
func (r *renderer) drawImage(name string, data []byte, x, y, w, h float64) {
	if len(data) == 0 {
		return
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return
	}
	var imageType string
	switch format {
	case "jpeg":
		imageType = "JPG"
	case "png":
		imageType = "PNG"
	default:
		return
	}

	opts := fpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
	r.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	r.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
}

// Per-line and totals cells always display magnitudes; on credit notes the
// banner alone conveys the negative sign.
func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", math.Abs(v))
}

func formatQty(v float64) string {
	abs := math.Abs(v)
	if abs == math.Trunc(abs) {
		return fmt.Sprintf("%.0f", abs)
	}
	return fmt.Sprintf("%.2f", abs)
}

func formatRate(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f%%", v)
	}
	return fmt.Sprintf("%.1f%%", v)
}

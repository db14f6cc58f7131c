// Package xlsxexport flattens stored documents into a spreadsheet: one row
// per line item, with the document header fields denormalized onto each row.
package xlsxexport

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"invoicegen/internal/domain"
	"invoicegen/internal/tax"
)

const sheetName = "Invoices"

// columns defines the export header row (16 columns).
var columns = []string{
	"Bill No",
	"Date",
	"Type",
	"Buyer Name",
	"Buyer GSTIN",
	"Particular",
	"HSN",
	"Quantity",
	"Rate",
	"Tax Rate %",
	"Taxable Value",
	"CGST",
	"SGST",
	"IGST",
	"Line Total",
	"Grand Total",
}

// Build produces the XLSX payload for a batch of documents.
func Build(invoices []domain.Invoice) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("xlsxexport.Build: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &columns); err != nil {
		return nil, fmt.Errorf("xlsxexport.Build: %w", err)
	}

	rowIdx := 2
	for i := range invoices {
		inv := &invoices[i]
		for j := range inv.Items {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx)
			if err != nil {
				return nil, fmt.Errorf("xlsxexport.Build: %w", err)
			}
			row := itemRow(inv, &inv.Items[j])
			if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
				return nil, fmt.Errorf("xlsxexport.Build: %w", err)
			}
			rowIdx++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsxexport.Build: %w", err)
	}
	return buf.Bytes(), nil
}

// itemRow projects one line item with its document header. The intra-state
// halves of the line tax are recomputed the same way the splitter assigns
// them, so export rows reconcile with the stored aggregates.
func itemRow(inv *domain.Invoice, item *domain.LineItem) []interface{} {
	var cgst, sgst, igst float64
	switch {
	case inv.IsNonGST:
	case inv.CGST != 0 || inv.SGST != 0:
		cgst, sgst = tax.Halve(item.TaxAmount)
	default:
		igst = item.TaxAmount
	}

	return []interface{}{
		inv.BillNo,
		inv.InvoiceDate,
		inv.Kind().Label(),
		inv.Buyer.Name,
		inv.Buyer.GSTIN,
		item.Particular,
		item.HSNCode,
		item.Quantity,
		item.Rate,
		item.TaxRate,
		item.TaxableValue,
		cgst,
		sgst,
		igst,
		item.Total,
		inv.GrandTotal,
	}
}

// FileName returns the download filename for a bulk export.
func FileName(tenantSlug string) string {
	return fmt.Sprintf("%s_invoices_%s.xlsx", tenantSlug, time.Now().Format("2006-01-02"))
}

package numbering_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"invoicegen/internal/domain"
	"invoicegen/internal/numbering"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestFiscalYear(t *testing.T) {
	assert.Equal(t, "25-26", numbering.FiscalYear(date(2025, time.April, 1)))
	assert.Equal(t, "25-26", numbering.FiscalYear(date(2026, time.March, 31)))
	assert.Equal(t, "24-25", numbering.FiscalYear(date(2025, time.March, 31)))
	assert.Equal(t, "26-27", numbering.FiscalYear(date(2026, time.December, 25)))
	// Century wrap keeps two digits.
	assert.Equal(t, "99-00", numbering.FiscalYear(date(2099, time.June, 1)))
}

func TestBillNumber(t *testing.T) {
	issued := date(2025, time.August, 31)

	assert.Equal(t, "INV/25-26/0001",
		numbering.BillNumber("INV", domain.SeriesOrdinary, issued, 1))
	assert.Equal(t, "INV-CN/25-26/0042",
		numbering.BillNumber("INV", domain.SeriesCreditNote, issued, 42))
	assert.Equal(t, "MB/25-26/12345",
		numbering.BillNumber("MB", domain.SeriesOrdinary, issued, 12345))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Invoice_INV_25-26_0001.pdf", numbering.FileName("INV/25-26/0001"))
	assert.Equal(t, "Invoice_INV-CN_25-26_0007.pdf", numbering.FileName("INV-CN/25-26/0007"))
	assert.Equal(t, "Invoice_A_B.pdf", numbering.FileName("  A//??B  "))
}

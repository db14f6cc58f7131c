// Package numbering formats series document numbers and their fiscal-year
// tags, and derives filesystem-safe filenames from them.
package numbering

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"invoicegen/internal/domain"
)

// FiscalYear returns the Indian fiscal-year tag for a date, e.g. "25-26"
// for any day between 2025-04-01 and 2026-03-31.
func FiscalYear(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%02d-%02d", start%100, (start+1)%100)
}

// BillNumber formats a document number for its series:
// {PREFIX}/{FY}/{seq:04d} for ordinary invoices and
// {PREFIX}-CN/{FY}/{seq:04d} for credit notes.
func BillNumber(prefix string, series domain.Series, issuedAt time.Time, seq int64) string {
	if series == domain.SeriesCreditNote {
		prefix += "-CN"
	}
	return fmt.Sprintf("%s/%s/%04d", prefix, FiscalYear(issuedAt), seq)
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// FileName derives the download filename for a rendered document,
// replacing characters that are unsafe in filesystems and headers.
func FileName(billNo string) string {
	s := unsafeChars.ReplaceAllString(billNo, "_")
	s = strings.Trim(s, "_")
	return fmt.Sprintf("Invoice_%s.pdf", s)
}

package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Tenant represents an isolated billing tenant (one business).
type Tenant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// User represents an authenticated user belonging to a tenant.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// SellerProfile holds the tenant's own business identity. It is read on
// every render and snapshotted verbatim into each issued document.
type SellerProfile struct {
	ID            uuid.UUID `db:"id" json:"id"`
	TenantID      uuid.UUID `db:"tenant_id" json:"tenant_id"`
	CompanyName   string    `db:"company_name" json:"company_name"`
	AddressLine1  string    `db:"address_line1" json:"address_line1"`
	AddressLine2  string    `db:"address_line2" json:"address_line2"`
	Phone         string    `db:"phone" json:"phone"`
	Email         string    `db:"email" json:"email"`
	GSTIN         string    `db:"gstin" json:"gstin"`
	BankName      string    `db:"bank_name" json:"bank_name"`
	AccountHolder string    `db:"account_holder" json:"account_holder"`
	AccountNumber string    `db:"account_number" json:"account_number"`
	IFSCCode      string    `db:"ifsc_code" json:"ifsc_code"`
	InvoicePrefix string    `db:"invoice_prefix" json:"invoice_prefix"`
	LogoKey       string    `db:"logo_key" json:"logo_key"`
	SignatureKey  string    `db:"signature_key" json:"signature_key"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// SellerSnapshot is the subset of the profile frozen into a document at
// issue time, so later profile edits never change issued documents.
type SellerSnapshot struct {
	CompanyName   string `json:"company_name"`
	AddressLine1  string `json:"address_line1"`
	AddressLine2  string `json:"address_line2"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	GSTIN         string `json:"gstin"`
	BankName      string `json:"bank_name"`
	AccountHolder string `json:"account_holder"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
}

// Party is a buyer or ship-to block embedded by value in a document.
type Party struct {
	Name         string `json:"name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	GSTIN        string `json:"gstin"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`
}

// LineItem is one billed row. Amount is the tax-inclusive line amount;
// TaxableValue and TaxAmount are derived from it and the rate.
type LineItem struct {
	Particular   string  `json:"particular"`
	HSNCode      string  `json:"hsn_code"`
	Quantity     float64 `json:"quantity"`
	Rate         float64 `json:"rate"`
	TaxRate      float64 `json:"tax_rate"`
	TaxableValue float64 `json:"taxable_value"`
	TaxAmount    float64 `json:"tax_amount"`
	Total        float64 `json:"total"`
}

// LineItems is stored as a single JSONB column.
type LineItems []LineItem

// Invoice is an issued document: tax invoice, bill of supply, or credit
// note. Immutable after creation apart from being referenced by a later
// credit note (tracked via OriginalBillNo on the note itself).
type Invoice struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	TenantID       uuid.UUID      `db:"tenant_id" json:"tenant_id"`
	BillNo         string         `db:"bill_no" json:"bill_no"`
	InvoiceDate    string         `db:"invoice_date" json:"invoice_date"`
	IsCreditNote   bool           `db:"is_credit_note" json:"is_credit_note"`
	IsNonGST       bool           `db:"is_non_gst" json:"is_non_gst"`
	OriginalBillNo string         `db:"original_bill_no" json:"original_bill_no,omitempty"`
	PORef          string         `db:"po_ref" json:"po_ref,omitempty"`
	Seller         SellerSnapshot `db:"seller" json:"seller"`
	Buyer          Party          `db:"buyer" json:"buyer"`
	ShipTo         Party          `db:"ship_to" json:"ship_to"`
	Items          LineItems      `db:"items" json:"items"`
	SubTotal       float64        `db:"sub_total" json:"sub_total"`
	IGST           float64        `db:"igst" json:"igst"`
	CGST           float64        `db:"cgst" json:"cgst"`
	SGST           float64        `db:"sgst" json:"sgst"`
	GrandTotal     float64        `db:"grand_total" json:"grand_total"`
	CreatedBy      uuid.UUID      `db:"created_by" json:"created_by"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

// Kind derives the document variant from the stored flags.
func (inv *Invoice) Kind() DocumentKind {
	switch {
	case inv.IsCreditNote:
		return KindCreditNote
	case inv.IsNonGST:
		return KindBillOfSupply
	default:
		return KindTaxInvoice
	}
}

// Client is the denormalized buyer directory kept for autofill.
type Client struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name         string    `db:"name" json:"name"`
	AddressLine1 string    `db:"address_line1" json:"address_line1"`
	AddressLine2 string    `db:"address_line2" json:"address_line2"`
	GSTIN        string    `db:"gstin" json:"gstin"`
	Email        string    `db:"email" json:"email"`
	Mobile       string    `db:"mobile" json:"mobile"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Particular is the line-item description directory kept for autofill,
// remembering the usual HSN code and tax rate per description.
type Particular struct {
	ID          uuid.UUID `db:"id" json:"id"`
	TenantID    uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Description string    `db:"description" json:"description"`
	HSNCode     string    `db:"hsn_code" json:"hsn_code"`
	TaxRate     float64   `db:"tax_rate" json:"tax_rate"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Counter tracks the per-tenant numbering state, one row per tenant.
type Counter struct {
	TenantID      uuid.UUID `db:"tenant_id" json:"tenant_id"`
	InvoiceSeq    int64     `db:"invoice_seq" json:"invoice_seq"`
	CreditNoteSeq int64     `db:"credit_note_seq" json:"credit_note_seq"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// JSONB column plumbing for the embedded document blocks.

func jsonbValue(v any) (driver.Value, error) { return json.Marshal(v) }

func jsonbScan(src, dst any) error {
	switch s := src.(type) {
	case []byte:
		return json.Unmarshal(s, dst)
	case string:
		return json.Unmarshal([]byte(s), dst)
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}

func (s SellerSnapshot) Value() (driver.Value, error) { return jsonbValue(s) }
func (s *SellerSnapshot) Scan(src any) error          { return jsonbScan(src, s) }

func (p Party) Value() (driver.Value, error) { return jsonbValue(p) }
func (p *Party) Scan(src any) error          { return jsonbScan(src, p) }

func (li LineItems) Value() (driver.Value, error) { return jsonbValue(li) }
func (li *LineItems) Scan(src any) error          { return jsonbScan(src, li) }

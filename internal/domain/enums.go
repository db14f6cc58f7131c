package domain

// DocumentKind identifies the rendering variant of an issued document.
type DocumentKind string

const (
	KindTaxInvoice   DocumentKind = "tax_invoice"
	KindBillOfSupply DocumentKind = "bill_of_supply"
	KindCreditNote   DocumentKind = "credit_note"
)

// Label returns the human-readable document type used on exports.
func (k DocumentKind) Label() string {
	switch k {
	case KindCreditNote:
		return "Credit Note"
	case KindBillOfSupply:
		return "Bill of Supply"
	default:
		return "Tax Invoice"
	}
}

// Series is a numbering lineage with its own monotonic counter.
type Series string

const (
	SeriesOrdinary   Series = "ordinary"
	SeriesCreditNote Series = "credit_note"
)

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// BrandingAsset identifies which profile image is being uploaded.
type BrandingAsset string

const (
	AssetLogo      BrandingAsset = "logo"
	AssetSignature BrandingAsset = "signature"
)

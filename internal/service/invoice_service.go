package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"invoicegen/internal/config"
	"invoicegen/internal/domain"
	"invoicegen/internal/numbering"
	"invoicegen/internal/port"
	"invoicegen/internal/render"
	"invoicegen/internal/tax"
)

// inputDateLayout is what the API accepts; renderDateLayout is what gets
// stored and printed on the document.
const (
	inputDateLayout  = "2006-01-02"
	renderDateLayout = "02-Jan-2006"
)

// ItemInput is one billed row as submitted. Amount is tax-inclusive.
type ItemInput struct {
	Particular string  `json:"particular" binding:"required"`
	HSNCode    string  `json:"hsn_code"`
	Quantity   float64 `json:"quantity"`
	Rate       float64 `json:"rate"`
	Amount     float64 `json:"amount"`
	TaxRate    float64 `json:"tax_rate"`
}

// CreateInvoiceInput is the DTO for issuing a new document.
type CreateInvoiceInput struct {
	ManualNumber bool         `json:"manual_number"`
	BillNo       string       `json:"bill_no"`
	InvoiceDate  string       `json:"invoice_date"`
	IsNonGST     bool         `json:"is_non_gst"`
	PORef        string       `json:"po_ref"`
	Buyer        domain.Party `json:"buyer" binding:"required"`
	ShipTo       domain.Party `json:"ship_to"`
	Items        []ItemInput  `json:"items" binding:"required"`
}

// CreditNoteInput identifies the invoice being credited.
type CreditNoteInput struct {
	BillNo string `json:"bill_no" binding:"required"`
}

// ListInvoicesOutput is the paginated archive listing.
type ListInvoicesOutput struct {
	Invoices []domain.Invoice `json:"invoices"`
	Total    int              `json:"total"`
	Offset   int              `json:"offset"`
	Limit    int              `json:"limit"`
}

// InvoiceService issues, derives and serves documents.
type InvoiceService interface {
	Create(ctx context.Context, tenantID, userID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, error)
	CreateCreditNote(ctx context.Context, tenantID, userID uuid.UUID, input CreditNoteInput) (*domain.Invoice, error)
	Get(ctx context.Context, tenantID uuid.UUID, billNo string) (*domain.Invoice, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) (*ListInvoicesOutput, error)
	// Download re-renders the stored document and returns the PDF bytes
	// together with the suggested filename.
	Download(ctx context.Context, tenantID uuid.UUID, billNo string) ([]byte, string, error)
	Email(ctx context.Context, tenantID uuid.UUID, billNo, toEmail string) error
}

type invoiceService struct {
	invoiceRepo    port.InvoiceRepository
	counterRepo    port.CounterRepository
	profileRepo    port.SellerProfileRepository
	clientRepo     port.ClientRepository
	particularRepo port.ParticularRepository
	storage        port.ObjectStorage
	email          port.EmailSender
	s3cfg          config.S3Config
	billing        config.BillingConfig
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	counterRepo port.CounterRepository,
	profileRepo port.SellerProfileRepository,
	clientRepo port.ClientRepository,
	particularRepo port.ParticularRepository,
	storage port.ObjectStorage,
	email port.EmailSender,
	s3cfg config.S3Config,
	billing config.BillingConfig,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:    invoiceRepo,
		counterRepo:    counterRepo,
		profileRepo:    profileRepo,
		clientRepo:     clientRepo,
		particularRepo: particularRepo,
		storage:        storage,
		email:          email,
		s3cfg:          s3cfg,
		billing:        billing,
	}
}

func (s *invoiceService) Create(ctx context.Context, tenantID, userID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("invoice.Create: %w", err)
	}

	issuedAt, err := resolveDate(input.InvoiceDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	billNo := strings.TrimSpace(input.BillNo)
	if input.ManualNumber {
		if billNo == "" {
			return nil, domain.ErrMissingInvoiceNumber
		}
	} else {
		seq, err := s.counterRepo.Next(ctx, tenantID, domain.SeriesOrdinary)
		if err != nil {
			return nil, fmt.Errorf("invoice.Create: %w", err)
		}
		billNo = numbering.BillNumber(s.prefix(profile), domain.SeriesOrdinary, issuedAt, seq)
	}

	invoice := s.buildDocument(tenantID, userID, profile, billNo, issuedAt.Format(renderDateLayout), input)

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	s.refreshDirectories(ctx, tenantID, invoice)
	s.archivePDF(ctx, invoice)

	return invoice, nil
}

// buildDocument assembles the full immutable record: the seller snapshot,
// the per-line tax split and the aggregate totals.
func (s *invoiceService) buildDocument(
	tenantID, userID uuid.UUID,
	profile *domain.SellerProfile,
	billNo, invoiceDate string,
	input CreateInvoiceInput,
) *domain.Invoice {
	sameState := tax.SameState(profile.GSTIN, input.Buyer.GSTIN)

	taxLines := make([]tax.Line, len(input.Items))
	for i, item := range input.Items {
		taxLines[i] = tax.Line{Amount: item.Amount, TaxRate: item.TaxRate}
	}
	breakdowns, totals := tax.Split(taxLines, input.IsNonGST, sameState)

	items := make(domain.LineItems, len(input.Items))
	for i, item := range input.Items {
		rate := item.TaxRate
		if input.IsNonGST {
			rate = 0
		}
		items[i] = domain.LineItem{
			Particular:   item.Particular,
			HSNCode:      item.HSNCode,
			Quantity:     item.Quantity,
			Rate:         item.Rate,
			TaxRate:      rate,
			TaxableValue: breakdowns[i].Taxable,
			TaxAmount:    breakdowns[i].Tax,
			Total:        breakdowns[i].Total,
		}
	}

	shipTo := input.ShipTo
	if shipTo.Name == "" {
		shipTo = input.Buyer
	}

	return &domain.Invoice{
		TenantID:    tenantID,
		BillNo:      billNo,
		InvoiceDate: invoiceDate,
		IsNonGST:    input.IsNonGST,
		PORef:       input.PORef,
		Seller:      snapshotProfile(profile),
		Buyer:       input.Buyer,
		ShipTo:      shipTo,
		Items:       items,
		SubTotal:    totals.SubTotal,
		IGST:        totals.IGST,
		CGST:        totals.CGST,
		SGST:        totals.SGST,
		GrandTotal:  totals.GrandTotal,
		CreatedBy:   userID,
	}
}

func (s *invoiceService) CreateCreditNote(ctx context.Context, tenantID, userID uuid.UUID, input CreditNoteInput) (*domain.Invoice, error) {
	billNo := strings.TrimSpace(input.BillNo)
	if billNo == "" {
		return nil, domain.ErrInvalidInput
	}

	// Idempotency: a second request for the same invoice returns the
	// existing note instead of issuing another one.
	if existing, err := s.invoiceRepo.GetByOriginalBillNo(ctx, tenantID, billNo); err == nil {
		return existing, nil
	} else if !errors.Is(err, domain.ErrInvoiceNotFound) {
		return nil, fmt.Errorf("invoice.CreateCreditNote: %w", err)
	}

	original, err := s.invoiceRepo.GetByBillNo(ctx, tenantID, billNo)
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return nil, domain.ErrOriginalNotFound
		}
		return nil, fmt.Errorf("invoice.CreateCreditNote: %w", err)
	}
	if original.IsCreditNote {
		return nil, domain.ErrOriginalNotFound
	}

	profile, err := s.profileRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("invoice.CreateCreditNote: %w", err)
	}

	seq, err := s.counterRepo.Next(ctx, tenantID, domain.SeriesCreditNote)
	if err != nil {
		return nil, fmt.Errorf("invoice.CreateCreditNote: %w", err)
	}
	now := time.Now()

	note := deriveCreditNote(original, userID)
	note.BillNo = numbering.BillNumber(s.prefix(profile), domain.SeriesCreditNote, now, seq)
	note.InvoiceDate = now.Format(renderDateLayout)

	if err := s.invoiceRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	s.archivePDF(ctx, note)

	return note, nil
}

// deriveCreditNote mirrors the original document with every monetary
// figure negated. Negation is forced through -abs so a note derived from
// already-odd data can never come out positive.
func deriveCreditNote(original *domain.Invoice, userID uuid.UUID) *domain.Invoice {
	items := make(domain.LineItems, len(original.Items))
	for i, item := range original.Items {
		items[i] = domain.LineItem{
			Particular:   item.Particular,
			HSNCode:      item.HSNCode,
			Quantity:     tax.Negate(item.Quantity),
			Rate:         item.Rate,
			TaxRate:      item.TaxRate,
			TaxableValue: tax.Negate(item.TaxableValue),
			TaxAmount:    tax.Negate(item.TaxAmount),
			Total:        tax.Negate(item.Total),
		}
	}

	return &domain.Invoice{
		TenantID:       original.TenantID,
		IsCreditNote:   true,
		IsNonGST:       original.IsNonGST,
		OriginalBillNo: original.BillNo,
		PORef:          original.PORef,
		Seller:         original.Seller,
		Buyer:          original.Buyer,
		ShipTo:         original.ShipTo,
		Items:          items,
		SubTotal:       tax.Negate(original.SubTotal),
		IGST:           tax.Negate(original.IGST),
		CGST:           tax.Negate(original.CGST),
		SGST:           tax.Negate(original.SGST),
		GrandTotal:     tax.Negate(original.GrandTotal),
		CreatedBy:      userID,
	}
}

func (s *invoiceService) Get(ctx context.Context, tenantID uuid.UUID, billNo string) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByBillNo(ctx, tenantID, billNo)
}

func (s *invoiceService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) (*ListInvoicesOutput, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	invoices, total, err := s.invoiceRepo.ListByTenant(ctx, tenantID, offset, limit)
	if err != nil {
		return nil, err
	}
	return &ListInvoicesOutput{
		Invoices: invoices,
		Total:    total,
		Offset:   offset,
		Limit:    limit,
	}, nil
}

func (s *invoiceService) Download(ctx context.Context, tenantID uuid.UUID, billNo string) ([]byte, string, error) {
	invoice, err := s.invoiceRepo.GetByBillNo(ctx, tenantID, billNo)
	if err != nil {
		return nil, "", err
	}

	pdf, err := s.renderPDF(ctx, invoice)
	if err != nil {
		return nil, "", err
	}
	return pdf, numbering.FileName(invoice.BillNo), nil
}

func (s *invoiceService) Email(ctx context.Context, tenantID uuid.UUID, billNo, toEmail string) error {
	toEmail = strings.TrimSpace(toEmail)
	invoice, err := s.invoiceRepo.GetByBillNo(ctx, tenantID, billNo)
	if err != nil {
		return err
	}
	if toEmail == "" {
		toEmail = invoice.Buyer.Email
	}
	if toEmail == "" {
		return domain.ErrInvalidInput
	}

	pdf, err := s.renderPDF(ctx, invoice)
	if err != nil {
		return err
	}
	return s.email.SendInvoice(ctx, toEmail, invoice, pdf, numbering.FileName(invoice.BillNo))
}

// renderPDF produces the document PDF with whatever branding assets the
// tenant has on file. Missing or unreadable assets are skipped.
func (s *invoiceService) renderPDF(ctx context.Context, invoice *domain.Invoice) ([]byte, error) {
	assets := render.Assets{}
	if profile, err := s.profileRepo.GetByTenant(ctx, invoice.TenantID); err == nil {
		if profile.LogoKey != "" {
			assets.Logo, _ = s.storage.Download(ctx, s.s3cfg.Bucket, profile.LogoKey)
		}
		if profile.SignatureKey != "" {
			assets.Signature, _ = s.storage.Download(ctx, s.s3cfg.Bucket, profile.SignatureKey)
		}
	}

	pdf, err := render.Render(invoice, assets)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", invoice.BillNo, err)
	}
	return pdf, nil
}

// archivePDF renders and stores a copy of the issued document. Failures
// are logged but never fail the issue itself; the PDF can always be
// re-rendered from the stored record.
func (s *invoiceService) archivePDF(ctx context.Context, invoice *domain.Invoice) {
	pdf, err := s.renderPDF(ctx, invoice)
	if err != nil {
		log.Printf("WARN: archiving %s: %v", invoice.BillNo, err)
		return
	}

	key := fmt.Sprintf("tenants/%s/invoices/%s", invoice.TenantID, numbering.FileName(invoice.BillNo))
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(pdf),
		ContentType: "application/pdf",
	})
	if err != nil {
		log.Printf("WARN: uploading %s: %v", key, err)
	}
}

// refreshDirectories records the buyer and the line descriptions for later
// autofill. Best effort only.
func (s *invoiceService) refreshDirectories(ctx context.Context, tenantID uuid.UUID, invoice *domain.Invoice) {
	client := &domain.Client{
		TenantID:     tenantID,
		Name:         invoice.Buyer.Name,
		AddressLine1: invoice.Buyer.AddressLine1,
		AddressLine2: invoice.Buyer.AddressLine2,
		GSTIN:        invoice.Buyer.GSTIN,
		Email:        invoice.Buyer.Email,
		Mobile:       invoice.Buyer.Mobile,
	}
	if err := s.clientRepo.UpsertByName(ctx, client); err != nil {
		log.Printf("WARN: refreshing client directory: %v", err)
	}

	for _, item := range invoice.Items {
		particular := &domain.Particular{
			TenantID:    tenantID,
			Description: item.Particular,
			HSNCode:     item.HSNCode,
			TaxRate:     item.TaxRate,
		}
		if err := s.particularRepo.UpsertByDescription(ctx, particular); err != nil {
			log.Printf("WARN: refreshing particular directory: %v", err)
		}
	}
}

func (s *invoiceService) prefix(profile *domain.SellerProfile) string {
	if profile.InvoicePrefix != "" {
		return profile.InvoicePrefix
	}
	return s.billing.DefaultPrefix
}

func validateInput(input *CreateInvoiceInput) error {
	if strings.TrimSpace(input.Buyer.Name) == "" {
		return domain.ErrInvalidInput
	}
	if len(input.Items) == 0 {
		return domain.ErrInvalidInput
	}
	for _, item := range input.Items {
		if strings.TrimSpace(item.Particular) == "" {
			return domain.ErrInvalidInput
		}
		if item.Amount <= 0 || item.TaxRate < 0 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// resolveDate parses the submitted ISO issue date, defaulting to today
// when blank. The date also anchors the fiscal-year tag of auto-assigned
// numbers.
func resolveDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Now(), nil
	}
	return time.Parse(inputDateLayout, s)
}

func snapshotProfile(p *domain.SellerProfile) domain.SellerSnapshot {
	return domain.SellerSnapshot{
		CompanyName:   p.CompanyName,
		AddressLine1:  p.AddressLine1,
		AddressLine2:  p.AddressLine2,
		Phone:         p.Phone,
		Email:         p.Email,
		GSTIN:         p.GSTIN,
		BankName:      p.BankName,
		AccountHolder: p.AccountHolder,
		AccountNumber: p.AccountNumber,
		IFSCCode:      p.IFSCCode,
	}
}

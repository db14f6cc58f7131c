package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/config"
	"invoicegen/internal/domain"
	"invoicegen/internal/port"
	"invoicegen/internal/service"
	"invoicegen/mocks"
)

type invoiceFixture struct {
	invoiceRepo    *mocks.MockInvoiceRepo
	counterRepo    *mocks.MockCounterRepo
	profileRepo    *mocks.MockSellerProfileRepo
	clientRepo     *mocks.MockClientRepo
	particularRepo *mocks.MockParticularRepo
	storage        *mocks.MockObjectStorage
	email          *mocks.MockEmailSender
	svc            service.InvoiceService
}

func setupInvoiceService() *invoiceFixture {
	f := &invoiceFixture{
		invoiceRepo:    new(mocks.MockInvoiceRepo),
		counterRepo:    new(mocks.MockCounterRepo),
		profileRepo:    new(mocks.MockSellerProfileRepo),
		clientRepo:     new(mocks.MockClientRepo),
		particularRepo: new(mocks.MockParticularRepo),
		storage:        new(mocks.MockObjectStorage),
		email:          new(mocks.MockEmailSender),
	}
	f.svc = service.NewInvoiceService(
		f.invoiceRepo, f.counterRepo, f.profileRepo, f.clientRepo, f.particularRepo,
		f.storage, f.email,
		config.S3Config{Bucket: "test-bucket"},
		config.BillingConfig{DefaultPrefix: "INV"},
	)
	return f
}

func sellerProfile(gstin string) *domain.SellerProfile {
	return &domain.SellerProfile{
		TenantID:      uuid.New(),
		CompanyName:   "Sharma Traders",
		AddressLine1:  "14 Industrial Estate",
		GSTIN:         gstin,
		BankName:      "HDFC Bank",
		AccountNumber: "50100123456789",
		IFSCCode:      "HDFC0001234",
		InvoicePrefix: "ST",
	}
}

func (f *invoiceFixture) expectHappyPathSideEffects(profile *domain.SellerProfile) {
	f.profileRepo.On("GetByTenant", mock.Anything, mock.Anything).Return(profile, nil)
	f.invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)
	f.clientRepo.On("UpsertByName", mock.Anything, mock.AnythingOfType("*domain.Client")).Return(nil)
	f.particularRepo.On("UpsertByDescription", mock.Anything, mock.AnythingOfType("*domain.Particular")).Return(nil)
	f.storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).Return(&port.UploadOutput{}, nil)
}

func TestCreate_SameStateSplitsCGSTSGST(t *testing.T) {
	f := setupInvoiceService()
	profile := sellerProfile("09AAACB1234C1Z5")
	f.expectHappyPathSideEffects(profile)
	f.counterRepo.On("Next", mock.Anything, mock.Anything, domain.SeriesOrdinary).Return(int64(1), nil)

	invoice, err := f.svc.Create(context.Background(), uuid.New(), uuid.New(), service.CreateInvoiceInput{
		InvoiceDate: "2025-06-15",
		Buyer:       domain.Party{Name: "Verma Supplies", GSTIN: "09BBBCV5678D1Z2"},
		Items: []service.ItemInput{
			{Particular: "Steel pipes", HSNCode: "7306", Quantity: 10, Rate: 118, Amount: 1180, TaxRate: 18},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "ST/25-26/0001", invoice.BillNo)
	assert.Equal(t, "15-Jun-2025", invoice.InvoiceDate)
	assert.InDelta(t, 1000.00, invoice.SubTotal, 0.001)
	assert.InDelta(t, 90.00, invoice.CGST, 0.001)
	assert.InDelta(t, 90.00, invoice.SGST, 0.001)
	assert.Zero(t, invoice.IGST)
	assert.InDelta(t, 1180.00, invoice.GrandTotal, 0.001)
	assert.InDelta(t, 1000.00, invoice.Items[0].TaxableValue, 0.001)
	assert.InDelta(t, 180.00, invoice.Items[0].TaxAmount, 0.001)
}

func TestCreate_CrossStateUsesIGST(t *testing.T) {
	f := setupInvoiceService()
	profile := sellerProfile("09AAACB1234C1Z5")
	f.expectHappyPathSideEffects(profile)
	f.counterRepo.On("Next", mock.Anything, mock.Anything, domain.SeriesOrdinary).Return(int64(7), nil)

	invoice, err := f.svc.Create(context.Background(), uuid.New(), uuid.New(), service.CreateInvoiceInput{
		Buyer: domain.Party{Name: "Chennai Metals", GSTIN: "33ZZZCM9999E1Z8"},
		Items: []service.ItemInput{
			{Particular: "Steel pipes", Amount: 1180, TaxRate: 18},
		},
	})

	require.NoError(t, err)
	assert.InDelta(t, 180.00, invoice.IGST, 0.001)
	assert.Zero(t, invoice.CGST)
	assert.Zero(t, invoice.SGST)
}

func TestCreate_BlankBuyerGSTINIsInterState(t *testing.T) {
	f := setupInvoiceService()
	profile := sellerProfile("09AAACB1234C1Z5")
	f.expectHappyPathSideEffects(profile)
	f.counterRepo.On("Next", mock.Anything, mock.Anything, domain.SeriesOrdinary).Return(int64(2), nil)

	invoice, err := f.svc.Create(context.Background(), uuid.New(), uuid.New(), service.CreateInvoiceInput{
		Buyer: domain.Party{Name: "Walk-in Customer"},
		Items: []service.ItemInput{
			{Particular: "Consulting", Amount: 1180, TaxRate: 18},
		},
	})

	require.NoError(t, err)
	assert.InDelta(t, 180.00, invoice.IGST, 0.001)
	assert.Zero(t, invoice.CGST)
}

func TestCreate_NonGSTZeroesAllTax(t *testing.T) {
	f := setupInvoiceService()
	profile := sellerProfile("09AAACB1234C1Z5")
	f.expectHappyPathSideEffects(profile)
	f.counterRepo.On("Next", mock.Anything, mock.Anything, domain.SeriesOrdinary).Return(int64(3), nil)

	invoice, err := f.svc.Create(context.Background(), uuid.New(), uuid.New(), service.CreateInvoiceInput{
		IsNonGST: true,
		Buyer:    domain.Party{Name: "Verma Supplies", GSTIN: "09BBBCV5678D1Z2"},
		Items: []service.ItemInput{
			{Particular: "Exempt produce", Amount: 500, TaxRate: 18},
		},
	})

	require.NoError(t, err)
	assert.Zero(t, invoice.IGST)
	assert.Zero(t, invoice.CGST)
	assert.Zero(t, invoice.SGST)
	assert.InDelta(t, 500.00, invoice.SubTotal, 0.001)
	assert.InDelta(t, 500.00, invoice.GrandTotal, 0.001)
	assert.Zero(t, invoice.Items[0].TaxRate)
}

func TestCreate_ManualNumber(t *testing.T) {
	f := setupInvoiceService()
	profile := sellerProfile("09AAACB1234C1Z5")
	f.expectHappyPathSideEffects(profile)

	invoice, err := f.svc.Create(context.Background(), uuid.New(), uuid.New(), service.CreateInvoiceInput{
		ManualNumber: true,
		BillNo:       "LEGACY/2024/99",
		Buyer:        domain.Party{Name: "Verma Supplies"},
		Items:        []service.ItemInput{{Particular: "Goods", Amount: 100, TaxRate: 5}},
	})

	require.NoError(t, err)
	assert.Equal(t, "LEGACY/2024/99", invoice.BillNo)
	f.counterRepo.AssertNotCalled(t, "Next", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_ManualNumberMissing(t *testing.T) {
	f := setupInvoiceService()
	f.profileRepo.On("GetByTenant", mock.Anything, mock.Anything).Return(sellerProfile("09AAACB1234C1Z5"), nil)

	_, err := f.svc.Create(context.Background(), uuid.New(), uuid.New(), service.CreateInvoiceInput{
		ManualNumber: true,
		BillNo:       "   ",
		Buyer:        domain.Party{Name: "Verma Supplies"},
		Items:        []service.ItemInput{{Particular: "Goods", Amount: 100, TaxRate: 5}},
	})

	assert.ErrorIs(t, err, domain.ErrMissingInvoiceNumber)
}

func TestCreate_DuplicateManualNumber(t *testing.T) {
	f := setupInvoiceService()
	f.profileRepo.On("GetByTenant", mock.Anything, mock.Anything).Return(sellerProfile("09AAACB1234C1Z5"), nil)
	f.invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).
		Return(domain.ErrDuplicateInvoiceNumber)

	_, err := f.svc.Create(context.Background(), uuid.New(), uuid.New(), service.CreateInvoiceInput{
		ManualNumber: true,
		BillNo:       "ST/25-26/0001",
		Buyer:        domain.Party{Name: "Verma Supplies"},
		Items:        []service.ItemInput{{Particular: "Goods", Amount: 100, TaxRate: 5}},
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateInvoiceNumber)
}

func TestCreate_InvalidInput(t *testing.T) {
	f := setupInvoiceService()

	cases := []struct {
		name  string
		input service.CreateInvoiceInput
	}{
		{"no items", service.CreateInvoiceInput{
			Buyer: domain.Party{Name: "Buyer"},
		}},
		{"blank buyer", service.CreateInvoiceInput{
			Items: []service.ItemInput{{Particular: "Goods", Amount: 100}},
		}},
		{"zero amount", service.CreateInvoiceInput{
			Buyer: domain.Party{Name: "Buyer"},
			Items: []service.ItemInput{{Particular: "Goods", Amount: 0}},
		}},
		{"negative tax rate", service.CreateInvoiceInput{
			Buyer: domain.Party{Name: "Buyer"},
			Items: []service.ItemInput{{Particular: "Goods", Amount: 100, TaxRate: -5}},
		}},
		{"blank particular", service.CreateInvoiceInput{
			Buyer: domain.Party{Name: "Buyer"},
			Items: []service.ItemInput{{Particular: "  ", Amount: 100}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), uuid.New(), uuid.New(), tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreateCreditNote_NegatesEverything(t *testing.T) {
	f := setupInvoiceService()
	tenantID := uuid.New()
	profile := sellerProfile("09AAACB1234C1Z5")

	original := &domain.Invoice{
		TenantID:    tenantID,
		BillNo:      "ST/25-26/0001",
		InvoiceDate: "15-Jun-2025",
		Buyer:       domain.Party{Name: "Verma Supplies", GSTIN: "09BBBCV5678D1Z2"},
		Items: domain.LineItems{
			{Particular: "Steel pipes", Quantity: 10, Rate: 118, TaxRate: 18, TaxableValue: 1000, TaxAmount: 180, Total: 1180},
		},
		SubTotal:   1000,
		CGST:       90,
		SGST:       90,
		GrandTotal: 1180,
	}

	f.invoiceRepo.On("GetByOriginalBillNo", mock.Anything, tenantID, "ST/25-26/0001").
		Return(nil, domain.ErrInvoiceNotFound)
	f.invoiceRepo.On("GetByBillNo", mock.Anything, tenantID, "ST/25-26/0001").Return(original, nil)
	f.profileRepo.On("GetByTenant", mock.Anything, tenantID).Return(profile, nil)
	f.counterRepo.On("Next", mock.Anything, tenantID, domain.SeriesCreditNote).Return(int64(1), nil)
	f.invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)
	f.storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).Return(&port.UploadOutput{}, nil)

	note, err := f.svc.CreateCreditNote(context.Background(), tenantID, uuid.New(), service.CreditNoteInput{
		BillNo: "ST/25-26/0001",
	})

	require.NoError(t, err)
	assert.True(t, note.IsCreditNote)
	assert.Equal(t, "ST/25-26/0001", note.OriginalBillNo)
	assert.Contains(t, note.BillNo, "-CN/")
	assert.InDelta(t, -1000.00, note.SubTotal, 0.001)
	assert.InDelta(t, -90.00, note.CGST, 0.001)
	assert.InDelta(t, -90.00, note.SGST, 0.001)
	assert.InDelta(t, -1180.00, note.GrandTotal, 0.001)
	assert.InDelta(t, -1180.00, note.Items[0].Total, 0.001)
	assert.InDelta(t, -180.00, note.Items[0].TaxAmount, 0.001)
	assert.InDelta(t, -1000.00, note.Items[0].TaxableValue, 0.001)
	assert.InDelta(t, -10.00, note.Items[0].Quantity, 0.001)
	assert.InDelta(t, 118.00, note.Items[0].Rate, 0.001)
	assert.InDelta(t, 18.00, note.Items[0].TaxRate, 0.001)
}

func TestCreateCreditNote_IdempotentReturnsExisting(t *testing.T) {
	f := setupInvoiceService()
	tenantID := uuid.New()

	existing := &domain.Invoice{
		TenantID:       tenantID,
		BillNo:         "ST-CN/25-26/0001",
		IsCreditNote:   true,
		OriginalBillNo: "ST/25-26/0001",
	}
	f.invoiceRepo.On("GetByOriginalBillNo", mock.Anything, tenantID, "ST/25-26/0001").
		Return(existing, nil)

	note, err := f.svc.CreateCreditNote(context.Background(), tenantID, uuid.New(), service.CreditNoteInput{
		BillNo: "ST/25-26/0001",
	})

	require.NoError(t, err)
	assert.Equal(t, existing, note)
	f.counterRepo.AssertNotCalled(t, "Next", mock.Anything, mock.Anything, mock.Anything)
	f.invoiceRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCreditNote_OriginalNotFound(t *testing.T) {
	f := setupInvoiceService()
	tenantID := uuid.New()

	f.invoiceRepo.On("GetByOriginalBillNo", mock.Anything, tenantID, "NOPE/1").
		Return(nil, domain.ErrInvoiceNotFound)
	f.invoiceRepo.On("GetByBillNo", mock.Anything, tenantID, "NOPE/1").
		Return(nil, domain.ErrInvoiceNotFound)

	_, err := f.svc.CreateCreditNote(context.Background(), tenantID, uuid.New(), service.CreditNoteInput{
		BillNo: "NOPE/1",
	})

	assert.ErrorIs(t, err, domain.ErrOriginalNotFound)
}

func TestCreateCreditNote_RefusesCreditingACreditNote(t *testing.T) {
	f := setupInvoiceService()
	tenantID := uuid.New()

	note := &domain.Invoice{TenantID: tenantID, BillNo: "ST-CN/25-26/0001", IsCreditNote: true}
	f.invoiceRepo.On("GetByOriginalBillNo", mock.Anything, tenantID, note.BillNo).
		Return(nil, domain.ErrInvoiceNotFound)
	f.invoiceRepo.On("GetByBillNo", mock.Anything, tenantID, note.BillNo).Return(note, nil)

	_, err := f.svc.CreateCreditNote(context.Background(), tenantID, uuid.New(), service.CreditNoteInput{
		BillNo: note.BillNo,
	})

	assert.ErrorIs(t, err, domain.ErrOriginalNotFound)
}

// memCounter is an in-memory CounterRepository with the same atomicity
// contract as the SQL implementation.
type memCounter struct {
	mu       sync.Mutex
	invoice  int64
	creditNt int64
}

func (m *memCounter) Next(_ context.Context, _ uuid.UUID, series domain.Series) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if series == domain.SeriesCreditNote {
		m.creditNt++
		return m.creditNt, nil
	}
	m.invoice++
	return m.invoice, nil
}

func (m *memCounter) Get(context.Context, uuid.UUID) (*domain.Counter, error) {
	return nil, domain.ErrNotFound
}

func TestCreate_ConcurrentNumbersAreDistinct(t *testing.T) {
	f := setupInvoiceService()
	profile := sellerProfile("09AAACB1234C1Z5")
	f.expectHappyPathSideEffects(profile)

	svc := service.NewInvoiceService(
		f.invoiceRepo, &memCounter{}, f.profileRepo, f.clientRepo, f.particularRepo,
		f.storage, f.email,
		config.S3Config{Bucket: "test-bucket"},
		config.BillingConfig{DefaultPrefix: "INV"},
	)

	const n = 20
	billNos := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			invoice, err := svc.Create(context.Background(), uuid.New(), uuid.New(), service.CreateInvoiceInput{
				Buyer: domain.Party{Name: "Verma Supplies"},
				Items: []service.ItemInput{{Particular: "Goods", Amount: 118, TaxRate: 18}},
			})
			if err != nil {
				t.Errorf("concurrent create: %v", err)
				return
			}
			billNos <- invoice.BillNo
		}()
	}
	wg.Wait()
	close(billNos)

	seen := map[string]bool{}
	for billNo := range billNos {
		if seen[billNo] {
			t.Fatalf("duplicate bill number issued: %s", billNo)
		}
		seen[billNo] = true
	}
	require.Len(t, seen, n)
	for i := 1; i <= n; i++ {
		found := false
		for billNo := range seen {
			if billNo == fmt.Sprintf("ST/25-26/%04d", i) || billNo == fmt.Sprintf("ST/26-27/%04d", i) {
				found = true
				break
			}
		}
		assert.True(t, found, "sequence %d missing from issued numbers", i)
	}
}

func TestEmail_DefaultsToBuyerAddress(t *testing.T) {
	f := setupInvoiceService()
	tenantID := uuid.New()
	profile := sellerProfile("09AAACB1234C1Z5")

	invoice := &domain.Invoice{
		TenantID: tenantID,
		BillNo:   "ST/25-26/0001",
		Buyer:    domain.Party{Name: "Verma Supplies", Email: "accounts@verma.example"},
		Items:    domain.LineItems{{Particular: "Goods", Total: 118}},
	}
	f.invoiceRepo.On("GetByBillNo", mock.Anything, tenantID, invoice.BillNo).Return(invoice, nil)
	f.profileRepo.On("GetByTenant", mock.Anything, tenantID).Return(profile, nil)
	f.email.On("SendInvoice", mock.Anything, "accounts@verma.example", invoice, mock.Anything, "Invoice_ST_25-26_0001.pdf").
		Return(nil)

	err := f.svc.Email(context.Background(), tenantID, invoice.BillNo, "")

	require.NoError(t, err)
	f.email.AssertExpectations(t)
}

func TestDownload_ReturnsPDFAndFilename(t *testing.T) {
	f := setupInvoiceService()
	tenantID := uuid.New()
	profile := sellerProfile("09AAACB1234C1Z5")

	invoice := &domain.Invoice{
		TenantID: tenantID,
		BillNo:   "ST/25-26/0042",
		Buyer:    domain.Party{Name: "Verma Supplies"},
		Items:    domain.LineItems{{Particular: "Goods", Total: 118}},
	}
	f.invoiceRepo.On("GetByBillNo", mock.Anything, tenantID, invoice.BillNo).Return(invoice, nil)
	f.profileRepo.On("GetByTenant", mock.Anything, tenantID).Return(profile, nil)

	pdf, filename, err := f.svc.Download(context.Background(), tenantID, invoice.BillNo)

	require.NoError(t, err)
	assert.Equal(t, "Invoice_ST_25-26_0042.pdf", filename)
	assert.True(t, len(pdf) > 4 && string(pdf[:4]) == "%PDF")
}

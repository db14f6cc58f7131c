package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"invoicegen/internal/branding"
	"invoicegen/internal/config"
	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

// UpdateProfileInput is the DTO for profile updates. Branding keys are
// managed separately via UploadBranding.
type UpdateProfileInput struct {
	CompanyName   string `json:"company_name" binding:"required"`
	AddressLine1  string `json:"address_line1"`
	AddressLine2  string `json:"address_line2"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	GSTIN         string `json:"gstin"`
	BankName      string `json:"bank_name"`
	AccountHolder string `json:"account_holder"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	InvoicePrefix string `json:"invoice_prefix"`
}

// ProfileService manages the tenant's seller identity and branding assets.
type ProfileService interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*domain.SellerProfile, error)
	Update(ctx context.Context, tenantID uuid.UUID, input UpdateProfileInput) (*domain.SellerProfile, error)
	UploadBranding(ctx context.Context, tenantID uuid.UUID, asset domain.BrandingAsset, data []byte) (*domain.SellerProfile, error)
}

type profileService struct {
	profileRepo port.SellerProfileRepository
	storage     port.ObjectStorage
	s3cfg       config.S3Config
}

// NewProfileService creates a new ProfileService implementation.
func NewProfileService(
	profileRepo port.SellerProfileRepository,
	storage port.ObjectStorage,
	s3cfg config.S3Config,
) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		storage:     storage,
		s3cfg:       s3cfg,
	}
}

func (s *profileService) Get(ctx context.Context, tenantID uuid.UUID) (*domain.SellerProfile, error) {
	return s.profileRepo.GetByTenant(ctx, tenantID)
}

func (s *profileService) Update(ctx context.Context, tenantID uuid.UUID, input UpdateProfileInput) (*domain.SellerProfile, error) {
	profile, err := s.profileRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, fmt.Errorf("profile.Update: %w", err)
		}
		profile = &domain.SellerProfile{TenantID: tenantID}
	}

	profile.CompanyName = input.CompanyName
	profile.AddressLine1 = input.AddressLine1
	profile.AddressLine2 = input.AddressLine2
	profile.Phone = input.Phone
	profile.Email = input.Email
	profile.GSTIN = input.GSTIN
	profile.BankName = input.BankName
	profile.AccountHolder = input.AccountHolder
	profile.AccountNumber = input.AccountNumber
	profile.IFSCCode = input.IFSCCode
	profile.InvoicePrefix = input.InvoicePrefix

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("profile.Update: %w", err)
	}
	return profile, nil
}

// UploadBranding normalizes the uploaded image, stores it and records its
// key on the profile. Re-uploads overwrite the same key.
func (s *profileService) UploadBranding(ctx context.Context, tenantID uuid.UUID, asset domain.BrandingAsset, data []byte) (*domain.SellerProfile, error) {
	if asset != domain.AssetLogo && asset != domain.AssetSignature {
		return nil, domain.ErrInvalidInput
	}

	profile, err := s.profileRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("profile.UploadBranding: %w", err)
	}

	normalized, err := branding.Normalize(data)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tenants/%s/branding/%s.jpg", tenantID, asset)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(normalized),
		ContentType: branding.ContentType,
	})
	if err != nil {
		return nil, domain.ErrUploadFailed
	}

	switch asset {
	case domain.AssetLogo:
		profile.LogoKey = key
	case domain.AssetSignature:
		profile.SignatureKey = key
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("profile.UploadBranding: %w", err)
	}
	return profile, nil
}

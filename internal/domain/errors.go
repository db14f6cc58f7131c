package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrTenantInactive         = errors.New("tenant is inactive")
	ErrUserInactive           = errors.New("user is inactive")
	ErrInvalidInput           = errors.New("invalid invoice input")
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")
	ErrMissingInvoiceNumber   = errors.New("manual numbering selected but no invoice number supplied")
	ErrOriginalNotFound       = errors.New("original invoice not found")
	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrProfileNotFound        = errors.New("seller profile not configured")
	ErrUnsupportedImage       = errors.New("unsupported or corrupt image")
	ErrUploadFailed           = errors.New("file upload to storage failed")
)

package handler

import "time"

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// EmailInvoiceRequest represents the email invoice request body.
type EmailInvoiceRequest struct {
	BillNo  string `json:"bill_no" binding:"required" example:"INV/25-26/0001"`
	ToEmail string `json:"to_email" example:"accounts@buyer.example"`
}

// --- Response Types ---

// TokenResponse represents the authentication token response.
type TokenResponse struct {
	AccessToken  string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string    `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt    time.Time `json:"expires_at" example:"2026-01-15T10:30:00Z"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string            `json:"status" example:"ok"`
	Service string            `json:"service,omitempty" example:"invoicegen"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"invoice emailed successfully"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}

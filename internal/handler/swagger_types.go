package handler

import (
	"time"

	"github.com/google/uuid"

	"setflow/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// LoginRequest represents the login request body.
type LoginRequest struct {
	OrgSlug  string `json:"org_slug" binding:"required" example:"luma-films"`
	Email    string `json:"email" binding:"required" example:"ana@lumafilms.com"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// RegisterRequest represents the organization self-registration request body.
type RegisterRequest struct {
	OrgName  string `json:"org_name" binding:"required" example:"Luma Films"`
	OrgSlug  string `json:"org_slug" binding:"required" example:"luma-films"`
	Currency string `json:"currency" example:"BRL"`
	Email    string `json:"email" binding:"required" example:"ana@lumafilms.com"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
	FullName string `json:"full_name" binding:"required" example:"Ana Ribeiro"`
}

// CreateInviteRequest represents the invite creation request body.
type CreateInviteRequest struct {
	Email string      `json:"email" binding:"required" example:"joao@freelance.com"`
	Role  domain.Role `json:"role" binding:"required" example:"freelancer"`
}

// AcceptInviteRequest represents the invite acceptance request body.
type AcceptInviteRequest struct {
	Token    string `json:"token" binding:"required" example:"8f14e45fceea167a5a36dedd4bea2543..."`
	FullName string `json:"full_name" binding:"required" example:"Joao Souza"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
}

// LinkProfileRequest represents the supplier profile link request body.
type LinkProfileRequest struct {
	MemberID uuid.UUID `json:"member_id" binding:"required" example:"987fcdeb-51a2-3bc4-d567-890123456789"`
}

// --- Response Types ---

// TokenResponse represents the authentication token response.
type TokenResponse struct {
	AccessToken  string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string    `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt    time.Time `json:"expires_at" example:"2025-01-15T10:30:00Z"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// FileWithDownloadURL represents a file with its download URL.
type FileWithDownloadURL struct {
	File        domain.FileMeta `json:"file"`
	DownloadURL string          `json:"download_url" example:"https://s3.amazonaws.com/setflow-uploads/...?X-Amz-Signature=..."`
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

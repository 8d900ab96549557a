package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"setflow/internal/domain"
	"setflow/internal/middleware"
	"setflow/internal/service"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrOrganizationInactive):
		return http.StatusForbidden, "ORGANIZATION_INACTIVE", "organization is inactive"
	case errors.Is(err, domain.ErrMemberInactive):
		return http.StatusForbidden, "MEMBER_INACTIVE", "member is inactive"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "email already exists for this organization"
	case errors.Is(err, domain.ErrDuplicateSlug):
		return http.StatusConflict, "DUPLICATE_SLUG", "organization slug already exists"
	case errors.Is(err, domain.ErrInsufficientRole):
		return http.StatusForbidden, "INSUFFICIENT_ROLE", "insufficient role for this action"
	case errors.Is(err, domain.ErrDuplicateInvite):
		return http.StatusConflict, "DUPLICATE_INVITE", "a pending invite already exists for this email"
	case errors.Is(err, domain.ErrSeatLimitExceeded):
		return http.StatusPaymentRequired, "SEAT_LIMIT_EXCEEDED", "organization seat limit exceeded; upgrade for more seats"
	case errors.Is(err, domain.ErrInviteNotPending):
		return http.StatusConflict, "INVITE_NOT_PENDING", "invite is no longer pending"
	case errors.Is(err, domain.ErrInviteExpired):
		return http.StatusGone, "INVITE_EXPIRED", "invite has expired; ask for a new one"
	case errors.Is(err, domain.ErrInviteTokenInvalid):
		return http.StatusUnauthorized, "INVALID_INVITE_TOKEN", "invite token is invalid"
	case errors.Is(err, domain.ErrMasterOwnerImmutable):
		return http.StatusBadRequest, "MASTER_OWNER_IMMUTABLE", "the master owner cannot be removed or demoted"
	case errors.Is(err, domain.ErrSelfRemoval):
		return http.StatusBadRequest, "SELF_REMOVAL", "cannot remove yourself from the team"
	case errors.Is(err, domain.ErrProposalLocked):
		return http.StatusConflict, "PROPOSAL_LOCKED", "proposal financials are locked after the decision"
	case errors.Is(err, domain.ErrInvalidProposalStatus):
		return http.StatusConflict, "INVALID_PROPOSAL_STATUS", "invalid proposal status transition"
	case errors.Is(err, domain.ErrProposalExpired):
		return http.StatusGone, "PROPOSAL_EXPIRED", "proposal validity window has passed"
	case errors.Is(err, domain.ErrInvalidTimeOfDay):
		return http.StatusBadRequest, "INVALID_TIME_OF_DAY", "time of day must be HH:MM or HH:MM:SS"
	case errors.Is(err, domain.ErrSupplierAlreadyLinked):
		return http.StatusConflict, "SUPPLIER_ALREADY_LINKED", "supplier is already linked to a profile"
	case errors.Is(err, domain.ErrBankAccountInactive):
		return http.StatusBadRequest, "BANK_ACCOUNT_INACTIVE", "bank account is inactive"
	case errors.Is(err, domain.ErrCurrencyMismatch):
		return http.StatusBadRequest, "CURRENCY_MISMATCH", "transaction currency does not match the account"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, domain.ErrAssistUnavailable):
		return http.StatusServiceUnavailable, "ASSIST_UNAVAILABLE", "assistant is unavailable; try again later"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// extractAuthContext extracts org ID, member ID, and role from the request context.
// Returns false if auth context is missing (error response already written).
func extractAuthContext(c *gin.Context) (orgID, memberID uuid.UUID, role domain.Role, ok bool) {
	var err error
	orgID, err = middleware.GetOrgID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing organization context")
		return uuid.Nil, uuid.Nil, "", false
	}
	memberID, err = middleware.GetMemberID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing member context")
		return uuid.Nil, uuid.Nil, "", false
	}
	role = domain.Role(middleware.GetRole(c))
	return orgID, memberID, role, true
}

// extractClaims pulls the full JWT claims for service calls that gate on the
// acting member. Returns nil and writes a 401 when the context is missing.
func extractClaims(c *gin.Context) *service.Claims {
	claims, err := middleware.GetClaims(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context")
		return nil
	}
	return claims
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}

// parsePagination reads offset/limit query params with sane bounds.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrOrganizationInactive = errors.New("organization is inactive")
	ErrMemberInactive       = errors.New("member is inactive")
	ErrDuplicateEmail       = errors.New("email already exists for this organization")
	ErrDuplicateSlug        = errors.New("organization slug already exists")
	ErrInsufficientRole     = errors.New("insufficient role for this action")

	ErrDuplicateInvite      = errors.New("a pending invite already exists for this email")
	ErrSeatLimitExceeded    = errors.New("organization seat limit exceeded")
	ErrInviteNotPending     = errors.New("invite is no longer pending")
	ErrInviteExpired        = errors.New("invite has expired")
	ErrInviteTokenInvalid   = errors.New("invite token is invalid")
	ErrMasterOwnerImmutable = errors.New("the master owner cannot be removed or demoted")
	ErrSelfRemoval          = errors.New("cannot remove yourself from the team")

	ErrProposalLocked        = errors.New("proposal financials are locked after approval")
	ErrInvalidProposalStatus = errors.New("invalid proposal status transition")
	ErrProposalExpired       = errors.New("proposal validity window has passed")
	ErrInvalidTimeOfDay      = errors.New("time of day must be HH:MM or HH:MM:SS")
	ErrSupplierAlreadyLinked = errors.New("supplier is already linked to a profile")
	ErrBankAccountInactive   = errors.New("bank account is inactive")
	ErrCurrencyMismatch      = errors.New("transaction currency does not match the account")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")

	ErrAssistUnavailable = errors.New("assistant providers are unavailable")
)

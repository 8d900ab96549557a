package port

import "context"

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	// SendInviteEmail delivers an invitation carrying the accept link
	// built from the raw invite token.
	SendInviteEmail(ctx context.Context, toEmail, orgName, role, inviteToken string) error
}

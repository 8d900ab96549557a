package noop

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"setflow/internal/port"
)

type noopSender struct {
	frontendURL string
}

// NewNoopSender creates a no-op EmailSender that logs invite URLs to stdout.
func NewNoopSender(frontendURL string) port.EmailSender {
	return &noopSender{frontendURL: frontendURL}
}

func (s *noopSender) SendInviteEmail(_ context.Context, toEmail, orgName, role, inviteToken string) error {
	acceptURL := fmt.Sprintf("%s/invites/accept?token=%s", s.frontendURL, url.QueryEscape(inviteToken))
	log.Printf("[NOOP EMAIL] Invite for %s to join %s as %s: %s", toEmail, orgName, role, acceptURL)
	return nil
}

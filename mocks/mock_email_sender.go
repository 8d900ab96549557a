package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendInviteEmail(ctx context.Context, toEmail, orgName, role, inviteToken string) error {
	args := m.Called(ctx, toEmail, orgName, role, inviteToken)
	return args.Error(0)
}

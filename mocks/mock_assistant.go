package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"setflow/internal/port"
)

// MockAssistant is a mock implementation of port.Assistant.
type MockAssistant struct {
	mock.Mock
}

func (m *MockAssistant) Complete(ctx context.Context, req port.AssistRequest) (*port.AssistResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.AssistResponse), args.Error(1)
}

package assist_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"setflow/internal/assist"
	"setflow/internal/port"
	"setflow/mocks"
)

func TestFallback_FirstAssistantWins(t *testing.T) {
	primary := new(mocks.MockAssistant)
	secondary := new(mocks.MockAssistant)

	req := port.AssistRequest{Task: "script_analysis", Prompt: "Summarize the script."}
	resp := &port.AssistResponse{Content: "summary", ModelUsed: "claude-sonnet"}

	primary.On("Complete", mock.Anything, req).Return(resp, nil)

	f := assist.NewFallbackAssistant([]port.Assistant{primary, secondary}, []string{"anthropic", "openai"})

	got, err := f.Complete(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "summary", got.Content)
	secondary.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestFallback_FailsOverOnError(t *testing.T) {
	primary := new(mocks.MockAssistant)
	secondary := new(mocks.MockAssistant)

	req := port.AssistRequest{Task: "budget_estimate", Prompt: "Estimate the budget."}
	resp := &port.AssistResponse{Content: "estimate", ModelUsed: "gpt-4o"}

	primary.On("Complete", mock.Anything, req).Return(nil, errors.New("upstream 500"))
	secondary.On("Complete", mock.Anything, req).Return(resp, nil)

	f := assist.NewFallbackAssistant([]port.Assistant{primary, secondary}, []string{"anthropic", "openai"})

	got, err := f.Complete(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "estimate", got.Content)
	primary.AssertExpectations(t)
	secondary.AssertExpectations(t)
}

func TestFallback_RateLimitOpensCircuit(t *testing.T) {
	primary := new(mocks.MockAssistant)
	secondary := new(mocks.MockAssistant)

	req := port.AssistRequest{Task: "call_sheet_notes", Prompt: "Suggest notes."}
	resp := &port.AssistResponse{Content: "notes", ModelUsed: "gpt-4o"}

	primary.On("Complete", mock.Anything, req).
		Return(nil, assist.NewRateLimitError("anthropic", errors.New("429"), 120)).Once()
	secondary.On("Complete", mock.Anything, req).Return(resp, nil)

	f := assist.NewFallbackAssistant([]port.Assistant{primary, secondary}, []string{"anthropic", "openai"})

	// First call trips the primary's circuit and falls through.
	got, err := f.Complete(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "notes", got.Content)

	// Second call must skip the primary entirely while its circuit is open.
	got, err = f.Complete(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "notes", got.Content)
	primary.AssertNumberOfCalls(t, "Complete", 1)
}

func TestFallback_AllRateLimited(t *testing.T) {
	primary := new(mocks.MockAssistant)
	secondary := new(mocks.MockAssistant)

	req := port.AssistRequest{Task: "script_analysis", Prompt: "Summarize."}

	primary.On("Complete", mock.Anything, req).
		Return(nil, assist.NewRateLimitError("anthropic", errors.New("429"), 60))
	secondary.On("Complete", mock.Anything, req).
		Return(nil, assist.NewRateLimitError("openai", errors.New("429"), 30))

	f := assist.NewFallbackAssistant([]port.Assistant{primary, secondary}, []string{"anthropic", "openai"})

	_, err := f.Complete(context.Background(), req)

	var rlErr *assist.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "all", rlErr.Provider)
}

func TestFallback_AllFailed(t *testing.T) {
	primary := new(mocks.MockAssistant)

	req := port.AssistRequest{Task: "script_analysis", Prompt: "Summarize."}
	primary.On("Complete", mock.Anything, req).Return(nil, errors.New("boom"))

	f := assist.NewFallbackAssistant([]port.Assistant{primary}, []string{"anthropic"})

	_, err := f.Complete(context.Background(), req)

	require.Error(t, err)
	var rlErr *assist.RateLimitError
	assert.False(t, errors.As(err, &rlErr))
	assert.Contains(t, err.Error(), "all assistants failed")
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 30, assist.ParseRetryAfterHeader("30"))
	assert.Equal(t, 0, assist.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, assist.ParseRetryAfterHeader("Wed, 21 Oct 2026 07:28:00 GMT"))
}

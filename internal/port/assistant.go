package port

import "context"

// AssistRequest carries the material for an assistant task.
type AssistRequest struct {
	Task    string
	Prompt  string
	Payload string
}

// AssistResponse contains the assistant's answer.
type AssistResponse struct {
	Content   string
	ModelUsed string
}

// Assistant abstracts an LLM provider used for script analysis, budget
// estimation and call sheet suggestions.
type Assistant interface {
	Complete(ctx context.Context, req AssistRequest) (*AssistResponse, error)
}

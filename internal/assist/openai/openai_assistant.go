package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"setflow/internal/assist"
	"setflow/internal/config"
	"setflow/internal/port"
)

const (
	apiURL = "https://api.openai.com/v1/chat/completions"
)

// Assistant implements port.Assistant using the OpenAI Chat Completions API.
type Assistant struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewAssistant creates an OpenAI-backed assistant from a provider config.
func NewAssistant(cfg *config.AssistProviderConfig) *Assistant {
	return newAssistant(cfg, apiURL)
}

// NewAssistantWithEndpoint creates an assistant pointing at a custom API endpoint (for testing).
func NewAssistantWithEndpoint(cfg *config.AssistProviderConfig, endpoint string) *Assistant {
	return newAssistant(cfg, endpoint)
}

func newAssistant(cfg *config.AssistProviderConfig, endpoint string) *Assistant {
	model := cfg.DefaultModel
	if model == "" {
		model = "gpt-4o"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Assistant{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (a *Assistant) Complete(ctx context.Context, req port.AssistRequest) (*port.AssistResponse, error) {
	prompt := assist.BuildTaskPrompt(req.Task)

	reqBody := map[string]interface{}{
		"model":                 a.model,
		"max_completion_tokens": 4096,
		"messages": []map[string]interface{}{
			{
				"role":    "system",
				"content": prompt,
			},
			{
				"role":    "user",
				"content": buildUserContent(req),
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling openai API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := assist.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, assist.NewRateLimitError("openai", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody, a.model)
}

func buildUserContent(req port.AssistRequest) string {
	if req.Payload == "" {
		return req.Prompt
	}
	return req.Prompt + "\n\n---\n\n" + req.Payload
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func parseResponse(body []byte, model string) (*port.AssistResponse, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API: no choices")
	}

	if resp.Choices[0].FinishReason == "length" {
		return nil, fmt.Errorf("output truncated (finish_reason: length): response exceeded output token limit")
	}

	return &port.AssistResponse{
		Content:   resp.Choices[0].Message.Content,
		ModelUsed: model,
	}, nil
}

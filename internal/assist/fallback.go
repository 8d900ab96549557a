package assist

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"setflow/internal/port"
)

// circuitState tracks rate-limit backoff for a single assistant.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackAssistant tries assistants in order, skipping those with open
// circuits. It implements port.Assistant.
type FallbackAssistant struct {
	assistants []port.Assistant
	circuits   []*circuitState
	names      []string
}

// NewFallbackAssistant creates a FallbackAssistant from an ordered list of
// assistants and their names.
func NewFallbackAssistant(assistants []port.Assistant, names []string) *FallbackAssistant {
	circuits := make([]*circuitState, len(assistants))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackAssistant{
		assistants: assistants,
		circuits:   circuits,
		names:      names,
	}
}

func (f *FallbackAssistant) Complete(ctx context.Context, req port.AssistRequest) (*port.AssistResponse, error) {
	now := time.Now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, a := range f.assistants {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			log.Printf("assist.FallbackAssistant: skipping %s (circuit open until %s)", f.names[i], resetAt.Format(time.RFC3339))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := a.Complete(ctx, req)
		if err == nil {
			return out, nil
		}

		log.Printf("assist.FallbackAssistant: %s failed: %v", f.names[i], err)
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
	}

	if lastErr == nil {
		// All assistants were skipped due to open circuits
		retryAfter := time.Until(earliestReset)
		if retryAfter < 0 {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all assistants rate limited"), int(retryAfter.Seconds()))
	}

	if allRateLimited {
		retryAfter := time.Until(earliestReset)
		if retryAfter < 0 {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all assistants rate limited"), int(retryAfter.Seconds()))
	}

	return nil, fmt.Errorf("all assistants failed: %w", lastErr)
}

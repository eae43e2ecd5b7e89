// Package mock provides a scripted llm.Provider for tests.
package mock

import (
	"context"
	"sync"

	"ai-room-temperature-service/internal/service/llm"
)

// Ensure Provider implements the llm.Provider interface.
var _ llm.Provider = (*Provider)(nil)

// Provider is a scripted completion provider. It records the last request so
// tests can assert on the prompt contract, and counts calls.
type Provider struct {
	mu    sync.Mutex
	calls int
	last  llm.CompletionRequest

	// Response is returned as the completion text on success.
	Response string

	// Err, when non-nil, is returned instead of a response.
	Err error
}

// Complete implements llm.Provider.
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	p.mu.Lock()
	p.calls++
	p.last = req
	p.mu.Unlock()

	if p.Err != nil {
		return "", p.Err
	}
	return p.Response, nil
}

// Calls returns the number of Complete invocations.
func (p *Provider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// LastRequest returns the most recent request passed to Complete.
func (p *Provider) LastRequest() llm.CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

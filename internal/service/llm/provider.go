// Package llm defines the Provider interface for language model backends.
//
// The temperature analyzer only needs a single synchronous completion per
// request, so the interface is deliberately small: two-message prompt in,
// completion text out. Implementors must be safe for concurrent use.
package llm

import "context"

// CompletionRequest carries everything the model needs to produce a response.
type CompletionRequest struct {
	// SystemPrompt is the high-priority instruction sent as the "system" message.
	SystemPrompt string

	// UserPrompt is the user-role content, typically the transcript under analysis.
	UserPrompt string

	// Temperature controls output randomness. The analyzer always uses a fixed
	// low value for consistent scoring.
	Temperature float64

	// MaxTokens caps the number of completion tokens the model may generate.
	// Zero means use the provider default.
	MaxTokens int
}

// Provider wraps a hosted language model API.
type Provider interface {
	// Complete performs a single completion round-trip and returns the raw
	// response text. The call is attempted exactly once; no retries.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Package stt defines the interface for Speech-to-Text adapters.
package stt

import "context"

// Result is a one-shot transcription of a complete audio clip.
type Result struct {
	// Text is the transcript, already whitespace-trimmed.
	Text string

	// Duration is the audio duration in seconds as reported by the provider.
	// Zero when the provider does not report one.
	Duration float64
}

// Adapter defines the interface for STT providers (OpenAI Whisper, Google, mock).
// Implementations must be safe for concurrent use; each call owns its own
// request state.
type Adapter interface {
	// Transcribe sends the staged audio file to the provider and returns the
	// transcript. The call is attempted exactly once; transport and service
	// failures are returned as errors for the caller to absorb.
	Transcribe(ctx context.Context, audioPath string) (Result, error)

	// Name identifies the provider for logs and metrics.
	Name() string
}

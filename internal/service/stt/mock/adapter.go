// Package mock provides a scripted stt.Adapter for tests and local development.
package mock

import (
	"context"
	"sync"

	"ai-room-temperature-service/internal/service/stt"
)

// Ensure Adapter implements the stt.Adapter interface.
var _ stt.Adapter = (*Adapter)(nil)

// Adapter is a scripted STT adapter. It returns the configured Text or Err and
// counts calls so tests can assert how often transcription was attempted.
type Adapter struct {
	mu    sync.Mutex
	calls int

	// Text is returned as the transcript on success.
	Text string

	// Duration is reported as the audio duration in seconds.
	Duration float64

	// Err, when non-nil, is returned instead of a result.
	Err error
}

// Transcribe implements stt.Adapter.
func (a *Adapter) Transcribe(ctx context.Context, audioPath string) (stt.Result, error) {
	a.mu.Lock()
	a.calls++
	a.mu.Unlock()

	if a.Err != nil {
		return stt.Result{}, a.Err
	}
	return stt.Result{Text: a.Text, Duration: a.Duration}, nil
}

// Calls returns the number of Transcribe invocations.
func (a *Adapter) Calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

// Name implements stt.Adapter.
func (a *Adapter) Name() string {
	return "mock"
}

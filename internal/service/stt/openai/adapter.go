// Package openai provides an stt.Adapter backed by the OpenAI Whisper API.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"ai-room-temperature-service/internal/service/stt"
)

// DefaultModel is the default OpenAI transcription model.
const DefaultModel = oai.AudioModelWhisper1

// Ensure Adapter implements the stt.Adapter interface.
var _ stt.Adapter = (*Adapter)(nil)

// Adapter implements stt.Adapter using the OpenAI audio transcription API.
type Adapter struct {
	client oai.Client
	model  string
}

// config holds optional configuration for the adapter.
type config struct {
	baseURL string
	timeout time.Duration
}

// Option is a functional option for Adapter.
type Option func(*config)

// WithBaseURL overrides the default OpenAI API base URL.
func WithBaseURL(url string) Option {
	return func(c *config) {
		c.baseURL = url
	}
}

// WithTimeout sets a per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// New constructs a new OpenAI Whisper adapter.
// If model is empty, DefaultModel (whisper-1) is used.
func New(apiKey string, model string, opts ...Option) (*Adapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai stt: apiKey must not be empty")
	}
	if model == "" {
		model = DefaultModel
	}

	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.timeout > 0 {
		reqOpts = append(reqOpts, option.WithHTTPClient(&http.Client{
			Timeout: cfg.timeout,
		}))
	}

	client := oai.NewClient(reqOpts...)
	return &Adapter{client: client, model: model}, nil
}

// Transcribe implements stt.Adapter.
func (a *Adapter) Transcribe(ctx context.Context, audioPath string) (stt.Result, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return stt.Result{}, fmt.Errorf("openai stt: open audio: %w", err)
	}
	defer f.Close()

	resp, err := a.client.Audio.Transcriptions.New(ctx, oai.AudioTranscriptionNewParams{
		Model:          a.model,
		File:           f,
		ResponseFormat: oai.AudioResponseFormatJSON,
	})
	if err != nil {
		return stt.Result{}, fmt.Errorf("openai stt: transcribe: %w", err)
	}

	return stt.Result{Text: strings.TrimSpace(resp.Text)}, nil
}

// Name implements stt.Adapter.
func (a *Adapter) Name() string {
	return "openai"
}

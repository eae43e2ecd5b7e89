// Package google provides an stt.Adapter backed by Google Cloud Speech-to-Text.
package google

import (
	"context"
	"fmt"
	"os"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"

	"ai-room-temperature-service/internal/service/stt"
)

// Ensure Adapter implements the stt.Adapter interface.
var _ stt.Adapter = (*Adapter)(nil)

// Adapter implements stt.Adapter using the Google Cloud Speech batch
// Recognize API. Only self-describing containers (WAV, FLAC) work with
// ENCODING_UNSPECIFIED; callers should prefer the OpenAI adapter for
// compressed formats.
type Adapter struct {
	client *speech.Client
}

// New creates a new Google STT adapter.
// Requires GOOGLE_APPLICATION_CREDENTIALS environment variable to be set.
func New(ctx context.Context) (*Adapter, error) {
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("google stt: new client: %w", err)
	}
	return &Adapter{client: c}, nil
}

// Transcribe implements stt.Adapter.
func (a *Adapter) Transcribe(ctx context.Context, audioPath string) (stt.Result, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return stt.Result{}, fmt.Errorf("google stt: read audio: %w", err)
	}

	resp, err := a.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_ENCODING_UNSPECIFIED,
			LanguageCode:               "en-US",
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: data},
		},
	})
	if err != nil {
		return stt.Result{}, fmt.Errorf("google stt: recognize: %w", err)
	}

	var parts []string
	for _, r := range resp.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		parts = append(parts, r.Alternatives[0].Transcript)
	}

	return stt.Result{Text: strings.TrimSpace(strings.Join(parts, " "))}, nil
}

// Close releases the underlying client connection.
func (a *Adapter) Close() error {
	return a.client.Close()
}

// Name implements stt.Adapter.
func (a *Adapter) Name() string {
	return "google"
}

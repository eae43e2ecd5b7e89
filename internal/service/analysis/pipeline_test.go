package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-room-temperature-service/internal/models"
	sttmock "ai-room-temperature-service/internal/service/stt/mock"
)

// fakeScorer is a scripted Scorer that counts invocations.
type fakeScorer struct {
	calls  int
	result models.TemperatureResult
}

func (f *fakeScorer) Analyze(ctx context.Context, transcript string) models.TemperatureResult {
	f.calls++
	return f.result
}

func TestTranscribe_Success(t *testing.T) {
	adapter := &sttmock.Adapter{Text: "hello there everyone", Duration: 4.2}
	p := New(adapter, &fakeScorer{})

	res := p.Transcribe(context.Background(), "/tmp/clip.wav")

	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if res.Text != "hello there everyone" {
		t.Errorf("text = %q", res.Text)
	}
	if res.Duration != 4.2 {
		t.Errorf("duration = %f", res.Duration)
	}
	if res.Warning != "" {
		t.Errorf("unexpected warning %q", res.Warning)
	}
}

func TestTranscribe_AbsorbsErrors(t *testing.T) {
	adapter := &sttmock.Adapter{Err: errors.New("whisper api unreachable")}
	p := New(adapter, &fakeScorer{})

	res := p.Transcribe(context.Background(), "/tmp/clip.wav")

	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Error != "whisper api unreachable" {
		t.Errorf("error = %q", res.Error)
	}
	if res.Text != "" {
		t.Errorf("failed transcriptions must carry no text, got %q", res.Text)
	}
}

func TestTranscribe_ShortTextWarning(t *testing.T) {
	adapter := &sttmock.Adapter{Text: "hm"}
	p := New(adapter, &fakeScorer{})

	res := p.Transcribe(context.Background(), "/tmp/clip.wav")

	if !res.Success {
		t.Fatal("short text is still a success")
	}
	if res.Warning != "Very short or empty transcription" {
		t.Errorf("warning = %q", res.Warning)
	}
}

func TestAnalyzeFile_TranscriptionFailureSkipsScoring(t *testing.T) {
	adapter := &sttmock.Adapter{Err: errors.New("connection refused")}
	scorer := &fakeScorer{}
	p := New(adapter, scorer)

	res := p.AnalyzeFile(context.Background(), "/tmp/clip.wav")

	if res.Success {
		t.Fatal("expected failure")
	}
	if scorer.calls != 0 {
		t.Errorf("scorer must not run after a failed transcription, got %d calls", scorer.calls)
	}
	if adapter.Calls() != 1 {
		t.Errorf("adapter calls = %d", adapter.Calls())
	}
	if res.Temperature != 30 || res.Confidence != 0.1 {
		t.Errorf("expected safe default 30/0.1, got %d/%f", res.Temperature, res.Confidence)
	}
	if res.Error != "Transcription failed: connection refused" {
		t.Errorf("error = %q", res.Error)
	}
	if res.AnalysisSummary != "Analysis failed due to transcription error" {
		t.Errorf("summary = %q", res.AnalysisSummary)
	}
	if res.Topics == nil || res.EmotionalIndicators == nil {
		t.Error("slices must be empty, not nil")
	}
}

func TestAnalyzeFile_Success(t *testing.T) {
	adapter := &sttmock.Adapter{Text: "the quarterly numbers look terrible"}
	scorer := &fakeScorer{result: models.TemperatureResult{
		Temperature:         58,
		Confidence:          0.8,
		AnalysisSummary:     "Tense discussion about finances",
		Topics:              []string{"finances"},
		EmotionalIndicators: []string{"concern"},
		Success:             true,
	}}
	p := New(adapter, scorer)

	before := time.Now().UTC()
	res := p.AnalyzeFile(context.Background(), "/tmp/clip.wav")

	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if scorer.calls != 1 {
		t.Errorf("scorer calls = %d", scorer.calls)
	}
	if res.Temperature != 58 || res.Confidence != 0.8 {
		t.Errorf("got %d/%f", res.Temperature, res.Confidence)
	}
	if res.Transcript != "the quarterly numbers look terrible" {
		t.Errorf("transcript = %q", res.Transcript)
	}
	if res.TranscriptLength != len("the quarterly numbers look terrible") {
		t.Errorf("transcript length = %d", res.TranscriptLength)
	}
	if res.Timestamp.Before(before) || res.Timestamp.After(time.Now().UTC()) {
		t.Errorf("timestamp %v not stamped at assembly time", res.Timestamp)
	}
}

func TestAnalyzeFile_ScorerFailure(t *testing.T) {
	adapter := &sttmock.Adapter{Text: "a perfectly reasonable transcript"}
	scorer := &fakeScorer{result: models.TemperatureResult{
		Temperature:     30,
		Confidence:      0.2,
		AnalysisSummary: "Analysis failed: model timeout",
		Success:         false,
		Error:           "model timeout",
	}}
	p := New(adapter, scorer)

	res := p.AnalyzeFile(context.Background(), "/tmp/clip.wav")

	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Error != "model timeout" {
		t.Errorf("error = %q", res.Error)
	}
	if res.Transcript != "a perfectly reasonable transcript" {
		t.Error("transcript must still be attached on scoring failure")
	}
}

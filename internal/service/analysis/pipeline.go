// Package analysis provides the transcribe-then-score pipeline that turns a
// staged audio file into a final temperature verdict.
package analysis

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"ai-room-temperature-service/internal/models"
	"ai-room-temperature-service/internal/observability/logging"
	"ai-room-temperature-service/internal/observability/metrics"
	"ai-room-temperature-service/internal/service/stt"
)

// minMeaningfulTranscript is the transcript length below which the
// transcription step flags likely silence. The result still counts as a
// success; the warning is informational only.
const minMeaningfulTranscript = 3

// Scorer scores a transcript. Implemented by temperature.Analyzer.
type Scorer interface {
	Analyze(ctx context.Context, transcript string) models.TemperatureResult
}

// Result is the assembled outcome of one complete analysis.
type Result struct {
	Success             bool
	Error               string
	Temperature         int
	Confidence          float64
	AnalysisSummary     string
	Transcript          string
	TranscriptLength    int
	Topics              []string
	EmotionalIndicators []string
	Timestamp           time.Time
}

// Pipeline runs transcription followed by temperature scoring. It holds no
// per-request state and is safe for concurrent use.
type Pipeline struct {
	adapter stt.Adapter
	scorer  Scorer
	log     zerolog.Logger
	metrics *metrics.Metrics
}

// New constructs a Pipeline from an STT adapter and a transcript scorer.
func New(adapter stt.Adapter, scorer Scorer) *Pipeline {
	return &Pipeline{
		adapter: adapter,
		scorer:  scorer,
		log:     logging.WithComponent("analysis"),
		metrics: metrics.DefaultMetrics,
	}
}

// Transcribe runs the speech-to-text step. Transport and service failures are
// absorbed into the result; callers must check Success rather than relying on
// error propagation.
func (p *Pipeline) Transcribe(ctx context.Context, audioPath string) models.TranscriptionResult {
	start := time.Now()
	p.log.Info().Str("path", audioPath).Str("provider", p.adapter.Name()).Msg("Starting transcription")

	res, err := p.adapter.Transcribe(ctx, audioPath)
	p.metrics.RecordTranscription(p.adapter.Name(), err, time.Since(start).Seconds(), utf8.RuneCountInString(res.Text))
	if err != nil {
		p.log.Error().Err(err).Msg("Transcription error")
		return models.TranscriptionResult{
			Text:    "",
			Success: false,
			Error:   err.Error(),
		}
	}

	out := models.TranscriptionResult{
		Text:     res.Text,
		Success:  true,
		Duration: res.Duration,
	}
	if utf8.RuneCountInString(res.Text) < minMeaningfulTranscript {
		p.log.Warn().Msg("Transcription resulted in very short or empty text")
		out.Warning = "Very short or empty transcription"
	}

	p.log.Info().Int("transcriptLength", utf8.RuneCountInString(res.Text)).Msg("Transcription completed")
	return out
}

// AnalyzeFile runs the complete pipeline: transcription, then (only when
// transcription succeeded) temperature scoring, then assembly. The timestamp
// is stamped fresh at assembly time.
func (p *Pipeline) AnalyzeFile(ctx context.Context, audioPath string) Result {
	transcription := p.Transcribe(ctx, audioPath)

	if !transcription.Success {
		// Safe default without ever invoking the scoring step.
		return Result{
			Success:             false,
			Error:               "Transcription failed: " + transcription.Error,
			Temperature:         30,
			Confidence:          0.1,
			AnalysisSummary:     "Analysis failed due to transcription error",
			Topics:              []string{},
			EmotionalIndicators: []string{},
			Timestamp:           time.Now().UTC(),
		}
	}

	if transcription.Warning != "" {
		p.log.Info().Str("warning", transcription.Warning).Msg("Transcription warning")
	}

	score := p.scorer.Analyze(ctx, transcription.Text)

	result := Result{
		Success:             score.Success,
		Temperature:         score.Temperature,
		Confidence:          score.Confidence,
		AnalysisSummary:     score.AnalysisSummary,
		Transcript:          transcription.Text,
		TranscriptLength:    utf8.RuneCountInString(transcription.Text),
		Topics:              score.Topics,
		EmotionalIndicators: score.EmotionalIndicators,
		Timestamp:           time.Now().UTC(),
	}
	if !score.Success {
		result.Error = score.Error
		if result.Error == "" {
			result.Error = "Analysis failed"
		}
	}

	p.log.Info().
		Bool("success", result.Success).
		Int("temperature", result.Temperature).
		Float64("confidence", result.Confidence).
		Msg("Complete analysis finished")
	return result
}

// Package temperature scores conversation transcripts on a 1-100
// "conversational temperature" scale.
//
// Scoring is a layered policy evaluated in strict priority order: trivial
// transcripts are short-circuited by local heuristics, everything else is
// delegated to a hosted language model whose response is defensively parsed
// through a fallback chain (strict JSON parse, numeric text extraction,
// keyword estimate). Whatever happens upstream, the returned temperature is
// always in [1,100] and confidence in [0.0,1.0].
package temperature

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"ai-room-temperature-service/internal/models"
	"ai-room-temperature-service/internal/observability/logging"
	"ai-room-temperature-service/internal/observability/metrics"
	"ai-room-temperature-service/internal/service/llm"
)

// fillerWords is the fixed set of non-substantive utterances treated as
// non-conversational.
var fillerWords = map[string]struct{}{
	"um": {}, "uh": {}, "hmm": {}, "ah": {}, "oh": {}, "mm": {},
	"mhm": {}, "yeah": {}, "yep": {}, "okay": {}, "ok": {},
}

// Analyzer scores transcripts. It is stateless apart from the provider handle
// and safe for concurrent use.
type Analyzer struct {
	provider llm.Provider
	log      zerolog.Logger
	metrics  *metrics.Metrics
}

// New constructs an Analyzer backed by the given completion provider.
func New(provider llm.Provider) *Analyzer {
	return &Analyzer{
		provider: provider,
		log:      logging.WithComponent("temperature"),
		metrics:  metrics.DefaultMetrics,
	}
}

// Analyze scores a transcript. The first matching rule wins; later rules are
// never reached for that transcript.
func (a *Analyzer) Analyze(ctx context.Context, transcript string) models.TemperatureResult {
	start := time.Now()
	transcript = strings.TrimSpace(transcript)
	length := utf8.RuneCountInString(transcript)

	if transcript == "" {
		a.record("heuristic", 20, start)
		return models.TemperatureResult{
			Temperature:         20,
			Confidence:          0.9,
			AnalysisSummary:     "No speech detected - silence or background noise only",
			Topics:              []string{},
			EmotionalIndicators: []string{"silence"},
			Success:             true,
		}
	}

	if length < 10 {
		a.record("heuristic", 22, start)
		return models.TemperatureResult{
			Temperature:         22,
			Confidence:          0.7,
			AnalysisSummary:     fmt.Sprintf(`Minimal speech detected: "%s" - likely background sounds`, transcript),
			Topics:              []string{},
			EmotionalIndicators: []string{"minimal_speech"},
			Success:             true,
		}
	}

	if length < 30 {
		words := strings.Fields(strings.ToLower(transcript))
		if len(words) <= 3 && allFiller(words) {
			a.record("heuristic", 24, start)
			return models.TemperatureResult{
				Temperature:         24,
				Confidence:          0.8,
				AnalysisSummary:     fmt.Sprintf(`Only filler words detected: "%s" - no meaningful conversation`, transcript),
				Topics:              []string{},
				EmotionalIndicators: []string{"filler_words"},
				Success:             true,
			}
		}
		a.log.Info().Str("transcript", transcript).Msg("Analyzing short transcript")
	}

	return a.delegate(ctx, transcript, start)
}

// delegate sends the transcript to the language model and defensively parses
// the response.
func (a *Analyzer) delegate(ctx context.Context, transcript string, start time.Time) models.TemperatureResult {
	a.log.Info().Int("transcriptLength", utf8.RuneCountInString(transcript)).Msg("Starting temperature analysis")

	text, err := a.provider.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt(transcript),
		Temperature:  samplingTemperature,
		MaxTokens:    maxCompletionTokens,
	})
	if err != nil {
		a.log.Error().Err(err).Msg("Temperature analysis failed")
		a.metrics.RecordFallback("provider_error")
		a.record("error", 30, start)
		return models.TemperatureResult{
			Temperature:         30,
			Confidence:          0.2,
			AnalysisSummary:     fmt.Sprintf("Analysis failed: %s", err.Error()),
			Topics:              []string{},
			EmotionalIndicators: []string{},
			Success:             false,
			Error:               err.Error(),
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		a.log.Warn().Msg("Model returned empty response")
		a.metrics.RecordFallback("empty_response")
		a.record("fallback", 25, start)
		return models.TemperatureResult{
			Temperature:         25,
			Confidence:          0.3,
			AnalysisSummary:     "AI analysis returned empty response - defaulting to neutral temperature",
			Topics:              []string{},
			EmotionalIndicators: []string{"empty_ai_response"},
			Success:             true,
		}
	}

	outcome := "model"
	v, ok := parseVerdict(text)
	if !ok {
		a.log.Warn().Msg("Failed to parse JSON response, attempting text extraction")
		a.metrics.RecordFallback("text_extraction")
		v = extractVerdict(text)
		outcome = "fallback"
	}

	result := clampVerdict(v)
	result.Success = true

	a.record(outcome, result.Temperature, start)
	a.log.Info().
		Int("temperature", result.Temperature).
		Float64("confidence", result.Confidence).
		Msg("Temperature analysis completed")
	return result
}

func (a *Analyzer) record(outcome string, temperature int, start time.Time) {
	a.metrics.RecordAnalysis(outcome, temperature, time.Since(start).Seconds())
}

func allFiller(words []string) bool {
	for _, w := range words {
		if _, ok := fillerWords[w]; !ok {
			return false
		}
	}
	return true
}

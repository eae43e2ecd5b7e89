package temperature

import (
	"encoding/json"
	"fmt"
	"strings"

	"ai-room-temperature-service/internal/models"
)

// maxSummaryLength bounds analysis_summary regardless of model verbosity.
const maxSummaryLength = 200

// verdict is the loosely-typed structured result pulled out of a model
// response before validation. Temperature and Confidence stay untyped because
// the service enforces no schema; clampVerdict coerces them.
type verdict struct {
	Temperature any
	Confidence  any
	Reasoning   string
	Topics      []string
	Indicators  []string
}

// parseVerdict attempts a strict JSON object parse of the response text.
func parseVerdict(text string) (verdict, bool) {
	var data map[string]any
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return verdict{}, false
	}

	v := verdict{
		Temperature: data["temperature"],
		Confidence:  data["confidence"],
		Topics:      toStrings(data["topics"]),
		Indicators:  toStrings(data["emotional_indicators"]),
	}
	if s, ok := data["reasoning"].(string); ok {
		v.Reasoning = s
	}
	return v, true
}

// clampVerdict validates and clamps a model-sourced verdict into the bounded
// output contract. Temperature is always in [1,100] and confidence in [0,1].
func clampVerdict(v verdict) models.TemperatureResult {
	temperature := 40
	if n, ok := v.Temperature.(float64); ok {
		temperature = int(n)
	}
	temperature = clampInt(temperature, 1, 100)

	confidence := 0.5
	if f, ok := v.Confidence.(float64); ok {
		confidence = f
	}
	confidence = clampFloat(confidence, 0.0, 1.0)

	reasoning := v.Reasoning
	if reasoning == "" {
		reasoning = "No reasoning provided"
	}

	summary := reasoning
	if len(v.Topics) > 0 {
		summary += fmt.Sprintf(" Topics: %s.", strings.Join(firstN(v.Topics, 3), ", "))
	}
	if len(v.Indicators) > 0 {
		summary += fmt.Sprintf(" Emotional indicators: %s.", strings.Join(firstN(v.Indicators, 3), ", "))
	}
	if r := []rune(summary); len(r) > maxSummaryLength {
		summary = string(r[:maxSummaryLength-3]) + "..."
	}

	topics := v.Topics
	if topics == nil {
		topics = []string{}
	}
	indicators := v.Indicators
	if indicators == nil {
		indicators = []string{}
	}

	return models.TemperatureResult{
		Temperature:         temperature,
		Confidence:          confidence,
		AnalysisSummary:     summary,
		Topics:              topics,
		EmotionalIndicators: indicators,
	}
}

// toStrings converts a decoded JSON array into a string slice. Non-array
// values yield nil; non-string elements are stringified as-is.
func toStrings(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		} else {
			out = append(out, fmt.Sprint(e))
		}
	}
	return out
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package temperature

import (
	"regexp"
	"strconv"
	"strings"
)

// fallbackReasoning is the reasoning attached to verdicts recovered from an
// unparseable model response.
const fallbackReasoning = "Fallback analysis due to JSON parsing error"

// tempPatterns are tried in order against the lowercased response text; the
// first match anywhere wins.
var tempPatterns = []*regexp.Regexp{
	regexp.MustCompile(`temperature[:\s]*(\d+)`),
	regexp.MustCompile(`score[:\s]*(\d+)`),
	regexp.MustCompile(`rating[:\s]*(\d+)`),
	regexp.MustCompile(`(\d+)[/\s]*100`),
	regexp.MustCompile(`(\d+)\s*out\s*of\s*100`),
}

var hotKeywords = []string{"angry", "heated", "argument", "fighting", "shouting", "politics", "controversial"}

var coolKeywords = []string{"calm", "peaceful", "quiet", "normal", "friendly", "casual"}

// extractTemperature recovers a temperature score from free-form response
// text: numeric patterns first, keyword balance otherwise.
func extractTemperature(text string) int {
	lower := strings.ToLower(text)

	for _, pattern := range tempPatterns {
		if m := pattern.FindStringSubmatch(lower); m != nil {
			if temp, err := strconv.Atoi(m[1]); err == nil {
				return clampInt(temp, 1, 100)
			}
		}
	}

	// No numeric mention; estimate from keyword balance. Each keyword counts
	// once regardless of how often it occurs.
	hotCount := 0
	for _, kw := range hotKeywords {
		if strings.Contains(lower, kw) {
			hotCount++
		}
	}
	coolCount := 0
	for _, kw := range coolKeywords {
		if strings.Contains(lower, kw) {
			coolCount++
		}
	}

	switch {
	case hotCount > coolCount:
		return 65
	case coolCount > hotCount:
		return 25
	default:
		return 40
	}
}

// extractVerdict builds a synthetic verdict from unparseable response text.
func extractVerdict(text string) verdict {
	return verdict{
		Temperature: float64(extractTemperature(text)),
		Confidence:  0.5,
		Reasoning:   fallbackReasoning,
	}
}

// Package models defines the data structures exchanged between the pipeline
// steps and over the wire.
package models

// TranscriptionResult is the outcome of the speech-to-text step. Failures are
// reported through Success/Error rather than a Go error so the pipeline can
// always assemble a bounded response.
type TranscriptionResult struct {
	Text     string  `json:"text"`
	Success  bool    `json:"success"`
	Error    string  `json:"error,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Warning  string  `json:"warning,omitempty"`
}

// TemperatureResult is the outcome of the temperature scoring step.
// Temperature is always in [1,100] and Confidence in [0.0,1.0], regardless of
// what the upstream model returned.
type TemperatureResult struct {
	Temperature         int      `json:"temperature"`
	Confidence          float64  `json:"confidence"`
	AnalysisSummary     string   `json:"analysis_summary"`
	Topics              []string `json:"topics"`
	EmotionalIndicators []string `json:"emotional_indicators"`
	Success             bool     `json:"success"`
	Error               string   `json:"error,omitempty"`
}

// AnalysisResponse is the flat JSON object returned to HTTP callers on success.
// Topics, EmotionalIndicators and Transcript are only populated in debug mode.
type AnalysisResponse struct {
	AnalysisID          string   `json:"analysis_id"`
	Temperature         int      `json:"temperature"`
	Confidence          float64  `json:"confidence"`
	AnalysisSummary     string   `json:"analysis_summary"`
	AudioDuration       float64  `json:"audio_duration"`
	TranscriptLength    int      `json:"transcript_length"`
	Timestamp           string   `json:"timestamp"`
	Topics              []string `json:"topics,omitempty"`
	EmotionalIndicators []string `json:"emotional_indicators,omitempty"`
	Transcript          string   `json:"transcript,omitempty"`
}

// ErrorResponse is the structured error object returned for any failure class.
type ErrorResponse struct {
	Error     string `json:"error"`
	Details   string `json:"details"`
	Timestamp string `json:"timestamp"`
}

// AnalysisErrorResponse is returned when the pipeline could not complete; it
// still carries the safe default temperature and confidence.
type AnalysisErrorResponse struct {
	Error       string  `json:"error"`
	Details     string  `json:"details"`
	Temperature int     `json:"temperature"`
	Confidence  float64 `json:"confidence"`
	Timestamp   string  `json:"timestamp"`
}

// AnalysisCompleted is the event published after a verdict has been assembled.
type AnalysisCompleted struct {
	EventType        string  `json:"eventType"`
	AnalysisID       string  `json:"analysisId"`
	Temperature      int     `json:"temperature"`
	Confidence       float64 `json:"confidence"`
	TranscriptLength int     `json:"transcriptLength"`
	AudioDuration    float64 `json:"audioDuration"`
	Success          bool    `json:"success"`
	Timestamp        int64   `json:"timestamp"`
}

package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ai-room-temperature-service/internal/audiofile"
	"ai-room-temperature-service/internal/config"
	"ai-room-temperature-service/internal/events"
	"ai-room-temperature-service/internal/models"
	"ai-room-temperature-service/internal/observability/logging"
	"ai-room-temperature-service/internal/observability/metrics"
	"ai-room-temperature-service/internal/service/analysis"
)

// serviceVersion is reported by the health endpoint.
const serviceVersion = "1.0.0"

// debugTranscriptLimit caps the transcript echoed back in debug responses.
const debugTranscriptLimit = 500

// Pipeline is the analysis entrypoint the handler drives. Implemented by
// analysis.Pipeline.
type Pipeline interface {
	AnalyzeFile(ctx context.Context, audioPath string) analysis.Result
}

// Handler serves the public API endpoints.
type Handler struct {
	cfg       *config.Configuration
	pipeline  Pipeline
	publisher *events.Publisher
	metrics   *metrics.Metrics
	log       zerolog.Logger
}

// NewHandler constructs the API handler.
func NewHandler(cfg *config.Configuration, pipeline Pipeline, publisher *events.Publisher) *Handler {
	return &Handler{
		cfg:       cfg,
		pipeline:  pipeline,
		publisher: publisher,
		metrics:   metrics.DefaultMetrics,
		log:       logging.WithComponent("httpapi"),
	}
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   serviceVersion,
	})
}

// AnalyzeAudio accepts a multipart upload in the "audio" field, stages it,
// validates it, runs the analysis pipeline and returns the verdict. The staged
// file is removed before returning, success or failure.
func (h *Handler) AnalyzeAudio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqLog := h.log.With().Str("remoteAddr", r.RemoteAddr).Logger()
	reqLog.Info().Msg("Received audio analysis request")

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxFileSizeBytes())

	file, header, err := r.FormFile("audio")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.metrics.RecordUploadRejected("too_large")
			writeError(w, http.StatusRequestEntityTooLarge, "File too large",
				fmt.Sprintf("Maximum file size is %dMB", h.cfg.MaxFileSizeMB))
			return
		}
		h.metrics.RecordUploadRejected("missing_field")
		writeError(w, http.StatusBadRequest, "No audio file provided",
			`Request must include an audio file in the "audio" field`)
		return
	}
	defer file.Close()

	if err := audiofile.ValidateFilename(header.Filename); err != nil {
		reqLog.Warn().Err(err).Str("filename", header.Filename).Msg("Audio file validation failed")
		h.metrics.RecordUploadRejected("bad_extension")
		writeError(w, http.StatusBadRequest, "Invalid audio file", err.Error())
		return
	}

	stagedPath, size, err := audiofile.Stage(h.cfg.UploadDir, header.Filename, file)
	if err != nil {
		reqLog.Error().Err(err).Msg("Failed to save temporary file")
		writeError(w, http.StatusInternalServerError, "File processing error",
			"Failed to process uploaded file")
		return
	}
	defer audiofile.Cleanup(stagedPath)

	h.metrics.RecordUploadAccepted(size)

	duration, err := audiofile.ValidateDuration(ctx, stagedPath, h.cfg.MinAudioDuration, h.cfg.MaxAudioDuration)
	if err != nil {
		reqLog.Warn().Err(err).Msg("Audio duration validation failed")
		h.metrics.RecordUploadRejected("bad_duration")
		writeError(w, http.StatusBadRequest, "Invalid audio duration", err.Error())
		return
	}

	analysisID := uuid.NewString()
	reqLog.Info().
		Str("analysisId", analysisID).
		Str("filename", header.Filename).
		Float64("audioDuration", duration).
		Msg("Processing audio file")

	result := h.pipeline.AnalyzeFile(ctx, stagedPath)

	h.publishEvent(ctx, analysisID, duration, result)

	if !result.Success {
		writeJSON(w, http.StatusInternalServerError, models.AnalysisErrorResponse{
			Error:       "Analysis incomplete",
			Details:     result.Error,
			Temperature: result.Temperature,
			Confidence:  result.Confidence,
			Timestamp:   result.Timestamp.Format(time.RFC3339),
		})
		return
	}

	resp := models.AnalysisResponse{
		AnalysisID:       analysisID,
		Temperature:      result.Temperature,
		Confidence:       result.Confidence,
		AnalysisSummary:  result.AnalysisSummary,
		AudioDuration:    duration,
		TranscriptLength: result.TranscriptLength,
		Timestamp:        result.Timestamp.Format(time.RFC3339),
	}
	if h.cfg.Debug {
		resp.Topics = result.Topics
		resp.EmotionalIndicators = result.EmotionalIndicators
		resp.Transcript = truncate(result.Transcript, debugTranscriptLimit)
	}

	reqLog.Info().
		Str("analysisId", analysisID).
		Int("temperature", resp.Temperature).
		Msg("Analysis completed successfully")
	writeJSON(w, http.StatusOK, resp)
}

// publishEvent emits the verdict event. Publish failures are logged by the
// publisher and never affect the HTTP response.
func (h *Handler) publishEvent(ctx context.Context, analysisID string, duration float64, result analysis.Result) {
	_ = h.publisher.Publish(ctx, analysisID, models.AnalysisCompleted{
		EventType:        "interaction.analysis.completed",
		AnalysisID:       analysisID,
		Temperature:      result.Temperature,
		Confidence:       result.Confidence,
		TranscriptLength: result.TranscriptLength,
		AudioDuration:    duration,
		Success:          result.Success,
		Timestamp:        time.Now().UnixMilli(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, errMsg, details string) {
	writeJSON(w, status, models.ErrorResponse{
		Error:     errMsg,
		Details:   details,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

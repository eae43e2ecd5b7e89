// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "room_temperature"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// HTTP request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Upload metrics
	UploadBytes     prometheus.Counter
	UploadsRejected *prometheus.CounterVec

	// Transcription metrics
	TranscriptionsTotal  *prometheus.CounterVec
	TranscriptionLatency *prometheus.HistogramVec
	TranscriptLength     prometheus.Histogram

	// Temperature analysis metrics
	AnalysesTotal    *prometheus.CounterVec
	AnalysisLatency  prometheus.Histogram
	AnalysisFallback *prometheus.CounterVec
	TemperatureScore prometheus.Histogram

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route and status code",
		}, []string{"route", "code"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"route"}),

		UploadBytes: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_bytes_total",
			Help:      "Total audio bytes accepted for analysis",
		}),
		UploadsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_rejected_total",
			Help:      "Total uploads rejected before any upstream call",
		}, []string{"reason"}),

		TranscriptionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcriptions_total",
			Help:      "Total transcription attempts by provider and outcome",
		}, []string{"provider", "outcome"}),
		TranscriptionLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transcription_latency_seconds",
			Help:      "Speech-to-text round-trip latency in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"provider"}),
		TranscriptLength: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transcript_length_chars",
			Help:      "Length of returned transcripts in characters",
			Buckets:   []float64{0, 10, 30, 100, 300, 1000, 3000, 10000},
		}),

		AnalysesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Total temperature analyses by outcome (model, heuristic, error)",
		}, []string{"outcome"}),
		AnalysisLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_latency_seconds",
			Help:      "Temperature scoring latency in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		AnalysisFallback: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_fallbacks_total",
			Help:      "Total times a fallback stage produced the verdict",
		}, []string{"stage"}),
		TemperatureScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "temperature_score",
			Help:      "Distribution of emitted temperature scores",
			Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),

		KafkaPublishTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic"}),
		KafkaPublishErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic"}),
		KafkaPublishLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),
	}
}

// RecordRequest records a completed HTTP request.
func (m *Metrics) RecordRequest(route, code string, durationSeconds float64) {
	m.RequestsTotal.WithLabelValues(route, code).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(durationSeconds)
}

// RecordUploadAccepted records an upload that passed validation.
func (m *Metrics) RecordUploadAccepted(bytes int64) {
	m.UploadBytes.Add(float64(bytes))
}

// RecordUploadRejected records an upload rejected before any upstream call.
func (m *Metrics) RecordUploadRejected(reason string) {
	m.UploadsRejected.WithLabelValues(reason).Inc()
}

// RecordTranscription records a transcription attempt.
func (m *Metrics) RecordTranscription(provider string, err error, latencySeconds float64, textLen int) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.TranscriptionsTotal.WithLabelValues(provider, outcome).Inc()
	m.TranscriptionLatency.WithLabelValues(provider).Observe(latencySeconds)
	if err == nil {
		m.TranscriptLength.Observe(float64(textLen))
	}
}

// RecordAnalysis records a completed temperature analysis.
func (m *Metrics) RecordAnalysis(outcome string, temperature int, latencySeconds float64) {
	m.AnalysesTotal.WithLabelValues(outcome).Inc()
	m.AnalysisLatency.Observe(latencySeconds)
	m.TemperatureScore.Observe(float64(temperature))
}

// RecordFallback records which fallback stage produced the verdict.
func (m *Metrics) RecordFallback(stage string) {
	m.AnalysisFallback.WithLabelValues(stage).Inc()
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic string, err error, latencySeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(latencySeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic).Inc()
	}
}

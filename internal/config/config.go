// Package config loads process-wide configuration from environment variables.
// The resulting Configuration is constructed once at startup and passed by
// reference into the pipeline; it is never mutated afterwards.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// KafkaConfig holds the optional analysis event publishing settings.
type KafkaConfig struct {
	Enabled   bool
	Brokers   []string
	Topic     string
	Principal string
}

// Configuration holds all settings for the service.
type Configuration struct {
	Port        string
	MetricsPort string
	Env         string
	Debug       bool

	// Upstream AI services
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	WhisperModel    string
	CompletionModel string
	STTProvider     string // "openai", "google" or "mock"

	// Per-call timeouts for the two upstream calls. The hosted clients have no
	// usable defaults for long uploads, so these are always set explicitly.
	TranscribeTimeout time.Duration
	CompletionTimeout time.Duration

	// Upload limits
	MaxFileSizeMB    int64
	MinAudioDuration time.Duration
	MaxAudioDuration time.Duration
	UploadDir        string

	CORSOrigins []string

	Kafka KafkaConfig
}

// AllowedExtensions is the fixed set of audio file extensions accepted for upload.
var AllowedExtensions = []string{"wav", "mp3", "m4a", "flac", "ogg", "aac", "wma", "webm"}

// Load reads configuration from the environment. It fails when the OpenAI API
// key is missing and an OpenAI-backed provider is selected.
func Load() (*Configuration, error) {
	cfg := &Configuration{
		Port:        envOrDefault("PORT", "5000"),
		MetricsPort: envOrDefault("METRICS_PORT", "9090"),
		Env:         envOrDefault("ENV", "prod"),
		Debug:       envBool("DEBUG", false),

		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		WhisperModel:    envOrDefault("WHISPER_MODEL", "whisper-1"),
		CompletionModel: envOrDefault("GPT_MODEL", "gpt-3.5-turbo"),
		STTProvider:     envOrDefault("STT_PROVIDER", "openai"),

		TranscribeTimeout: envDuration("TRANSCRIBE_TIMEOUT", 60*time.Second),
		CompletionTimeout: envDuration("COMPLETION_TIMEOUT", 30*time.Second),

		MaxFileSizeMB:    envInt64("MAX_FILE_SIZE", 25),
		MinAudioDuration: envDuration("MIN_AUDIO_DURATION", 1*time.Second),
		MaxAudioDuration: envDuration("MAX_AUDIO_DURATION", 300*time.Second),
		UploadDir:        envOrDefault("UPLOAD_DIR", "/tmp/audio_uploads"),

		CORSOrigins: splitAndTrim(envOrDefault("CORS_ORIGINS", "*")),

		Kafka: KafkaConfig{
			Enabled:   envBool("KAFKA_ENABLED", false),
			Brokers:   splitAndTrim(os.Getenv("KAFKA_BROKERS")),
			Topic:     envOrDefault("KAFKA_TOPIC_ANALYSIS", "interaction.analysis.completed"),
			Principal: envOrDefault("KAFKA_PRINCIPAL", "svc-room-temperature"),
		},
	}

	if cfg.OpenAIAPIKey == "" && cfg.STTProvider != "mock" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	return cfg, nil
}

// MaxFileSizeBytes returns the upload size cap in bytes.
func (c *Configuration) MaxFileSizeBytes() int64 {
	return c.MaxFileSizeMB * 1024 * 1024
}

// IsAllowedFile reports whether the filename carries an allowed audio extension.
func IsAllowedFile(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	ext := strings.ToLower(filename[idx+1:])
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true")
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

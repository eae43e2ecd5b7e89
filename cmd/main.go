package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-room-temperature-service/internal/app"
	"ai-room-temperature-service/internal/config"
	"ai-room-temperature-service/internal/events"
	"ai-room-temperature-service/internal/httpapi"
	"ai-room-temperature-service/internal/observability"
	"ai-room-temperature-service/internal/service/analysis"
	"ai-room-temperature-service/internal/service/llm"
	llmmock "ai-room-temperature-service/internal/service/llm/mock"
	llmopenai "ai-room-temperature-service/internal/service/llm/openai"
	"ai-room-temperature-service/internal/service/stt"
	sttgoogle "ai-room-temperature-service/internal/service/stt/google"
	sttmock "ai-room-temperature-service/internal/service/stt/mock"
	sttopenai "ai-room-temperature-service/internal/service/stt/openai"
	"ai-room-temperature-service/internal/service/temperature"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	application := app.New(cfg)
	application.Start()

	adapter, err := newSTTAdapter(cfg)
	if err != nil {
		application.Logger.Fatal().Err(err).Msg("Failed to initialize STT adapter")
	}

	provider, err := newLLMProvider(cfg)
	if err != nil {
		application.Logger.Fatal().Err(err).Msg("Failed to initialize completion provider")
	}

	publisher := events.New(&events.Config{
		Enabled:   cfg.Kafka.Enabled,
		Brokers:   cfg.Kafka.Brokers,
		Topic:     cfg.Kafka.Topic,
		Principal: cfg.Kafka.Principal,
	})
	defer publisher.Close()

	pipeline := analysis.New(adapter, temperature.New(provider))
	handler := httpapi.NewHandler(cfg, pipeline, publisher)

	// Metrics and health on a side port
	obsServer := observability.NewServer(":" + cfg.MetricsPort)
	obsServer.Start()

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httpapi.NewRouter(handler, cfg.CORSOrigins),
		// Uploads up to the size cap plus two upstream AI round-trips
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		application.Logger.Info().Str("port", cfg.Port).Msg("Room temperature service listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			application.Logger.Fatal().Err(err).Msg("HTTP serve failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	application.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		application.Logger.Error().Err(err).Msg("HTTP server shutdown error")
	}
	if err := obsServer.Shutdown(shutdownCtx); err != nil {
		application.Logger.Error().Err(err).Msg("Observability server shutdown error")
	}
}

func newSTTAdapter(cfg *config.Configuration) (stt.Adapter, error) {
	switch cfg.STTProvider {
	case "google":
		return sttgoogle.New(context.Background())
	case "mock":
		return &sttmock.Adapter{Text: "mock transcript for local development"}, nil
	default:
		opts := []sttopenai.Option{sttopenai.WithTimeout(cfg.TranscribeTimeout)}
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, sttopenai.WithBaseURL(cfg.OpenAIBaseURL))
		}
		return sttopenai.New(cfg.OpenAIAPIKey, cfg.WhisperModel, opts...)
	}
}

func newLLMProvider(cfg *config.Configuration) (llm.Provider, error) {
	if cfg.OpenAIAPIKey == "" {
		// Only reachable with STT_PROVIDER=mock; keep the whole pipeline local.
		return &llmmock.Provider{
			Response: `{"temperature": 35, "confidence": 0.9, "reasoning": "Mock analysis", "topics": [], "emotional_indicators": []}`,
		}, nil
	}
	opts := []llmopenai.Option{llmopenai.WithTimeout(cfg.CompletionTimeout)}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, llmopenai.WithBaseURL(cfg.OpenAIBaseURL))
	}
	return llmopenai.New(cfg.OpenAIAPIKey, cfg.CompletionModel, opts...)
}

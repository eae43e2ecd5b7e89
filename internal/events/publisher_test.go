package events

import (
	"context"
	"testing"

	"ai-room-temperature-service/internal/models"
)

func TestNew_DisabledMode(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"nil config", nil},
		{"disabled", &Config{Enabled: false, Brokers: []string{"localhost:9092"}}},
		{"no brokers", &Config{Enabled: true, Brokers: []string{}}},
		{"nil brokers", &Config{Enabled: true, Brokers: nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.cfg)
			if p == nil {
				t.Fatal("expected non-nil publisher")
			}
			if p.enabled {
				t.Error("expected publisher to be disabled")
			}
			if p.writer != nil {
				t.Error("expected nil writer when disabled")
			}
		})
	}
}

func TestNew_ConfigValues(t *testing.T) {
	cfg := &Config{
		Enabled:   false,
		Brokers:   []string{"localhost:9092"},
		Topic:     "interaction.analysis.completed",
		Principal: "svc-test",
	}

	p := New(cfg)

	if p.principal != "svc-test" {
		t.Errorf("expected principal 'svc-test', got %s", p.principal)
	}
	if p.topic != "interaction.analysis.completed" {
		t.Errorf("expected analysis topic, got %s", p.topic)
	}
}

func TestPublisher_Publish_Disabled(t *testing.T) {
	p := New(&Config{Enabled: false})

	event := models.AnalysisCompleted{
		EventType:   "interaction.analysis.completed",
		AnalysisID:  "a-1",
		Temperature: 42,
		Confidence:  0.8,
		Success:     true,
	}
	if err := p.Publish(context.Background(), "a-1", event); err != nil {
		t.Errorf("expected no error when disabled, got %v", err)
	}
}

func TestPublisher_Publish_InvalidJSON(t *testing.T) {
	p := New(&Config{Enabled: false})

	// Channels cannot be marshalled
	event := make(chan int)
	if err := p.Publish(context.Background(), "a-1", event); err == nil {
		t.Error("expected error for unmarshalable event")
	}
}

func TestPublisher_Close_NoWriter(t *testing.T) {
	p := New(&Config{Enabled: false})

	if err := p.Close(); err != nil {
		t.Errorf("expected no error closing disabled publisher, got %v", err)
	}
}

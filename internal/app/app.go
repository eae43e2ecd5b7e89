// Package app holds process-wide state for the service.
package app

import (
	"time"

	"github.com/rs/zerolog"

	"ai-room-temperature-service/internal/config"
	"ai-room-temperature-service/internal/observability/logging"
)

// Application holds process-wide state for the service.
type Application struct {
	StartupTime time.Time
	Logger      zerolog.Logger
	Cfg         *config.Configuration
}

// New constructs a new Application from the provided configuration and
// initializes the global logger.
func New(cfg *config.Configuration) *Application {
	logCfg := logging.DefaultConfig()
	if cfg.Env == "dev" {
		logCfg.Format = "console"
	}
	if cfg.Debug {
		logCfg.Level = "debug"
	}
	logging.Init(logCfg)

	a := &Application{
		Cfg:    cfg,
		Logger: logging.WithComponent("application"),
	}
	a.Logger.Info().
		Str("environment", cfg.Env).
		Bool("debug", cfg.Debug).
		Msg("Room temperature service application created")
	return a
}

// Start performs any startup work required before serving traffic.
func (a *Application) Start() {
	a.StartupTime = time.Now().UTC()
	a.Logger.Info().
		Time("startupTime", a.StartupTime).
		Int64("maxFileSizeMB", a.Cfg.MaxFileSizeMB).
		Str("sttProvider", a.Cfg.STTProvider).
		Strs("corsOrigins", a.Cfg.CORSOrigins).
		Msg("Room temperature service starting")
}

// Shutdown performs a best-effort cleanup before process exit.
func (a *Application) Shutdown() {
	a.Logger.Info().Msg("Room temperature service shutting down")
}

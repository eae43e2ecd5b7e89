// Package httpapi provides the public HTTP surface of the service.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"ai-room-temperature-service/internal/observability"
	"ai-room-temperature-service/internal/observability/metrics"
)

// NewRouter constructs the HTTP router for the service.
func NewRouter(h *Handler, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.RequestInstrumentation(metrics.DefaultMetrics))
	r.Use(recoverJSON)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	r.Get("/health", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyze-audio", h.AnalyzeAudio)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Endpoint not found", "The requested endpoint does not exist")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", "The HTTP method is not allowed for this endpoint")
	})

	return r
}

// recoverJSON is the outermost failure boundary: panics are logged with full
// detail server-side and surface to the caller as a generic, non-leaking 500.
func recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Interface("panic", rec).
					Str("path", r.URL.Path).
					Msg("Unexpected error")
				writeError(w, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

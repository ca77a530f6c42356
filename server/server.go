// Package server exposes the tracker over HTTP and maps error kinds to
// status codes.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/researchaccelerator-hub/youtube-tracker/config"
	"github.com/researchaccelerator-hub/youtube-tracker/ingest"
	"github.com/researchaccelerator-hub/youtube-tracker/insight"
)

// Server holds the core collaborators behind the HTTP surface.
type Server struct {
	ingestor *ingest.Ingestor
	searcher *ingest.KeywordSearcher
	chain    *insight.Chain
	cfg      *config.Config
}

// New assembles a server. chain may be nil when no provider is configured;
// the insight endpoint then fails with a config error.
func New(ingestor *ingest.Ingestor, searcher *ingest.KeywordSearcher, chain *insight.Chain, cfg *config.Config) *Server {
	return &Server{ingestor: ingestor, searcher: searcher, chain: chain, cfg: cfg}
}

// Router builds the chi router with the full route table.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/resolve", s.handleResolve)
		r.Get("/search", s.handleKeywordMetrics)
		r.Route("/channels/{channel}", func(r chi.Router) {
			r.Post("/ingest", s.handleIngest)
			r.Get("/metrics", s.handleChannelMetrics)
			r.Get("/meta", s.handleChannelMeta)
			r.Post("/insight", s.handleInsight)
		})
	})

	return r
}

// requestLogger logs one line per request with method, path, status and
// duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		var evt *zerolog.Event
		if ww.Status() >= http.StatusInternalServerError {
			evt = log.Error()
		} else {
			evt = log.Info()
		}
		evt.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("Request handled")
	})
}

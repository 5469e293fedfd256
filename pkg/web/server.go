package web

import (
	"context"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gridboard/gridboard/pkg/config"
	"github.com/gridboard/gridboard/pkg/errorinfo"
	"github.com/gridboard/gridboard/pkg/events"
	"github.com/gridboard/gridboard/pkg/log"
	"github.com/gridboard/gridboard/pkg/metrics"
	"github.com/gridboard/gridboard/pkg/storage"
)

// Server is the dashboard HTTP server.
type Server struct {
	cfg    *config.Config
	cache  *errorinfo.Cache
	store  storage.Store
	broker *events.Broker

	indexTpl    *template.Template
	workflowTpl *template.Template

	httpServer *http.Server
}

// NewServer wires the dashboard over its collaborators.
func NewServer(cfg *config.Config, cache *errorinfo.Cache, store storage.Store, broker *events.Broker) *Server {
	s := &Server{
		cfg:    cfg,
		cache:  cache,
		store:  store,
		broker: broker,
	}
	s.indexTpl, s.workflowTpl = newTemplates()
	return s
}

// Handler builds the routed and instrumented handler tree.
func (s *Server) Handler() http.Handler {
	mw := NewMiddleware(s.cfg.RateLimit)
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", mw.Wrap("index", http.HandlerFunc(s.handleIndex)))
	mux.Handle("GET /workflow/{workflow}", mw.Wrap("workflow", http.HandlerFunc(s.handleWorkflow)))
	mux.Handle("POST /submit", mw.Wrap("submit", http.HandlerFunc(s.handleSubmit)))
	mux.Handle("GET /history", mw.Wrap("history", http.HandlerFunc(s.handleHistory)))
	mux.Handle("GET /healthz", metrics.HealthHandler())
	mux.Handle("GET /metrics", metrics.Handler())

	return mux
}

// Start begins serving. It blocks until the listener fails or Stop is
// called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    s.cfg.ListenAddr,
		Handler: s.Handler(),
	}

	log.WithComponent("web").Info().
		Str("addr", s.cfg.ListenAddr).
		Msg("dashboard listening")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("dashboard server error: %w", err)
	}
	return nil
}

// Stop gracefully stops the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

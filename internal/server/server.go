// Package server exposes the news pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"

	"newsgate/internal/config"
	"newsgate/internal/logger"
	"newsgate/internal/models"
)

// Route suffixes mounted under the configured base path.
const (
	RouteEverything   = "/everything"
	RouteTopHeadlines = "/top-headlines"
	RouteSources      = "/sources"
)

// NewsService is the pipeline the handlers delegate to. Returned errors are
// expected to be classified; anything else is reported as internal.
type NewsService interface {
	Search(ctx context.Context, query url.Values) (*models.ArticlesResponse, error)
	Headlines(ctx context.Context, query url.Values) (*models.ArticlesResponse, error)
	Sources(ctx context.Context, query url.Values) (*models.SourcesResponse, error)
}

// Server serves the news API.
type Server struct {
	cfg     config.ServerConfig
	service NewsService
	logger  *logger.Logger
	router  chi.Router
}

// NewServer builds the router for service.
func NewServer(cfg config.ServerConfig, service NewsService, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}

	s := &Server{
		cfg:     cfg,
		service: service,
		logger:  log.With("component", "server"),
	}
	s.router = s.routes()

	return s
}

// Handler returns the root handler with CORS and compression applied.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router

	if s.cfg.Compress {
		h = handlers.CompressHandler(h)
	}

	if len(s.cfg.CORSAllowedOrigins) > 0 {
		h = handlers.CORS(
			handlers.AllowedOrigins(s.cfg.CORSAllowedOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodHead, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
			handlers.ExposedHeaders([]string{requestIDHeader}),
		)(h)
	}

	return h
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.NotFound(s.notFound)
	r.MethodNotAllowed(s.methodNotAllowed)

	r.Get("/", s.handleDocs)
	r.Get("/health", s.handleHealth)

	news := func(r chi.Router) {
		r.Get(RouteEverything, s.handleEverything)
		r.Get(RouteTopHeadlines, s.handleTopHeadlines)
		r.Get(RouteSources, s.handleSources)
	}

	if p := s.prefix(); p == "" {
		news(r)
	} else {
		r.Route(p, news)
	}

	return r
}

// basePath returns the mount point of the news routes. "/" mounts at the root.
func (s *Server) basePath() string {
	if s.cfg.BasePath == "" {
		return "/"
	}

	return s.cfg.BasePath
}

// prefix is basePath without a trailing slash, for building URLs.
func (s *Server) prefix() string {
	if bp := s.basePath(); bp != "/" {
		return bp
	}

	return ""
}

// Run listens on the configured address until ctx is cancelled, then drains
// in-flight requests for up to the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.ListenAddr, err)
	}

	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.GetReadHeaderTimeout(),
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("Server listening", "addr", ln.Addr().String(), "base_path", s.basePath())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down", "timeout", s.cfg.GetShutdownTimeout().String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.GetShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}

	return nil
}

package httpapi

import (
	"context"
	"errors"
	"net/http"

	"salesboard/internal/config"
	"salesboard/internal/report"
	"salesboard/internal/sheets"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Server exposes the report pipeline over HTTP for the dashboard frontend.
type Server struct {
	cfg        *config.AppConfig
	client     sheets.Client
	classifier *report.Classifier
	echo       *echo.Echo
}

// NewServer wires the routes. The classifier is built once at startup;
// rule file problems are a startup failure, not a per-request one.
func NewServer(cfg *config.AppConfig, client sheets.Client) (*Server, error) {
	classifier, err := report.LoadClassifier(cfg.RulesPath)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(RequestLogger)

	s := &Server{
		cfg:        cfg,
		client:     client,
		classifier: classifier,
		echo:       e,
	}

	e.GET("/healthz", s.handleHealth)
	e.GET("/api/filters", s.handleFilters)
	e.GET("/api/report", s.handleReport)

	return s, nil
}

// Start blocks serving HTTP until the listener fails or is shut down.
func (s *Server) Start() error {
	log.Info().Str("addr", s.cfg.HTTPAddr).Msg("HTTP server listening")
	err := s.echo.Start(s.cfg.HTTPAddr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler returns the underlying HTTP handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

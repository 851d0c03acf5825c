package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-clinic-keeper/internal/config"
	"github.com/MKhiriev/go-clinic-keeper/internal/handler"
	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
)

type server struct {
	http   *httpServer
	logger *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, log *logger.Logger) (Server, error) {
	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoHTTPServer
	}

	return &server{
		http:   newHTTPServer(handlers.HTTP.Init(), cfg, log),
		logger: log.WithComponent("server"),
	}, nil
}

// RunServer serves the record API until a termination signal arrives or the
// listener fails, then drains in-flight requests.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	failed := make(chan error, 1)
	go func() { failed <- s.http.serve() }()
	s.logger.Info().Str("address", s.http.server.Addr).Msg("record API listening")

	select {
	case <-ctx.Done():
		s.logger.Info().Msg("termination signal received, shutting down")
	case err := <-failed:
		if err == nil {
			return
		}
		s.logger.Err(err).Str("func", "server.RunServer").Msg("stopping after listener failure")
	}

	s.Shutdown()
	s.logger.Info().Msg("server stopped")
}

func (s *server) Shutdown() {
	s.http.Shutdown()
}

package server

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-user-accounts/internal/config"
	"github.com/MKhiriev/go-user-accounts/internal/handler"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
)

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	logger     *logger.Logger
}

// NewServer creates the transport servers for every handler present in
// handlers. At least one of them must be enabled.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		gRPCServer, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("error creating gRPC server: %w", err)
		}
		servers.gRPCServer = gRPCServer
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

// RunServer serves until SIGINT, SIGTERM or SIGQUIT arrives, or until one of
// the listeners fails.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Err(err).Str("func", "*server.RunServer").Msg("error running server")
	}
}

func (s *server) Shutdown() {
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}

	if s.gRPCServer != nil {
		s.gRPCServer.Shutdown()
	}
}

// run starts every listener and blocks until ctx is done or a listener
// stops with an error. Either way all listeners are shut down before it
// returns; the listener error, if any, is returned.
func (s *server) run(ctx context.Context) error {
	if s.httpServer == nil && s.gRPCServer == nil {
		return errNoServersAreCreated
	}

	serveErrs := make(chan error, 2)
	if s.httpServer != nil {
		go func() { serveErrs <- s.httpServer.serve() }()
	}
	if s.gRPCServer != nil {
		go func() { serveErrs <- s.gRPCServer.serve() }()
	}

	var err error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop signal received")
	case err = <-serveErrs:
		err = fmt.Errorf("listener stopped: %w", err)
	}

	s.Shutdown()
	s.logger.Info().Msg("server shut down gracefully")

	return err
}

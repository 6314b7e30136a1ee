package server

import (
	"fmt"
	"net"

	"github.com/MKhiriev/go-user-accounts/internal/config"
	myGRPC "github.com/MKhiriev/go-user-accounts/internal/handler/grpc"
	"github.com/MKhiriev/go-user-accounts/internal/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server          *grpc.Server
	gRPCNetListener net.Listener

	logger *logger.Logger
}

// newGRPCServer binds the listener right away so that a busy port fails
// startup instead of a background goroutine.
func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	listener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("%w on %s: %w", errGRPCListen, cfg.GRPCAddress, err)
	}

	server := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(server, handler)

	return &grpcServer{
		handler:         handler,
		server:          server,
		gRPCNetListener: listener,
		logger:          logger,
	}, nil
}

func (g *grpcServer) serve() error {
	g.logger.Info().Str("address", g.gRPCNetListener.Addr().String()).Msg("health probe listening")
	if err := g.server.Serve(g.gRPCNetListener); err != nil {
		g.logger.Err(err).Str("func", "*grpcServer.serve").Msg("gRPC server Serve")
		return err
	}
	return nil
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("gRPC server Shutdown")
	g.server.GracefulStop()
}

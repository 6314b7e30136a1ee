package grpc

import (
	"context"

	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/service"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// Handler is the root gRPC transport handler.
//
// The accounts API itself is served over HTTP; over gRPC the server only
// exposes the standard grpc.health.v1 service so that orchestrators can probe
// the process without speaking HTTP. Readiness is decided by
// [service.HealthService].
type Handler struct {
	grpc_health_v1.UnimplementedHealthServer

	// services provides access to all application business operations.
	services *service.Services

	// logger is used for diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger, and returns the initialized instance.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// Check reports SERVING when the health service finds every dependency
// reachable, NOT_SERVING otherwise. Only the overall status ("") and the
// account service name are known.
func (h *Handler) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	switch req.GetService() {
	case "", AccountServiceName:
	default:
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}

	if h.services == nil || h.services.HealthService == nil {
		return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_NOT_SERVING}, nil
	}

	if err := h.services.HealthService.Check(ctx); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "*Handler.Check").Msg("health check failed")
		return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_NOT_SERVING}, nil
	}

	return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_SERVING}, nil
}

// AccountServiceName is the service name clients may probe besides "".
const AccountServiceName = "accounts.v1.AccountService"

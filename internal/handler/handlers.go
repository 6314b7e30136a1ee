package handler

import (
	"github.com/MKhiriev/go-user-accounts/internal/config"
	"github.com/MKhiriev/go-user-accounts/internal/handler/grpc"
	"github.com/MKhiriev/go-user-accounts/internal/handler/http"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/service"
)

// Handlers holds the account API handler and the health-probe handler. A
// field is nil when its listen address is not configured.
type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers builds a handler for every transport that has an address in
// cfg. The REST API gets the full service container; the gRPC side only
// answers health probes.
func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, logger)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	logger.Info().
		Bool("account_api", handlers.HTTP != nil).
		Bool("health_probe", handlers.GRPC != nil).
		Msg("handlers created")

	return handlers, nil
}

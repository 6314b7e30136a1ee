package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/store"
)

const healthCheckTimeout = 2 * time.Second

// ErrUnhealthy is returned by HealthService.Check when a dependency is down.
var ErrUnhealthy = errors.New("service is unhealthy")

type healthService struct {
	pinger store.Pinger

	logger *logger.Logger
}

func NewHealthService(pinger store.Pinger, logger *logger.Logger) HealthService {
	return &healthService{
		pinger: pinger,
		logger: logger,
	}
}

// Check pings the database with a short deadline.
func (s *healthService) Check(ctx context.Context) error {
	if s.pinger == nil {
		return fmt.Errorf("%w: no database configured", ErrUnhealthy)
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := s.pinger.PingContext(ctx); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "healthService.Check").Msg("database ping failed")
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}

	return nil
}

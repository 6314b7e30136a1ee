package service

import (
	"github.com/MKhiriev/go-user-accounts/internal/adapter"
	"github.com/MKhiriev/go-user-accounts/internal/config"
	"github.com/MKhiriev/go-user-accounts/internal/crypto"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/store"
	"github.com/MKhiriev/go-user-accounts/models"
)

type Services struct {
	AccountService      AccountService
	TokenService        TokenService
	NotificationService NotificationService
	AppInfoService      AppInfoService
	HealthService       HealthService
}

// NewServices wires every service. The AccountService is wrapped with input
// validation.
func NewServices(storages *store.Storages, mailSender adapter.MailSender, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	tokenService, err := NewTokenService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	notificationService := NewNotificationService(mailSender, cfg.App.ServerBaseURL, logger)

	accountService := NewAccountValidationService().Wrap(NewAccountService(
		storages.AccountRepository,
		crypto.NewBcryptHasher(cfg.App.BcryptCost),
		crypto.NewTokenGenerator(),
		notificationService,
		cfg.App,
		logger,
	))

	return &Services{
		AccountService:      accountService,
		TokenService:        tokenService,
		NotificationService: notificationService,
		AppInfoService:      appInfoService,
		HealthService:       NewHealthService(storages.Pinger, logger),
	}, nil
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-user-accounts/internal/adapter"
	"github.com/MKhiriev/go-user-accounts/internal/config"
	"github.com/MKhiriev/go-user-accounts/internal/handler"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/server"
	"github.com/MKhiriev/go-user-accounts/internal/service"
	"github.com/MKhiriev/go-user-accounts/internal/store"
	"github.com/MKhiriev/go-user-accounts/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const connectTimeout = 30 * time.Second

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("accounts-server").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("accounts-server", logger.WithDebug(cfg.App.Debug))
	log.Debug().Str("http_address", cfg.Server.HTTPAddress).Str("grpc_address", cfg.Server.GRPCAddress).Msg("received configs")

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	mailSender, err := adapter.NewMailSender(cfg.Adapter.Mail, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating mail sender")
	}

	services, err := service.NewServices(storages, mailSender, cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-user-accounts/internal/adapter"
	"github.com/MKhiriev/go-user-accounts/internal/client"
	"github.com/MKhiriev/go-user-accounts/internal/config"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/tui"
)

func main() {
	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logger.Nop()
	if cfg.Debug {
		log = logger.NewLogger("accountctl", logger.WithOutput(os.Stderr), logger.WithDebug(true))
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.ServerURL, cfg.RequestTimeout, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	serverAdapter.SetToken(cfg.Token)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := client.NewApp(serverAdapter, tui.New(serverAdapter, log), os.Stdout, log)
	if err = app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "accountctl:", err)
		stop()
		os.Exit(1)
	}
}

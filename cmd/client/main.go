package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-file-vault/internal/adapter"
	"github.com/MKhiriev/go-file-vault/internal/client"
	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/internal/store"
	"github.com/MKhiriev/go-file-vault/internal/tui"
	"github.com/MKhiriev/go-file-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewClientLogger("file-vault-client", cfg.Log.File)
	logger.SetLevel(cfg.Log.Level)

	api, err := adapter.NewHTTPVaultAPI(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	localStorage, err := store.NewClientStorages(context.Background(), cfg.Session, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer localStorage.Close()

	services := service.NewClientServices(localStorage, api, log)

	ui, err := tui.New(services, buildInfo, "", log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Print(info.String())
}

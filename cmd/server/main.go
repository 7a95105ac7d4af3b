package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-file-vault/internal/backup"
	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/handler"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/server"
	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/internal/store"
	"github.com/MKhiriev/go-file-vault/internal/workers"
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

	log := logger.NewLogger("file-vault-server")
	cfg, err := config.GetServerConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if !logger.SetLevel(cfg.Log.Level) {
		log.Warn().Str("level", cfg.Log.Level).Msg("unknown log level, keeping default")
	}
	if v := buildInfo.BuildVersion(); v != models.NotAvailable {
		cfg.App.Version = v
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	senders, err := backup.NewSenders(cfg.Backup, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating backup senders")
	}
	backupWorker := workers.NewBackupWorker(backup.NewArchiver(storages.BlobStore, ""), senders, cfg.Workers.BackupQueueSize, log)

	var notifier service.PasswordNotifier
	if mailer := backup.NewEmailSender(cfg.Backup.SMTP); mailer.IsConfigured() {
		notifier = mailer
	}

	services, err := service.NewServices(storages, backupWorker, notifier, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, storages, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	bg := []workers.Worker{backupWorker}
	if handlers.GRPC != nil {
		bg = append(bg, handlers.GRPC)
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(bg...), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Print(info.String())
}

package http

import (
	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/service"
)

type Handler struct {
	services *service.Services

	// maxUploadSize bounds the body of POST /upload; zero means unlimited.
	maxUploadSize int64

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:      services,
		maxUploadSize: cfg.MaxUploadSize,
		logger:        logger,
	}
}

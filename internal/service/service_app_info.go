package service

import (
	"context"

	"github.com/MKhiriev/go-file-vault/internal/app"
	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/models"
)

// appInfoService answers the unauthenticated probes: the build version and
// the liveness message of GET /.
type appInfoService struct {
	appVersion string

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

// Status always reports online: reaching it means the API is serving.
// Storage health is published separately over gRPC.
func (s *appInfoService) Status(ctx context.Context) models.StatusResponse {
	return models.StatusResponse{Status: models.StatusOnline, Message: app.MsgOnline}
}

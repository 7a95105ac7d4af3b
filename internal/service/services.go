package service

import (
	"fmt"

	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/crypto"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/store"
)

type Services struct {
	VaultService   VaultService
	FileService    FileService
	AuthService    AuthService
	AppInfoService AppInfoService
}

// NewServices wires the server services. backups and notifier may be nil.
func NewServices(storages *store.Storages, backups BackupScheduler, notifier PasswordNotifier,
	cfg config.App, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	vaults := NewVaultService(storages.VaultRepository, storages.FileRepository, storages.BlobStore,
		crypto.NewSecretHasher(0), backups, notifier, cfg, logger)

	return &Services{
		VaultService: NewVaultValidationService().Wrap(vaults),
		FileService: NewFileService(storages.VaultRepository, storages.FileRepository, storages.BlobStore,
			crypto.NewFileCipher(), cfg, logger),
		AuthService:    NewAuthService(cfg, logger),
		AppInfoService: appInfo,
	}, nil
}

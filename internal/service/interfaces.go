package service

import (
	"context"

	"github.com/MKhiriev/go-file-vault/internal/backup"
	"github.com/MKhiriev/go-file-vault/models"
)

// VaultService owns the vault lifecycle: creation, login with lockout,
// identity verification and destruction.
type VaultService interface {
	// CreateVault registers a new vault and returns its vault key. The key is
	// returned only here.
	CreateVault(ctx context.Context, req models.CreateVaultRequest) (string, error)

	// LoginVault checks the password and vault key. Failures count towards
	// the lockout limit.
	LoginVault(ctx context.Context, req models.LoginVaultRequest) (models.Vault, error)

	// VerifyIdentity unlocks the vault and returns a temporary password when
	// the answer is right. A wrong answer destroys the vault and returns a
	// *VaultDestroyedError.
	VerifyIdentity(ctx context.Context, req models.VerifyIdentityRequest) (string, error)

	// DestroyVault quarantines every file of the vault and leaves a tombstone.
	DestroyVault(ctx context.Context, email, vaultKey string) (models.DestroyResult, error)
}

// FileService stores and serves the encrypted files of a vault.
type FileService interface {
	ListFiles(ctx context.Context, email string) ([]models.FileInfo, error)
	Upload(ctx context.Context, req models.UploadRequest) (models.FileInfo, error)
	Download(ctx context.Context, email string, req models.DownloadRequest) (models.DownloadResult, error)
}

type AuthService interface {
	CreateToken(ctx context.Context, email string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	Status(ctx context.Context) models.StatusResponse
}

// BackupScheduler queues the backup of a destroyed vault.
type BackupScheduler interface {
	Enqueue(job backup.Job) bool
}

// PasswordNotifier tells the owner about a freshly issued temporary
// password.
type PasswordNotifier interface {
	SendTemporaryPassword(ctx context.Context, email, password string) error
}

// VaultServiceWrapper defines middleware composition for VaultService.
// Implementations wrap an existing VaultService to add behavior such as
// validation.
type VaultServiceWrapper interface {
	Wrap(VaultService) VaultService
}

package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-file-vault/models"
)

// VaultRepository persists vault accounts.
type VaultRepository interface {
	CreateVault(ctx context.Context, vault models.Vault) (models.Vault, error)
	FindVaultByEmail(ctx context.Context, email string) (models.Vault, error)
	// RecordFailedLogin increments the failure counter and locks the vault
	// once the counter reaches maxAttempts. It returns the updated vault.
	RecordFailedLogin(ctx context.Context, vaultID int64, maxAttempts int) (models.Vault, error)
	ResetFailedLogins(ctx context.Context, vaultID int64) error
	// UnlockWithPassword replaces the password hash, unlocks the vault and
	// resets the failure counter.
	UnlockWithPassword(ctx context.Context, vaultID int64, passwordHash string) error
	// MarkDestroyed turns the vault into a tombstone: secrets are cleared
	// and Destroyed is set.
	MarkDestroyed(ctx context.Context, vaultID int64, at time.Time) error
	DeleteVault(ctx context.Context, vaultID int64) error
}

// FileRepository persists the ownership ledger of encrypted files.
type FileRepository interface {
	// SaveFile inserts the file or replaces the row with the same
	// (vault_id, name). It returns the blob key that was replaced, if any.
	SaveFile(ctx context.Context, file models.FileInfo) (replacedBlobKey string, err error)
	ListFiles(ctx context.Context, vaultID int64) ([]models.FileInfo, error)
	FindFile(ctx context.Context, vaultID int64, name string) (models.FileInfo, error)
	// FindFilesByName returns the rows of every vault holding name.
	FindFilesByName(ctx context.Context, name string) ([]models.FileInfo, error)
	// DeleteFiles removes all rows of the vault and returns them.
	DeleteFiles(ctx context.Context, vaultID int64) ([]models.FileInfo, error)
}

// BlobStore keeps encrypted file bytes on disk.
type BlobStore interface {
	// Put writes data under a fresh key derived from name and returns the key.
	Put(ctx context.Context, name string, data []byte) (string, error)
	Open(ctx context.Context, key string) ([]byte, error)
	Stat(ctx context.Context, key string) (int64, error)
	Delete(ctx context.Context, key string) error
	// Quarantine moves the blob into the destroyed directory as
	// DESTROYED_<unix>_<key id>_<name> and returns that file name.
	Quarantine(ctx context.Context, key, name string, at time.Time) (string, error)
	// Restore moves a quarantined file back under its live key.
	Restore(ctx context.Context, quarantined, key string) error
	// Archive writes a zip of the named quarantined files to w.
	Archive(ctx context.Context, w io.Writer, names []string) error
}

// SessionRepository is the client-side store of the current session.
type SessionRepository interface {
	Save(ctx context.Context, session models.Session) error
	Load(ctx context.Context) (models.Session, error)
	Clear(ctx context.Context) error
}

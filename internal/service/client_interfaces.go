package service

import (
	"context"

	"github.com/MKhiriev/go-file-vault/models"
)

// ClientSessionService keeps the email, vault key and bearer token that
// carry a login across screens and runs.
type ClientSessionService interface {
	// Current returns the saved session or ErrNoSession.
	Current(ctx context.Context) (models.Session, error)

	// Save replaces the saved session.
	Save(ctx context.Context, session models.Session) error

	// Clear forgets the saved session. Clearing an empty store is not an
	// error.
	Clear(ctx context.Context) error
}

// ClientVaultService is everything the TUI and vaultctl do against the
// server. Methods that need a login read the saved session and return
// ErrNoSession without one.
type ClientVaultService interface {
	// ServerStatus pings the server.
	ServerStatus(ctx context.Context) (models.StatusResponse, error)

	// Register creates a vault and returns its vault key. Nothing is saved
	// locally: the user has to keep the key.
	Register(ctx context.Context, req models.CreateVaultRequest) (string, error)

	// Login authenticates and saves the session. A locked vault yields
	// ErrVaultLocked so the caller can switch to recovery.
	Login(ctx context.Context, req models.LoginVaultRequest) (models.Session, error)

	// Recover answers the security question of a locked vault and returns
	// the temporary password. A wrong answer destroys the vault: the error
	// is then a *VaultDestroyedError carrying the recovery token.
	Recover(ctx context.Context, req models.VerifyIdentityRequest) (string, error)

	ListFiles(ctx context.Context) ([]models.FileInfo, error)

	// Upload reads the file at path and uploads it under its base name.
	Upload(ctx context.Context, path string) (models.UploadResponse, error)

	// Download fetches name and writes it into dir under its original name.
	// It returns the written path.
	Download(ctx context.Context, name, dir string) (string, error)

	// Destroy destroys the logged-in vault and clears the session.
	Destroy(ctx context.Context) (models.DestroyVaultResponse, error)

	// Logout clears the session.
	Logout(ctx context.Context) error
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the vault clients and
// the vault server.
//
// The primary abstraction is [VaultAPI], which decouples the client services
// from HTTP. The package ships a resty implementation ([NewHTTPVaultAPI]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrGone] for 410, [ErrForbidden] for 403). The server's
// detail text is kept in the error message and can be read back with
// [Detail].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-file-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/vault_api_mock.go -package=mock

// VaultAPI defines the calls a client makes to the vault server.
type VaultAPI interface {
	// SetToken stores the bearer token attached to every authenticated
	// request. LoginVault calls it on success.
	SetToken(token string)

	// Token returns the bearer token currently held, or "".
	Token() string

	// Status calls GET / and reports whether the server is online.
	Status(ctx context.Context) (models.StatusResponse, error)

	// CreateVault registers a vault and returns the generated vault key.
	CreateVault(ctx context.Context, req models.CreateVaultRequest) (models.CreateVaultResponse, error)

	// LoginVault authenticates with password and vault key. On success the
	// bearer token from the Authorization header is stored via SetToken.
	LoginVault(ctx context.Context, req models.LoginVaultRequest) (models.LoginVaultResponse, error)

	// VerifyIdentity answers the security question of a locked vault. A
	// wrong answer destroys the vault; the returned error then matches
	// [ErrGone] and carries the recovery token (see [RecoveryToken]).
	VerifyIdentity(ctx context.Context, req models.VerifyIdentityRequest) (models.VerifyIdentityResponse, error)

	// DestroyVault destroys the authenticated vault.
	DestroyVault(ctx context.Context, req models.DestroyVaultRequest) (models.DestroyVaultResponse, error)

	// ListFiles returns the files of the authenticated vault.
	ListFiles(ctx context.Context) ([]models.FileInfo, error)

	// Upload sends one file as multipart form data.
	Upload(ctx context.Context, req models.UploadRequest) (models.UploadResponse, error)

	// Download fetches and checks one decrypted file. A body whose digest
	// differs from X-Content-SHA256 yields [ErrIntegrityCheck].
	Download(ctx context.Context, req models.DownloadRequest) (models.DownloadResult, error)
}

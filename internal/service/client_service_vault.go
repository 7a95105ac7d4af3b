package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/go-file-vault/internal/adapter"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/validators"
	"github.com/MKhiriev/go-file-vault/models"
)

type clientVaultService struct {
	api      adapter.VaultAPI
	sessions ClientSessionService

	now    func() time.Time
	logger *logger.Logger
}

func NewClientVaultService(api adapter.VaultAPI, sessions ClientSessionService, logger *logger.Logger) ClientVaultService {
	return &clientVaultService{
		api:      api,
		sessions: sessions,
		now:      time.Now,
		logger:   logger,
	}
}

func (c *clientVaultService) ServerStatus(ctx context.Context) (models.StatusResponse, error) {
	status, err := c.api.Status(ctx)
	if err != nil {
		return models.StatusResponse{}, mapAdapterError(err)
	}
	return status, nil
}

func (c *clientVaultService) Register(ctx context.Context, req models.CreateVaultRequest) (string, error) {
	created, err := c.api.CreateVault(ctx, req)
	if err != nil {
		return "", mapAdapterError(err)
	}
	if created.PrivateKey == "" {
		return "", fmt.Errorf("%w: server returned no vault key", ErrServerUnavailable)
	}

	c.logger.Info().Str("email", req.Email).Msg("vault registered")
	return created.PrivateKey, nil
}

func (c *clientVaultService) Login(ctx context.Context, req models.LoginVaultRequest) (models.Session, error) {
	_, err := c.api.LoginVault(ctx, req)
	if errors.Is(err, adapter.ErrForbidden) {
		// any refusal of a login means the vault is locked
		return models.Session{}, &RemoteError{Err: ErrVaultLocked, Detail: adapter.Detail(err)}
	}
	if err != nil {
		return models.Session{}, mapAdapterError(err)
	}

	session := models.Session{
		Email:     strings.TrimSpace(req.Email),
		VaultKey:  strings.TrimSpace(req.PrivateKey),
		Token:     c.api.Token(),
		CreatedAt: c.now(),
	}
	if err = c.sessions.Save(ctx, session); err != nil {
		return models.Session{}, err
	}

	c.logger.Info().Str("email", session.Email).Msg("logged in")
	return session, nil
}

func (c *clientVaultService) Recover(ctx context.Context, req models.VerifyIdentityRequest) (string, error) {
	verified, err := c.api.VerifyIdentity(ctx, req)
	if err != nil {
		err = mapAdapterError(err)
		if errors.Is(err, ErrVaultDestroyed) {
			c.logger.Warn().Str("email", req.Email).Msg("vault destroyed after failed identity check")
			c.forget(ctx)
		}
		return "", err
	}
	return verified.TempPassword, nil
}

func (c *clientVaultService) ListFiles(ctx context.Context) ([]models.FileInfo, error) {
	if _, err := c.authenticate(ctx); err != nil {
		return nil, err
	}

	files, err := c.api.ListFiles(ctx)
	if err != nil {
		return nil, c.mapAuthedError(ctx, err)
	}
	return files, nil
}

func (c *clientVaultService) Upload(ctx context.Context, path string) (models.UploadResponse, error) {
	session, err := c.authenticate(ctx)
	if err != nil {
		return models.UploadResponse{}, err
	}

	path = strings.TrimSpace(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return models.UploadResponse{}, fmt.Errorf("read %s: %w", path, err)
	}

	uploaded, err := c.api.Upload(ctx, models.UploadRequest{
		Email:      session.Email,
		Filename:   filepath.Base(path),
		PrivateKey: session.VaultKey,
		Content:    content,
	})
	if err != nil {
		return models.UploadResponse{}, c.mapAuthedError(ctx, err)
	}

	c.logger.Info().Str("file", uploaded.Filename).Int("size", len(content)).Msg("file uploaded")
	return uploaded, nil
}

func (c *clientVaultService) Download(ctx context.Context, name, dir string) (string, error) {
	session, err := c.authenticate(ctx)
	if err != nil {
		return "", err
	}

	file, err := c.api.Download(ctx, models.DownloadRequest{
		Filename:   name,
		PrivateKey: session.VaultKey,
		UserEmail:  session.Email,
	})
	if err != nil {
		return "", c.mapAuthedError(ctx, err)
	}

	base, err := validators.SanitizeFilename(file.Filename)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if dir == "" {
		dir = "."
	}
	target := filepath.Join(dir, base)
	if err = os.WriteFile(target, file.Content, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", target, err)
	}

	c.logger.Info().Str("file", target).Str("sha256", file.SHA256).Msg("file downloaded")
	return target, nil
}

func (c *clientVaultService) Destroy(ctx context.Context) (models.DestroyVaultResponse, error) {
	session, err := c.authenticate(ctx)
	if err != nil {
		return models.DestroyVaultResponse{}, err
	}

	destroyed, err := c.api.DestroyVault(ctx, models.DestroyVaultRequest{
		UserEmail:  session.Email,
		PrivateKey: session.VaultKey,
	})
	if err != nil {
		return models.DestroyVaultResponse{}, c.mapAuthedError(ctx, err)
	}

	c.logger.Warn().Str("email", session.Email).Int("files_affected", destroyed.FilesAffected).Msg("vault destroyed")
	c.forget(ctx)
	return destroyed, nil
}

func (c *clientVaultService) Logout(ctx context.Context) error {
	c.api.SetToken("")
	return c.sessions.Clear(ctx)
}

// authenticate loads the saved session and hands its token to the API.
func (c *clientVaultService) authenticate(ctx context.Context) (models.Session, error) {
	session, err := c.sessions.Current(ctx)
	if err != nil {
		return models.Session{}, err
	}
	c.api.SetToken(session.Token)
	return session, nil
}

// mapAuthedError maps err and drops the session when the server no longer
// accepts it.
func (c *clientVaultService) mapAuthedError(ctx context.Context, err error) error {
	err = mapAdapterError(err)
	if errors.Is(err, ErrNotAuthenticated) || errors.Is(err, ErrVaultDestroyed) {
		c.forget(ctx)
	}
	return err
}

func (c *clientVaultService) forget(ctx context.Context) {
	c.api.SetToken("")
	if err := c.sessions.Clear(ctx); err != nil {
		c.logger.Err(err).Msg("failed to clear session")
	}
}

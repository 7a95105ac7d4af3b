package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/crypto"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/store"
	"github.com/MKhiriev/go-file-vault/internal/utils"
	"github.com/MKhiriev/go-file-vault/internal/validators"
	"github.com/MKhiriev/go-file-vault/models"
)

type fileService struct {
	vaults store.VaultRepository
	files  store.FileRepository
	blobs  store.BlobStore

	cipher crypto.FileCipher
	keys   *utils.KeyHasher

	now    func() time.Time
	logger *logger.Logger
}

func NewFileService(vaults store.VaultRepository, files store.FileRepository, blobs store.BlobStore,
	cipher crypto.FileCipher, cfg config.App, logger *logger.Logger) FileService {
	return &fileService{
		vaults: vaults,
		files:  files,
		blobs:  blobs,
		cipher: cipher,
		keys:   utils.NewKeyHasher(cfg.KeyHashKey),
		now:    time.Now,
		logger: logger,
	}
}

// ListFiles returns the files of the vault owned by email, newest first.
func (f *fileService) ListFiles(ctx context.Context, email string) ([]models.FileInfo, error) {
	vault, err := f.ownerVault(ctx, email)
	if err != nil {
		return nil, err
	}

	files, err := f.files.ListFiles(ctx, vault.VaultID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return files, nil
}

// Upload encrypts the content with a key derived from the vault key and
// stores it as <name>.enc. Uploading the same name again replaces the file.
func (f *fileService) Upload(ctx context.Context, req models.UploadRequest) (models.FileInfo, error) {
	log := logger.FromContext(ctx).With().Str("func", "*fileService.Upload").Str("email", req.Email).Logger()

	vault, err := f.ownerVault(ctx, req.Email)
	if err != nil {
		return models.FileInfo{}, err
	}

	base, err := validators.SanitizeFilename(req.Filename)
	if err != nil {
		return models.FileInfo{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	vaultKey := strings.TrimSpace(req.PrivateKey)
	if !f.keys.Matches(vaultKey, vault.KeyHash) {
		return models.FileInfo{}, ErrInvalidVaultKey
	}

	blob, err := f.cipher.Seal(req.Content, vaultKey)
	if err != nil {
		log.Err(err).Msg("encryption failed")
		return models.FileInfo{}, fmt.Errorf("encrypt file: %w", err)
	}

	name := base + models.EncryptedSuffix
	blobKey, err := f.blobs.Put(ctx, name, blob)
	if err != nil {
		log.Err(err).Msg("failed to store blob")
		return models.FileInfo{}, fmt.Errorf("store blob: %w", err)
	}

	file := models.FileInfo{
		VaultID: vault.VaultID,
		Name:    name,
		BlobKey: blobKey,
		Size:    int64(len(blob)),
		Created: models.UnixSeconds(f.now()),
	}

	replaced, err := f.files.SaveFile(ctx, file)
	if err != nil {
		log.Err(err).Msg("failed to save file record")
		if delErr := f.blobs.Delete(ctx, blobKey); delErr != nil {
			log.Err(delErr).Str("blob_key", blobKey).Msg("failed to remove orphaned blob")
		}
		return models.FileInfo{}, fmt.Errorf("save file: %w", err)
	}

	if replaced != "" {
		if err = f.blobs.Delete(ctx, replaced); err != nil {
			log.Err(err).Str("blob_key", replaced).Msg("failed to remove replaced blob")
		}
	}

	log.Info().Str("name", name).Int64("size", file.Size).Msg("file stored")
	return file, nil
}

// Download decrypts a stored file. The name may be given with or without the
// .enc suffix.
func (f *fileService) Download(ctx context.Context, email string, req models.DownloadRequest) (models.DownloadResult, error) {
	log := logger.FromContext(ctx).With().Str("func", "*fileService.Download").Str("email", email).Logger()

	vault, err := f.ownerVault(ctx, email)
	if err != nil {
		return models.DownloadResult{}, err
	}

	name, err := validators.SanitizeFilename(req.Filename)
	if err != nil {
		return models.DownloadResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if !strings.HasSuffix(name, models.EncryptedSuffix) {
		name += models.EncryptedSuffix
	}

	file, err := f.files.FindFile(ctx, vault.VaultID, name)
	if errors.Is(err, store.ErrFileNotFound) {
		return models.DownloadResult{}, f.missingFileError(ctx, name)
	}
	if err != nil {
		log.Err(err).Msg("file lookup failed")
		return models.DownloadResult{}, fmt.Errorf("file lookup failed: %w", err)
	}

	vaultKey := strings.TrimSpace(req.PrivateKey)
	if !f.keys.Matches(vaultKey, vault.KeyHash) {
		return models.DownloadResult{}, ErrDecryptionFailed
	}

	blob, err := f.blobs.Open(ctx, file.BlobKey)
	if errors.Is(err, store.ErrBlobNotFound) {
		log.Error().Str("blob_key", file.BlobKey).Msg("file record without blob")
		return models.DownloadResult{}, ErrFileNotFound
	}
	if err != nil {
		log.Err(err).Msg("failed to read blob")
		return models.DownloadResult{}, fmt.Errorf("read blob: %w", err)
	}

	plain, err := f.cipher.Open(blob, vaultKey)
	switch {
	case errors.Is(err, crypto.ErrBlobCorrupted):
		return models.DownloadResult{}, ErrFileCorrupted
	case errors.Is(err, crypto.ErrDecryptionFailed), errors.Is(err, crypto.ErrEmptyKey):
		return models.DownloadResult{}, ErrDecryptionFailed
	case err != nil:
		return models.DownloadResult{}, fmt.Errorf("decrypt file: %w", err)
	}

	return models.DownloadResult{
		Filename: file.OriginalName(),
		Content:  plain,
		SHA256:   utils.ContentSHA256(plain),
	}, nil
}

// missingFileError tells a file nobody has from a file somebody else has.
func (f *fileService) missingFileError(ctx context.Context, name string) error {
	owners, err := f.files.FindFilesByName(ctx, name)
	if err != nil {
		return fmt.Errorf("file lookup failed: %w", err)
	}
	if len(owners) > 0 {
		return ErrFileAccessDenied
	}
	return ErrFileNotFound
}

func (f *fileService) ownerVault(ctx context.Context, email string) (models.Vault, error) {
	if strings.TrimSpace(email) == "" {
		return models.Vault{}, ErrInvalidDataProvided
	}

	vault, err := f.vaults.FindVaultByEmail(ctx, email)
	if errors.Is(err, store.ErrVaultNotFound) {
		return models.Vault{}, ErrVaultNotFound
	}
	if err != nil {
		return models.Vault{}, fmt.Errorf("vault lookup failed: %w", err)
	}
	if vault.Destroyed {
		return models.Vault{}, ErrVaultDestroyed
	}
	// a token issued before the lockout must not outlive it
	if vault.Locked {
		return models.Vault{}, ErrVaultLocked
	}
	return vault, nil
}

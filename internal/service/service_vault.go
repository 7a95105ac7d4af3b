// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-file-vault/internal/backup"
	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/crypto"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/store"
	"github.com/MKhiriev/go-file-vault/internal/utils"
	"github.com/MKhiriev/go-file-vault/models"
)

// vaultService is the concrete implementation of VaultService.
type vaultService struct {
	vaults store.VaultRepository
	files  store.FileRepository
	blobs  store.BlobStore

	secrets crypto.SecretHasher

	// keys digests vault keys; only the digest is ever stored.
	keys *utils.KeyHasher

	// maxFailedAttempts is the number of consecutive failed logins after
	// which a vault locks.
	maxFailedAttempts int

	backups  BackupScheduler
	notifier PasswordNotifier

	now    func() time.Time
	logger *logger.Logger
}

// NewVaultService wires a VaultService. backups and notifier may be nil, in
// which case destroyed vaults are not backed up and temporary passwords are
// only returned to the caller.
func NewVaultService(vaults store.VaultRepository, files store.FileRepository, blobs store.BlobStore,
	secrets crypto.SecretHasher, backups BackupScheduler, notifier PasswordNotifier,
	cfg config.App, logger *logger.Logger) VaultService {
	return &vaultService{
		vaults:            vaults,
		files:             files,
		blobs:             blobs,
		secrets:           secrets,
		keys:              utils.NewKeyHasher(cfg.KeyHashKey),
		maxFailedAttempts: cfg.MaxFailedAttempts,
		backups:           backups,
		notifier:          notifier,
		now:               time.Now,
		logger:            logger,
	}
}

func (v *vaultService) CreateVault(ctx context.Context, req models.CreateVaultRequest) (string, error) {
	log := logger.FromContext(ctx).With().Str("func", "*vaultService.CreateVault").Str("email", req.Email).Logger()

	existing, err := v.vaults.FindVaultByEmail(ctx, req.Email)
	switch {
	case err == nil && !existing.Destroyed:
		return "", ErrVaultAlreadyExists
	case err == nil:
		// the tombstone of a destroyed vault gives way to the new vault
		if err = v.vaults.DeleteVault(ctx, existing.VaultID); err != nil && !errors.Is(err, store.ErrVaultNotFound) {
			log.Err(err).Msg("failed to remove destroyed vault")
			return "", fmt.Errorf("remove destroyed vault: %w", err)
		}
	case !errors.Is(err, store.ErrVaultNotFound):
		log.Err(err).Msg("vault lookup failed")
		return "", fmt.Errorf("vault lookup failed: %w", err)
	}

	vaultKey, err := crypto.GenerateVaultKey()
	if err != nil {
		return "", err
	}
	passwordHash, err := v.secrets.HashPassword(req.Password)
	if err != nil {
		return "", err
	}
	answerHash, err := v.secrets.HashAnswer(req.SecurityAnswer)
	if err != nil {
		return "", err
	}

	question := strings.TrimSpace(req.SecurityQuestion)
	if question == "" {
		question = models.SecurityQuestions[0]
	}

	_, err = v.vaults.CreateVault(ctx, models.Vault{
		Email:              req.Email,
		PasswordHash:       passwordHash,
		KeyHash:            v.keys.Sum(vaultKey),
		SecurityQuestion:   question,
		SecurityAnswerHash: answerHash,
		CreatedAt:          v.now(),
	})
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return "", ErrVaultAlreadyExists
	}
	if err != nil {
		log.Err(err).Msg("vault creation ended with error")
		return "", fmt.Errorf("vault creation ended with error: %w", err)
	}

	log.Info().Msg("vault created")
	return vaultKey, nil
}

func (v *vaultService) LoginVault(ctx context.Context, req models.LoginVaultRequest) (models.Vault, error) {
	log := logger.FromContext(ctx).With().Str("func", "*vaultService.LoginVault").Str("email", req.Email).Logger()

	vault, err := v.vaults.FindVaultByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrVaultNotFound) {
		return models.Vault{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Msg("vault lookup failed")
		return models.Vault{}, fmt.Errorf("vault lookup failed: %w", err)
	}

	if vault.Destroyed {
		return models.Vault{}, ErrVaultDestroyed
	}
	if vault.Locked {
		return models.Vault{}, ErrVaultLocked
	}

	passwordOK := v.secrets.VerifyPassword(vault.PasswordHash, req.Password)
	keyOK := v.keys.Matches(strings.TrimSpace(req.PrivateKey), vault.KeyHash)
	if !passwordOK || !keyOK {
		updated, err := v.vaults.RecordFailedLogin(ctx, vault.VaultID, v.maxFailedAttempts)
		if err != nil {
			log.Err(err).Msg("failed to record failed login")
			return models.Vault{}, fmt.Errorf("record failed login: %w", err)
		}
		log.Warn().Int("failed_attempts", updated.FailedAttempts).Bool("locked", updated.Locked).Msg("failed login")
		if updated.Locked {
			return models.Vault{}, ErrVaultLocked
		}
		return models.Vault{}, ErrInvalidCredentials
	}

	if vault.FailedAttempts > 0 {
		if err = v.vaults.ResetFailedLogins(ctx, vault.VaultID); err != nil {
			log.Err(err).Msg("failed to reset failed logins")
			return models.Vault{}, fmt.Errorf("reset failed logins: %w", err)
		}
		vault.FailedAttempts = 0
	}

	return vault, nil
}

func (v *vaultService) VerifyIdentity(ctx context.Context, req models.VerifyIdentityRequest) (string, error) {
	log := logger.FromContext(ctx).With().Str("func", "*vaultService.VerifyIdentity").Str("email", req.Email).Logger()

	vault, err := v.findLiveVault(ctx, req.Email)
	if err != nil {
		return "", err
	}
	// recovery exists only for a vault that the lockout already closed
	if !vault.Locked {
		return "", ErrVaultNotLocked
	}

	if !v.secrets.VerifyAnswer(vault.SecurityAnswerHash, req.SecurityAnswer) {
		log.Warn().Msg("wrong security answer, destroying vault")

		tokenSource := vault.KeyHash
		if key := strings.TrimSpace(req.PrivateKey); key != "" && v.keys.Matches(key, vault.KeyHash) {
			tokenSource = key
		}
		result, err := v.destroy(ctx, vault, tokenSource)
		if err != nil {
			return "", err
		}
		return "", &VaultDestroyedError{RecoveryToken: result.RecoveryToken, FilesAffected: result.FilesAffected}
	}

	tempPassword, err := crypto.TemporaryPassword()
	if err != nil {
		return "", err
	}
	passwordHash, err := v.secrets.HashPassword(tempPassword)
	if err != nil {
		return "", err
	}
	if err = v.vaults.UnlockWithPassword(ctx, vault.VaultID, passwordHash); err != nil {
		log.Err(err).Msg("failed to unlock vault")
		return "", fmt.Errorf("unlock vault: %w", err)
	}

	if v.notifier != nil {
		if err = v.notifier.SendTemporaryPassword(ctx, vault.Email, tempPassword); err != nil {
			log.Err(err).Msg("failed to mail temporary password")
		}
	}

	log.Info().Msg("vault unlocked")
	return tempPassword, nil
}

func (v *vaultService) DestroyVault(ctx context.Context, email, vaultKey string) (models.DestroyResult, error) {
	vault, err := v.findLiveVault(ctx, email)
	if err != nil {
		return models.DestroyResult{}, err
	}

	vaultKey = strings.TrimSpace(vaultKey)
	if !v.keys.Matches(vaultKey, vault.KeyHash) {
		return models.DestroyResult{}, ErrInvalidVaultKey
	}

	return v.destroy(ctx, vault, vaultKey)
}

// quarantinedBlob pairs a quarantined file name with the live key it had.
type quarantinedBlob struct {
	name string
	key  string
}

// destroy moves the files of vault to quarantine, turns the vault into a
// tombstone, drops the ownership rows and queues the backup. Blobs move
// first: when a move or the tombstone fails, the moved blobs go back and
// the vault stays as it was.
func (v *vaultService) destroy(ctx context.Context, vault models.Vault, tokenSource string) (models.DestroyResult, error) {
	log := logger.FromContext(ctx).With().Str("func", "*vaultService.destroy").Str("email", vault.Email).Logger()
	now := v.now()

	files, err := v.files.ListFiles(ctx, vault.VaultID)
	if err != nil {
		log.Err(err).Msg("failed to list vault files")
		return models.DestroyResult{}, fmt.Errorf("list files: %w", err)
	}

	moved := make([]quarantinedBlob, 0, len(files))
	for _, file := range files {
		name, err := v.blobs.Quarantine(ctx, file.BlobKey, file.Name, now)
		if errors.Is(err, store.ErrBlobNotFound) {
			log.Warn().Str("blob_key", file.BlobKey).Msg("blob already gone")
			continue
		}
		if err != nil {
			log.Err(err).Str("blob_key", file.BlobKey).Msg("failed to quarantine blob")
			v.restore(ctx, moved)
			return models.DestroyResult{}, fmt.Errorf("quarantine blob: %w", err)
		}
		moved = append(moved, quarantinedBlob{name: name, key: file.BlobKey})
	}

	recoveryToken := crypto.RecoveryToken(tokenSource, now)

	if err = v.vaults.MarkDestroyed(ctx, vault.VaultID, now); err != nil {
		log.Err(err).Msg("failed to mark vault destroyed")
		v.restore(ctx, moved)
		return models.DestroyResult{}, fmt.Errorf("mark vault destroyed: %w", err)
	}

	// the tombstone already hides the rows; they cascade away with it
	if _, err = v.files.DeleteFiles(ctx, vault.VaultID); err != nil {
		log.Err(err).Msg("failed to remove file ownership")
	}

	quarantined := make([]string, 0, len(moved))
	for _, blob := range moved {
		quarantined = append(quarantined, blob.name)
	}

	if v.backups != nil {
		v.backups.Enqueue(backup.Job{
			Email:         vault.Email,
			RecoveryToken: recoveryToken,
			Files:         quarantined,
		})
	}

	log.Info().Int("files_affected", len(quarantined)).Msg("vault destroyed")
	return models.DestroyResult{
		FilesAffected: len(quarantined),
		RecoveryToken: recoveryToken,
	}, nil
}

// restore moves quarantined blobs back to their live keys. Failures are
// logged; the blob then stays in quarantine.
func (v *vaultService) restore(ctx context.Context, moved []quarantinedBlob) {
	log := logger.FromContext(ctx)
	for _, blob := range moved {
		if err := v.blobs.Restore(ctx, blob.name, blob.key); err != nil {
			log.Err(err).Str("blob_key", blob.key).Str("quarantined", blob.name).Msg("failed to restore blob")
		}
	}
}

// findLiveVault maps a missing vault to ErrVaultNotFound and a tombstone to
// ErrVaultDestroyed.
func (v *vaultService) findLiveVault(ctx context.Context, email string) (models.Vault, error) {
	vault, err := v.vaults.FindVaultByEmail(ctx, email)
	if errors.Is(err, store.ErrVaultNotFound) {
		return models.Vault{}, ErrVaultNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("email", email).Msg("vault lookup failed")
		return models.Vault{}, fmt.Errorf("vault lookup failed: %w", err)
	}
	if vault.Destroyed {
		return models.Vault{}, ErrVaultDestroyed
	}
	return vault, nil
}

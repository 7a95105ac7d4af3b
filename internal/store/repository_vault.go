// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/models"
)

// vaultRepository is the SQL implementation of [VaultRepository] for both
// PostgreSQL and SQLite. Placeholders come from the dialect of the
// embedded [*DB].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type vaultRepository struct {
	*DB
	logger *logger.Logger
}

// NewVaultRepository constructs a [VaultRepository] backed by db.
func NewVaultRepository(db *DB, logger *logger.Logger) VaultRepository {
	logger.Debug().Msg("creating vault repository")
	return &vaultRepository{
		DB:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVault(row rowScanner) (models.Vault, error) {
	var (
		vault       models.Vault
		destroyedAt sql.NullTime
	)
	err := row.Scan(
		&vault.VaultID,
		&vault.Email,
		&vault.PasswordHash,
		&vault.KeyHash,
		&vault.SecurityQuestion,
		&vault.SecurityAnswerHash,
		&vault.FailedAttempts,
		&vault.Locked,
		&vault.Destroyed,
		&vault.CreatedAt,
		&destroyedAt,
	)
	if err != nil {
		return models.Vault{}, err
	}
	if destroyedAt.Valid {
		at := destroyedAt.Time
		vault.DestroyedAt = &at
	}
	return vault, nil
}

// CreateVault inserts vault and returns it with the assigned VaultID.
//
// Error handling:
//   - unique violation on email (either engine) → [ErrEmailAlreadyExists].
//   - any other driver error → wrapped [ErrExecutingStatement].
func (r *vaultRepository) CreateVault(ctx context.Context, vault models.Vault) (models.Vault, error) {
	log := logger.FromContext(ctx)

	if vault.CreatedAt.IsZero() {
		vault.CreatedAt = time.Now()
	}

	query, args, err := r.buildInsertVaultQuery(vault)
	if err != nil {
		return models.Vault{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.withRetry(ctx, func(ctx context.Context) error {
		return r.DB.QueryRowContext(ctx, query, args...).Scan(&vault.VaultID)
	})
	if err != nil {
		if r.errorClassificator.IsUniqueViolation(err) {
			return models.Vault{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*vaultRepository.CreateVault").Msg("failed to insert vault")
		return models.Vault{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	vault.FailedAttempts = 0
	vault.Locked = false
	vault.Destroyed = false
	return vault, nil
}

// FindVaultByEmail returns the vault (or tombstone) registered for email.
// A missing row yields [ErrVaultNotFound].
func (r *vaultRepository) FindVaultByEmail(ctx context.Context, email string) (models.Vault, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildSelectVaultByEmailQuery(email)
	if err != nil {
		return models.Vault{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	vault, err := scanVault(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vault{}, ErrVaultNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.FindVaultByEmail").Msg("failed to select vault")
		return models.Vault{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return vault, nil
}

// RecordFailedLogin implements [VaultRepository]. The increment and the
// lock decision happen in one UPDATE so concurrent failures cannot skip
// the threshold. The UPDATE runs once: after a lost reply it may already
// have counted, and a second run would count the attempt twice.
func (r *vaultRepository) RecordFailedLogin(ctx context.Context, vaultID int64, maxAttempts int) (models.Vault, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildRecordFailedLoginQuery(vaultID, maxAttempts)
	if err != nil {
		return models.Vault{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	vault, err := scanVault(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vault{}, ErrVaultNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.RecordFailedLogin").Int64("vault_id", vaultID).Msg("failed to record failed login")
		return models.Vault{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Debug().Int64("vault_id", vaultID).Int("failed_attempts", vault.FailedAttempts).Bool("locked", vault.Locked).Msg("failed login recorded")
	return vault, nil
}

func (r *vaultRepository) ResetFailedLogins(ctx context.Context, vaultID int64) error {
	query, args, err := r.buildResetFailedLoginsQuery(vaultID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.execAffectingVault(ctx, "*vaultRepository.ResetFailedLogins", vaultID, query, args)
}

func (r *vaultRepository) UnlockWithPassword(ctx context.Context, vaultID int64, passwordHash string) error {
	query, args, err := r.buildUnlockWithPasswordQuery(vaultID, passwordHash)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.execAffectingVault(ctx, "*vaultRepository.UnlockWithPassword", vaultID, query, args)
}

func (r *vaultRepository) MarkDestroyed(ctx context.Context, vaultID int64, at time.Time) error {
	query, args, err := r.buildMarkDestroyedQuery(vaultID, at)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.execAffectingVault(ctx, "*vaultRepository.MarkDestroyed", vaultID, query, args)
}

func (r *vaultRepository) DeleteVault(ctx context.Context, vaultID int64) error {
	query, args, err := r.buildDeleteVaultQuery(vaultID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.execAffectingVault(ctx, "*vaultRepository.DeleteVault", vaultID, query, args)
}

// execAffectingVault runs a single-vault statement and maps "no rows
// affected" to [ErrVaultNotFound].
func (r *vaultRepository) execAffectingVault(ctx context.Context, funcName string, vaultID int64, query string, args []any) error {
	log := logger.FromContext(ctx)

	var result sql.Result
	err := r.withRetry(ctx, func(ctx context.Context) error {
		var execErr error
		result, execErr = r.DB.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", funcName).Int64("vault_id", vaultID).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrVaultNotFound
	}
	return nil
}

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

type fileRepository struct {
	*DB
	logger *logger.Logger
}

// NewFileRepository constructs a [FileRepository] backed by db.
func NewFileRepository(db *DB, logger *logger.Logger) FileRepository {
	logger.Debug().Msg("creating file repository")
	return &fileRepository{
		DB:     db,
		logger: logger,
	}
}

func scanFile(row rowScanner) (models.FileInfo, error) {
	var (
		file      models.FileInfo
		createdAt time.Time
	)
	if err := row.Scan(&file.FileID, &file.VaultID, &file.Name, &file.BlobKey, &file.Size, &createdAt); err != nil {
		return models.FileInfo{}, err
	}
	file.Created = models.UnixSeconds(createdAt)
	return file, nil
}

// SaveFile upserts the row inside a transaction so the previous blob key can
// be reported back for cleanup.
func (f *fileRepository) SaveFile(ctx context.Context, file models.FileInfo) (string, error) {
	log := logger.FromContext(ctx).With().Str("func", "*fileRepository.SaveFile").Int64("vault_id", file.VaultID).Str("name", file.Name).Logger()

	selectQuery, selectArgs, err := f.buildSelectFileQuery(file.VaultID, file.Name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	upsertQuery, upsertArgs, err := f.buildUpsertFileQuery(file)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := f.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("failed to begin transaction")
		return "", fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var replaced string
	existing, err := scanFile(tx.QueryRowContext(ctx, selectQuery, selectArgs...))
	switch {
	case err == nil:
		replaced = existing.BlobKey
	case errors.Is(err, sql.ErrNoRows):
	default:
		log.Err(err).Msg("failed to select existing file")
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if _, err = tx.ExecContext(ctx, upsertQuery, upsertArgs...); err != nil {
		log.Err(err).Msg("failed to upsert file")
		return "", fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Msg("failed to commit transaction")
		return "", fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}

	if replaced == file.BlobKey {
		replaced = ""
	}
	return replaced, nil
}

// ListFiles returns the files of the vault, newest first. An empty vault
// yields an empty, non-nil slice.
func (f *fileRepository) ListFiles(ctx context.Context, vaultID int64) ([]models.FileInfo, error) {
	query, args, err := f.buildListFilesQuery(vaultID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return f.queryFiles(ctx, "*fileRepository.ListFiles", query, args)
}

func (f *fileRepository) FindFile(ctx context.Context, vaultID int64, name string) (models.FileInfo, error) {
	log := logger.FromContext(ctx)

	query, args, err := f.buildSelectFileQuery(vaultID, name)
	if err != nil {
		return models.FileInfo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	file, err := scanFile(f.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.FileInfo{}, ErrFileNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.FindFile").Int64("vault_id", vaultID).Msg("failed to select file")
		return models.FileInfo{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return file, nil
}

func (f *fileRepository) FindFilesByName(ctx context.Context, name string) ([]models.FileInfo, error) {
	query, args, err := f.buildSelectFilesByNameQuery(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return f.queryFiles(ctx, "*fileRepository.FindFilesByName", query, args)
}

// DeleteFiles removes every row of the vault in one transaction and returns
// the removed rows so the caller can quarantine their blobs.
func (f *fileRepository) DeleteFiles(ctx context.Context, vaultID int64) ([]models.FileInfo, error) {
	log := logger.FromContext(ctx).With().Str("func", "*fileRepository.DeleteFiles").Int64("vault_id", vaultID).Logger()

	listQuery, listArgs, err := f.buildListFilesQuery(vaultID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	deleteQuery, deleteArgs, err := f.buildDeleteFilesQuery(vaultID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := f.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		log.Err(err).Msg("failed to list files")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	files, err := collectFiles(rows)
	if err != nil {
		log.Err(err).Msg("failed to scan files")
		return nil, err
	}

	if _, err = tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		log.Err(err).Msg("failed to delete files")
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Msg("failed to commit transaction")
		return nil, fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}

	return files, nil
}

func (f *fileRepository) queryFiles(ctx context.Context, funcName, query string, args []any) ([]models.FileInfo, error) {
	log := logger.FromContext(ctx)

	rows, err := f.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	files, err := collectFiles(rows)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to scan files")
		return nil, err
	}
	return files, nil
}

func collectFiles(rows *sql.Rows) ([]models.FileInfo, error) {
	defer rows.Close()

	files := make([]models.FileInfo, 0)
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return files, nil
}

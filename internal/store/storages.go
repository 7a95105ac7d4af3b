package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/logger"
)

// Storages groups everything the server persists: the vault and file
// repositories over one database and the encrypted blob store.
type Storages struct {
	VaultRepository VaultRepository
	FileRepository  FileRepository
	BlobStore       BlobStore

	db *DB
}

// NewStorages connects to the configured database, applies migrations and
// prepares the blob directories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectDB(ctx, cfg.DB.DSN, log)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	blobs, err := NewLocalBlobStore(cfg.Files.LiveDir, cfg.Files.DestroyedDir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("blob store: %w", err)
	}

	return &Storages{
		VaultRepository: NewVaultRepository(db, log),
		FileRepository:  NewFileRepository(db, log),
		BlobStore:       blobs,
		db:              db,
	}, nil
}

// Close releases the database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ClientStorages groups the client-side repositories.
type ClientStorages struct {
	SessionRepository SessionRepository

	db *DB
}

// NewClientStorages opens (creating if needed) the SQLite session database
// at cfg.DSN and migrates it.
func NewClientStorages(ctx context.Context, cfg config.Session, log *logger.Logger) (*ClientStorages, error) {
	db, err := NewConnectSQLite(ctx, cfg.DSN, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.MigrateClient(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		SessionRepository: NewSessionRepository(db, log),
		db:                db,
	}, nil
}

func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping checks that the server database answers.
func (s *Storages) Ping(ctx context.Context) error {
	if s.db == nil {
		return ErrDBNotInitialized
	}
	return s.db.PingContext(ctx)
}

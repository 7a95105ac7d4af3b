package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/migrations"
)

// Dialect names the SQL engine behind a [DB].
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// retry policy for statements classified as [Retryable].
const (
	retryAttempts = 3
	retryBase     = 50 * time.Millisecond
)

// DB wraps a *sql.DB together with its dialect, the matching error
// classifier and a logger.
type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB wraps an already opened connection. It is mostly useful in tests
// together with sqlmock.
func NewDB(conn *sql.DB, dialect Dialect, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		dialect:            dialect,
		errorClassificator: classifierFor(dialect),
		logger:             log,
	}
}

// NewConnectDB opens the server database. A postgres:// or postgresql://
// DSN connects to PostgreSQL through pgx, anything else is treated as a
// SQLite file path.
func NewConnectDB(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrUnsupportedDSN
	}
	if IsPostgresDSN(dsn) {
		return NewConnectPostgres(ctx, dsn, log)
	}
	return NewConnectSQLite(ctx, dsn, log)
}

// IsPostgresDSN reports whether dsn is a PostgreSQL connection URL.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func NewConnectPostgres(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occurred during database connection")
		return nil, fmt.Errorf("error occurred during database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return NewDB(conn, DialectPostgres, log), nil
}

func NewConnectSQLite(ctx context.Context, path string, log *logger.Logger) (*DB, error) {
	// db will be in file
	if err := createLocalDBFileIfNotExists(path); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file: %w", err)
	}

	conn, err := sql.Open("sqlite3", sqliteDSN(path))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}
	// a single writer avoids SQLITE_BUSY between pooled connections
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Str("path", path).Msg("connected to database successfully")

	return NewDB(conn, DialectSQLite, log), nil
}

// Dialect returns the engine behind db.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies the server schema.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

// MigrateClient applies the client session schema.
func (db *DB) MigrateClient() error {
	return migrations.MigrateClient(db.DB)
}

// builder returns a squirrel builder using the placeholder style of the
// dialect.
func (db *DB) builder() sq.StatementBuilderType {
	if db.dialect == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// withRetry runs op again when it fails with an error the classifier marks
// [Retryable] (lost connection, deadlock, SQLITE_BUSY).
func (db *DB) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(retryAttempts, retry.NewExponential(retryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := op(ctx)
		if err != nil && db.errorClassificator.Classify(err) == Retryable {
			db.logger.Warn().Err(err).Msg("retrying database operation")
			return retry.RetryableError(err)
		}
		return err
	})
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_foreign_keys=on&_busy_timeout=5000"
}

func createLocalDBFileIfNotExists(dbFile string) error {
	dbFile, _, _ = strings.Cut(dbFile, "?")
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		if dir := filepath.Dir(dbFile); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("error creating DB dir: %w", err)
			}
		}
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}

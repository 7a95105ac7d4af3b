// Package migrations embeds the goose SQL migrations of the server and of
// the client session database.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql client/*.sql
var embedMigrations embed.FS

// goose keeps its dialect and base FS in package globals.
var gooseMu sync.Mutex

// Migrate applies the server schema. dialect is "postgres" or "sqlite3".
func Migrate(db *sql.DB, dialect string) error {
	switch dialect {
	case "postgres":
		return up(db, "postgres", "postgres")
	case "sqlite3":
		return up(db, "sqlite3", "sqlite")
	default:
		return fmt.Errorf("migration error: unsupported dialect %q", dialect)
	}
}

// MigrateClient applies the client session schema to a SQLite database.
func MigrateClient(db *sql.DB) error {
	return up(db, "sqlite3", "client")
}

func up(db *sql.DB, dialect, dir string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

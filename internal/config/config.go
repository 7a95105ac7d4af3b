// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// vault server, the TUI client and vaultctl. Each binary reads the parts it
// needs through a role view ([GetServerConfig], [GetClientConfig]).
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds secrets and tuning of the vault domain.
	App App `envPrefix:"APP_"`

	// Storage holds the database and blob directories.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen addresses and limits of the API server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's view of the server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Backup holds the destinations of destroyed-vault backups.
	Backup Backup `envPrefix:"BACKUP_"`

	// Workers holds background worker settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds logging settings.
	Log Log `envPrefix:"LOG_"`

	// ConfigFilePath is the optional path to a JSON, TOML or YAML file merged
	// on top of env and flags. Env: CONFIG, flags: -c / -config.
	ConfigFilePath string `env:"CONFIG"`
}

// App holds vault-domain settings.
type App struct {
	// KeyHashKey is the HMAC key used to digest vault keys before they are
	// stored. Must be kept confidential and must never change once vaults
	// exist. Env: APP_KEY_HASH_KEY
	KeyHashKey string `env:"KEY_HASH_KEY"`

	// TokenSignKey signs and verifies bearer tokens. Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of issued tokens. Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of issued tokens. Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// MaxFailedAttempts is the number of consecutive failed logins after
	// which a vault locks. Env: APP_MAX_FAILED_ATTEMPTS
	MaxFailedAttempts int `env:"MAX_FAILED_ATTEMPTS"`

	// Version is exposed via GET /api/version. Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the persistence settings.
type Storage struct {
	// DB is the server database.
	DB DB `envPrefix:"DB_"`

	// Files are the blob directories.
	Files Files `envPrefix:"FILES_"`

	// Session is the client-side session database.
	Session Session `envPrefix:"SESSION_"`
}

// DB holds connection settings for the server database.
type DB struct {
	// DSN selects the engine: a postgres:// or postgresql:// URL opens
	// PostgreSQL through pgx, anything else is a SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds the blob store directories.
type Files struct {
	// LiveDir holds the encrypted files of active vaults.
	// Env: STORAGE_FILES_LIVE_DIR
	LiveDir string `env:"LIVE_DIR"`

	// DestroyedDir receives files of destroyed vaults.
	// Env: STORAGE_FILES_DESTROYED_DIR
	DestroyedDir string `env:"DESTROYED_DIR"`
}

// Session holds the client session database.
type Session struct {
	// DSN is the SQLite file holding the client session.
	// Env: STORAGE_SESSION_DSN
	DSN string `env:"DSN"`
}

// Server holds network settings of the API server.
type Server struct {
	// HTTPAddress is the host:port the HTTP API listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the host:port of the gRPC health endpoint.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single request. Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxUploadSize bounds an upload body in bytes. Env: SERVER_MAX_UPLOAD_SIZE
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE"`
}

// Adapter holds the client's connection to the server.
type Adapter struct {
	// ServerURL is the base URL of the vault API (e.g. http://127.0.0.1:8000).
	// Env: ADAPTER_SERVER_URL
	ServerURL string `env:"SERVER_URL"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Backup holds the destinations a destroyed vault is backed up to. Each
// destination is optional; an unconfigured one is skipped.
type Backup struct {
	SMTP  SMTP  `envPrefix:"SMTP_"`
	Drive Drive `envPrefix:"DRIVE_"`
}

// SMTP configures the recovery mail sender.
type SMTP struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

// Drive configures uploads to a Google Drive folder with a service account.
type Drive struct {
	// ServiceAccountFile is the path of the service account JSON key.
	ServiceAccountFile string `env:"SERVICE_ACCOUNT_FILE"`
	// ParentFolderID is the Drive folder receiving backups.
	ParentFolderID string `env:"PARENT_FOLDER_ID"`
}

// Workers holds background worker settings.
type Workers struct {
	// BackupQueueSize is the capacity of the backup job queue.
	// Env: WORKERS_BACKUP_QUEUE_SIZE
	BackupQueueSize int `env:"BACKUP_QUEUE_SIZE"`
}

// Log holds logging settings.
type Log struct {
	// Level is a zerolog level name. Env: LOG_LEVEL
	Level string `env:"LEVEL"`
	// File is where interactive clients write their log. Env: LOG_FILE
	File string `env:"FILE"`
}

// GetStructuredConfig loads and merges the configuration from all sources in
// the following priority order (later sources win for non-zero fields):
//  1. .env file in the working directory (if present)
//  2. Environment variables
//  3. Command-line flags
//  4. Config file (path resolved from sources 1-3)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags(args).
		withFile().
		build()
}

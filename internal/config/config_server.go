package config

import (
	"fmt"
	"time"
)

// ServerConfig is the view of [StructuredConfig] used by the vault server.
type ServerConfig struct {
	App     App
	Storage Storage
	Server  Server
	Backup  Backup
	Workers Workers
	Log     Log
}

const (
	defaultTokenDuration     = 24 * time.Hour
	defaultTokenIssuer       = "go-file-vault"
	defaultMaxFailedAttempts = 3
	defaultHTTPAddress       = ":8000"
	defaultGRPCAddress       = ":9000"
	defaultRequestTimeout    = 30 * time.Second
	defaultMaxUploadSize     = 32 << 20
	defaultBackupQueueSize   = 16
	defaultLiveDir           = "storage/live_vaults"
	defaultDestroyedDir      = "storage/destroyed_vaults"
	defaultServerDSN         = "vault-server.db"
	defaultLogLevel          = "debug"
)

var serverDefaults = StructuredConfig{
	App: App{
		TokenIssuer:       defaultTokenIssuer,
		TokenDuration:     defaultTokenDuration,
		MaxFailedAttempts: defaultMaxFailedAttempts,
		Version:           "dev",
	},
	Storage: Storage{
		DB:    DB{DSN: defaultServerDSN},
		Files: Files{LiveDir: defaultLiveDir, DestroyedDir: defaultDestroyedDir},
	},
	Server: Server{
		HTTPAddress:    defaultHTTPAddress,
		GRPCAddress:    defaultGRPCAddress,
		RequestTimeout: defaultRequestTimeout,
		MaxUploadSize:  defaultMaxUploadSize,
	},
	Workers: Workers{BackupQueueSize: defaultBackupQueueSize},
	Log:     Log{Level: defaultLogLevel},
}

// GetServerConfig loads the configuration from args and the environment,
// fills unset fields with server defaults and validates the result.
func GetServerConfig(args []string) (*ServerConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, err
	}

	return cfg.ServerConfig()
}

// ServerConfig returns the server view of cfg with defaults applied.
func (cfg *StructuredConfig) ServerConfig() (*ServerConfig, error) {
	merged := *cfg
	if err := withDefaults(&merged, serverDefaults); err != nil {
		return nil, err
	}

	serverCfg := &ServerConfig{
		App:     merged.App,
		Storage: merged.Storage,
		Server:  merged.Server,
		Backup:  merged.Backup,
		Workers: merged.Workers,
		Log:     merged.Log,
	}
	if err := serverCfg.validate(); err != nil {
		return nil, fmt.Errorf("server config: %w", err)
	}

	return serverCfg, nil
}

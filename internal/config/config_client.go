package config

import (
	"fmt"
	"time"
)

// ClientConfig is the view of [StructuredConfig] used by the TUI client and
// vaultctl.
type ClientConfig struct {
	Adapter Adapter
	Session Session
	Log     Log
	Version string
}

const (
	defaultServerURL      = "http://127.0.0.1:8000"
	defaultClientTimeout  = 30 * time.Second
	defaultSessionDSN     = "vault-client.db"
	defaultClientLogLevel = "info"
)

var clientDefaults = StructuredConfig{
	Adapter: Adapter{ServerURL: defaultServerURL, RequestTimeout: defaultClientTimeout},
	Storage: Storage{Session: Session{DSN: defaultSessionDSN}},
	Log:     Log{Level: defaultClientLogLevel},
	App:     App{Version: "dev"},
}

// GetClientConfig loads the configuration from args and the environment,
// fills unset fields with client defaults and validates the result.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, err
	}

	return cfg.ClientConfig()
}

// ClientConfig returns the client view of cfg with defaults applied.
func (cfg *StructuredConfig) ClientConfig() (*ClientConfig, error) {
	merged := *cfg
	if err := withDefaults(&merged, clientDefaults); err != nil {
		return nil, err
	}

	clientCfg := &ClientConfig{
		Adapter: merged.Adapter,
		Session: merged.Storage.Session,
		Log:     merged.Log,
		Version: merged.App.Version,
	}
	if err := clientCfg.validate(); err != nil {
		return nil, fmt.Errorf("client config: %w", err)
	}

	return clientCfg, nil
}

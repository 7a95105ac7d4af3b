package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerConfig_AppliesDefaults(t *testing.T) {
	cfg := &StructuredConfig{App: App{TokenSignKey: "sign", KeyHashKey: "hash"}}

	serverCfg, err := cfg.ServerConfig()
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, serverCfg.App.TokenDuration)
	assert.Equal(t, "go-file-vault", serverCfg.App.TokenIssuer)
	assert.Equal(t, 3, serverCfg.App.MaxFailedAttempts)
	assert.Equal(t, "storage/live_vaults", serverCfg.Storage.Files.LiveDir)
	assert.Equal(t, "storage/destroyed_vaults", serverCfg.Storage.Files.DestroyedDir)
	assert.Equal(t, ":8000", serverCfg.Server.HTTPAddress)
	assert.Equal(t, int64(32<<20), serverCfg.Server.MaxUploadSize)
	assert.Equal(t, 16, serverCfg.Workers.BackupQueueSize)
}

func TestServerConfig_KeepsExplicitValues(t *testing.T) {
	cfg := &StructuredConfig{
		App:    App{TokenSignKey: "sign", KeyHashKey: "hash", MaxFailedAttempts: 5},
		Server: Server{HTTPAddress: "127.0.0.1:9999"},
	}

	serverCfg, err := cfg.ServerConfig()
	require.NoError(t, err)
	assert.Equal(t, 5, serverCfg.App.MaxFailedAttempts)
	assert.Equal(t, "127.0.0.1:9999", serverCfg.Server.HTTPAddress)
}

func TestServerConfig_DoesNotMutateSource(t *testing.T) {
	cfg := &StructuredConfig{App: App{TokenSignKey: "sign", KeyHashKey: "hash"}}

	_, err := cfg.ServerConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.Server.HTTPAddress)
}

func TestServerConfig_RequiresSecrets(t *testing.T) {
	tests := []struct {
		name string
		app  App
	}{
		{name: "no sign key", app: App{KeyHashKey: "hash"}},
		{name: "no key hash key", app: App{TokenSignKey: "sign"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&StructuredConfig{App: tt.app}).ServerConfig()
			assert.ErrorIs(t, err, ErrInvalidAppConfigs)
		})
	}
}

func TestClientConfig_AppliesDefaults(t *testing.T) {
	clientCfg, err := (&StructuredConfig{}).ClientConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8000", clientCfg.Adapter.ServerURL)
	assert.Equal(t, 30*time.Second, clientCfg.Adapter.RequestTimeout)
	assert.Equal(t, "vault-client.db", clientCfg.Session.DSN)
	assert.Equal(t, "info", clientCfg.Log.Level)
}

func TestClientConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StructuredConfig
		wantErr error
	}{
		{
			name:    "in-memory session db",
			cfg:     StructuredConfig{Storage: Storage{Session: Session{DSN: ":memory:"}}},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "server url without scheme",
			cfg:     StructuredConfig{Adapter: Adapter{ServerURL: "vault:8000"}},
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			name:    "ftp scheme",
			cfg:     StructuredConfig{Adapter: Adapter{ServerURL: "ftp://vault"}},
			wantErr: ErrInvalidAdapterConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.ClientConfig()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

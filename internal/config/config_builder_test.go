package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "1.0.0", TokenIssuer: "env"}},
		&StructuredConfig{App: App{TokenIssuer: "flags"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "flags", cfg.App.TokenIssuer)
}

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("APP_TOKEN_ISSUER", "env-issuer")

	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "env-issuer", b.configs[0].App.TokenIssuer)
}

func TestWithDotEnv_LoadsFile(t *testing.T) {
	path := writeTempConfig(t, ".env", "APP_TOKEN_ISSUER=dotenv-issuer\n")
	old := dotEnvFile
	dotEnvFile = path
	t.Cleanup(func() {
		dotEnvFile = old
		os.Unsetenv("APP_TOKEN_ISSUER")
	})

	b := newConfigBuilder().withDotEnv().withEnv()
	require.NoError(t, b.err)
	assert.Equal(t, "dotenv-issuer", b.configs[0].App.TokenIssuer)
}

func TestWithDotEnv_MissingFileIsIgnored(t *testing.T) {
	old := dotEnvFile
	dotEnvFile = filepath.Join(t.TempDir(), "absent.env")
	t.Cleanup(func() { dotEnvFile = old })

	b := newConfigBuilder().withDotEnv()
	assert.NoError(t, b.err)
}

func TestWithFlags_AppendsParsedConfig(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-token-issuer", "flag-issuer"})
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "flag-issuer", b.configs[0].App.TokenIssuer)
}

func TestWithFlags_UnknownFlagSetsError(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-no-such-flag"})
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithFile_NoOpWhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withFile()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithFile_UsesLastPath(t *testing.T) {
	first := writeTempConfig(t, "first.json", `{"app":{"version":"first"}}`)
	last := writeTempConfig(t, "last.yaml", "app:\n  version: last\n")

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{ConfigFilePath: first},
		&StructuredConfig{ConfigFilePath: last},
	)
	b.withFile()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last", b.configs[2].App.Version)
}

func TestWithFile_SetsErrorWhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{ConfigFilePath: "/nonexistent/config.json"})
	b.withFile()

	assert.Error(t, b.err)
}

func TestGetStructuredConfig_FileOverridesEnvAndFlags(t *testing.T) {
	path := writeTempConfig(t, "cfg.toml", "[app]\ntoken_issuer = \"file\"\n")
	t.Setenv("APP_TOKEN_ISSUER", "env")
	t.Setenv("APP_VERSION", "env-version")

	cfg, err := GetStructuredConfig([]string{"-token-issuer", "flag", "-c", path})
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.App.TokenIssuer)
	assert.Equal(t, "env-version", cfg.App.Version)
	assert.Equal(t, path, cfg.ConfigFilePath)
}

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// TestNewLogger_RoleAndTimestamp verifies that entries carry the role label
// and a timestamp.
func TestNewLogger_RoleAndTimestamp(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("vault-server")
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "vault-server", entry["role"])
	_, hasTime := entry["time"]
	assert.True(t, hasTime)
}

// TestNewLogger_CallerFieldName verifies that the caller field is named "func".
func TestNewLogger_CallerFieldName(t *testing.T) {
	NewLogger("caller")
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

func TestNewLogger_GlobalLevelIsDebug(t *testing.T) {
	NewLogger("level")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

// TestNewClientLogger_WritesToFile verifies that client loggers never write
// to stdout but to the given file.
func TestNewClientLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")
	l := NewClientLogger("vault-client", path)

	l.Info().Msg("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"role":"vault-client"`)
	assert.Contains(t, string(data), "to file")
}

// TestNewClientLogger_UnwritablePath verifies the discard fallback.
func TestNewClientLogger_UnwritablePath(t *testing.T) {
	l := NewClientLogger("vault-client", filepath.Join(t.TempDir(), "missing", "dir", "log"))
	require.NotNil(t, l)
	assert.NotPanics(t, func() { l.Info().Msg("discarded") })
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	cases := []struct {
		name  string
		level string
		ok    bool
		want  zerolog.Level
	}{
		{"warn", "warn", true, zerolog.WarnLevel},
		{"upper case", "ERROR", true, zerolog.ErrorLevel},
		{"padded", " info ", true, zerolog.InfoLevel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ok, SetLevel(tc.level))
			assert.Equal(t, tc.want, zerolog.GlobalLevel())
		})
	}
}

func TestSetLevel_InvalidKeepsLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	assert.False(t, SetLevel(""))
	assert.False(t, SetLevel("loud"))
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)
	l.Info().Msg("should be discarded")
	assert.Empty(t, buf.String())
}

// TestGetChildLogger_InheritsFields verifies that the child is a distinct
// instance carrying the parent's fields.
func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("inherited")
	parent.Logger = parent.Output(&buf)

	child := parent.GetChildLogger()
	assert.NotSame(t, parent, child)
	child.Info().Msg("child")

	assert.Equal(t, "inherited", decodeEntry(t, &buf)["role"])
}

func TestFromContext_NeverNil(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))
}

// TestFromRequest_ReturnsAttachedLogger verifies that FromRequest returns the
// logger attached to the request's context.
func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "abc").Logger()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	FromRequest(req).Info().Msg("from request")

	assert.Equal(t, "abc", decodeEntry(t, &buf)["trace_id"])
}

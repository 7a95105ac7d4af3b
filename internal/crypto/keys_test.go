package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVaultKey(t *testing.T) {
	first, err := GenerateVaultKey()
	require.NoError(t, err)
	second, err := GenerateVaultKey()
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^VK-[0-9a-f]{64}$`), first)
	assert.NotEqual(t, first, second)
}

func TestRecoveryToken(t *testing.T) {
	now := time.Unix(1700000000, 0)
	sum := sha256.Sum256([]byte("VK-abc"))
	want := "REC-1700000000-" + strings.ToUpper(hex.EncodeToString(sum[:])[:8])

	assert.Equal(t, want, RecoveryToken("VK-abc", now))
	assert.Equal(t, want, RecoveryToken(" VK-abc ", now))
	assert.Regexp(t, `^REC-1700000000-[0-9A-F]{8}$`, RecoveryToken("", now))
}

func TestTemporaryPassword(t *testing.T) {
	seen := make(map[string]struct{})
	for range 20 {
		pw, err := TemporaryPassword()
		require.NoError(t, err)
		assert.Len(t, pw, 12)
		assert.Regexp(t, `^[A-Za-z0-9_-]{12}$`, pw)
		seen[pw] = struct{}{}
	}
	assert.Len(t, seen, 20)
}

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

const (
	// VaultKeyPrefix marks strings produced by GenerateVaultKey.
	VaultKeyPrefix = "VK-"
	// RecoveryTokenPrefix marks strings produced by RecoveryToken.
	RecoveryTokenPrefix = "REC-"

	vaultKeyBytes        = 32
	temporaryPasswordLen = 12
)

// GenerateVaultKey returns a new vault key: "VK-" followed by 32 random
// bytes in hex. It is shown to the owner once and never stored in clear.
func GenerateVaultKey() (string, error) {
	raw := make([]byte, vaultKeyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate vault key: %w", err)
	}
	return VaultKeyPrefix + hex.EncodeToString(raw), nil
}

// RecoveryToken builds the token handed out when a vault is destroyed:
// REC-<unix seconds>-<first 8 hex digits of sha256(vaultKey), upper case>.
// An empty key yields the digest of the empty string.
func RecoveryToken(vaultKey string, now time.Time) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(vaultKey)))
	fingerprint := strings.ToUpper(hex.EncodeToString(sum[:])[:8])
	return fmt.Sprintf("%s%d-%s", RecoveryTokenPrefix, now.Unix(), fingerprint)
}

// TemporaryPassword returns a 12 character URL-safe random password issued
// after a successful identity check.
func TemporaryPassword() (string, error) {
	raw := make([]byte, temporaryPasswordLen)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw)[:temporaryPasswordLen], nil
}

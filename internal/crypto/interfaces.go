// Package crypto holds the server-side cryptography of the vault: file
// encryption keyed by the vault key, generation of vault keys, recovery
// tokens and temporary passwords, and hashing of login secrets.
package crypto

// FileCipher encrypts and decrypts stored files with a key derived from the
// owner's vault key. The caller never sees the derived key.
//
// Blob layout: salt (16 bytes) || nonce (12 bytes) || ciphertext || tag.
type FileCipher interface {
	// Seal encrypts plain with a key derived from vaultKey and a fresh salt.
	Seal(plain []byte, vaultKey string) ([]byte, error)

	// Open reverses Seal. It returns ErrBlobCorrupted when the blob is too
	// short to hold a salt, nonce and tag, and ErrDecryptionFailed when the
	// key is wrong or the blob was modified.
	Open(blob []byte, vaultKey string) ([]byte, error)
}

// SecretHasher hashes login secrets (passwords and security answers) for
// storage and verifies candidates against the stored hash.
type SecretHasher interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool

	// HashAnswer and VerifyAnswer normalise the answer (trimmed, lower case)
	// so "  Rex " matches "rex".
	HashAnswer(answer string) (string, error)
	VerifyAnswer(hash, answer string) bool
}

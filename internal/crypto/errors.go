package crypto

import "errors"

var (
	// ErrBlobCorrupted is returned for blobs shorter than the fixed header.
	ErrBlobCorrupted = errors.New("encrypted blob is corrupted")
	// ErrDecryptionFailed is returned when authentication of the blob fails:
	// the vault key is wrong or the blob was tampered with.
	ErrDecryptionFailed = errors.New("decryption failed: invalid key or corrupted data")
	// ErrEmptyKey is returned when the vault key is blank after trimming.
	ErrEmptyKey = errors.New("vault key is empty")
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	saltSize  = 16
	nonceSize = 12
	tagSize   = 16
)

// fileCipher is the private implementation of [FileCipher].
type fileCipher struct {
	// Argon2id tuning parameters.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewFileCipher constructs a [FileCipher] with the Argon2id parameters
// recommended by OWASP:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (AES-256)
func NewFileCipher() FileCipher {
	return &fileCipher{
		argonTime:    1,
		argonMemory:  64 * 1024,
		argonThreads: 4,
		argonKeyLen:  32,
	}
}

func (f *fileCipher) deriveKey(vaultKey string, salt []byte) ([]byte, error) {
	vaultKey = strings.TrimSpace(vaultKey)
	if vaultKey == "" {
		return nil, ErrEmptyKey
	}
	return argon2.IDKey([]byte(vaultKey), salt, f.argonTime, f.argonMemory, f.argonThreads, f.argonKeyLen), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

// Seal implements [FileCipher].
func (f *fileCipher) Seal(plain []byte, vaultKey string) ([]byte, error) {
	blob := make([]byte, saltSize+nonceSize, saltSize+nonceSize+len(plain)+tagSize)
	if _, err := io.ReadFull(rand.Reader, blob); err != nil {
		return nil, fmt.Errorf("generate salt and nonce: %w", err)
	}
	salt, nonce := blob[:saltSize], blob[saltSize:]

	key, err := f.deriveKey(vaultKey, salt)
	if err != nil {
		return nil, err
	}
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	return gcm.Seal(blob, nonce, plain, nil), nil
}

// Open implements [FileCipher].
func (f *fileCipher) Open(blob []byte, vaultKey string) ([]byte, error) {
	if len(blob) < saltSize+nonceSize+tagSize {
		return nil, ErrBlobCorrupted
	}
	salt := blob[:saltSize]
	nonce := blob[saltSize : saltSize+nonceSize]
	ciphertext := blob[saltSize+nonceSize:]

	key, err := f.deriveKey(vaultKey, salt)
	if err != nil {
		return nil, err
	}
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plain, nil
}

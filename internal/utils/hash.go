package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// KeyHasher computes keyed HMAC-SHA256 digests of vault keys. The server
// stores only these digests, so a leaked database does not reveal the keys.
//
// Hash instances are pooled; a KeyHasher is safe for concurrent use.
type KeyHasher struct {
	pool sync.Pool
}

// NewKeyHasher returns a KeyHasher whose HMACs use hashKey.
//
// Example usage:
//
//	hasher := utils.NewKeyHasher("my-secret-key")
//	digest := hasher.Sum("VK-...")
func NewKeyHasher(hashKey string) *KeyHasher {
	key := []byte(hashKey)
	return &KeyHasher{
		pool: sync.Pool{
			New: func() any {
				return hmac.New(sha256.New, key)
			},
		},
	}
}

// Sum returns the hex-encoded HMAC-SHA256 of data.
func (k *KeyHasher) Sum(data string) string {
	h := k.pool.Get().(hash.Hash)
	h.Reset()

	h.Write([]byte(data))
	sum := h.Sum(nil)

	h.Reset()
	k.pool.Put(h)

	return hex.EncodeToString(sum)
}

// Matches reports whether data hashes to digest, in constant time.
func (k *KeyHasher) Matches(data, digest string) bool {
	return hmac.Equal([]byte(k.Sum(data)), []byte(digest))
}

// HashString computes an HMAC-SHA256 signature over the given string
// using the provided hash key and returns the result as a hex-encoded string.
//
// Unlike [KeyHasher], a new HMAC instance is created on each call.
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}

// ContentSHA256 returns the hex-encoded SHA-256 of content. It is sent with
// downloads in the X-Content-SHA256 header and checked by the client.
func ContentSHA256(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

package utils

import (
	"strings"

	"github.com/google/uuid"
)

// blobKeySeparator joins the id prefix and the file name in a blob key.
const blobKeySeparator = "_"

// UUIDGenerator hands out the ids used in blob keys. UUIDv7 keeps blobs of
// one vault roughly in upload order on disk.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7, or a random UUIDv4 when the clock fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// BlobKey prefixes name with a fresh id: <uuid>_<name>.
func (g *UUIDGenerator) BlobKey(name string) string {
	return g.Generate() + blobKeySeparator + name
}

// BlobKeyName returns the file name part of a key made by BlobKey.
func BlobKeyName(key string) string {
	if _, name, ok := strings.Cut(key, blobKeySeparator); ok {
		return name
	}
	return key
}

// BlobKeyID returns the id part of a key made by BlobKey, or "".
func BlobKeyID(key string) string {
	if id, _, ok := strings.Cut(key, blobKeySeparator); ok {
		return id
	}
	return ""
}

// NewTraceID returns an id for a request without an X-Trace-ID header.
func NewTraceID() string {
	return uuid.NewString()
}

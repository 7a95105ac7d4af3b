package models

import "time"

// EncryptedSuffix is appended to every stored file name.
const EncryptedSuffix = ".enc"

// FileInfo describes one encrypted file owned by a vault.
//
// The JSON shape (name, size, created) is what the file list endpoint has
// always returned; created is unix seconds with a fractional part.
type FileInfo struct {
	FileID  int64 `json:"-"`
	VaultID int64 `json:"-"`

	// Name is the stored name, always ending in EncryptedSuffix.
	Name string `json:"name"`

	// BlobKey locates the encrypted bytes in the blob store.
	BlobKey string `json:"-"`

	// Size is the size of the encrypted blob in bytes.
	Size int64 `json:"size"`

	// Created is the upload time as unix seconds.
	Created float64 `json:"created"`
}

// OriginalName strips EncryptedSuffix from Name.
func (f FileInfo) OriginalName() string {
	return StripEncryptedSuffix(f.Name)
}

// CreatedAt converts Created back into a time.Time.
func (f FileInfo) CreatedAt() time.Time {
	sec := int64(f.Created)
	nsec := int64((f.Created - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

// StripEncryptedSuffix removes a trailing EncryptedSuffix from name, if any.
func StripEncryptedSuffix(name string) string {
	if len(name) > len(EncryptedSuffix) && name[len(name)-len(EncryptedSuffix):] == EncryptedSuffix {
		return name[:len(name)-len(EncryptedSuffix)]
	}
	return name
}

// UnixSeconds converts t into the fractional unix seconds used by FileInfo.
func UnixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

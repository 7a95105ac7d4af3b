package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-file-vault/internal/store"
)

// Archiver writes the files of a job into a zip named
// VAULT_BACKUP_<email>.zip inside a fresh temporary directory.
type Archiver struct {
	blobs  store.BlobStore
	tmpDir string
}

// NewArchiver creates archives under tmpDir, or the system temp dir when
// tmpDir is empty.
func NewArchiver(blobs store.BlobStore, tmpDir string) *Archiver {
	return &Archiver{blobs: blobs, tmpDir: tmpDir}
}

// Create builds the archive and returns its path together with a cleanup
// func removing it. The cleanup func is never nil.
func (a *Archiver) Create(ctx context.Context, job Job) (string, func(), error) {
	noop := func() {}

	dir, err := os.MkdirTemp(a.tmpDir, "vault-backup-*")
	if err != nil {
		return "", noop, fmt.Errorf("create backup dir: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	path := filepath.Join(dir, ArchiveName(job.Email))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		cleanup()
		return "", noop, fmt.Errorf("create backup archive: %w", err)
	}

	if err = a.blobs.Archive(ctx, f, job.Files); err != nil {
		f.Close()
		cleanup()
		return "", noop, fmt.Errorf("write backup archive: %w", err)
	}
	if err = f.Close(); err != nil {
		cleanup()
		return "", noop, fmt.Errorf("close backup archive: %w", err)
	}

	return path, cleanup, nil
}

// ArchiveName returns the file name used for the backup of email. Path
// separators in the address are replaced so the name stays a single file.
func ArchiveName(email string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, strings.TrimSpace(email))
	return "VAULT_BACKUP_" + safe + ".zip"
}

package store

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/go-file-vault/internal/utils"
)

// DestroyedPrefix starts the name of every quarantined file.
const DestroyedPrefix = "DESTROYED_"

// localBlobStore keeps encrypted blobs as flat files under liveDir and moves
// the files of destroyed vaults to destroyedDir. Writes go through a temp
// file and a rename so a crash never leaves a half-written blob behind.
type localBlobStore struct {
	liveDir      string
	destroyedDir string
	tmpDir       string
	ids          *utils.UUIDGenerator
}

// NewLocalBlobStore creates both directories (and a tmp dir inside liveDir)
// when they are missing.
func NewLocalBlobStore(liveDir, destroyedDir string) (BlobStore, error) {
	liveDir, destroyedDir = strings.TrimSpace(liveDir), strings.TrimSpace(destroyedDir)
	if liveDir == "" || destroyedDir == "" {
		return nil, errors.New("blob store directories are required")
	}

	live, err := filepath.Abs(liveDir)
	if err != nil {
		return nil, err
	}
	destroyed, err := filepath.Abs(destroyedDir)
	if err != nil {
		return nil, err
	}

	tmp := filepath.Join(live, "tmp")
	for _, dir := range []string{live, destroyed, tmp} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create blob dir %s: %w", dir, err)
		}
	}

	return &localBlobStore{
		liveDir:      live,
		destroyedDir: destroyed,
		tmpDir:       tmp,
		ids:          utils.NewUUIDGenerator(),
	}, nil
}

// Put implements [BlobStore]. Keys look like <uuid>_<name>.
func (s *localBlobStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "", ErrInvalidBlobKey
	}
	key := s.ids.BlobKey(base)

	tmp, err := os.CreateTemp(s.tmpDir, "put-*")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err = tmp.Write(data); err != nil {
		cleanup()
		return "", err
	}
	if err = tmp.Close(); err != nil {
		cleanup()
		return "", err
	}

	if err = os.Rename(tmpPath, filepath.Join(s.liveDir, key)); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	return key, nil
}

func (s *localBlobStore) Open(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.pathFromKey(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	return data, err
}

func (s *localBlobStore) Stat(ctx context.Context, key string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	path, err := s.pathFromKey(key)
	if err != nil {
		return 0, err
	}

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, ErrBlobNotFound
	}
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Delete removes a blob. Missing files are ignored.
func (s *localBlobStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.pathFromKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Quarantine implements [BlobStore]. An empty name falls back to the name
// embedded in key. The id part of key keeps equal names of different
// vaults apart; an existing file is never overwritten.
func (s *localBlobStore) Quarantine(ctx context.Context, key, name string, at time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	src, err := s.pathFromKey(key)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = utils.BlobKeyName(key)
	}
	id := utils.BlobKeyID(key)
	if id == "" {
		id = s.ids.Generate()
	}

	dstName := fmt.Sprintf("%s%d_%s_%s", DestroyedPrefix, at.Unix(), id, filepath.Base(name))
	if err := moveNoClobber(src, filepath.Join(s.destroyedDir, dstName)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrBlobNotFound
		}
		return "", fmt.Errorf("quarantine blob: %w", err)
	}
	return dstName, nil
}

// Restore implements [BlobStore].
func (s *localBlobStore) Restore(ctx context.Context, quarantined, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if quarantined != filepath.Base(quarantined) || quarantined == "." || quarantined == ".." {
		return ErrInvalidBlobKey
	}
	dst, err := s.pathFromKey(key)
	if err != nil {
		return err
	}

	if err := moveNoClobber(filepath.Join(s.destroyedDir, quarantined), dst); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrBlobNotFound
		}
		return fmt.Errorf("restore blob: %w", err)
	}
	return nil
}

// moveNoClobber renames src to dst and fails with ErrBlobExists when dst
// is taken. A hard link claims dst atomically; where links are not
// possible (another filesystem) it falls back to a checked rename.
func moveNoClobber(src, dst string) error {
	err := os.Link(src, dst)
	switch {
	case err == nil:
		return os.Remove(src)
	case errors.Is(err, os.ErrExist):
		return ErrBlobExists
	case errors.Is(err, os.ErrNotExist):
		return err
	}

	if _, statErr := os.Lstat(dst); statErr == nil {
		return ErrBlobExists
	}
	return os.Rename(src, dst)
}

// Archive implements [BlobStore]. Names must be plain file names inside the
// destroyed directory; missing files are skipped.
func (s *localBlobStore) Archive(ctx context.Context, w io.Writer, names []string) error {
	zw := zip.NewWriter(w)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			zw.Close()
			return err
		}
		if name != filepath.Base(name) || name == "." || name == ".." {
			zw.Close()
			return ErrInvalidBlobKey
		}

		if err := addZipEntry(zw, filepath.Join(s.destroyedDir, name), name); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			zw.Close()
			return fmt.Errorf("archive %s: %w", name, err)
		}
	}

	return zw.Close()
}

func addZipEntry(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	entry, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, f)
	return err
}

func (s *localBlobStore) pathFromKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || filepath.IsAbs(key) || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", ErrInvalidBlobKey
	}
	return filepath.Join(s.liveDir, key), nil
}

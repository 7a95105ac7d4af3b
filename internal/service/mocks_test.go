// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/MKhiriev/go-file-vault/internal/backup"
	"github.com/MKhiriev/go-file-vault/internal/crypto"
	"github.com/MKhiriev/go-file-vault/internal/store"
	"github.com/MKhiriev/go-file-vault/models"
)

// ─────────────────────────────────────────────
// Mock: store.VaultRepository
// ─────────────────────────────────────────────

type mockVaultRepository struct {
	createVaultFn        func(ctx context.Context, vault models.Vault) (models.Vault, error)
	findVaultByEmailFn   func(ctx context.Context, email string) (models.Vault, error)
	recordFailedLoginFn  func(ctx context.Context, vaultID int64, maxAttempts int) (models.Vault, error)
	resetFailedLoginsFn  func(ctx context.Context, vaultID int64) error
	unlockWithPasswordFn func(ctx context.Context, vaultID int64, passwordHash string) error
	markDestroyedFn      func(ctx context.Context, vaultID int64, at time.Time) error
	deleteVaultFn        func(ctx context.Context, vaultID int64) error
}

func (m *mockVaultRepository) CreateVault(ctx context.Context, vault models.Vault) (models.Vault, error) {
	if m.createVaultFn != nil {
		return m.createVaultFn(ctx, vault)
	}
	vault.VaultID = 1
	return vault, nil
}

func (m *mockVaultRepository) FindVaultByEmail(ctx context.Context, email string) (models.Vault, error) {
	if m.findVaultByEmailFn != nil {
		return m.findVaultByEmailFn(ctx, email)
	}
	return models.Vault{}, store.ErrVaultNotFound
}

func (m *mockVaultRepository) RecordFailedLogin(ctx context.Context, vaultID int64, maxAttempts int) (models.Vault, error) {
	if m.recordFailedLoginFn != nil {
		return m.recordFailedLoginFn(ctx, vaultID, maxAttempts)
	}
	return models.Vault{VaultID: vaultID, FailedAttempts: 1}, nil
}

func (m *mockVaultRepository) ResetFailedLogins(ctx context.Context, vaultID int64) error {
	if m.resetFailedLoginsFn != nil {
		return m.resetFailedLoginsFn(ctx, vaultID)
	}
	return nil
}

func (m *mockVaultRepository) UnlockWithPassword(ctx context.Context, vaultID int64, passwordHash string) error {
	if m.unlockWithPasswordFn != nil {
		return m.unlockWithPasswordFn(ctx, vaultID, passwordHash)
	}
	return nil
}

func (m *mockVaultRepository) MarkDestroyed(ctx context.Context, vaultID int64, at time.Time) error {
	if m.markDestroyedFn != nil {
		return m.markDestroyedFn(ctx, vaultID, at)
	}
	return nil
}

func (m *mockVaultRepository) DeleteVault(ctx context.Context, vaultID int64) error {
	if m.deleteVaultFn != nil {
		return m.deleteVaultFn(ctx, vaultID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.FileRepository
// ─────────────────────────────────────────────

type mockFileRepository struct {
	saveFileFn        func(ctx context.Context, file models.FileInfo) (string, error)
	listFilesFn       func(ctx context.Context, vaultID int64) ([]models.FileInfo, error)
	findFileFn        func(ctx context.Context, vaultID int64, name string) (models.FileInfo, error)
	findFilesByNameFn func(ctx context.Context, name string) ([]models.FileInfo, error)
	deleteFilesFn     func(ctx context.Context, vaultID int64) ([]models.FileInfo, error)
}

func (m *mockFileRepository) SaveFile(ctx context.Context, file models.FileInfo) (string, error) {
	if m.saveFileFn != nil {
		return m.saveFileFn(ctx, file)
	}
	return "", nil
}

func (m *mockFileRepository) ListFiles(ctx context.Context, vaultID int64) ([]models.FileInfo, error) {
	if m.listFilesFn != nil {
		return m.listFilesFn(ctx, vaultID)
	}
	return []models.FileInfo{}, nil
}

func (m *mockFileRepository) FindFile(ctx context.Context, vaultID int64, name string) (models.FileInfo, error) {
	if m.findFileFn != nil {
		return m.findFileFn(ctx, vaultID, name)
	}
	return models.FileInfo{}, store.ErrFileNotFound
}

func (m *mockFileRepository) FindFilesByName(ctx context.Context, name string) ([]models.FileInfo, error) {
	if m.findFilesByNameFn != nil {
		return m.findFilesByNameFn(ctx, name)
	}
	return nil, nil
}

func (m *mockFileRepository) DeleteFiles(ctx context.Context, vaultID int64) ([]models.FileInfo, error) {
	if m.deleteFilesFn != nil {
		return m.deleteFilesFn(ctx, vaultID)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: store.BlobStore (in memory)
// ─────────────────────────────────────────────

type memoryBlobStore struct {
	mu          sync.Mutex
	blobs       map[string][]byte
	quarantined map[string][]byte
	putErr      error
	// quarantineErr fails Quarantine for the listed blob keys
	quarantineErr map[string]error
	restored      []string
	seq         int
}

func newMemoryBlobStore() *memoryBlobStore {
	return &memoryBlobStore{blobs: map[string][]byte{}, quarantined: map[string][]byte{}}
}

func (m *memoryBlobStore) Put(_ context.Context, name string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return "", m.putErr
	}
	m.seq++
	key := string(rune('a'+m.seq-1)) + "_" + name
	m.blobs[key] = append([]byte(nil), data...)
	return key, nil
}

func (m *memoryBlobStore) Open(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, store.ErrBlobNotFound
	}
	return data, nil
}

func (m *memoryBlobStore) Stat(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return 0, store.ErrBlobNotFound
	}
	return int64(len(data)), nil
}

func (m *memoryBlobStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

func (m *memoryBlobStore) Quarantine(_ context.Context, key, name string, at time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.quarantineErr[key]; ok {
		return "", err
	}
	data, ok := m.blobs[key]
	if !ok {
		return "", store.ErrBlobNotFound
	}
	delete(m.blobs, key)
	q := "DESTROYED_" + name
	m.quarantined[q] = data
	return q, nil
}

func (m *memoryBlobStore) Restore(_ context.Context, quarantined, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.quarantined[quarantined]
	if !ok {
		return store.ErrBlobNotFound
	}
	delete(m.quarantined, quarantined)
	m.blobs[key] = data
	m.restored = append(m.restored, key)
	return nil
}

func (m *memoryBlobStore) Archive(_ context.Context, w io.Writer, names []string) error {
	return nil
}

// ─────────────────────────────────────────────
// Mock: crypto.FileCipher
// ─────────────────────────────────────────────

// xorCipher is a reversible stand-in for the real cipher. The blob is the
// key prefix followed by the content with every byte inverted.
type xorCipher struct{}

func (xorCipher) Seal(plain []byte, vaultKey string) ([]byte, error) {
	out := []byte(vaultKey + "|")
	for _, b := range plain {
		out = append(out, ^b)
	}
	return out, nil
}

func (xorCipher) Open(blob []byte, vaultKey string) ([]byte, error) {
	prefix := []byte(vaultKey + "|")
	if len(blob) < len(prefix) {
		return nil, crypto.ErrBlobCorrupted
	}
	if !bytes.Equal(blob[:len(prefix)], prefix) {
		return nil, crypto.ErrDecryptionFailed
	}
	out := make([]byte, 0, len(blob)-len(prefix))
	for _, b := range blob[len(prefix):] {
		out = append(out, ^b)
	}
	return out, nil
}

// ─────────────────────────────────────────────
// Mock: BackupScheduler / PasswordNotifier
// ─────────────────────────────────────────────

type mockScheduler struct {
	jobs []backup.Job
}

func (m *mockScheduler) Enqueue(job backup.Job) bool {
	m.jobs = append(m.jobs, job)
	return true
}

type mockNotifier struct {
	err       error
	email     string
	password  string
	callCount int
}

func (m *mockNotifier) SendTemporaryPassword(_ context.Context, email, password string) error {
	m.callCount++
	m.email, m.password = email, password
	return m.err
}

var errStorage = errors.New("storage error")

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrVaultAlreadyExists = errors.New("vault already exists")
	ErrVaultNotFound      = errors.New("vault not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrVaultLocked        = errors.New("vault is locked")
	ErrVaultNotLocked     = errors.New("vault is not locked")
	ErrVaultDestroyed     = errors.New("vault destroyed")
	ErrInvalidVaultKey    = errors.New("invalid vault key")
	ErrEmailMismatch      = errors.New("email does not match the authenticated vault")

	ErrFileNotFound     = errors.New("file not found")
	ErrFileAccessDenied = errors.New("access denied: you do not own this file")
	ErrFileCorrupted    = errors.New("file corrupted")
	ErrDecryptionFailed = errors.New("decryption failed (wrong key)")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("version is not specified")
)

// VaultDestroyedError is returned when an operation destroyed the vault. It
// matches ErrVaultDestroyed with errors.Is and carries the recovery token.
type VaultDestroyedError struct {
	RecoveryToken string
	FilesAffected int
}

func (e *VaultDestroyedError) Error() string {
	return ErrVaultDestroyed.Error()
}

func (e *VaultDestroyedError) Unwrap() error {
	return ErrVaultDestroyed
}

// Client-side errors.
var (
	ErrNoSession         = errors.New("no session: log in first")
	ErrNotAuthenticated  = errors.New("session expired: log in again")
	ErrFileTooLarge      = errors.New("file too large")
	ErrIntegrityCheck    = errors.New("integrity check failed")
	ErrServerUnavailable = errors.New("server unavailable")
)

// RemoteError is a server refusal translated into a service error. Its
// message is the server's detail text; errors.Is matches Err.
type RemoteError struct {
	Err    error
	Detail string
}

func (e *RemoteError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Err.Error()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

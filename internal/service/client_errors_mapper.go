// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-file-vault/internal/adapter"
	"github.com/MKhiriev/go-file-vault/internal/app"
)

// mapAdapterError translates the adapter's transport error into a service
// business error. The server's detail text is kept for display.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := adapter.Detail(err)
	remote := func(target error) error {
		return &RemoteError{Err: target, Detail: msg}
	}

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		switch msg {
		case app.MsgDecryptionFailed:
			return remote(ErrDecryptionFailed)
		case app.MsgFileCorrupted:
			return remote(ErrFileCorrupted)
		case app.MsgInvalidVaultKey:
			return remote(ErrInvalidVaultKey)
		}
		return remote(ErrInvalidDataProvided)

	case errors.Is(err, adapter.ErrUnauthorized):
		if msg == app.MsgInvalidCredentials {
			return remote(ErrInvalidCredentials)
		}
		return remote(ErrNotAuthenticated)

	case errors.Is(err, adapter.ErrForbidden):
		switch msg {
		case app.MsgVaultLocked:
			return remote(ErrVaultLocked)
		case app.MsgVaultNotLocked:
			return remote(ErrVaultNotLocked)
		case app.MsgEmailMismatch:
			return remote(ErrEmailMismatch)
		}
		return remote(ErrFileAccessDenied)

	case errors.Is(err, adapter.ErrNotFound):
		if msg == app.MsgVaultNotFound {
			return remote(ErrVaultNotFound)
		}
		return remote(ErrFileNotFound)

	case errors.Is(err, adapter.ErrConflict):
		return remote(ErrVaultAlreadyExists)

	case errors.Is(err, adapter.ErrGone):
		if token := adapter.RecoveryToken(err); token != "" {
			return &VaultDestroyedError{RecoveryToken: token}
		}
		return remote(ErrVaultDestroyed)

	case errors.Is(err, adapter.ErrPayloadTooLarge):
		return remote(ErrFileTooLarge)

	case errors.Is(err, adapter.ErrIntegrityCheck):
		return ErrIntegrityCheck

	case errors.Is(err, adapter.ErrInternalServerError), errors.Is(err, adapter.ErrUnexpectedStatus):
		return remote(ErrServerUnavailable)
	}

	// the request never got an answer
	return errors.Join(ErrServerUnavailable, err)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-file-vault/internal/service"
)

const msgServerUnavailable = "No network or the vault server is unavailable"

// humanizeError turns a service error into the text shown to the user.
// Server refusals already carry the server's own wording.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	var remote *service.RemoteError
	if errors.As(err, &remote) && remote.Detail != "" {
		return remote.Detail
	}

	s := strings.ToLower(err.Error())
	if errors.Is(err, service.ErrServerUnavailable) ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return msgServerUnavailable
	}

	return err.Error()
}

// needsLogin reports whether err means the saved session can no longer be
// used.
func needsLogin(err error) bool {
	return errors.Is(err, service.ErrNoSession) ||
		errors.Is(err, service.ErrNotAuthenticated) ||
		errors.Is(err, service.ErrVaultDestroyed)
}

// needsLoginSilently reports whether err is the plain absence of a session,
// which is not worth a notice on the login page.
func needsLoginSilently(err error) bool {
	return errors.Is(err, service.ErrNoSession)
}

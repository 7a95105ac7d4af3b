package adapter

import (
	"errors"
	"strings"
)

// Transport errors. Every non-2xx answer wraps exactly one of them.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrGone                = errors.New("gone")
	ErrPayloadTooLarge     = errors.New("payload too large")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")
)

var (
	// ErrIntegrityCheck is returned when a downloaded body does not match
	// the digest the server announced.
	ErrIntegrityCheck = errors.New("integrity check failed")

	// ErrInvalidServerURL is returned for an empty or unparsable base URL.
	ErrInvalidServerURL = errors.New("invalid server url")
)

// Detail returns the server's explanation carried by a transport error, i.e.
// everything after the "<sentinel>: " prefix.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}

// goneError is the 410 answer of verify-identity. It keeps the recovery
// token next to the detail text.
type goneError struct {
	detail        string
	recoveryToken string
}

func (e *goneError) Error() string {
	return ErrGone.Error() + ": " + e.detail
}

func (e *goneError) Unwrap() error {
	return ErrGone
}

// RecoveryToken extracts the recovery token from a 410 answer. It returns ""
// when err carries none.
func RecoveryToken(err error) string {
	var gone *goneError
	if errors.As(err, &gone) {
		return gone.recoveryToken
	}
	return ""
}

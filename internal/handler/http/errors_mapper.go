package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-file-vault/internal/app"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/internal/store"
	"github.com/MKhiriev/go-file-vault/internal/utils"
	"github.com/MKhiriev/go-file-vault/models"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:                http.StatusBadRequest,
	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrNoEmailInContext:           http.StatusUnauthorized,

	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrVaultAlreadyExists:      http.StatusConflict,
	service.ErrVaultNotFound:           http.StatusNotFound,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrVaultLocked:             http.StatusForbidden,
	service.ErrVaultNotLocked:          http.StatusForbidden,
	service.ErrVaultDestroyed:          http.StatusGone,
	service.ErrInvalidVaultKey:         http.StatusBadRequest,
	service.ErrEmailMismatch:           http.StatusForbidden,
	service.ErrFileNotFound:            http.StatusNotFound,
	service.ErrFileAccessDenied:        http.StatusForbidden,
	service.ErrFileCorrupted:           http.StatusBadRequest,
	service.ErrDecryptionFailed:        http.StatusBadRequest,
	service.ErrFileTooLarge:            http.StatusRequestEntityTooLarge,
	service.ErrIntegrityCheck:          http.StatusBadRequest,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,
	service.ErrVersionIsNotSpecified:   http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:      http.StatusInternalServerError,
	store.ErrExecutingQuery:        http.StatusInternalServerError,
	store.ErrBeginningTransaction:  http.StatusInternalServerError,
	store.ErrCommittingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:    http.StatusInternalServerError,
	store.ErrScanningRow:           http.StatusInternalServerError,
	store.ErrScanningRows:          http.StatusInternalServerError,
}

var errorMessageMap = map[error]string{
	ErrEmptyAuthorizationHeader:   app.MsgMissingToken,
	ErrInvalidAuthorizationHeader: app.MsgMissingToken,
	ErrNoEmailInContext:           app.MsgMissingToken,

	service.ErrVaultAlreadyExists:      app.MsgVaultAlreadyExists,
	service.ErrVaultNotFound:           app.MsgVaultNotFound,
	service.ErrInvalidCredentials:      app.MsgInvalidCredentials,
	service.ErrVaultLocked:             app.MsgVaultLocked,
	service.ErrVaultNotLocked:          app.MsgVaultNotLocked,
	service.ErrVaultDestroyed:          app.MsgVaultDestroyed,
	service.ErrInvalidVaultKey:         app.MsgInvalidVaultKey,
	service.ErrEmailMismatch:           app.MsgEmailMismatch,
	service.ErrFileNotFound:            app.MsgFileNotFound,
	service.ErrFileAccessDenied:        app.MsgAccessDenied,
	service.ErrFileCorrupted:           app.MsgFileCorrupted,
	service.ErrDecryptionFailed:        app.MsgDecryptionFailed,
	service.ErrFileTooLarge:            app.MsgFileTooLarge,
	service.ErrTokenIsExpiredOrInvalid: app.MsgTokenIsExpiredOrInvalid,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError picks the detail text for err. Validation failures keep
// their own message so the user learns which field was wrong; unknown
// failures never leak internals.
func messageFromError(err error) string {
	for target, msg := range errorMessageMap {
		if errors.Is(err, target) {
			return msg
		}
	}
	if errors.Is(err, service.ErrInvalidDataProvided) || errors.Is(err, ErrInvalidJSON) || errors.Is(err, service.ErrIntegrityCheck) {
		return err.Error()
	}
	return app.MsgInternalServerError
}

// writeError answers with the status and detail of err. A destroyed vault
// also carries its recovery token.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	body := models.ErrorResponse{Detail: messageFromError(err)}
	var destroyed *service.VaultDestroyedError
	if errors.As(err, &destroyed) {
		body.Detail = app.MsgIdentityFailed
		body.RecoveryToken = destroyed.RecoveryToken
	}

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if _, writeErr := utils.WriteJSON(w, body, status); writeErr != nil {
		log.Err(writeErr).Msg("failed to write error response")
	}
}

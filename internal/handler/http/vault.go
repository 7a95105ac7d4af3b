package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-file-vault/internal/app"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/utils"
	"github.com/MKhiriev/go-file-vault/models"
)

func (h *Handler) createVault(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.CreateVaultRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	vaultKey, err := h.services.VaultService.CreateVault(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Msg("vault created")
	utils.WriteJSON(w, models.CreateVaultResponse{PrivateKey: vaultKey, Message: app.MsgVaultCreated}, http.StatusOK)
}

func (h *Handler) loginVault(w http.ResponseWriter, r *http.Request) {
	var req models.LoginVaultRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	vault, err := h.services.VaultService.LoginVault(ctx, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, vault.Email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set(utils.HeaderAuthorization, "Bearer "+token.SignedString)
	utils.WriteJSON(w, models.LoginVaultResponse{Status: models.StatusAuthenticated, Email: vault.Email}, http.StatusOK)
}

func (h *Handler) verifyIdentity(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyIdentityRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	tempPassword, err := h.services.VaultService.VerifyIdentity(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.VerifyIdentityResponse{Status: models.StatusVerified, TempPassword: tempPassword}, http.StatusOK)
}

func (h *Handler) destroyVault(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.DestroyVaultRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	email, err := authenticatedEmail(r, req.UserEmail)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.services.VaultService.DestroyVault(r.Context(), email, req.PrivateKey)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Warn().Int("files_affected", result.FilesAffected).Msg("vault destroyed on request")
	utils.WriteJSON(w, models.DestroyVaultResponse{
		Status:        models.StatusVaultDestroyed,
		FilesAffected: result.FilesAffected,
		Message:       app.MsgVaultDestroyedMoved,
		RecoveryToken: result.RecoveryToken,
	}, http.StatusOK)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

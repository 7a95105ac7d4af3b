package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-file-vault/internal/validators"
	"github.com/MKhiriev/go-file-vault/models"
)

// VaultValidationService rejects malformed requests before they reach the
// wrapped VaultService.
type VaultValidationService struct {
	inner     VaultService
	validator validators.Validator
}

func NewVaultValidationService() VaultServiceWrapper {
	return &VaultValidationService{
		validator: validators.NewVaultRequestValidator(),
	}
}

func (v *VaultValidationService) CreateVault(ctx context.Context, req models.CreateVaultRequest) (string, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.CreateVault(ctx, req)
}

func (v *VaultValidationService) LoginVault(ctx context.Context, req models.LoginVaultRequest) (models.Vault, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Vault{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.LoginVault(ctx, req)
}

func (v *VaultValidationService) VerifyIdentity(ctx context.Context, req models.VerifyIdentityRequest) (string, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.VerifyIdentity(ctx, req)
}

func (v *VaultValidationService) DestroyVault(ctx context.Context, email, vaultKey string) (models.DestroyResult, error) {
	req := models.DestroyVaultRequest{UserEmail: email, PrivateKey: vaultKey}
	if err := v.validator.Validate(ctx, req, validators.FieldEmail, validators.FieldVaultKey); err != nil {
		return models.DestroyResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.DestroyVault(ctx, email, vaultKey)
}

func (v *VaultValidationService) Wrap(inner VaultService) VaultService {
	v.inner = inner
	return v
}

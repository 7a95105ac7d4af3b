package validators

import (
	"context"
	"fmt"
	"net/mail"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-file-vault/models"
)

// Field names accepted by Validate.
const (
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldVaultKey       = "private_key"
	FieldSecurityAnswer = "security_answer"
	FieldFilename       = "filename"
	FieldContent        = "content"
)

type VaultRequestValidator struct{}

func NewVaultRequestValidator() Validator {
	return &VaultRequestValidator{}
}

func (v *VaultRequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateVaultRequest:
		return v.validateCreateVault(value, fields...)
	case *models.CreateVaultRequest:
		return v.validateCreateVault(*value, fields...)

	case models.LoginVaultRequest:
		return v.validateLoginVault(value, fields...)
	case *models.LoginVaultRequest:
		return v.validateLoginVault(*value, fields...)

	case models.VerifyIdentityRequest:
		return v.validateVerifyIdentity(value, fields...)
	case *models.VerifyIdentityRequest:
		return v.validateVerifyIdentity(*value, fields...)

	case models.DestroyVaultRequest:
		return v.validateDestroyVault(value, fields...)
	case *models.DestroyVaultRequest:
		return v.validateDestroyVault(*value, fields...)

	case models.DownloadRequest:
		return v.validateDownload(value, fields...)
	case *models.DownloadRequest:
		return v.validateDownload(*value, fields...)

	case models.UploadRequest:
		return v.validateUpload(value, fields...)
	case *models.UploadRequest:
		return v.validateUpload(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

type fieldCheck func() error

// runChecks runs the named checks, or every check when fields is empty.
func runChecks(checks map[string]fieldCheck, order []string, fields ...string) error {
	if len(fields) == 0 {
		fields = order
	}
	for _, field := range fields {
		check, ok := checks[field]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (v *VaultRequestValidator) validateCreateVault(req models.CreateVaultRequest, fields ...string) error {
	return runChecks(map[string]fieldCheck{
		FieldEmail:          func() error { return validateEmail(req.Email) },
		FieldPassword:       func() error { return required(req.Password, ErrEmptyPassword) },
		FieldSecurityAnswer: func() error { return required(req.SecurityAnswer, ErrEmptySecurityAnswer) },
	}, []string{FieldEmail, FieldPassword, FieldSecurityAnswer}, fields...)
}

func (v *VaultRequestValidator) validateLoginVault(req models.LoginVaultRequest, fields ...string) error {
	return runChecks(map[string]fieldCheck{
		FieldEmail:    func() error { return required(req.Email, ErrEmptyEmail) },
		FieldPassword: func() error { return required(req.Password, ErrEmptyPassword) },
		FieldVaultKey: func() error { return required(req.PrivateKey, ErrEmptyVaultKey) },
	}, []string{FieldEmail, FieldPassword, FieldVaultKey}, fields...)
}

func (v *VaultRequestValidator) validateVerifyIdentity(req models.VerifyIdentityRequest, fields ...string) error {
	return runChecks(map[string]fieldCheck{
		FieldEmail:          func() error { return required(req.Email, ErrEmptyEmail) },
		FieldSecurityAnswer: func() error { return required(req.SecurityAnswer, ErrEmptySecurityAnswer) },
	}, []string{FieldEmail, FieldSecurityAnswer}, fields...)
}

func (v *VaultRequestValidator) validateDestroyVault(req models.DestroyVaultRequest, fields ...string) error {
	return runChecks(map[string]fieldCheck{
		FieldEmail:    func() error { return required(req.UserEmail, ErrEmptyEmail) },
		FieldVaultKey: func() error { return required(req.PrivateKey, ErrEmptyVaultKey) },
	}, []string{FieldVaultKey}, fields...)
}

func (v *VaultRequestValidator) validateDownload(req models.DownloadRequest, fields ...string) error {
	return runChecks(map[string]fieldCheck{
		FieldEmail:    func() error { return required(req.UserEmail, ErrEmptyEmail) },
		FieldFilename: func() error { _, err := SanitizeFilename(req.Filename); return err },
		FieldVaultKey: func() error { return required(req.PrivateKey, ErrEmptyVaultKey) },
	}, []string{FieldFilename, FieldVaultKey}, fields...)
}

func (v *VaultRequestValidator) validateUpload(req models.UploadRequest, fields ...string) error {
	return runChecks(map[string]fieldCheck{
		FieldEmail:    func() error { return required(req.Email, ErrEmptyEmail) },
		FieldFilename: func() error { _, err := SanitizeFilename(req.Filename); return err },
		FieldVaultKey: func() error { return required(req.PrivateKey, ErrEmptyVaultKey) },
		FieldContent: func() error {
			if len(req.Content) == 0 {
				return ErrEmptyContent
			}
			return nil
		},
	}, []string{FieldEmail, FieldFilename, FieldVaultKey}, fields...)
}

func required(value string, err error) error {
	if strings.TrimSpace(value) == "" {
		return err
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return nil
}

// SanitizeFilename reduces name to its base name and rejects names that
// cannot be stored as a plain file.
func SanitizeFilename(name string) (string, error) {
	name = strings.TrimSpace(strings.ReplaceAll(name, `\`, "/"))
	if name == "" {
		return "", ErrEmptyFilename
	}

	base := filepath.Base(name)
	if base == "." || base == ".." || base == "/" {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	for _, r := range base {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("%w: %q", ErrInvalidFilename, name)
		}
	}
	return base, nil
}

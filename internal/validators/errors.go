package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyEmail          = errors.New("email is required")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrEmptyPassword       = errors.New("password is required")
	ErrEmptyVaultKey       = errors.New("vault key is required")
	ErrEmptySecurityAnswer = errors.New("security answer is required")
	ErrEmptyFilename       = errors.New("filename is required")
	ErrInvalidFilename     = errors.New("invalid filename")
	ErrEmptyContent        = errors.New("file is empty")
)

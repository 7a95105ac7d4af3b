package config

import "errors"

// Validation errors returned when a role view of the configuration is
// incomplete.
var (
	// ErrInvalidServerConfigs indicates that no listen address is set.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs indicates a missing DSN or blob directory.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates missing secrets (token sign key or key
	// hash key) or a non-positive lock threshold.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidAdapterConfigs indicates a missing server URL or timeout.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidWorkerConfigs indicates a non-positive queue size.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrUnsupportedConfigFile is returned for config files whose extension
	// is not .json, .toml, .yaml or .yml.
	ErrUnsupportedConfigFile = errors.New("unsupported config file format")
)

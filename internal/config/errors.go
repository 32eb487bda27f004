package config

import "errors"

var (
	// ErrInvalidAppConfigs is returned when the token signing key, issuer,
	// or session parameters are missing or out of range.
	ErrInvalidAppConfigs = errors.New("invalid app configs")

	// ErrInvalidStorageConfigs is returned when the database DSN or the
	// upload directory is not configured.
	ErrInvalidStorageConfigs = errors.New("invalid storage configs")

	// ErrInvalidServerConfigs is returned when the HTTP listen address is
	// not configured.
	ErrInvalidServerConfigs = errors.New("invalid server configs")
)

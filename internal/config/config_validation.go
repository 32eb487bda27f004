// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup, applying defaults
// for the session window and the upload limit when they are left unset.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.SessionDuration == 0 {
		cfg.App.SessionDuration = DefaultSessionDuration
	}
	if cfg.Storage.Files.UploadLimitBytes == 0 {
		cfg.Storage.Files.UploadLimitBytes = DefaultUploadLimitBytes
	}
	if cfg.SweepGrace == 0 {
		cfg.SweepGrace = DefaultSweepGrace
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" || cfg.Storage.Files.UploadDir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.App.SessionDuration < 0 || cfg.Storage.Files.UploadLimitBytes < 0 || cfg.SweepGrace < 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Konovalov

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	// A sign key without an issuer cannot validate any token.
	if cfg.App.TokenSignKey != "" && cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// minPassphraseLength keeps generated vault passphrases above ~70 bits.
const minPassphraseLength = 12

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, ":memory:") {
		return ErrInvalidStorageConfigs
	}

	switch cfg.App.CryptoMode {
	case CryptoModeAuto, CryptoModeDisabled:
	default:
		return fmt.Errorf("%w: unknown crypto mode %q", ErrInvalidAppConfigs, cfg.App.CryptoMode)
	}

	if cfg.App.PassphraseLength < minPassphraseLength {
		return fmt.Errorf("%w: passphrase length %d below %d", ErrInvalidAppConfigs, cfg.App.PassphraseLength, minPassphraseLength)
	}

	switch cfg.Session.Backend {
	case SessionBackendMemory:
	case SessionBackendEnv:
		if cfg.Session.EnvPrefix == "" {
			return fmt.Errorf("%w: empty env prefix", ErrInvalidSessionConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidSessionConfigs, cfg.Session.Backend)
	}

	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// Crypto modes accepted by [App.CryptoMode].
const (
	// CryptoModeAuto checks the platform backend and encrypts when it works.
	CryptoModeAuto = "auto"
	// CryptoModeDisabled behaves as if no backend were available: notes
	// and the vault passphrase are stored in clear.
	CryptoModeDisabled = "disabled"
)

// Session backends accepted by [Session.Backend].
const (
	// SessionBackendEnv keeps the session key in environment variables the
	// calling shell exports.
	SessionBackendEnv = "env"
	// SessionBackendMemory keeps the session key for one process only.
	SessionBackendMemory = "memory"
)

// StructuredConfig is the top-level configuration container for the client.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds account and crypto settings.
	App App `envPrefix:"APP_"`

	// Storage holds the note store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Session selects where the derived key is cached between commands.
	Session Session `envPrefix:"SESSION_"`

	// Log controls the client logger.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG, flags: -c / --config.
	JSONFilePath string `env:"CONFIG"`

	// DotEnvPath is the .env file read as an extra environment layer.
	// Env: DOTENV, flag: --dotenv. Defaults to ".env"; a missing file is
	// not an error.
	DotEnvPath string `env:"DOTENV"`
}

// App holds account and crypto settings.
type App struct {
	// Login is the account the note commands operate on.
	// Env: APP_LOGIN
	Login string `env:"LOGIN"`

	// CryptoMode is "auto" or "disabled".
	// Env: APP_CRYPTO_MODE
	CryptoMode string `env:"CRYPTO_MODE"`

	// PassphraseLength is the number of symbols in a generated vault
	// passphrase.
	// Env: APP_PASSPHRASE_LENGTH
	PassphraseLength int `env:"PASSPHRASE_LENGTH"`
}

// Storage groups the configuration for storage backends.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the note store. A DSN starting with
// postgres:// or postgresql:// selects PostgreSQL, anything else is a
// SQLite file path.
type DB struct {
	// DSN is the data source name.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Session selects the session key cache.
type Session struct {
	// Backend is "env" or "memory".
	// Env: SESSION_BACKEND
	Backend string `env:"BACKEND"`

	// EnvPrefix prefixes the variables of the env backend.
	// Env: SESSION_ENV_PREFIX
	EnvPrefix string `env:"ENV_PREFIX"`
}

// Log controls the client logger.
type Log struct {
	// Level is a zerolog level name.
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`

	// File receives log lines; empty means stderr.
	// Env: LOG_FILE
	File string `env:"FILE"`
}

// GetStructuredConfig loads, merges, and validates the configuration. flags
// carries values already parsed from the command line (see [RegisterFlags]);
// it may be nil.
func GetStructuredConfig(flags *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(flags).
		withEnv().
		withDotEnv().
		withJSON().
		withDefaults().
		build()
}

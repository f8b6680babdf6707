package config

import (
	"os"
	"path/filepath"
)

const (
	defaultDotEnvPath       = ".env"
	defaultPassphraseLength = 24
	defaultSessionPrefix    = "VAULT_"
	defaultDBFile           = "vault.db"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			CryptoMode:       CryptoModeAuto,
			PassphraseLength: defaultPassphraseLength,
		},
		Storage: Storage{
			DB: DB{DSN: defaultDSN()},
		},
		Session: Session{
			Backend:   SessionBackendEnv,
			EnvPrefix: defaultSessionPrefix,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// defaultDSN places the SQLite file in the user config directory, or the
// working directory when that is unknown.
func defaultDSN() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return defaultDBFile
	}
	return filepath.Join(dir, "go-note-vault", defaultDBFile)
}

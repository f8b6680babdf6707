package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{name: "empty dsn", mutate: func(c *StructuredConfig) { c.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "memory dsn", mutate: func(c *StructuredConfig) { c.Storage.DB.DSN = ":memory:" }, wantErr: ErrInvalidStorageConfigs},
		{name: "unknown crypto mode", mutate: func(c *StructuredConfig) { c.App.CryptoMode = "maybe" }, wantErr: ErrInvalidAppConfigs},
		{name: "short passphrase", mutate: func(c *StructuredConfig) { c.App.PassphraseLength = 8 }, wantErr: ErrInvalidAppConfigs},
		{name: "unknown session backend", mutate: func(c *StructuredConfig) { c.Session.Backend = "redis" }, wantErr: ErrInvalidSessionConfigs},
		{name: "env backend without prefix", mutate: func(c *StructuredConfig) { c.Session.EnvPrefix = "" }, wantErr: ErrInvalidSessionConfigs},
		{name: "memory backend without prefix", mutate: func(c *StructuredConfig) {
			c.Session.Backend = SessionBackendMemory
			c.Session.EnvPrefix = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

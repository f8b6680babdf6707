package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-vault/internal/config"
	"github.com/MKhiriev/go-note-vault/internal/logger"
)

func Test_sqliteDSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{
			name: "plain path",
			dsn:  "/tmp/vault.db",
			want: "/tmp/vault.db?_foreign_keys=on&_busy_timeout=5000",
		},
		{
			name: "path with query",
			dsn:  "/tmp/vault.db?_journal_mode=WAL",
			want: "/tmp/vault.db?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000",
		},
		{
			name: "file uri with query",
			dsn:  "file:vault.db?cache=shared",
			want: "file:vault.db?cache=shared&_foreign_keys=on&_busy_timeout=5000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteDSN(tt.dsn))
		})
	}
}

func Test_sqliteFilePath(t *testing.T) {
	assert.Equal(t, "/tmp/vault.db", sqliteFilePath("/tmp/vault.db"))
	assert.Equal(t, "/tmp/vault.db", sqliteFilePath("/tmp/vault.db?_journal_mode=WAL"))
	assert.Equal(t, "vault.db", sqliteFilePath("file:vault.db?cache=shared"))
}

func TestNewConnectSQLite_DSNWithQuery(t *testing.T) {
	ctx := testContext()
	path := filepath.Join(t.TempDir(), "vault.db")

	db, err := NewConnectSQLite(ctx, config.DB{DSN: path + "?_journal_mode=WAL"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = os.Stat(path)
	assert.NoError(t, err, "the file is created without the query part")

	var fk int
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)

	var mode string
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-note-vault/internal/config"
	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/migrations"
)

// goose dialect names.
const (
	dialectSQLite   = "sqlite3"
	dialectPostgres = "postgres"
)

const (
	maxExecAttempts = 3
	retryBaseDelay  = 50 * time.Millisecond
)

// ErrorClassificator tells the retry loop and the repositories how to treat
// a driver error.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}

// DB is a database handle bound to the dialect it was opened with.
type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the note store described by cfg. DSNs starting with
// postgres:// or postgresql:// go to PostgreSQL, everything else is treated
// as a SQLite file path.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if IsPostgresDSN(cfg.DSN) {
		return NewConnectPostgres(ctx, cfg, log)
	}
	return NewConnectSQLite(ctx, cfg, log)
}

// IsPostgresDSN reports whether dsn selects the PostgreSQL store.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Dialect returns the goose dialect of db.
func (db *DB) Dialect() string {
	return db.dialect
}

// Migrate applies pending schema migrations.
func (db *DB) Migrate() error {
	switch db.dialect {
	case dialectSQLite, dialectPostgres:
		return migrations.Migrate(db.DB, db.dialect)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDialect, db.dialect)
	}
}

// execContext runs a statement and retries it while the driver reports a
// transient failure (lost connection, deadlock, busy SQLite file).
func (db *DB) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var (
		res sql.Result
		err error
	)
	for attempt := 1; attempt <= maxExecAttempts; attempt++ {
		res, err = db.ExecContext(ctx, query, args...)
		if err == nil || db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return res, err
		}
		if attempt == maxExecAttempts {
			break
		}

		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "DB.execContext").
			Int("attempt", attempt).
			Msg("retrying statement after transient error")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryBaseDelay * time.Duration(attempt)):
		}
	}
	return res, err
}

// isUniqueViolation reports whether err is a unique-constraint failure in
// this DB's dialect.
func (db *DB) isUniqueViolation(err error) bool {
	return db.errorClassificator != nil && db.errorClassificator.IsUniqueViolation(err)
}

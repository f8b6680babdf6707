package store

import (
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/models"
)

var profileColumns = []string{"id", "login", "password_hash", "enc_salt", "master_key_enc", "vault_salt", "created_at", "updated_at"}

func testProfile() models.Profile {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return models.Profile{
		ID:           "0190b6c1-0000-7000-8000-000000000001",
		Login:        "alice",
		PasswordHash: "$2a$10$hash",
		EncSalt:      "c2FsdA==",
		MasterKeyEnc: "enc:v1:bm9uY2U=:Y3Q=",
		VaultSalt:    "dmF1bHQ=",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newTestProfileRepo(t *testing.T) (ProfileRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	return NewProfileRepository(newDBFromSQL(db), logger.Nop()), mock
}

func TestCreateProfile_Success(t *testing.T) {
	repo, mock := newTestProfileRepo(t)
	p := testProfile()

	mock.ExpectExec("INSERT INTO profiles").
		WithArgs(p.ID, p.Login, p.PasswordHash, p.EncSalt, p.MasterKeyEnc, p.VaultSalt, p.CreatedAt, p.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.CreateProfile(testContext(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProfile_PostgresUniqueViolation(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectExec("INSERT INTO profiles").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	err := repo.CreateProfile(testContext(), testProfile())
	assert.ErrorIs(t, err, ErrLoginAlreadyExists)
}

func TestCreateProfile_SQLiteUniqueViolation(t *testing.T) {
	db, mock := newTestDB(t)
	storeDB := newDBFromSQL(db)
	storeDB.dialect = dialectSQLite
	storeDB.errorClassificator = NewSQLiteErrorClassifier()
	repo := NewProfileRepository(storeDB, logger.Nop())

	mock.ExpectExec("INSERT INTO profiles").
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique})

	err := repo.CreateProfile(testContext(), testProfile())
	assert.ErrorIs(t, err, ErrLoginAlreadyExists)
}

func TestCreateProfile_UnexpectedError(t *testing.T) {
	repo, mock := newTestProfileRepo(t)
	dbErr := errors.New("db network error")

	mock.ExpectExec("INSERT INTO profiles").WillReturnError(dbErr)

	err := repo.CreateProfile(testContext(), testProfile())
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrLoginAlreadyExists)
}

func TestCreateProfile_RetriesTransientError(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectExec("INSERT INTO profiles").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.DeadlockDetected})
	mock.ExpectExec("INSERT INTO profiles").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.CreateProfile(testContext(), testProfile()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProfile_GivesUpAfterMaxAttempts(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	for i := 0; i < maxExecAttempts; i++ {
		mock.ExpectExec("INSERT INTO profiles").
			WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	}

	err := repo.CreateProfile(testContext(), testProfile())
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProfileByLogin_Success(t *testing.T) {
	repo, mock := newTestProfileRepo(t)
	p := testProfile()

	mock.ExpectQuery("SELECT id, login").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(profileColumns).
			AddRow(p.ID, p.Login, p.PasswordHash, p.EncSalt, p.MasterKeyEnc, p.VaultSalt, p.CreatedAt, p.UpdatedAt))

	got, err := repo.GetProfileByLogin(testContext(), "alice")
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestGetProfileByLogin_NotFound(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectQuery("SELECT id, login").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(profileColumns))

	_, err := repo.GetProfileByLogin(testContext(), "ghost")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestGetProfileByLogin_ScanError(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectQuery("SELECT id, login").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("x"))

	_, err := repo.GetProfileByLogin(testContext(), "alice")
	assert.ErrorIs(t, err, ErrScanningRow)
}

func TestUpdateWrappedSecret(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(e *sqlmock.ExpectedExec)
		wantErr error
	}{
		{
			name:  "updated",
			setup: func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 1)) },
		},
		{
			name:    "missing profile",
			setup:   func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 0)) },
			wantErr: ErrProfileNotFound,
		},
		{
			name:    "driver error",
			setup:   func(e *sqlmock.ExpectedExec) { e.WillReturnError(errors.New("boom")) },
			wantErr: ErrExecutingStatement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestProfileRepo(t)
			p := testProfile()

			tt.setup(mock.ExpectExec("UPDATE profiles").
				WithArgs(p.PasswordHash, p.EncSalt, p.MasterKeyEnc, p.VaultSalt, sqlmock.AnyArg(), p.ID))

			err := repo.UpdateWrappedSecret(testContext(), p)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

package store

import (
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/models"
)

func testNote(id string, updated time.Time) models.Note {
	return models.Note{
		ID:        id,
		ProfileID: "profile-1",
		Title:     "enc:v1:dA==:dA==",
		Content:   "plain body",
		Tags:      "enc:v1:dA==:dg==",
		Favorite:  true,
		CreatedAt: updated.Add(-time.Hour),
		UpdatedAt: updated,
	}
}

func noteRow(rows *sqlmock.Rows, n models.Note) *sqlmock.Rows {
	return rows.AddRow(n.ID, n.ProfileID, n.Title, n.Content, n.Tags, n.Favorite, n.CreatedAt, n.UpdatedAt)
}

func newTestNoteRepo(t *testing.T) (NoteRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	return NewNoteRepository(newDBFromSQL(db), logger.Nop()), mock
}

func TestCreateNote(t *testing.T) {
	repo, mock := newTestNoteRepo(t)
	n := testNote("note-1", time.Now().UTC())

	mock.ExpectExec("INSERT INTO notes").
		WithArgs(n.ID, n.ProfileID, n.Title, n.Content, n.Tags, n.Favorite, n.CreatedAt, n.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.CreateNote(testContext(), n))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNote_Error(t *testing.T) {
	repo, mock := newTestNoteRepo(t)

	mock.ExpectExec("INSERT INTO notes").WillReturnError(errors.New("disk full"))

	err := repo.CreateNote(testContext(), testNote("note-1", time.Now()))
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestGetNote(t *testing.T) {
	repo, mock := newTestNoteRepo(t)
	n := testNote("note-1", time.Now().UTC())

	mock.ExpectQuery("SELECT id, profile_id, title, content").
		WithArgs("note-1", "profile-1").
		WillReturnRows(noteRow(sqlmock.NewRows(noteColumns), n))

	got, err := repo.GetNote(testContext(), "profile-1", "note-1")
	require.NoError(t, err)
	assert.Equal(t, n, got)
}

func TestGetNote_NotFound(t *testing.T) {
	repo, mock := newTestNoteRepo(t)

	mock.ExpectQuery("SELECT id, profile_id, title, content").
		WithArgs("note-x", "profile-1").
		WillReturnRows(sqlmock.NewRows(noteColumns))

	_, err := repo.GetNote(testContext(), "profile-1", "note-x")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestListNotes(t *testing.T) {
	repo, mock := newTestNoteRepo(t)
	now := time.Now().UTC()
	newer := testNote("note-2", now)
	older := testNote("note-1", now.Add(-time.Minute))

	rows := sqlmock.NewRows(noteColumns)
	noteRow(rows, newer)
	noteRow(rows, older)

	mock.ExpectQuery(regexp.QuoteMeta("FROM notes WHERE profile_id = $1 ORDER BY updated_at DESC, id DESC LIMIT 10")).
		WithArgs("profile-1").
		WillReturnRows(rows)

	got, err := repo.ListNotes(testContext(), "profile-1", models.NoteFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []models.Note{newer, older}, got)
}

func TestListNotes_FavoritesOnly(t *testing.T) {
	repo, mock := newTestNoteRepo(t)
	n := testNote("note-1", time.Now().UTC())

	mock.ExpectQuery(regexp.QuoteMeta("FROM notes WHERE profile_id = $1 AND is_favorite = $2 ORDER BY updated_at DESC, id DESC")).
		WithArgs("profile-1", true).
		WillReturnRows(noteRow(sqlmock.NewRows(noteColumns), n))

	got, err := repo.ListNotes(testContext(), "profile-1", models.NoteFilter{FavoritesOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []models.Note{n}, got)
}

func TestListNotes_Empty(t *testing.T) {
	repo, mock := newTestNoteRepo(t)

	mock.ExpectQuery("FROM notes").
		WithArgs("profile-1").
		WillReturnRows(sqlmock.NewRows(noteColumns))

	got, err := repo.ListNotes(testContext(), "profile-1", models.NoteFilter{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListNotes_QueryError(t *testing.T) {
	repo, mock := newTestNoteRepo(t)

	mock.ExpectQuery("FROM notes").WillReturnError(errors.New("connection reset"))

	_, err := repo.ListNotes(testContext(), "profile-1", models.NoteFilter{})
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestListNotes_RowError(t *testing.T) {
	repo, mock := newTestNoteRepo(t)

	rows := noteRow(sqlmock.NewRows(noteColumns), testNote("note-1", time.Now())).
		RowError(0, errors.New("broken row"))
	mock.ExpectQuery("FROM notes").WillReturnRows(rows)

	_, err := repo.ListNotes(testContext(), "profile-1", models.NoteFilter{})
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestUpdateNote(t *testing.T) {
	repo, mock := newTestNoteRepo(t)
	n := testNote("note-1", time.Now().UTC())

	mock.ExpectExec(regexp.QuoteMeta("UPDATE notes SET content = $1, tags = $2, title = $3, updated_at = $4 WHERE id = $5 AND profile_id = $6")).
		WithArgs(n.Content, n.Tags, n.Title, n.UpdatedAt, n.ID, n.ProfileID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateNote(testContext(), n))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNote_NotFound(t *testing.T) {
	repo, mock := newTestNoteRepo(t)

	mock.ExpectExec("UPDATE notes").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateNote(testContext(), testNote("note-1", time.Now()))
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestSetFavorite(t *testing.T) {
	tests := []struct {
		name     string
		favorite bool
		affected int64
		wantErr  error
	}{
		{name: "mark", favorite: true, affected: 1},
		{name: "unmark", favorite: false, affected: 1},
		{name: "missing", favorite: true, affected: 0, wantErr: ErrNoteNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestNoteRepo(t)

			mock.ExpectExec(regexp.QuoteMeta("UPDATE notes SET is_favorite = $1 WHERE id = $2 AND profile_id = $3")).
				WithArgs(tt.favorite, "note-1", "profile-1").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.SetFavorite(testContext(), "profile-1", "note-1", tt.favorite)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDeleteNote(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "missing", affected: 0, wantErr: ErrNoteNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestNoteRepo(t)

			mock.ExpectExec("DELETE FROM notes").
				WithArgs("note-1", "profile-1").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.DeleteNote(testContext(), "profile-1", "note-1")
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-note-vault/models"
)

const (
	createProfile = `INSERT INTO profiles (id, login, password_hash, enc_salt, master_key_enc, vault_salt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`

	getProfileByLogin = `SELECT id, login, password_hash, enc_salt, master_key_enc, vault_salt, created_at, updated_at
		FROM profiles
		WHERE login = $1;`

	updateWrappedSecret = `UPDATE profiles
		SET password_hash = $1, enc_salt = $2, master_key_enc = $3, vault_salt = $4, updated_at = $5
		WHERE id = $6;`

	createNote = `INSERT INTO notes (id, profile_id, title, content, tags, is_favorite, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`

	getNote = `SELECT id, profile_id, title, content, tags, is_favorite, created_at, updated_at
		FROM notes
		WHERE id = $1 AND profile_id = $2;`

	deleteNote = `DELETE FROM notes
		WHERE id = $1 AND profile_id = $2;`
)

var noteColumns = []string{"id", "profile_id", "title", "content", "tags", "is_favorite", "created_at", "updated_at"}

// psql renders $n placeholders, which both pgx and go-sqlite3 accept.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListNotesQuery selects a profile's notes, newest first. A zero limit
// leaves the LIMIT clause out.
func buildListNotesQuery(profileID string, filter models.NoteFilter) (string, []any, error) {
	builder := psql.
		Select(noteColumns...).
		From("notes").
		Where(sq.Eq{"profile_id": profileID})

	if filter.FavoritesOnly {
		builder = builder.Where(sq.Eq{"is_favorite": true})
	}

	builder = builder.OrderBy("updated_at DESC", "id DESC")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	return builder.ToSql()
}

// buildUpdateNoteQuery sets fields on one note of a profile.
func buildUpdateNoteQuery(id, profileID string, fields map[string]any) (string, []any, error) {
	return psql.
		Update("notes").
		SetMap(fields).
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"profile_id": profileID}).
		ToSql()
}

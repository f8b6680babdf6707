package store

import (
	"context"

	"github.com/MKhiriev/go-note-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ProfileRepository persists account profiles together with their wrapped
// vault passphrase.
type ProfileRepository interface {
	// CreateProfile inserts p. A duplicate login yields [ErrLoginAlreadyExists].
	CreateProfile(ctx context.Context, p models.Profile) error

	// GetProfileByLogin returns the profile for login or [ErrProfileNotFound].
	GetProfileByLogin(ctx context.Context, login string) (models.Profile, error)

	// UpdateWrappedSecret overwrites PasswordHash, EncSalt, MasterKeyEnc and
	// VaultSalt of the profile with p.ID.
	UpdateWrappedSecret(ctx context.Context, p models.Profile) error
}

// NoteRepository persists notes in their stored (opaque) form. Every method
// is scoped by profile ID so one account can never reach another's notes.
type NoteRepository interface {
	CreateNote(ctx context.Context, n models.Note) error
	GetNote(ctx context.Context, profileID, noteID string) (models.Note, error)
	// ListNotes returns the notes matching filter, most recently updated
	// first.
	ListNotes(ctx context.Context, profileID string, filter models.NoteFilter) ([]models.Note, error)
	UpdateNote(ctx context.Context, n models.Note) error
	SetFavorite(ctx context.Context, profileID, noteID string, favorite bool) error
	DeleteNote(ctx context.Context, profileID, noteID string) error
}

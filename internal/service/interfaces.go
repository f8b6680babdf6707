package service

import (
	"context"

	"github.com/MKhiriev/go-note-vault/internal/crypto"
	"github.com/MKhiriev/go-note-vault/models"
)

// AccountService runs the account flows that create, unlock and rotate the
// vault key.
type AccountService interface {
	// SignUp registers login, generates the vault passphrase, wraps it under
	// password and caches the derived vault key.
	SignUp(ctx context.Context, login, password string) (SignUpResult, error)

	// SignIn authenticates login and restores the vault key into the
	// session cache. A profile stored in clear is wrapped under password
	// first when the backend is available.
	SignIn(ctx context.Context, login, password string) (SignInResult, error)

	// Resume rebuilds the vault key from the session cache without running
	// the key derivation again.
	Resume(ctx context.Context) (*crypto.Key, error)

	// SetPassphrase replaces the session key with one derived from a
	// user-chosen passphrase and saltB64. An empty saltB64 draws a fresh
	// salt. The salt used is returned; the same passphrase and salt always
	// rebuild the same key.
	SetPassphrase(ctx context.Context, passphrase, saltB64 string) (string, error)

	// RevealPassphrase returns the clear vault passphrase of login.
	RevealPassphrase(ctx context.Context, login, password string) (string, error)

	// ChangePassword re-wraps the vault passphrase under newPassword. The
	// vault key, and therefore every stored note, stays the same.
	ChangePassword(ctx context.Context, login, oldPassword, newPassword string) error

	// SignOut drops the cached key material.
	SignOut(ctx context.Context)

	Status(ctx context.Context) Status
}

// NoteService encrypts notes on the way to the store and decrypts them on
// the way back. Every method acts on the notes of login.
type NoteService interface {
	Create(ctx context.Context, login, title, content string) (models.PlainNote, error)
	Get(ctx context.Context, login, noteID string) (models.PlainNote, error)
	// List returns the notes matching filter, newest first.
	List(ctx context.Context, login string, filter models.NoteFilter) ([]models.PlainNote, error)
	Update(ctx context.Context, login, noteID, title, content string) (models.PlainNote, error)
	Delete(ctx context.Context, login, noteID string) error

	// SetTags replaces the tags of a note. Tags are trimmed, blanks dropped
	// and duplicates removed; an empty list clears them.
	SetTags(ctx context.Context, login, noteID string, tags []string) (models.PlainNote, error)
	SetFavorite(ctx context.Context, login, noteID string, favorite bool) error

	// Search matches query case-insensitively against the decrypted title,
	// content and tags of every note. Notes the session key cannot open are
	// skipped.
	Search(ctx context.Context, login, query string) ([]models.PlainNote, error)
}

// IDGenerator produces unique record IDs.
type IDGenerator interface {
	Generate() string
}

// SignUpResult is returned by [AccountService.SignUp].
type SignUpResult struct {
	Profile models.Profile

	// Passphrase is the generated vault passphrase, shown to the user once.
	Passphrase string

	// Encrypted is false when the passphrase was stored in clear because no
	// encryption backend was available.
	Encrypted bool
}

// SignInResult is returned by [AccountService.SignIn].
type SignInResult struct {
	Profile models.Profile

	// Encrypted reports whether a vault key is now cached. It is false for
	// profiles created without encryption.
	Encrypted bool
}

// Status describes the current session.
type Status struct {
	// CryptoAvailable reports whether the encryption backend works.
	CryptoAvailable bool
	// Unlocked reports whether a usable vault key is cached.
	Unlocked bool
	// KeySalt is the salt the cached key was derived with.
	KeySalt string
}

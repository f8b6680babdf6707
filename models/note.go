package models

import "time"

// Note is the stored form of a note. Title, Content and Tags are opaque: each
// is either an envelope string or plaintext written while encryption was off.
type Note struct {
	ID        string `json:"id"`
	ProfileID string `json:"profile_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	// Tags is the tag list, JSON-encoded and then sealed like Title. Empty
	// when the note has no tags.
	Tags string `json:"tags"`
	// Favorite is kept in clear so favorites can be listed without a key.
	Favorite bool `json:"is_favorite"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table associated with Note.
func (n Note) TableName() string {
	return "notes"
}

// PlainNote is a note as shown to the user.
type PlainNote struct {
	ID    string
	Title string
	// Content and Tags are empty when Accessible is false.
	Content string
	Tags    []string

	Favorite bool

	// Encrypted reports whether the stored form was an envelope.
	Encrypted bool

	// Accessible is false when the stored envelope could not be opened with
	// the session key. The cause is deliberately not reported.
	Accessible bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteFilter narrows a note listing.
type NoteFilter struct {
	// Limit caps the number of notes; zero means no limit.
	Limit uint64
	// FavoritesOnly keeps only notes marked favorite.
	FavoritesOnly bool
}

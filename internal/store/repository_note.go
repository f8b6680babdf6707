package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/models"
)

// noteRepository is the database/sql implementation of [NoteRepository]
// over the "notes" table. It never looks inside Title or Content.
type noteRepository struct {
	*DB
	logger *logger.Logger
}

// NewNoteRepository constructs a [NoteRepository] backed by db.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	return &noteRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *noteRepository) CreateNote(ctx context.Context, n models.Note) error {
	log := logger.FromContext(ctx)

	if _, err := r.execContext(ctx, createNote, n.ID, n.ProfileID, n.Title, n.Content, n.Tags, n.Favorite, n.CreatedAt, n.UpdatedAt); err != nil {
		log.Err(err).
			Str("func", "noteRepository.CreateNote").
			Str("profile_id", n.ProfileID).
			Msg("failed to insert note")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *noteRepository) GetNote(ctx context.Context, profileID, noteID string) (models.Note, error) {
	log := logger.FromContext(ctx)

	var n models.Note
	err := r.QueryRowContext(ctx, getNote, noteID, profileID).Scan(noteFields(&n)...)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, ErrNoteNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.GetNote").
			Str("note_id", noteID).
			Msg("failed to scan note row")
		return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return n, nil
}

func (r *noteRepository) ListNotes(ctx context.Context, profileID string, filter models.NoteFilter) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListNotesQuery(profileID, filter)
	if err != nil {
		log.Err(err).Str("func", "noteRepository.ListNotes").Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.ListNotes").
			Str("profile_id", profileID).
			Msg("failed to execute query for listing notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0, 16)
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(noteFields(&n)...); err != nil {
			log.Err(err).Str("func", "noteRepository.ListNotes").Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		notes = append(notes, n)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "noteRepository.ListNotes").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return notes, nil
}

// UpdateNote rewrites Title, Content and Tags of n and sets updated_at to
// n.UpdatedAt. Favorite is left alone.
func (r *noteRepository) UpdateNote(ctx context.Context, n models.Note) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateNoteQuery(n.ID, n.ProfileID, map[string]any{
		"title":      n.Title,
		"content":    n.Content,
		"tags":       n.Tags,
		"updated_at": n.UpdatedAt,
	})
	if err != nil {
		log.Err(err).Str("func", "noteRepository.UpdateNote").Msg("failed to create query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.UpdateNote").
			Str("note_id", n.ID).
			Msg("failed to update note")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireAffected(res, ErrNoteNotFound)
}

// SetFavorite flips the favorite mark without touching updated_at.
func (r *noteRepository) SetFavorite(ctx context.Context, profileID, noteID string, favorite bool) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateNoteQuery(noteID, profileID, map[string]any{"is_favorite": favorite})
	if err != nil {
		log.Err(err).Str("func", "noteRepository.SetFavorite").Msg("failed to create query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.SetFavorite").
			Str("note_id", noteID).
			Msg("failed to update favorite mark")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireAffected(res, ErrNoteNotFound)
}

func (r *noteRepository) DeleteNote(ctx context.Context, profileID, noteID string) error {
	log := logger.FromContext(ctx)

	res, err := r.execContext(ctx, deleteNote, noteID, profileID)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.DeleteNote").
			Str("note_id", noteID).
			Msg("failed to delete note")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireAffected(res, ErrNoteNotFound)
}

// noteFields returns scan targets in noteColumns order.
func noteFields(n *models.Note) []any {
	return []any{&n.ID, &n.ProfileID, &n.Title, &n.Content, &n.Tags, &n.Favorite, &n.CreatedAt, &n.UpdatedAt}
}

// requireAffected returns notFound when res reports zero affected rows.
func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-note-vault/internal/crypto"
	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/session"
	"github.com/MKhiriev/go-note-vault/internal/store"
	"github.com/MKhiriev/go-note-vault/models"
)

// searchLimit caps the number of notes a search returns.
const searchLimit = 50

type noteService struct {
	profiles store.ProfileRepository
	notes    store.NoteRepository
	keychain crypto.KeyChainService
	cache    *session.Cache
	ids      IDGenerator
	now      func() time.Time

	logger *logger.Logger
}

func NewNoteService(profiles store.ProfileRepository, notes store.NoteRepository, keychain crypto.KeyChainService, cache *session.Cache, ids IDGenerator, logger *logger.Logger) NoteService {
	return &noteService{
		profiles: profiles,
		notes:    notes,
		keychain: keychain,
		cache:    cache,
		ids:      ids,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *noteService) Create(ctx context.Context, login, title, content string) (models.PlainNote, error) {
	profile, err := s.profile(ctx, login)
	if err != nil {
		return models.PlainNote{}, err
	}

	key, err := s.writeKey(ctx)
	if err != nil {
		return models.PlainNote{}, err
	}

	now := s.now().UTC()
	note := models.Note{
		ID:        s.ids.Generate(),
		ProfileID: profile.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	encrypted := s.seal(&note, title, content, key)

	if err = s.notes.CreateNote(ctx, note); err != nil {
		return models.PlainNote{}, fmt.Errorf("error saving note: %w", err)
	}

	return plainNote(note, title, content, encrypted), nil
}

func (s *noteService) Get(ctx context.Context, login, noteID string) (models.PlainNote, error) {
	profile, err := s.profile(ctx, login)
	if err != nil {
		return models.PlainNote{}, err
	}

	note, err := s.notes.GetNote(ctx, profile.ID, noteID)
	if err != nil {
		return models.PlainNote{}, err
	}

	return s.open(note, s.readKey(ctx)), nil
}

func (s *noteService) List(ctx context.Context, login string, filter models.NoteFilter) ([]models.PlainNote, error) {
	profile, err := s.profile(ctx, login)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.ListNotes(ctx, profile.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}

	key := s.readKey(ctx)
	result := make([]models.PlainNote, 0, len(notes))
	for _, note := range notes {
		result = append(result, s.open(note, key))
	}
	return result, nil
}

func (s *noteService) Update(ctx context.Context, login, noteID, title, content string) (models.PlainNote, error) {
	profile, err := s.profile(ctx, login)
	if err != nil {
		return models.PlainNote{}, err
	}

	key, err := s.writeKey(ctx)
	if err != nil {
		return models.PlainNote{}, err
	}

	note, err := s.notes.GetNote(ctx, profile.ID, noteID)
	if err != nil {
		return models.PlainNote{}, err
	}

	note.UpdatedAt = s.now().UTC()
	encrypted := s.seal(&note, title, content, key)

	if err = s.notes.UpdateNote(ctx, note); err != nil {
		return models.PlainNote{}, fmt.Errorf("error updating note: %w", err)
	}

	plain := plainNote(note, title, content, encrypted)
	plain.Tags, _ = s.openTags(note.Tags, key)
	return plain, nil
}

func (s *noteService) SetTags(ctx context.Context, login, noteID string, tags []string) (models.PlainNote, error) {
	profile, err := s.profile(ctx, login)
	if err != nil {
		return models.PlainNote{}, err
	}

	key, err := s.writeKey(ctx)
	if err != nil {
		return models.PlainNote{}, err
	}

	note, err := s.notes.GetNote(ctx, profile.ID, noteID)
	if err != nil {
		return models.PlainNote{}, err
	}
	if current := s.open(note, key); !current.Accessible {
		return models.PlainNote{}, ErrNoteInaccessible
	}

	note.Tags, err = s.sealTags(normalizeTags(tags), key)
	if err != nil {
		return models.PlainNote{}, err
	}
	note.UpdatedAt = s.now().UTC()

	if err = s.notes.UpdateNote(ctx, note); err != nil {
		return models.PlainNote{}, fmt.Errorf("error updating note: %w", err)
	}

	return s.open(note, key), nil
}

func (s *noteService) SetFavorite(ctx context.Context, login, noteID string, favorite bool) error {
	profile, err := s.profile(ctx, login)
	if err != nil {
		return err
	}

	return s.notes.SetFavorite(ctx, profile.ID, noteID, favorite)
}

func (s *noteService) Search(ctx context.Context, login, query string) ([]models.PlainNote, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, fmt.Errorf("%w: empty search query", ErrInvalidDataProvided)
	}

	notes, err := s.List(ctx, login, models.NoteFilter{})
	if err != nil {
		return nil, err
	}

	result := make([]models.PlainNote, 0)
	for _, note := range notes {
		if !note.Accessible || !matches(note, needle) {
			continue
		}
		result = append(result, note)
		if len(result) == searchLimit {
			break
		}
	}
	return result, nil
}

func matches(note models.PlainNote, needle string) bool {
	if strings.Contains(strings.ToLower(note.Title), needle) ||
		strings.Contains(strings.ToLower(note.Content), needle) {
		return true
	}
	for _, tag := range note.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func (s *noteService) Delete(ctx context.Context, login, noteID string) error {
	profile, err := s.profile(ctx, login)
	if err != nil {
		return err
	}

	return s.notes.DeleteNote(ctx, profile.ID, noteID)
}

func (s *noteService) profile(ctx context.Context, login string) (models.Profile, error) {
	if login == "" {
		return models.Profile{}, ErrNoLogin
	}

	profile, err := s.profiles.GetProfileByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return models.Profile{}, fmt.Errorf("%w: %q", store.ErrProfileNotFound, login)
		}
		return models.Profile{}, fmt.Errorf("error loading profile: %w", err)
	}
	return profile, nil
}

// readKey returns the cached vault key, or nil when there is none. Reads
// still succeed without a key: plaintext notes come back as they are and
// envelopes are reported inaccessible.
func (s *noteService) readKey(ctx context.Context) *crypto.Key {
	keyB64, ok := s.cache.LoadKey()
	if !ok {
		return nil
	}

	key, err := s.keychain.ImportKey(keyB64)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "noteService.readKey").Msg("cached key rejected")
		return nil
	}
	return key
}

// writeKey returns the key new content is sealed with. A nil key with a nil
// error means encryption is unavailable and content is stored in clear.
func (s *noteService) writeKey(ctx context.Context) (*crypto.Key, error) {
	if !s.keychain.Available() {
		logger.FromContext(ctx).Warn().Str("func", "noteService.writeKey").Msg("encryption unavailable, storing note in clear")
		return nil, nil
	}

	key := s.readKey(ctx)
	if key == nil {
		return nil, ErrVaultLocked
	}
	return key, nil
}

// seal stores title and content on note and reports whether both were
// encrypted.
func (s *noteService) seal(note *models.Note, title, content string, key *crypto.Key) bool {
	var titleOK, contentOK bool
	note.Title, titleOK = s.keychain.Encrypt(title, key)
	note.Content, contentOK = s.keychain.Encrypt(content, key)
	return titleOK && contentOK
}

// sealTags encodes tags as a JSON list and encrypts it like a title. No tags
// is stored as the empty string.
func (s *noteService) sealTags(tags []string, key *crypto.Key) (string, error) {
	if len(tags) == 0 {
		return "", nil
	}

	raw, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("error encoding tags: %w", err)
	}
	sealed, _ := s.keychain.Encrypt(string(raw), key)
	return sealed, nil
}

func (s *noteService) openTags(data string, key *crypto.Key) ([]string, bool) {
	if data == "" {
		return nil, true
	}

	raw, ok := s.keychain.Decrypt(data, key)
	if !ok {
		return nil, false
	}

	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, false
	}
	return tags, true
}

// open decrypts a stored note. If any field cannot be opened all of them are
// withheld.
func (s *noteService) open(note models.Note, key *crypto.Key) models.PlainNote {
	encrypted := crypto.IsEnvelope(note.Title) || crypto.IsEnvelope(note.Content) || crypto.IsEnvelope(note.Tags)

	title, titleOK := s.keychain.Decrypt(note.Title, key)
	content, contentOK := s.keychain.Decrypt(note.Content, key)
	tags, tagsOK := s.openTags(note.Tags, key)
	if !titleOK || !contentOK || !tagsOK {
		plain := plainNote(note, "", "", encrypted)
		plain.Accessible = false
		return plain
	}

	plain := plainNote(note, title, content, encrypted)
	plain.Tags = tags
	return plain
}

func plainNote(note models.Note, title, content string, encrypted bool) models.PlainNote {
	return models.PlainNote{
		ID:         note.ID,
		Title:      title,
		Content:    content,
		Favorite:   note.Favorite,
		Encrypted:  encrypted,
		Accessible: true,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
	}
}

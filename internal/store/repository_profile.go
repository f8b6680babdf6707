package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/models"
)

// profileRepository is the database/sql implementation of
// [ProfileRepository] over the "profiles" table.
type profileRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewProfileRepository constructs a [ProfileRepository] backed by db.
func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

// CreateProfile inserts p.
//
// Error handling:
//   - unique violation on login → [ErrLoginAlreadyExists].
//   - any other driver error → wrapped [ErrExecutingStatement].
func (r *profileRepository) CreateProfile(ctx context.Context, p models.Profile) error {
	log := logger.FromContext(ctx)

	_, err := r.db.execContext(ctx, createProfile,
		p.ID, p.Login, p.PasswordHash, p.EncSalt, p.MasterKeyEnc, p.VaultSalt, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if r.db.isUniqueViolation(err) {
			log.Debug().Str("func", "*profileRepository.CreateProfile").Str("login", p.Login).Msg("login already taken")
			return ErrLoginAlreadyExists
		}
		log.Err(err).Str("func", "*profileRepository.CreateProfile").Msg("error inserting profile")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetProfileByLogin returns the profile registered under login.
func (r *profileRepository) GetProfileByLogin(ctx context.Context, login string) (models.Profile, error) {
	log := logger.FromContext(ctx)

	var p models.Profile
	err := r.db.QueryRowContext(ctx, getProfileByLogin, login).Scan(
		&p.ID,
		&p.Login,
		&p.PasswordHash,
		&p.EncSalt,
		&p.MasterKeyEnc,
		&p.VaultSalt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.GetProfileByLogin").Msg("error scanning profile")
		return models.Profile{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return p, nil
}

// UpdateWrappedSecret stores the credential columns of p (password hash and
// the wrapped vault passphrase with its salts) and bumps updated_at.
func (r *profileRepository) UpdateWrappedSecret(ctx context.Context, p models.Profile) error {
	log := logger.FromContext(ctx)

	res, err := r.db.execContext(ctx, updateWrappedSecret, p.PasswordHash, p.EncSalt, p.MasterKeyEnc, p.VaultSalt, time.Now().UTC(), p.ID)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.UpdateWrappedSecret").Str("profile_id", p.ID).Msg("error updating profile")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

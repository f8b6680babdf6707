// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-note-vault/internal/crypto"
	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/session"
	"github.com/MKhiriev/go-note-vault/internal/store"
	"github.com/MKhiriev/go-note-vault/internal/utils"
	"github.com/MKhiriev/go-note-vault/models"
)

type accountService struct {
	profiles store.ProfileRepository
	keychain crypto.KeyChainService
	cache    *session.Cache

	ids              IDGenerator
	passphraseLength int
	bcryptCost       int
	now              func() time.Time

	logger *logger.Logger
}

// AccountOption tunes an account service at construction time.
type AccountOption func(*accountService)

// WithPassphraseLength sets the length of generated vault passphrases.
func WithPassphraseLength(n int) AccountOption {
	return func(a *accountService) {
		if n > 0 {
			a.passphraseLength = n
		}
	}
}

// WithBcryptCost overrides the password hashing cost.
func WithBcryptCost(cost int) AccountOption {
	return func(a *accountService) {
		a.bcryptCost = cost
	}
}

// WithIDGenerator replaces the UUID v7 profile ID generator.
func WithIDGenerator(ids IDGenerator) AccountOption {
	return func(a *accountService) {
		a.ids = ids
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) AccountOption {
	return func(a *accountService) {
		a.now = now
	}
}

func NewAccountService(profiles store.ProfileRepository, keychain crypto.KeyChainService, cache *session.Cache, logger *logger.Logger, opts ...AccountOption) AccountService {
	a := &accountService{
		profiles:         profiles,
		keychain:         keychain,
		cache:            cache,
		ids:              utils.NewUUIDGenerator(),
		passphraseLength: crypto.DefaultPassphraseLength,
		bcryptCost:       bcrypt.DefaultCost,
		now:              time.Now,
		logger:           logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *accountService) SignUp(ctx context.Context, login, password string) (SignUpResult, error) {
	log := logger.FromContext(ctx)

	if login == "" || password == "" {
		return SignUpResult{}, ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return SignUpResult{}, fmt.Errorf("error hashing password: %w", err)
	}

	passphrase, err := a.keychain.GeneratePassphrase(a.passphraseLength)
	if err != nil {
		return SignUpResult{}, fmt.Errorf("error generating vault passphrase: %w", err)
	}

	now := a.now().UTC()
	profile := models.Profile{
		ID:           a.ids.Generate(),
		Login:        login,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	wrapped := a.keychain.Wrap(passphrase, password)
	profile.SetWrappedSecret(wrapped)
	if wrapped.IsWrapped() {
		// the vault key gets its own salt so the password can change later
		// without touching the notes
		if vaultSalt, err := a.keychain.GenerateSalt(); err == nil {
			profile.VaultSalt = vaultSalt
		}
	} else {
		log.Warn().Str("func", "accountService.SignUp").Msg("encryption unavailable, vault passphrase stored in clear")
	}

	if err = a.profiles.CreateProfile(ctx, profile); err != nil {
		if errors.Is(err, store.ErrLoginAlreadyExists) {
			return SignUpResult{}, ErrLoginTaken
		}
		return SignUpResult{}, fmt.Errorf("error saving profile: %w", err)
	}

	a.cache.Clear()
	result := SignUpResult{Profile: profile, Passphrase: passphrase}
	if !wrapped.IsWrapped() {
		return result, nil
	}

	if err = a.unlock(passphrase, profile.KeySalt()); err != nil {
		// the profile exists; a later sign-in can still unlock it
		log.Warn().Err(err).Str("func", "accountService.SignUp").Msg("vault key was not cached")
		return result, nil
	}
	result.Encrypted = true
	return result, nil
}

func (a *accountService) SignIn(ctx context.Context, login, password string) (SignInResult, error) {
	log := logger.FromContext(ctx)

	profile, err := a.authenticate(ctx, login, password)
	if err != nil {
		return SignInResult{}, err
	}

	a.cache.Clear()
	result := SignInResult{Profile: profile}

	record := profile.WrappedSecret()
	if !record.IsWrapped() {
		if !a.keychain.Available() {
			log.Warn().Str("func", "accountService.SignIn").Msg("profile has no wrapped passphrase, notes stay unencrypted")
			return result, nil
		}
		// the profile was created without a backend; now that one works the
		// passphrase gets wrapped so new notes can be encrypted
		upgraded, err := a.upgradeClearRecord(ctx, profile, password)
		if err != nil {
			return SignInResult{}, err
		}
		log.Info().Str("func", "accountService.SignIn").Msg("clear profile upgraded to a wrapped passphrase")
		return SignInResult{Profile: upgraded, Encrypted: true}, nil
	}
	if !a.keychain.Available() {
		log.Warn().Str("func", "accountService.SignIn").Msg("encryption unavailable, vault stays locked")
		return result, nil
	}

	passphrase, ok := a.keychain.Unwrap(record, password)
	if !ok {
		return SignInResult{}, ErrVaultLocked
	}
	if err = a.unlock(passphrase, profile.KeySalt()); err != nil {
		log.Debug().Err(err).Str("func", "accountService.SignIn").Msg("unlock failed")
		return SignInResult{}, ErrVaultLocked
	}

	result.Encrypted = true
	return result, nil
}

func (a *accountService) Resume(ctx context.Context) (*crypto.Key, error) {
	keyB64, ok := a.cache.LoadKey()
	if !ok {
		return nil, ErrVaultLocked
	}

	key, err := a.keychain.ImportKey(keyB64)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "accountService.Resume").Msg("cached key rejected")
		return nil, ErrVaultLocked
	}
	return key, nil
}

func (a *accountService) SetPassphrase(ctx context.Context, passphrase, saltB64 string) (string, error) {
	if passphrase == "" {
		return "", ErrInvalidDataProvided
	}

	if saltB64 == "" {
		salt, err := a.keychain.GenerateSalt()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrCryptoUnavailable, err)
		}
		saltB64 = salt
	} else if raw, err := crypto.DecodeBase64(saltB64); err != nil || len(raw) == 0 {
		return "", fmt.Errorf("%w: malformed salt", ErrInvalidDataProvided)
	}

	if err := a.unlock(passphrase, saltB64); err != nil {
		return "", fmt.Errorf("%w: %w", ErrCryptoUnavailable, err)
	}

	logger.FromContext(ctx).Info().Str("func", "accountService.SetPassphrase").Msg("session key replaced")
	return saltB64, nil
}

func (a *accountService) RevealPassphrase(ctx context.Context, login, password string) (string, error) {
	profile, err := a.authenticate(ctx, login, password)
	if err != nil {
		return "", err
	}

	return a.openPassphrase(profile, password)
}

func (a *accountService) ChangePassword(ctx context.Context, login, oldPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	if newPassword == "" {
		return ErrInvalidDataProvided
	}

	profile, err := a.authenticate(ctx, login, oldPassword)
	if err != nil {
		return err
	}

	passphrase, err := a.openPassphrase(profile, oldPassword)
	if err != nil {
		return err
	}

	// profiles created before VaultSalt existed derive from EncSalt, which
	// is about to change
	if profile.VaultSalt == "" {
		profile.VaultSalt = profile.EncSalt
	}

	wasWrapped := profile.WrappedSecret().IsWrapped()
	rewrapped := a.keychain.Wrap(passphrase, newPassword)
	if wasWrapped && !rewrapped.IsWrapped() {
		return ErrCryptoUnavailable
	}
	if !wasWrapped && rewrapped.IsWrapped() && profile.VaultSalt == "" {
		if salt, err := a.keychain.GenerateSalt(); err == nil {
			profile.VaultSalt = salt
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), a.bcryptCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	profile.PasswordHash = string(hash)
	profile.SetWrappedSecret(rewrapped)

	if err = a.profiles.UpdateWrappedSecret(ctx, profile); err != nil {
		return fmt.Errorf("error saving profile: %w", err)
	}

	log.Info().Str("func", "accountService.ChangePassword").Bool("encrypted", rewrapped.IsWrapped()).Msg("password changed")
	return nil
}

func (a *accountService) SignOut(ctx context.Context) {
	a.cache.Clear()
	logger.FromContext(ctx).Debug().Str("func", "accountService.SignOut").Msg("session cleared")
}

func (a *accountService) Status(ctx context.Context) Status {
	status := Status{CryptoAvailable: a.keychain.Available()}
	if !status.CryptoAvailable {
		return status
	}

	if _, err := a.Resume(ctx); err == nil {
		status.Unlocked = true
		status.KeySalt, _ = a.cache.LoadSalt()
	}
	return status
}

// authenticate loads login and checks password against its bcrypt hash.
func (a *accountService) authenticate(ctx context.Context, login, password string) (models.Profile, error) {
	if login == "" || password == "" {
		return models.Profile{}, ErrInvalidCredentials
	}

	profile, err := a.profiles.GetProfileByLogin(ctx, login)
	if errors.Is(err, store.ErrProfileNotFound) {
		return models.Profile{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("error loading profile: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return models.Profile{}, ErrInvalidCredentials
	}
	return profile, nil
}

// openPassphrase returns the clear vault passphrase of an authenticated
// profile.
func (a *accountService) openPassphrase(profile models.Profile, password string) (string, error) {
	record := profile.WrappedSecret()
	if !record.IsWrapped() {
		return record.Enc, nil
	}
	if !a.keychain.Available() {
		return "", ErrCryptoUnavailable
	}

	passphrase, ok := a.keychain.Unwrap(record, password)
	if !ok {
		return "", ErrVaultLocked
	}
	return passphrase, nil
}

// upgradeClearRecord wraps the clear vault passphrase of profile under
// password, stores it with a vault salt and unlocks the vault.
func (a *accountService) upgradeClearRecord(ctx context.Context, profile models.Profile, password string) (models.Profile, error) {
	passphrase := profile.MasterKeyEnc

	wrapped := a.keychain.Wrap(passphrase, password)
	if !wrapped.IsWrapped() {
		return models.Profile{}, ErrCryptoUnavailable
	}
	if profile.VaultSalt == "" {
		salt, err := a.keychain.GenerateSalt()
		if err != nil {
			return models.Profile{}, fmt.Errorf("%w: %w", ErrCryptoUnavailable, err)
		}
		profile.VaultSalt = salt
	}
	profile.SetWrappedSecret(wrapped)

	if err := a.profiles.UpdateWrappedSecret(ctx, profile); err != nil {
		return models.Profile{}, fmt.Errorf("error saving profile: %w", err)
	}

	if err := a.unlock(passphrase, profile.KeySalt()); err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "accountService.upgradeClearRecord").Msg("unlock failed")
		return models.Profile{}, ErrVaultLocked
	}
	return profile, nil
}

// unlock derives the vault key and caches it with its salt.
func (a *accountService) unlock(passphrase, saltB64 string) error {
	key, err := a.keychain.DeriveKey(passphrase, saltB64)
	if err != nil {
		return err
	}

	keyB64, err := a.keychain.ExportKey(key)
	if err != nil {
		return err
	}

	a.cache.Save(keyB64, saltB64)
	return nil
}

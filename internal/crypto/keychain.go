// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"

	"github.com/MKhiriev/go-note-vault/internal/logger"
)

const (
	// DefaultIterations is the PBKDF2 iteration count. Changing it changes
	// every derived key, so existing vaults could no longer be opened.
	DefaultIterations = 250_000

	saltLen  = 16
	keyLen   = 32 // AES-256
	nonceLen = 12
)

// keyChain is the private implementation of [KeyChainService].
type keyChain struct {
	provider   Provider
	iterations int
	logger     *logger.Logger
}

// Option tunes a keychain at construction time.
type Option func(*keyChain)

// WithIterations overrides the PBKDF2 iteration count. Keys derived with a
// different count are incompatible with the default one; use it in tests only.
func WithIterations(n int) Option {
	return func(k *keyChain) {
		if n > 0 {
			k.iterations = n
		}
	}
}

// NewKeyChain constructs a [KeyChainService] on top of provider.
func NewKeyChain(provider Provider, log *logger.Logger, opts ...Option) KeyChainService {
	if log == nil {
		log = logger.Nop()
	}
	k := &keyChain{
		provider:   provider,
		iterations: DefaultIterations,
		logger:     log,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

func (k *keyChain) Available() bool {
	_, ok := k.provider.Acquire()
	return ok
}

func (k *keyChain) GenerateSalt() (string, error) {
	backend, ok := k.provider.Acquire()
	if !ok {
		return "", ErrUnavailable
	}
	return generateSalt(backend)
}

func generateSalt(backend Backend) (string, error) {
	salt := make([]byte, saltLen)
	if err := backend.Random(salt); err != nil {
		return "", fmt.Errorf("%w: generate salt: %w", ErrUnavailable, err)
	}
	return EncodeBase64(salt), nil
}

func (k *keyChain) DeriveKey(passphrase, saltB64 string) (*Key, error) {
	backend, ok := k.provider.Acquire()
	if !ok {
		return nil, ErrUnavailable
	}
	return k.derive(backend, passphrase, saltB64)
}

func (k *keyChain) derive(backend Backend, passphrase, saltB64 string) (*Key, error) {
	salt, err := DecodeBase64(saltB64)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: %w: empty salt", ErrUnavailable, ErrMalformedInput)
	}

	raw, err := backend.DeriveKey([]byte(passphrase), salt, k.iterations, keyLen)
	if err != nil {
		k.logger.Warn().Err(err).Str("func", "keyChain.DeriveKey").Msg("key derivation failed")
		return nil, fmt.Errorf("%w: derive key: %w", ErrUnavailable, err)
	}
	if len(raw) != keyLen {
		return nil, fmt.Errorf("%w: %w: derived %d bytes", ErrUnavailable, ErrMalformedInput, len(raw))
	}

	return &Key{raw: raw}, nil
}

func (k *keyChain) ExportKey(key *Key) (string, error) {
	if !key.valid() {
		return "", ErrNoKey
	}
	if _, ok := k.provider.Acquire(); !ok {
		return "", ErrUnavailable
	}
	return EncodeBase64(key.raw), nil
}

func (k *keyChain) ImportKey(keyB64 string) (*Key, error) {
	backend, ok := k.provider.Acquire()
	if !ok {
		return nil, ErrUnavailable
	}

	raw, err := DecodeBase64(keyB64)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if len(raw) != keyLen {
		return nil, fmt.Errorf("%w: %w: key is %d bytes", ErrUnavailable, ErrMalformedInput, len(raw))
	}
	if _, err = backend.AEAD(raw); err != nil {
		k.logger.Warn().Err(err).Str("func", "keyChain.ImportKey").Msg("imported key rejected by backend")
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return newKey(raw), nil
}

func (k *keyChain) GeneratePassphrase(length int) (string, error) {
	return GeneratePassphrase(length)
}

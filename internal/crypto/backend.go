// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/pbkdf2"
)

// Backend exposes the primitives the keychain is built on.
type Backend interface {
	// Random fills b from a CSPRNG.
	Random(b []byte) error
	// DeriveKey runs PBKDF2-HMAC-SHA256 over password and salt.
	DeriveKey(password, salt []byte, iterations, keyLen int) ([]byte, error)
	// AEAD builds an AES-GCM cipher for key.
	AEAD(key []byte) (cipher.AEAD, error)
}

// Provider answers the availability question once per call chain: it either
// hands out a usable [Backend] or reports that none exists.
type Provider interface {
	Acquire() (Backend, bool)
}

type systemBackend struct {
	rand io.Reader
}

func (s systemBackend) Random(b []byte) error {
	if _, err := io.ReadFull(s.rand, b); err != nil {
		return fmt.Errorf("read random: %w", err)
	}
	return nil
}

func (s systemBackend) DeriveKey(password, salt []byte, iterations, keyLen int) ([]byte, error) {
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: empty salt", ErrMalformedInput)
	}
	if iterations <= 0 || keyLen <= 0 {
		return nil, fmt.Errorf("%w: bad derivation parameters", ErrMalformedInput)
	}
	return pbkdf2.Key(password, salt, iterations, keyLen, sha256.New), nil
}

func (s systemBackend) AEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

// systemProvider checks the platform backend on first use and remembers the
// verdict for the lifetime of the process.
type systemProvider struct {
	backend systemBackend

	once      sync.Once
	available bool
}

// NewSystemProvider returns a [Provider] backed by crypto/rand and the
// standard AES-GCM implementation.
func NewSystemProvider() Provider {
	return newCheckedProvider(rand.Reader)
}

func newCheckedProvider(r io.Reader) *systemProvider {
	return &systemProvider{backend: systemBackend{rand: r}}
}

func (p *systemProvider) Acquire() (Backend, bool) {
	p.once.Do(func() {
		p.available = p.selfTest()
	})
	if !p.available {
		return nil, false
	}
	return p.backend, true
}

func (p *systemProvider) selfTest() bool {
	sample := make([]byte, keyLen)
	if err := p.backend.Random(sample); err != nil {
		return false
	}
	gcm, err := p.backend.AEAD(sample)
	if err != nil {
		return false
	}
	return gcm.NonceSize() == nonceLen
}

type disabledProvider struct{}

// NewDisabledProvider returns a [Provider] that never hands out a backend.
// It models execution contexts where secure primitives are withheld.
func NewDisabledProvider() Provider {
	return disabledProvider{}
}

func (disabledProvider) Acquire() (Backend, bool) {
	return nil, false
}

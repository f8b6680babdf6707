// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/MKhiriev/go-note-vault/internal/crypto"
)

// Profile is the persisted account record.
//
// EncSalt and MasterKeyEnc together form the wrapped vault passphrase. An
// empty EncSalt means MasterKeyEnc holds the passphrase in clear (created
// while no encryption backend was available).
type Profile struct {
	// ID is a client-generated UUID.
	ID string `json:"id"`

	// Login is the unique account name.
	Login string `json:"login"`

	// PasswordHash is the bcrypt hash of the login password. It only
	// authenticates the account and plays no part in key derivation.
	PasswordHash string `json:"-"`

	// EncSalt is the base64 salt the vault passphrase was wrapped with.
	EncSalt string `json:"enc_salt"`

	// MasterKeyEnc is the wrapped vault passphrase (an envelope), or the
	// clear passphrase when EncSalt is empty.
	MasterKeyEnc string `json:"master_key_enc"`

	// VaultSalt is the base64 salt the vault key is derived with. Profiles
	// created before it existed leave it empty and use EncSalt instead.
	VaultSalt string `json:"vault_salt"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table associated with Profile.
func (p Profile) TableName() string {
	return "profiles"
}

// WrappedSecret returns the wrapped vault passphrase record.
func (p Profile) WrappedSecret() crypto.WrappedSecret {
	return crypto.WrappedSecret{Salt: p.EncSalt, Enc: p.MasterKeyEnc}
}

// SetWrappedSecret stores w on the profile.
func (p *Profile) SetWrappedSecret(w crypto.WrappedSecret) {
	p.EncSalt = w.Salt
	p.MasterKeyEnc = w.Enc
}

// KeySalt returns the salt used to derive the vault key.
func (p Profile) KeySalt() string {
	if p.VaultSalt != "" {
		return p.VaultSalt
	}
	return p.EncSalt
}

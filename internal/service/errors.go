package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials covers both an unknown login and a wrong
	// password so neither can be told apart.
	ErrInvalidCredentials = errors.New("invalid login or password")

	// ErrLoginTaken is returned by sign-up for a login already registered.
	ErrLoginTaken = errors.New("login is already taken")

	// ErrVaultLocked means no usable vault key is available while
	// encryption is. It deliberately does not say why.
	ErrVaultLocked = errors.New("vault is locked")

	// ErrCryptoUnavailable is returned by operations that cannot degrade to
	// plaintext, such as setting a passphrase.
	ErrCryptoUnavailable = errors.New("encryption is not available")

	ErrNoLogin = errors.New("no login given")

	// ErrNoteInaccessible is returned when a change needs the note opened
	// and the session key cannot open it.
	ErrNoteInaccessible = errors.New("note cannot be opened with the current key")
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing message strings shared by the note
// vault commands.
//
// Errors coming out of the services are mapped to these messages before
// they reach the terminal, so the wording stays consistent and never tells
// apart an unknown login from a wrong password.
package app

const (
	// MsgInvalidDataProvided is shown when a required value is empty.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is shown when the login/password combination
	// does not match an account.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgLoginTaken is shown when signup picks a login that already exists.
	MsgLoginTaken = "this login is already registered"

	// MsgVaultLocked is shown when a note write needs a key and none is
	// cached.
	MsgVaultLocked = "the vault is locked; sign in or set a passphrase first"

	// MsgCryptoUnavailable is shown when an operation needs the encryption
	// backend and it cannot be used.
	MsgCryptoUnavailable = "encryption is unavailable on this system"

	// MsgNoteNotFound is shown when a note ID does not belong to the account.
	MsgNoteNotFound = "note not found"

	// MsgNoteInaccessible is shown when a note must be opened to change it
	// and the session key cannot open it.
	MsgNoteInaccessible = "this note cannot be opened with the current session key"

	// MsgNoLogin is shown when no login was configured or typed.
	MsgNoLogin = "no login given; use --login or APP_LOGIN"

	// MsgStoreUnavailable is shown when the note store cannot be opened.
	MsgStoreUnavailable = "cannot open note store"
)

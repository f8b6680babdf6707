// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the note vault command line.
//
// Human-readable messages go to stderr. Stdout carries only what a caller
// may want to capture: note bodies, revealed passphrases and the shell
// statements a session-creating command prints, so that
//
//	eval "$(notevault signin -l alice)"
//
// keeps the vault unlocked for the rest of the shell session.
package client

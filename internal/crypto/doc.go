// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the client-side key handling for the note vault.
//
// It derives symmetric keys from passphrases (PBKDF2-HMAC-SHA256), seals note
// text into versioned envelopes (AES-256-GCM), wraps the vault passphrase under
// the login password, and exports/imports derived keys for session caching.
//
// Envelope format:
//
//	enc:v1:<base64 nonce>:<base64 ciphertext+tag>
//
// Every operation degrades instead of failing hard when the cryptographic
// backend is unavailable: Encrypt passes plaintext through, Decrypt returns
// non-envelope input unchanged, and Wrap stores the secret in clear with an
// empty salt sentinel. Callers learn about the degradation from the boolean
// results and [KeyChainService.Available].
package crypto

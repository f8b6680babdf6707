package crypto

import "errors"

var (
	// ErrUnavailable is returned when the cryptographic backend cannot serve
	// the request. Every derivation or key import failure wraps it, so callers
	// only need a single errors.Is check.
	ErrUnavailable = errors.New("encryption backend unavailable")

	// ErrMalformedInput marks invalid base64, empty salts and wrongly sized
	// key material. It is always returned joined with [ErrUnavailable].
	ErrMalformedInput = errors.New("malformed crypto input")

	// ErrNoKey is returned by ExportKey when called without a key.
	ErrNoKey = errors.New("no key provided")
)

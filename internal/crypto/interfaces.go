package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService is the note vault's client-side cryptography. It knows
// nothing about storage, the network or accounts; it only derives, protects
// and applies keys.
//
// Scheme:
//
//	Vault passphrase = GeneratePassphrase(24)
//	Wrapped record   = Wrap(passphrase, loginPassword)      {salt, enc}
//	Vault key        = DeriveKey(passphrase, vaultSalt)
//	Envelope         = Encrypt(noteText, vaultKey)          enc:v1:...
//	Session cache    = ExportKey(vaultKey) / ImportKey(b64)
type KeyChainService interface {
	// Available reports whether the cryptographic backend can be used in
	// the current execution context.
	Available() bool

	// GenerateSalt returns 16 random bytes, base64-encoded. Salts are not
	// secret and are stored next to whatever they protect.
	GenerateSalt() (string, error)

	// GeneratePassphrase returns a random vault passphrase of length
	// symbols drawn from a human-copyable alphabet. A non-positive length
	// selects [DefaultPassphraseLength].
	GeneratePassphrase(length int) (string, error)

	// DeriveKey turns passphrase and a base64 salt into a 256-bit AES-GCM
	// key via PBKDF2-HMAC-SHA256 (250,000 iterations). Identical inputs
	// always yield the same key. Every failure wraps [ErrUnavailable].
	DeriveKey(passphrase, saltB64 string) (*Key, error)

	// Encrypt seals plaintext into an envelope under key using a fresh
	// random nonce. Without a key or backend the plaintext is returned
	// unchanged and the second result is false.
	Encrypt(plaintext string, key *Key) (string, bool)

	// Decrypt opens an envelope produced by Encrypt. Input without the
	// envelope prefix is returned as-is. The second result is false when
	// the envelope cannot be opened, for whatever reason.
	Decrypt(data string, key *Key) (string, bool)

	// Wrap protects secret under a key derived from password and a fresh
	// salt. Without a backend the secret is returned in clear with an empty
	// salt sentinel.
	Wrap(secret, password string) WrappedSecret

	// Unwrap reverses Wrap. Records carrying the empty salt sentinel are
	// returned unchanged. The second result is false on a wrong password or
	// a corrupted record.
	Unwrap(record WrappedSecret, password string) (string, bool)

	// ExportKey encodes key as base64 for session caching.
	ExportKey(key *Key) (string, error)

	// ImportKey rebuilds a key from the output of ExportKey without
	// repeating the derivation.
	ImportKey(keyB64 string) (*Key, error)
}

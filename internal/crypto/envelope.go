package crypto

import (
	"errors"
	"fmt"
	"strings"
)

const (
	envelopeTag     = "enc"
	envelopeVersion = "v1"
	envelopeSep     = ":"
	envelopePrefix  = envelopeTag + envelopeSep + envelopeVersion + envelopeSep
)

var errMalformedEnvelope = errors.New("malformed envelope")

func (k *keyChain) Encrypt(plaintext string, key *Key) (string, bool) {
	if !key.valid() {
		return plaintext, false
	}
	backend, ok := k.provider.Acquire()
	if !ok {
		return plaintext, false
	}

	out, err := seal(backend, plaintext, key)
	if err != nil {
		k.logger.Warn().Err(err).Str("func", "keyChain.Encrypt").Msg("encryption failed, passing plaintext through")
		return plaintext, false
	}
	return out, true
}

func (k *keyChain) Decrypt(data string, key *Key) (string, bool) {
	if !IsEnvelope(data) {
		return data, true
	}
	if !key.valid() {
		return "", false
	}
	backend, ok := k.provider.Acquire()
	if !ok {
		return "", false
	}
	return k.open(backend, data, key)
}

func (k *keyChain) open(backend Backend, data string, key *Key) (string, bool) {
	if !IsEnvelope(data) {
		return data, true
	}
	plain, err := openEnvelope(backend, data, key)
	if err != nil {
		// Wrong key, tampering and malformed input look the same to callers.
		k.logger.Debug().Str("func", "keyChain.Decrypt").Msg("envelope could not be opened")
		return "", false
	}
	return plain, true
}

// seal encrypts plaintext with a fresh nonce; nonces are never reused.
func seal(backend Backend, plaintext string, key *Key) (string, error) {
	aead, err := backend.AEAD(key.raw)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if err = backend.Random(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	ct := aead.Seal(nil, nonce, []byte(plaintext), nil)
	return envelopePrefix + EncodeBase64(nonce) + envelopeSep + EncodeBase64(ct), nil
}

func openEnvelope(backend Backend, data string, key *Key) (string, error) {
	parts := strings.Split(data, envelopeSep)
	if len(parts) != 4 || parts[0] != envelopeTag || parts[1] != envelopeVersion {
		return "", errMalformedEnvelope
	}

	nonce, err := DecodeBase64(parts[2])
	if err != nil {
		return "", err
	}
	ct, err := DecodeBase64(parts[3])
	if err != nil {
		return "", err
	}

	aead, err := backend.AEAD(key.raw)
	if err != nil {
		return "", err
	}
	if len(nonce) != aead.NonceSize() || len(ct) < aead.Overhead() {
		return "", errMalformedEnvelope
	}

	plain, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", fmt.Errorf("open envelope: %w", err)
	}
	return string(plain), nil
}

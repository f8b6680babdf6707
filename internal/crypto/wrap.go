package crypto

import "strings"

// WrappedSecret is a secret encrypted under a password-derived key. Enc is
// only meaningful together with the exact Salt and the right password.
//
// An empty Salt is a sentinel: Enc then holds the secret in clear because no
// backend was available when it was wrapped.
type WrappedSecret struct {
	Salt string `json:"salt"`
	Enc  string `json:"enc"`
}

// IsWrapped reports whether the record was actually encrypted.
func (w WrappedSecret) IsWrapped() bool {
	return strings.TrimSpace(w.Salt) != ""
}

func (k *keyChain) Wrap(secret, password string) WrappedSecret {
	unwrapped := WrappedSecret{Salt: "", Enc: secret}

	backend, ok := k.provider.Acquire()
	if !ok {
		return unwrapped
	}

	salt, err := generateSalt(backend)
	if err != nil {
		k.logger.Warn().Err(err).Str("func", "keyChain.Wrap").Msg("salt generation failed, storing secret unwrapped")
		return unwrapped
	}
	key, err := k.derive(backend, password, salt)
	if err != nil {
		return unwrapped
	}
	enc, err := seal(backend, secret, key)
	if err != nil {
		k.logger.Warn().Err(err).Str("func", "keyChain.Wrap").Msg("sealing failed, storing secret unwrapped")
		return unwrapped
	}

	return WrappedSecret{Salt: salt, Enc: enc}
}

func (k *keyChain) Unwrap(record WrappedSecret, password string) (string, bool) {
	if !record.IsWrapped() {
		return record.Enc, true
	}
	backend, ok := k.provider.Acquire()
	if !ok {
		return record.Enc, true
	}

	key, err := k.derive(backend, password, record.Salt)
	if err != nil {
		return "", false
	}
	return k.open(backend, record.Enc, key)
}

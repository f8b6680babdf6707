package crypto

import "crypto/subtle"

// Key is a derived or imported 256-bit AES-GCM key. The zero value and nil
// are both treated as "no key".
type Key struct {
	raw []byte
}

func newKey(raw []byte) *Key {
	k := make([]byte, len(raw))
	copy(k, raw)
	return &Key{raw: k}
}

func (k *Key) valid() bool {
	return k != nil && len(k.raw) == keyLen
}

// Equal compares two keys in constant time.
func (k *Key) Equal(other *Key) bool {
	if !k.valid() || !other.valid() {
		return false
	}
	return subtle.ConstantTimeCompare(k.raw, other.raw) == 1
}

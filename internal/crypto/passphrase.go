package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// DefaultPassphraseLength is the number of symbols in a generated vault
// passphrase.
const DefaultPassphraseLength = 24

// passphraseAlphabet omits look-alike symbols (I, O, l, 0, 1).
const passphraseAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789-_"

// GeneratePassphrase returns length symbols from the passphrase alphabet,
// read from crypto/rand.
func GeneratePassphrase(length int) (string, error) {
	return generatePassphrase(rand.Reader, length)
}

func generatePassphrase(r io.Reader, length int) (string, error) {
	if length <= 0 {
		length = DefaultPassphraseLength
	}

	// Bytes at or above limit are rejected so every symbol is equally likely.
	n := len(passphraseAlphabet)
	limit := 256 - 256%n

	out := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(out) < length {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, passphraseAlphabet[int(b)%n])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}

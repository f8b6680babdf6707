package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-vault/internal/crypto"
	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/session"
)

// sequentialIDs hands out predictable IDs.
type sequentialIDs struct {
	prefix string
	n      int
}

func (g *sequentialIDs) Generate() string {
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

// fastKeyChain keeps the real algorithms but with a cheap iteration count.
func fastKeyChain() crypto.KeyChainService {
	return crypto.NewKeyChain(crypto.NewSystemProvider(), logger.Nop(), crypto.WithIterations(1000))
}

func disabledKeyChain() crypto.KeyChainService {
	return crypto.NewKeyChain(crypto.NewDisabledProvider(), logger.Nop())
}

func newCache() *session.Cache {
	return session.NewCache(session.NewMemoryStore())
}

// cacheKey derives a key from passphrase and stores it in cache the way a
// sign-in would.
func cacheKey(t *testing.T, kc crypto.KeyChainService, cache *session.Cache, passphrase string) *crypto.Key {
	t.Helper()
	salt, err := kc.GenerateSalt()
	require.NoError(t, err)
	key, err := kc.DeriveKey(passphrase, salt)
	require.NoError(t, err)
	keyB64, err := kc.ExportKey(key)
	require.NoError(t, err)
	cache.Save(keyB64, salt)
	return key
}

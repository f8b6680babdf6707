package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-note-vault/internal/mock"
)

func TestCache_SaveAndLoad(t *testing.T) {
	c := NewCache(NewMemoryStore())

	c.Save("a2V5", "c2FsdA==")

	key, ok := c.LoadKey()
	require.True(t, ok)
	assert.Equal(t, "a2V5", key)

	salt, ok := c.LoadSalt()
	require.True(t, ok)
	assert.Equal(t, "c2FsdA==", salt)
}

func TestCache_EmptyStore(t *testing.T) {
	c := NewCache(NewMemoryStore())

	_, ok := c.LoadKey()
	assert.False(t, ok)
	_, ok = c.LoadSalt()
	assert.False(t, ok)
}

func TestCache_EmptyValueIsMissing(t *testing.T) {
	store := NewMemoryStore()
	store.Set(KeySlot, "")
	c := NewCache(store)

	_, ok := c.LoadKey()
	assert.False(t, ok)
}

func TestCache_Clear(t *testing.T) {
	store := NewMemoryStore()
	store.Set("other", "kept")
	c := NewCache(store)
	c.Save("k", "s")

	c.Clear()

	_, ok := c.LoadKey()
	assert.False(t, ok)
	_, ok = c.LoadSalt()
	assert.False(t, ok)
	v, ok := store.Get("other")
	require.True(t, ok)
	assert.Equal(t, "kept", v)
}

func TestCache_LastWriteWins(t *testing.T) {
	c := NewCache(NewMemoryStore())
	c.Save("first", "s1")
	c.Save("second", "s2")

	key, _ := c.LoadKey()
	salt, _ := c.LoadSalt()
	assert.Equal(t, "second", key)
	assert.Equal(t, "s2", salt)
}

func TestCache_UsesOnlyItsSlots(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock.NewMockStore(ctrl)
	c := NewCache(store)

	gomock.InOrder(
		store.EXPECT().Set(KeySlot, "a2V5"),
		store.EXPECT().Set(SaltSlot, "c2FsdA=="),
	)
	c.Save("a2V5", "c2FsdA==")

	store.EXPECT().Delete(KeySlot)
	store.EXPECT().Delete(SaltSlot)
	c.Clear()
}

func TestCache_EmptyValueIsAbsent(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock.NewMockStore(ctrl)
	store.EXPECT().Get(KeySlot).Return("", true)

	_, ok := NewCache(store).LoadKey()

	assert.False(t, ok)
}

package session

// Cache holds the exported vault key and its salt in a [Store].
type Cache struct {
	store Store
}

// NewCache returns a [Cache] backed by store.
func NewCache(store Store) *Cache {
	return &Cache{store: store}
}

// Save overwrites both slots.
func (c *Cache) Save(keyB64, saltB64 string) {
	c.store.Set(KeySlot, keyB64)
	c.store.Set(SaltSlot, saltB64)
}

// LoadKey returns the cached exported key.
func (c *Cache) LoadKey() (string, bool) {
	return c.load(KeySlot)
}

// LoadSalt returns the salt the cached key was derived with.
func (c *Cache) LoadSalt() (string, bool) {
	return c.load(SaltSlot)
}

// Clear drops the cached key material.
func (c *Cache) Clear() {
	c.store.Delete(KeySlot)
	c.store.Delete(SaltSlot)
}

func (c *Cache) load(slot string) (string, bool) {
	v, ok := c.store.Get(slot)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

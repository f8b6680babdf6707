package session

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/MKhiriev/go-note-vault/internal/logger"
)

// Slot names used by [Cache].
const (
	KeySlot  = "enc:key"
	SaltSlot = "enc:salt"
)

//go:generate mockgen -source=store.go -destination=../mock/session_store_mock.go -package=mock

// Store is a session-scoped string slot store. Writes are last-write-wins.
type Store interface {
	Get(slot string) (string, bool)
	Set(slot, value string)
	Delete(slot string)
	// Clear removes every slot the store owns.
	Clear()
}

// MemoryStore keeps slots in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]string
}

// NewMemoryStore returns an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]string)}
}

func (m *MemoryStore) Get(slot string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[slot]
	return v, ok
}

func (m *MemoryStore) Set(slot, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = value
}

func (m *MemoryStore) Delete(slot string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, slot)
}

func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots = make(map[string]string)
}

// EnvStore maps slots onto process environment variables. A shell that
// evals [EnvStore.ExportLines] keeps the session alive across CLI
// invocations until the shell exits; nothing is written to disk.
type EnvStore struct {
	prefix string
	known  []string

	logger *logger.Logger
}

// NewEnvStore returns an [EnvStore] whose variables start with prefix, e.g.
// "VAULT_" turns slot "enc:key" into VAULT_ENC_KEY. Failed environment
// writes are reported to log and leave the slot unset.
func NewEnvStore(prefix string, log *logger.Logger) *EnvStore {
	return &EnvStore{prefix: prefix, known: []string{KeySlot, SaltSlot}, logger: log}
}

// VarName returns the environment variable backing slot.
func (e *EnvStore) VarName(slot string) string {
	r := strings.NewReplacer(":", "_", "-", "_", ".", "_")
	return e.prefix + strings.ToUpper(r.Replace(slot))
}

func (e *EnvStore) Get(slot string) (string, bool) {
	v, ok := os.LookupEnv(e.VarName(slot))
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (e *EnvStore) Set(slot, value string) {
	e.remember(slot)
	if err := os.Setenv(e.VarName(slot), value); err != nil {
		e.logger.Error().Err(err).Str("func", "EnvStore.Set").Str("var", e.VarName(slot)).Msg("failed to set session variable")
	}
}

func (e *EnvStore) Delete(slot string) {
	if err := os.Unsetenv(e.VarName(slot)); err != nil {
		e.logger.Error().Err(err).Str("func", "EnvStore.Delete").Str("var", e.VarName(slot)).Msg("failed to unset session variable")
	}
}

func (e *EnvStore) Clear() {
	for _, slot := range e.known {
		e.Delete(slot)
	}
}

func (e *EnvStore) remember(slot string) {
	for _, s := range e.known {
		if s == slot {
			return
		}
	}
	e.known = append(e.known, slot)
}

// ExportLines renders shell statements that reproduce the current slots in
// the parent shell: export for set slots, unset for empty ones.
func (e *EnvStore) ExportLines() []string {
	slots := append([]string(nil), e.known...)
	sort.Strings(slots)

	lines := make([]string, 0, len(slots))
	for _, slot := range slots {
		name := e.VarName(slot)
		if v, ok := e.Get(slot); ok {
			lines = append(lines, fmt.Sprintf("export %s=%s", name, shellQuote(v)))
		} else {
			lines = append(lines, "unset "+name)
		}
	}
	return lines
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"sync"
	"time"
)

// Store keeps session state between requests. Entries expire after the TTL
// the store was built with.
type Store interface {
	Get(ctx context.Context, id string) (State, error)
	Save(ctx context.Context, id string, s State) error
	Delete(ctx context.Context, id string) error
}

// NewSessionID returns 16 random bytes, hex encoded.
func NewSessionID() (string, error) {
	id := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, id); err != nil {
		return "", err
	}
	return hex.EncodeToString(id), nil
}

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

type MemoryStore struct {
	ttl     time.Duration
	entries map[string]memoryEntry
	mutex   *sync.Mutex
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		mutex:   &sync.Mutex{},
		now:     time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (State, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	entry, ok := m.entries[id]
	if !ok {
		return State{}, ErrSessionNotFound
	}
	if m.now().After(entry.expiresAt) {
		delete(m.entries, id)
		return State{}, ErrSessionNotFound
	}
	return entry.state, nil
}

func (m *MemoryStore) Save(_ context.Context, id string, s State) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.sweep()
	m.entries[id] = memoryEntry{state: s, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.entries, id)
	return nil
}

// Len counts live entries.
func (m *MemoryStore) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.sweep()
	return len(m.entries)
}

// sweep drops expired entries. Caller holds the mutex.
func (m *MemoryStore) sweep() {
	now := m.now()
	for id, entry := range m.entries {
		if now.After(entry.expiresAt) {
			delete(m.entries, id)
		}
	}
}

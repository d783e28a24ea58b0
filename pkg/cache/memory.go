package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is an in-process Cache used in tests and when no Redis is
// configured. Same semantics as the Redis implementation, per-entry TTL
// checked lazily on read.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	groups  map[string]map[string]struct{}
	ttl     time.Duration
}

// NewMemory returns an empty in-memory cache with the default TTL.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		groups:  make(map[string]map[string]struct{}),
		ttl:     DefaultTTL,
	}
}

func (m *Memory) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) Set(_ context.Context, key string, value interface{}, groups ...string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{data: data, expiresAt: time.Now().Add(m.ttl)}
	for _, g := range groups {
		if m.groups[g] == nil {
			m.groups[g] = make(map[string]struct{})
		}
		m.groups[g][key] = struct{}{}
	}
	return nil
}

func (m *Memory) Invalidate(_ context.Context, groups ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range groups {
		for key := range m.groups[g] {
			delete(m.entries, key)
		}
		delete(m.groups, g)
	}
	return nil
}

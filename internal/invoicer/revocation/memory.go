package revocation

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process registry. Entries live until the process exits
// unless Sweep is called.
type Memory struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewMemory() *Memory {
	return &Memory{revoked: make(map[string]time.Time)}
}

func (m *Memory) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Keep the later expiry if the same id is revoked twice.
	if prev, ok := m.revoked[tokenID]; ok && prev.After(expiresAt) {
		return nil
	}
	m.revoked[tokenID] = expiresAt
	return nil
}

func (m *Memory) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.revoked[tokenID]
	return ok, nil
}

// Sweep drops entries whose token expired more than a minute before now.
func (m *Memory) Sweep(_ context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := now.Add(-minRetention)
	removed := 0
	for id, exp := range m.revoked {
		if exp.Before(cutoff) {
			delete(m.revoked, id)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of tracked entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.revoked)
}

package journal

import (
	"context"
	"sync"

	"salesdesk/internal/domain"
)

// Memory is the in-process journal used when no database is configured and
// in tests. Entries survive only as long as the process does.
type Memory struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Entry)}
}

func (m *Memory) Save(_ context.Context, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := entry
	stored.Items = make([]Item, len(entry.Items))
	copy(stored.Items, entry.Items)
	m.entries[entry.SessionID] = stored
	return nil
}

func (m *Memory) Open(_ context.Context, sessionID string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[sessionID]
	if !ok || entry.State == StateCompleted {
		return nil, domain.ErrNotFound
	}
	out := entry
	out.Items = make([]Item, len(entry.Items))
	copy(out.Items, entry.Items)
	return &out, nil
}

func (m *Memory) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, sessionID)
	return nil
}

package store

import (
	"context"
	"sync"
)

// Memory keeps the document in process memory. Used in tests and as the
// zero-setup default.
type Memory struct {
	mu  sync.Mutex
	doc []byte
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) FetchLatest(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		return nil, ErrNotFound
	}
	out := make([]byte, len(m.doc))
	copy(out, m.doc)
	return out, nil
}

func (m *Memory) Upsert(ctx context.Context, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = make([]byte, len(doc))
	copy(m.doc, doc)
	return nil
}

// MemoryLocal is an in-process LocalStore.
type MemoryLocal struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryLocal() *MemoryLocal {
	return &MemoryLocal{values: make(map[string]string)}
}

func (m *MemoryLocal) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryLocal) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileLocal is a LocalStore backed by a small JSON file of key-value pairs,
// the server-side stand-in for a browser's localStorage.
type FileLocal struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

func NewFileLocal(path string) (*FileLocal, error) {
	l := &FileLocal{path: path, values: make(map[string]string)}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &l.values); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return l, nil
}

func (l *FileLocal) Get(key string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	v, ok := l.values[key]
	return v, ok
}

func (l *FileLocal) Set(key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.values[key] = value
	data, err := json.MarshalIndent(l.values, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating profile dir: %w", err)
		}
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile %s: %w", l.path, err)
	}
	return nil
}

const localDocumentKey = "document"

// Local is a Backend that keeps the document in a LocalStore under a fixed
// key. It is the client-local variant: synchronous, scoped to one device,
// no network involved.
type Local struct {
	kv LocalStore
}

func NewLocal(kv LocalStore) *Local {
	return &Local{kv: kv}
}

func (l *Local) FetchLatest(ctx context.Context) ([]byte, error) {
	v, ok := l.kv.Get(localDocumentKey)
	if !ok || v == "" {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

func (l *Local) Upsert(ctx context.Context, doc []byte) error {
	return l.kv.Set(localDocumentKey, string(doc))
}

package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means no document has been stored yet.
	ErrNotFound = errors.New("document not found")
	// ErrGone means the backend's stored handle pointed at a resource that
	// no longer exists. The backend has already discarded the handle, so a
	// retried Upsert will create the document anew.
	ErrGone = errors.New("stored document is gone")
	// ErrUnavailable means the backend could not be reached or answered
	// with an unexpected status.
	ErrUnavailable = errors.New("store backend unavailable")
)

// Backend persists and retrieves the single JSON document that holds the
// whole application state. Implementations differ in consistency and
// failure characteristics but share this contract.
type Backend interface {
	FetchLatest(ctx context.Context) ([]byte, error)
	Upsert(ctx context.Context, doc []byte) error
}

// LocalStore is client-local key-value storage: it holds per-client state
// (the anonymous handle, the sequence counter, the hosted-bin id) that is
// never part of the shared document.
type LocalStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

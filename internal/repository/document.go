package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/vedran77/chatbin/internal/domain"
	"github.com/vedran77/chatbin/internal/store"
)

// DocumentRepository wraps a store backend and guarantees that every read
// returns a structurally valid document. It keeps the last successfully
// loaded or saved copy so reads during a backend outage stay consistent
// with the caller's most recent write.
//
// There is no locking across load-mutate-save: two concurrent writers can
// overwrite each other and the later save wins whole. Acceptable for the
// intended single-admin, low-concurrency use.
type DocumentRepository struct {
	backend store.Backend

	mu    sync.Mutex
	cache *domain.Document
}

func NewDocumentRepository(backend store.Backend) *DocumentRepository {
	return &DocumentRepository{backend: backend}
}

// Load fetches the document from the backend. It never fails: a missing
// document yields a fresh default (not persisted), an unreachable backend
// yields the last known good copy if there is one, else the default. The
// result is always normalized.
func (r *DocumentRepository) Load(ctx context.Context) domain.Document {
	raw, err := r.backend.FetchLatest(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.DefaultDocument()
		}
		log.Printf("WARN loading document: %v", err)
		return r.lastKnownGood()
	}

	var doc domain.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		// A corrupt payload degrades the same way a fetch failure does.
		log.Printf("WARN parsing document: %v", err)
		return r.lastKnownGood()
	}

	doc = domain.Normalize(doc)
	r.setCache(doc)
	return doc
}

// Save normalizes and writes the document through the backend. If the
// backend reports the stored resource gone, the save is retried exactly
// once (the backend has discarded its stale handle, so the retry creates
// the document anew). The in-memory copy is updated even when the write
// fails, so the caller keeps read-your-writes during an outage.
func (r *DocumentRepository) Save(ctx context.Context, doc domain.Document) error {
	doc = domain.Normalize(doc)
	r.setCache(doc)

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	err = r.backend.Upsert(ctx, raw)
	if errors.Is(err, store.ErrGone) {
		err = r.backend.Upsert(ctx, raw)
	}
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) setCache(doc domain.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = &doc
}

func (r *DocumentRepository) lastKnownGood() domain.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cache != nil {
		return *r.cache
	}
	return domain.DefaultDocument()
}

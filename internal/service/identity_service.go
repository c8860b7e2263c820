package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/vedran77/chatbin/internal/domain"
	"github.com/vedran77/chatbin/internal/repository"
	"github.com/vedran77/chatbin/internal/store"
)

var ErrSequenceExhausted = errors.New("anonymous id space exhausted")

const (
	lastNumberKey      = "lastAnonymousNumber"
	handleKey          = "myAnonymousUsername"
	fallbackHandle     = "anonymous 0000"
	maxAnonymousNumber = 9999
)

// IdentityService assigns and remembers the client's anonymous handle and
// resolves the effective display name. The handle and its sequence counter
// live in client-local storage, never in the shared document; two clients
// with desynchronized counters can mint colliding handles. Known
// limitation.
type IdentityService struct {
	local store.LocalStore
	repo  *repository.DocumentRepository
}

func NewIdentityService(local store.LocalStore, repo *repository.DocumentRepository) *IdentityService {
	return &IdentityService{local: local, repo: repo}
}

// NextSequence increments the persisted counter and returns the new ordinal
// zero-padded to 4 digits. Fails with ErrSequenceExhausted once the counter
// has reached 9999.
func (s *IdentityService) NextSequence() (string, error) {
	last := 0
	if v, ok := s.local.Get(lastNumberKey); ok {
		if n, err := strconv.Atoi(v); err == nil {
			last = n
		}
	}

	if last >= maxAnonymousNumber {
		return "", ErrSequenceExhausted
	}

	last++
	if err := s.local.Set(lastNumberKey, strconv.Itoa(last)); err != nil {
		return "", fmt.Errorf("persisting sequence counter: %w", err)
	}
	return fmt.Sprintf("%04d", last), nil
}

// GetOrAssignHandle returns the stored handle, minting and persisting one
// on first use. If minting fails the fixed fallback handle is returned
// without being persisted, so a later call retries.
func (s *IdentityService) GetOrAssignHandle() string {
	if h, ok := s.local.Get(handleKey); ok && h != "" {
		return h
	}

	seq, err := s.NextSequence()
	if err != nil {
		return fallbackHandle
	}

	handle := "anonymous " + seq
	if err := s.local.Set(handleKey, handle); err != nil {
		// Still usable for this call; the next one mints again.
		return handle
	}
	return handle
}

// EffectiveUsername resolves the identity attributed to the current actor:
// the admin's custom username while the admin is logged in, otherwise the
// client's anonymous handle.
func (s *IdentityService) EffectiveUsername(ctx context.Context) string {
	doc := s.repo.Load(ctx)
	return s.EffectiveUsernameIn(doc)
}

// EffectiveUsernameIn is EffectiveUsername against an already loaded
// document, for callers in the middle of a read-modify-write.
func (s *IdentityService) EffectiveUsernameIn(doc domain.Document) string {
	if doc.Admin.IsLoggedIn && doc.Admin.CustomUsername != nil && *doc.Admin.CustomUsername != "" {
		return *doc.Admin.CustomUsername
	}
	return s.GetOrAssignHandle()
}

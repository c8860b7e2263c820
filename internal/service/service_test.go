package service

import (
	"github.com/vedran77/chatbin/internal/repository"
	"github.com/vedran77/chatbin/internal/store"
)

// env wires a full service stack over a store backend. Tests that need two
// clients build two envs over the same backend: each gets its own local
// storage and repository, like two browsers talking to one bin.
type env struct {
	backend  store.Backend
	local    *store.MemoryLocal
	repo     *repository.DocumentRepository
	identity *IdentityService
	channels *ChannelService
	dms      *DMService
	admin    *AdminService
}

func newEnv(backend store.Backend) *env {
	if backend == nil {
		backend = store.NewMemory()
	}
	local := store.NewMemoryLocal()
	repo := repository.NewDocumentRepository(backend)
	identity := NewIdentityService(local, repo)
	return &env{
		backend:  backend,
		local:    local,
		repo:     repo,
		identity: identity,
		channels: NewChannelService(repo, identity),
		dms:      NewDMService(repo, identity),
		admin:    NewAdminService(repo, identity),
	}
}

func (e *env) withHandle(handle string) *env {
	e.local.Set(handleKey, handle)
	return e
}

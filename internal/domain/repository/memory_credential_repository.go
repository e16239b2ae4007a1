package repository

import (
	"context"
	"sync"
	"time"

	"stateless_auth/internal/common"
	"stateless_auth/internal/domain/model"
)

// memoryCredentialRepository keeps credentials in process memory. Used for
// demo mode and tests; lookups are exact, case-sensitive username matches
// like the postgres implementation.
type memoryCredentialRepository struct {
	mu    sync.RWMutex
	creds map[string]model.Credential
}

func NewMemoryCredentialRepository() CredentialRepository {
	return &memoryCredentialRepository{creds: make(map[string]model.Credential)}
}

func (r *memoryCredentialRepository) Create(_ context.Context, cred *model.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.creds[cred.Username]; exists {
		return common.ErrConflict
	}
	stored := *cred
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.creds[cred.Username] = stored
	return nil
}

func (r *memoryCredentialRepository) FindByUsername(_ context.Context, username string) (*model.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cred, ok := r.creds[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &cred, nil
}

func (r *memoryCredentialRepository) FindSaltByUsername(_ context.Context, username string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cred, ok := r.creds[username]
	if !ok {
		return "", common.ErrNotFound
	}
	return cred.Salt, nil
}

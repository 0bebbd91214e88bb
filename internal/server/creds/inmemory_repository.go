package creds

import (
	"context"
	"sync"
	"time"

	"github.com/twit2/t2-auth/internal/common"
	"github.com/twit2/t2-auth/internal/server/hashing"
)

// InMemoryRepository keeps credentials in process memory with the same
// uniqueness semantics as the Postgres implementation. Used by tests and
// local development.
type InMemoryRepository struct {
	mu      sync.Mutex
	byUser  map[string]*Credential
	byOwner map[string]*Credential
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byUser:  make(map[string]*Credential),
		byOwner: make(map[string]*Credential),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, cred *Credential) (*Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUser[cred.Username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	if _, ok := r.byOwner[cred.OwnerID]; ok {
		return nil, common.ErrorAlreadyExists
	}

	stored := *cred
	r.byUser[cred.Username] = &stored
	r.byOwner[cred.OwnerID] = &stored
	return cred, nil
}

func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cred, ok := r.byUser[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *cred
	return &copied, nil
}

func (r *InMemoryRepository) GetByOwnerID(ctx context.Context, ownerID string) (*Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cred, ok := r.byOwner[ownerID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *cred
	return &copied, nil
}

func (r *InMemoryRepository) UpdatePassword(ctx context.Context, ownerID string, hashType hashing.HashAlgo, hashVal string) (*Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cred, ok := r.byOwner[ownerID]
	if !ok {
		return nil, common.ErrorNotFound
	}

	cred.HashType = hashType
	cred.HashVal = hashVal
	cred.LastUpdated = time.Now()

	copied := *cred
	return &copied, nil
}

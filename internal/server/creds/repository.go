package creds

import (
	"context"

	"github.com/twit2/t2-auth/internal/server/hashing"
)

// Repository persists credentials. Implementations must enforce uniqueness of
// both username and owner id; the unique constraint is the final arbiter for
// concurrent creations, not the caller's pre-check.
type Repository interface {
	Create(ctx context.Context, cred *Credential) (*Credential, error)
	GetByUsername(ctx context.Context, username string) (*Credential, error)
	GetByOwnerID(ctx context.Context, ownerID string) (*Credential, error)
	UpdatePassword(ctx context.Context, ownerID string, hashType hashing.HashAlgo, hashVal string) (*Credential, error)
}

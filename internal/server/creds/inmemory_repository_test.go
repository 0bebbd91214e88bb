package creds

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/twit2/t2-auth/internal/common"
	"github.com/twit2/t2-auth/internal/server/hashing"
)

func seedCred(t *testing.T, r *InMemoryRepository, username, ownerID string) *Credential {
	t.Helper()
	cred, err := r.Create(context.Background(), &Credential{
		OwnerID:     ownerID,
		Username:    username,
		HashType:    hashing.AlgoBCrypt,
		HashVal:     "$2a$04$fakehash",
		Role:        RoleUser,
		LastUpdated: time.Now(),
		SchemaVer:   SchemaVersion,
	})
	if err != nil {
		t.Fatalf("seed error: %v", err)
	}
	return cred
}

func TestInMemoryRepository_UniquePerUsernameAndOwner(t *testing.T) {
	t.Parallel()

	r := NewInMemoryRepository()
	ctx := context.Background()
	seedCred(t, r, "alice", "o1")

	if _, err := r.Create(ctx, &Credential{Username: "alice", OwnerID: "o2"}); !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected ErrorAlreadyExists for duplicate username, got %v", err)
	}
	if _, err := r.Create(ctx, &Credential{Username: "alice2", OwnerID: "o1"}); !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected ErrorAlreadyExists for duplicate owner, got %v", err)
	}
}

func TestInMemoryRepository_UpdatePassword(t *testing.T) {
	t.Parallel()

	r := NewInMemoryRepository()
	ctx := context.Background()
	seedCred(t, r, "bob", "o1")

	if _, err := r.UpdatePassword(ctx, "missing", hashing.AlgoBCrypt, "h"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}

	before, _ := r.GetByOwnerID(ctx, "o1")
	updated, err := r.UpdatePassword(ctx, "o1", hashing.AlgoBCrypt, "$2a$04$newhash")
	if err != nil {
		t.Fatalf("UpdatePassword error: %v", err)
	}
	if updated.HashVal != "$2a$04$newhash" {
		t.Fatalf("unexpected hash value %q", updated.HashVal)
	}
	if !updated.LastUpdated.After(before.LastUpdated) && !updated.LastUpdated.Equal(before.LastUpdated) {
		t.Fatal("expected LastUpdated to move forward")
	}

	// lookups return copies; mutating a result must not leak into the store
	got, _ := r.GetByUsername(ctx, "bob")
	got.HashVal = "tampered"
	again, _ := r.GetByUsername(ctx, "bob")
	if again.HashVal == "tampered" {
		t.Fatal("repository leaked internal state")
	}
}

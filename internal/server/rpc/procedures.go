package rpc

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/twit2/t2-auth/internal/server/creds"
)

// credentialManager is the slice of the credential manager the facade needs.
type credentialManager interface {
	GetCredRole(ctx context.Context, ownerID string) (creds.Role, error)
	HasCredential(ctx context.Context, ownerID string) bool
}

// tokenVerifier checks a bearer token and returns its subject.
type tokenVerifier interface {
	Verify(token string) (string, error)
}

type verifyUserResult struct {
	ID string `json:"id"`
}

// RegisterAuthProcedures wires the session/role procedures onto the server.
// These are pure read/verify adapters over the credential manager and token
// service; they hold no state of their own.
func RegisterAuthProcedures(s *Server, mgr credentialManager, tokens tokenVerifier) {

	s.Define("verify-user", func(ctx context.Context, payload json.RawMessage) (any, error) {
		var token string
		if err := json.Unmarshal(payload, &token); err != nil || token == "" {
			return nil, errors.New("no token specified")
		}

		subject, err := tokens.Verify(token)
		if err != nil {
			return nil, errors.New("access denied")
		}

		return verifyUserResult{ID: subject}, nil
	})

	s.Define("get-role", func(ctx context.Context, payload json.RawMessage) (any, error) {
		var id string
		if err := json.Unmarshal(payload, &id); err != nil || id == "" {
			return nil, errors.New("no valid ID specified")
		}

		role, err := mgr.GetCredRole(ctx, id)
		if err != nil {
			return nil, errors.New("credential not found")
		}

		return int(role), nil
	})

	// existence probe only; never fails
	s.Define("user-exists", func(ctx context.Context, payload json.RawMessage) (any, error) {
		var id string
		if err := json.Unmarshal(payload, &id); err != nil {
			return false, nil
		}
		return mgr.HasCredential(ctx, id), nil
	})
}

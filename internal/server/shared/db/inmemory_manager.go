package db

import (
	"context"
	"database/sql"

	"github.com/twit2/t2-auth/internal/server/creds"
)

// InMemoryRepositoryManager backs the repositories with process memory; used
// by tests and local development without a database.
type InMemoryRepositoryManager struct {
	creds creds.Repository
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *InMemoryRepositoryManager) Ping(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Creds() creds.Repository {
	return m.creds
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{creds: creds.NewInMemoryRepository()}
}

// Package db wires the storage backend: connection handling, migrations and
// repository construction.
package db

import (
	"context"
	"database/sql"

	"github.com/twit2/t2-auth/internal/server/creds"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Ping(context.Context) error
	Conn() *sql.DB
	Creds() creds.Repository
}

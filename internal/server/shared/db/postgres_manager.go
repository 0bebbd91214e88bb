package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/twit2/t2-auth/internal/server/creds"
	"github.com/twit2/t2-auth/internal/server/migrations"
)

type PostgresRepositoryManager struct {
	db    *sql.DB
	creds creds.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Creds() creds.Repository {
	return m.creds
}

func (m *PostgresRepositoryManager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(dsn string) (*PostgresRepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	credRepo, err := creds.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("credential repo creation error: %w", err)
	}

	return &PostgresRepositoryManager{db: db, creds: credRepo}, nil
}

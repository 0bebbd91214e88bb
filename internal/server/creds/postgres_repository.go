package creds

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/twit2/t2-auth/internal/common"
	"github.com/twit2/t2-auth/internal/server/hashing"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

// isUniqueViolation reports whether err is the unique-index rejection a
// duplicate username or owner id race produces.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (r *PostgresRepository) Create(ctx context.Context, cred *Credential) (*Credential, error) {

	query :=
		`INSERT INTO credentials (owner_id, username, role, hash_type, hash_val, last_updated, schema_ver)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 `

	_, err := r.db.ExecContext(ctx, query,
		cred.OwnerID, cred.Username, int(cred.Role), int(cred.HashType), cred.HashVal, cred.LastUpdated, cred.SchemaVer)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return cred, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*Credential, error) {
	query :=
		`SELECT owner_id, username, role, hash_type, hash_val, last_updated, schema_ver FROM credentials
		 WHERE username = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) GetByOwnerID(ctx context.Context, ownerID string) (*Credential, error) {
	query :=
		`SELECT owner_id, username, role, hash_type, hash_val, last_updated, schema_ver FROM credentials
		 WHERE owner_id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, ownerID))
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, ownerID string, hashType hashing.HashAlgo, hashVal string) (*Credential, error) {
	query :=
		`UPDATE credentials
		 SET hash_type = $2, hash_val = $3, last_updated = $4
		 WHERE owner_id = $1
		 RETURNING owner_id, username, role, hash_type, hash_val, last_updated, schema_ver
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, ownerID, int(hashType), hashVal, time.Now()))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*Credential, error) {
	cred := &Credential{}
	var role, hashType int

	err := row.Scan(&cred.OwnerID, &cred.Username, &role, &hashType, &cred.HashVal, &cred.LastUpdated, &cred.SchemaVer)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	cred.Role = Role(role)
	cred.HashType = hashing.HashAlgo(hashType)
	return cred, nil
}

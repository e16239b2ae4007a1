package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stateless_auth/internal/common"
	"stateless_auth/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// CredentialRepository is the user-lookup capability the auth core depends
// on. FindSaltByUsername is a salt-only projection so the salt endpoint
// never reads the password hash.
type CredentialRepository interface {
	Create(ctx context.Context, cred *model.Credential) error
	FindByUsername(ctx context.Context, username string) (*model.Credential, error)
	FindSaltByUsername(ctx context.Context, username string) (string, error)
}

type pgCredentialRepository struct {
	db *sql.DB
}

func NewPgCredentialRepository(db *sql.DB) CredentialRepository {
	return &pgCredentialRepository{db: db}
}

func (r *pgCredentialRepository) Create(ctx context.Context, cred *model.Credential) error {
	query := `INSERT INTO credentials (id, username, salt, password_hash, role)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, cred.ID, cred.Username, cred.Salt, cred.PasswordHash, int(cred.Role))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("credential for username already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgCredentialRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCredentialRepository) FindByUsername(ctx context.Context, username string) (*model.Credential, error) {
	query := `SELECT id, username, salt, password_hash, role, created_at, updated_at
	          FROM credentials WHERE username = $1`
	cred := &model.Credential{}
	var role int
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&cred.ID, &cred.Username, &cred.Salt, &cred.PasswordHash, &role, &cred.CreatedAt, &cred.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCredentialRepository.FindByUsername: %w", err)
	}
	cred.Role = model.Role(role)
	return cred, nil
}

func (r *pgCredentialRepository) FindSaltByUsername(ctx context.Context, username string) (string, error) {
	query := `SELECT salt FROM credentials WHERE username = $1`
	var salt string
	err := r.db.QueryRowContext(ctx, query, username).Scan(&salt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrNotFound
		}
		return "", fmt.Errorf("pgCredentialRepository.FindSaltByUsername: %w", err)
	}
	return salt, nil
}

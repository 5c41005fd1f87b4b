// Package accounts provides persistence for credvault accounts.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/dbx"
	"github.com/dmitrijs2005/credvault/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the account, assigning a fresh UUID when ID is empty.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO accounts (id, username, normalized_name, password_hash, api_key)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.ID, account.UserName, account.NormalizedName, account.PasswordHash, account.APIKey).
		Scan(&account.CreatedAt, &account.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

const selectAccount = `SELECT id, username, normalized_name, password_hash, api_key, created_at, updated_at
		 FROM accounts
		 `

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.Account, error) {
	a := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&a.ID, &a.UserName, &a.NormalizedName, &a.PasswordHash, &a.APIKey, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return r.getOne(ctx, selectAccount+`WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByNormalizedName(ctx context.Context, normalizedName string) (*models.Account, error) {
	return r.getOne(ctx, selectAccount+`WHERE normalized_name = $1`, normalizedName)
}

// GetByNormalizedNameForUpdate locks the row until the surrounding
// transaction ends.
func (r *PostgresRepository) GetByNormalizedNameForUpdate(ctx context.Context, normalizedName string) (*models.Account, error) {
	return r.getOne(ctx, selectAccount+`WHERE normalized_name = $1 FOR UPDATE`, normalizedName)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) UpdateCredentials(ctx context.Context, id, passwordHash, apiKey string) error {
	return r.exec(ctx,
		`UPDATE accounts SET password_hash = $2, api_key = $3, updated_at = now()
		 WHERE id = $1`, id, passwordHash, apiKey)
}

// ReplacePasswordHash swaps oldHash for newHash only while oldHash is still
// the stored value; a concurrent password change makes it return
// common.ErrorNotFound and leaves the row alone.
func (r *PostgresRepository) ReplacePasswordHash(ctx context.Context, id, oldHash, newHash string) error {
	return r.exec(ctx,
		`UPDATE accounts SET password_hash = $2, updated_at = now()
		 WHERE id = $1 AND password_hash = $3`, id, newHash, oldHash)
}

func (r *PostgresRepository) UpdateAPIKey(ctx context.Context, id, apiKey string) error {
	return r.exec(ctx,
		`UPDATE accounts SET api_key = $2, updated_at = now()
		 WHERE id = $1`, id, apiKey)
}

// Package postgres provides PostgreSQL implementations of the account
// directory and outbox repositories, with transaction-aware variants
// for atomic multi-repository operations.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/account"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/platform/persistence"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations
const uniqueViolation = "23505"

// AccountRepository implements the account.Repository interface for PostgreSQL
type AccountRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewAccountRepository creates a new PostgreSQL account repository
func NewAccountRepository(logger *slog.Logger, db *persistence.PostgresDB) account.Repository {
	return &AccountRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction so account
// registration can be atomic with outbox writes.
func (r *AccountRepository) WithTx(tx pgx.Tx) account.Repository {
	return &AccountRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new directory account. Name and code collisions map
// to the domain's duplicate errors.
func (r *AccountRepository) Create(ctx context.Context, acc *account.Account) error {
	query := `
		INSERT INTO accounts (id, name, code, type, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
	`

	_, err := r.querier.Exec(ctx, query,
		acc.ID,
		acc.Name,
		acc.Code,
		string(acc.Type),
		acc.CreatedAt,
		acc.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if pgErr.ConstraintName == "accounts_code_key" {
				return account.ErrDuplicateCode{Code: acc.Code}
			}
			return account.ErrDuplicateAccount{Name: acc.Name}
		}
		r.logger.Error("Failed to create account", "name", acc.Name, "error", err)
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByName retrieves a directory account by its name
func (r *AccountRepository) GetByName(ctx context.Context, name string) (*account.Account, error) {
	query := `
		SELECT id, name, COALESCE(code, ''), type, created_at, updated_at
		FROM accounts
		WHERE name = $1
	`

	acc, err := r.scanAccount(r.querier.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound{Name: name}
		}
		r.logger.Error("Failed to get account", "name", name, "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return acc, nil
}

// GetByCode retrieves a directory account by its code. Returns nil, nil
// when no account carries the code.
func (r *AccountRepository) GetByCode(ctx context.Context, code string) (*account.Account, error) {
	query := `
		SELECT id, name, COALESCE(code, ''), type, created_at, updated_at
		FROM accounts
		WHERE code = $1
	`

	acc, err := r.scanAccount(r.querier.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get account by code", "code", code, "error", err)
		return nil, fmt.Errorf("failed to get account by code: %w", err)
	}

	return acc, nil
}

// List returns all directory accounts ordered by name
func (r *AccountRepository) List(ctx context.Context) ([]*account.Account, error) {
	query := `
		SELECT id, name, COALESCE(code, ''), type, created_at, updated_at
		FROM accounts
		ORDER BY name ASC
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list accounts", "error", err)
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		acc, err := r.scanAccount(rows)
		if err != nil {
			r.logger.Error("Failed to scan account", "error", err)
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over accounts", "error", err)
		return nil, fmt.Errorf("error iterating over accounts: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) scanAccount(row pgx.Row) (*account.Account, error) {
	var acc account.Account
	var accountType string
	err := row.Scan(
		&acc.ID,
		&acc.Name,
		&acc.Code,
		&accountType,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	acc.Type = account.Type(accountType)
	return &acc, nil
}

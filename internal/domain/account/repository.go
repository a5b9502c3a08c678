package account

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Repository defines account directory persistence operations
type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByName(ctx context.Context, name string) (*Account, error)
	GetByCode(ctx context.Context, code string) (*Account, error)
	List(ctx context.Context) ([]*Account, error)
	WithTx(tx pgx.Tx) Repository
}

// ErrAccountNotFound indicates a missing directory account
type ErrAccountNotFound struct {
	Name string
}

func (e ErrAccountNotFound) Error() string {
	return "account not found: " + e.Name
}

// Is implements the errors.Is interface for ErrAccountNotFound
func (e ErrAccountNotFound) Is(target error) bool {
	t, ok := target.(ErrAccountNotFound)
	if !ok {
		return false
	}
	// An empty target name matches any ErrAccountNotFound
	if t.Name == "" {
		return true
	}
	return e.Name == t.Name
}

// ErrDuplicateCode indicates an account code uniqueness violation
type ErrDuplicateCode struct {
	Code string
}

func (e ErrDuplicateCode) Error() string {
	return "account code already in use: " + e.Code
}

// Is implements the errors.Is interface for ErrDuplicateCode
func (e ErrDuplicateCode) Is(target error) bool {
	t, ok := target.(ErrDuplicateCode)
	if !ok {
		return false
	}
	if t.Code == "" {
		return true
	}
	return e.Code == t.Code
}

// ErrDuplicateAccount indicates an account name uniqueness violation
type ErrDuplicateAccount struct {
	Name string
}

func (e ErrDuplicateAccount) Error() string {
	return "account already exists: " + e.Name
}

// Is implements the errors.Is interface for ErrDuplicateAccount
func (e ErrDuplicateAccount) Is(target error) bool {
	t, ok := target.(ErrDuplicateAccount)
	if !ok {
		return false
	}
	if t.Name == "" {
		return true
	}
	return e.Name == t.Name
}

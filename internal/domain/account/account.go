package account

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrEmptyName   = errors.New("account name cannot be empty")
	ErrInvalidType = errors.New("invalid account type")
)

// Type classifies an account for reporting purposes.
type Type string

const (
	TypeAsset     Type = "asset"
	TypeLiability Type = "liability"
	TypeEquity    Type = "equity"
	TypeRevenue   Type = "revenue"
	TypeExpense   Type = "expense"

	// TypeUnknown marks accounts with no explicit category and no
	// heuristic match. Such accounts still appear in the ledger and
	// trial balance but are excluded from the financial statements.
	TypeUnknown Type = ""
)

// ParseType converts a raw category string to a Type.
// The empty string maps to TypeUnknown without error.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeAsset, TypeLiability, TypeEquity, TypeRevenue, TypeExpense, TypeUnknown:
		return Type(s), nil
	default:
		return TypeUnknown, fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
}

// NormalDebit reports whether the account type normally carries a
// debit-side balance. Asset and Expense accounts do; Liability, Revenue
// and Equity accounts normally carry credit-side balances.
func (t Type) NormalDebit() bool {
	return t == TypeAsset || t == TypeExpense
}

// Known reports whether the type is one of the five statement categories.
func (t Type) Known() bool {
	return t != TypeUnknown
}

// Account is an entry in the account directory.
type Account struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code,omitempty"` // optional unique ordering key
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAccount creates a directory account. An empty type is resolved
// through the name heuristic, so implicitly created accounts (first seen
// on a posting) still get a best-effort classification.
func NewAccount(name, code string, accountType Type) (*Account, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if accountType == TypeUnknown {
		accountType = Classify(name)
	}

	now := time.Now()
	return &Account{
		ID:        uuid.New(),
		Name:      name,
		Code:      code,
		Type:      accountType,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/account"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/journal"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/shared"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/report"
)

// EntryService defines the interface for journal entry operations
type EntryService interface {
	// SubmitEntry validates the posting request and publishes it for
	// asynchronous persistence. Returns the entry ID on acceptance, or
	// a *journal.ValidationError when the double-entry invariants fail.
	// Rejected entries are never published.
	SubmitEntry(ctx context.Context, request *shared.PostingRequest) (uuid.UUID, error)

	// GetEntryByID retrieves a committed entry by its ID.
	// Returns nil if the entry is not found.
	GetEntryByID(ctx context.Context, entryID uuid.UUID) (*journal.Entry, error)

	// ListEntries retrieves committed entries inside the date range,
	// ordered by date ascending with insertion order breaking ties
	ListEntries(ctx context.Context, filter journal.DateFilter) ([]*journal.Entry, error)
}

// AccountService defines the interface for account directory operations
type AccountService interface {
	// CreateAccount registers a directory account. An empty type is
	// resolved through the name heuristic. Returns ErrDuplicateAccount
	// or ErrDuplicateCode on uniqueness violations.
	CreateAccount(ctx context.Context, name, code string, accountType account.Type) (*account.Account, error)

	// GetAccountByName retrieves a directory account by name.
	// Returns ErrAccountNotFound if the account doesn't exist.
	GetAccountByName(ctx context.Context, name string) (*account.Account, error)

	// ListAccounts retrieves all directory accounts ordered by name
	ListAccounts(ctx context.Context) ([]*account.Account, error)
}

// ReportService computes the derived financial views. Every report is
// recomputed per request from the full entry stream in range; nothing
// is cached.
type ReportService interface {
	// Ledger returns per-account ledgers with running balances for
	// every account posted to inside the range
	Ledger(ctx context.Context, filter journal.DateFilter) ([]report.LedgerAccount, error)

	// AccountLedger returns the ledger view restricted to one account
	AccountLedger(ctx context.Context, accountName string, filter journal.DateFilter) (report.LedgerAccount, error)

	// TrialBalance aggregates nonzero account balances as of the
	// optional cutoff date
	TrialBalance(ctx context.Context, filter journal.DateFilter, asOf *time.Time) (*report.TrialBalance, error)

	// IncomeStatement reports net revenues and expenses over the range
	IncomeStatement(ctx context.Context, filter journal.DateFilter) (*report.IncomeStatement, error)

	// BalanceSheet buckets balances into assets, liabilities and equity
	// with the period's net income rolled into equity
	BalanceSheet(ctx context.Context, filter journal.DateFilter) (*report.BalanceSheet, error)
}

package components

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/account"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/journal"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/journal_processor/service"
)

// AccountRegistrarImpl implements the AccountRegistrar interface.
// Accounts are discovered dynamically: the first posting that mentions
// a name creates its directory row, classified from the line's explicit
// category or the name heuristic.
type AccountRegistrarImpl struct {
	accountRepo account.Repository
	logger      *slog.Logger
}

// NewAccountRegistrar creates a new AccountRegistrarImpl
func NewAccountRegistrar(accountRepo account.Repository, logger *slog.Logger) service.AccountRegistrar {
	return &AccountRegistrarImpl{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// RegisterAccounts ensures a directory row exists for every account the
// entry posts to, inside the caller's transaction. Registration is
// idempotent: existing accounts and concurrent inserts are not errors.
func (r *AccountRegistrarImpl) RegisterAccounts(ctx context.Context, tx pgx.Tx, entry *journal.Entry) error {
	accountRepoTx := r.accountRepo.WithTx(tx)

	seen := make(map[string]bool, len(entry.Lines))
	for _, line := range entry.Lines {
		if seen[line.Account] {
			continue
		}
		seen[line.Account] = true

		existing, err := accountRepoTx.GetByName(ctx, line.Account)
		if err != nil && !errors.Is(err, account.ErrAccountNotFound{}) {
			r.logger.Error("Failed to look up account during registration",
				"entry_id", entry.ID.String(),
				"account", line.Account,
				"error", err,
			)
			return fmt.Errorf("account lookup failed for %q: %w", line.Account, err)
		}
		if existing != nil {
			continue
		}

		acc, err := account.NewAccount(line.Account, "", line.Category)
		if err != nil {
			return fmt.Errorf("failed to build account %q: %w", line.Account, err)
		}

		if err := accountRepoTx.Create(ctx, acc); err != nil {
			// A concurrent posting may have registered the same name first
			if errors.Is(err, account.ErrDuplicateAccount{}) {
				r.logger.Debug("Account registered concurrently", "account", line.Account)
				continue
			}
			r.logger.Error("Failed to register account",
				"entry_id", entry.ID.String(),
				"account", line.Account,
				"error", err,
			)
			return fmt.Errorf("failed to register account %q: %w", line.Account, err)
		}

		r.logger.Info("Account registered from posting",
			"entry_id", entry.ID.String(),
			"account", acc.Name,
			"type", string(acc.Type),
		)
	}

	return nil
}

package service

import (
	"context"
	"log/slog"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/account"
)

// AccountServiceImpl implements the AccountService interface
type AccountServiceImpl struct {
	accountRepo account.Repository
	logger      *slog.Logger
}

// NewAccountService creates a new account directory service
func NewAccountService(logger *slog.Logger, accountRepo account.Repository) AccountService {
	return &AccountServiceImpl{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// CreateAccount registers a new directory account. An empty type falls
// back to the name heuristic inside NewAccount, so explicitly created
// accounts and posting-discovered ones classify the same way.
func (s *AccountServiceImpl) CreateAccount(ctx context.Context, name, code string, accountType account.Type) (*account.Account, error) {
	acc, err := account.NewAccount(name, code, accountType)
	if err != nil {
		s.logger.Error("Failed to build account", "name", name, "error", err)
		return nil, err
	}

	if err := s.accountRepo.Create(ctx, acc); err != nil {
		s.logger.Error("Failed to create account", "name", name, "error", err)
		return nil, err
	}

	s.logger.Info("Account registered",
		"name", acc.Name,
		"code", acc.Code,
		"type", string(acc.Type),
	)
	return acc, nil
}

// GetAccountByName retrieves a directory account by name
func (s *AccountServiceImpl) GetAccountByName(ctx context.Context, name string) (*account.Account, error) {
	return s.accountRepo.GetByName(ctx, name)
}

// ListAccounts retrieves all directory accounts ordered by name
func (s *AccountServiceImpl) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	return s.accountRepo.List(ctx)
}

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/account"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/journal"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/report"
)

// ReportServiceImpl implements the ReportService interface. Each call
// loads the in-range entry stream and the account directory, then runs
// the pure report computation over them.
type ReportServiceImpl struct {
	journalRepo journal.Repository
	accountRepo account.Repository
	logger      *slog.Logger
}

// NewReportService creates a new report service
func NewReportService(logger *slog.Logger, journalRepo journal.Repository, accountRepo account.Repository) ReportService {
	return &ReportServiceImpl{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// resolver builds the classification resolver for a report run:
// registered directory types first, name heuristic for everything else.
// A directory outage degrades to heuristic-only classification rather
// than failing the report.
func (s *ReportServiceImpl) resolver(ctx context.Context) account.Resolver {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		s.logger.Warn("Account directory unavailable, classifying by name heuristic only", "error", err)
		return account.HeuristicResolver{}
	}
	return account.NewDirectory(accounts)
}

// Ledger returns per-account ledgers with running balances
func (s *ReportServiceImpl) Ledger(ctx context.Context, filter journal.DateFilter) ([]report.LedgerAccount, error) {
	entries, err := s.journalRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to load entries for ledger report", "error", err)
		return nil, err
	}
	return report.ComputeLedger(s.logger, entries, filter), nil
}

// AccountLedger returns the ledger view restricted to one account
func (s *ReportServiceImpl) AccountLedger(ctx context.Context, accountName string, filter journal.DateFilter) (report.LedgerAccount, error) {
	entries, err := s.journalRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to load entries for account ledger report",
			"account", accountName,
			"error", err,
		)
		return report.LedgerAccount{}, err
	}
	return report.ComputeAccountLedger(s.logger, entries, accountName, filter), nil
}

// TrialBalance aggregates nonzero account balances up to the cutoff
func (s *ReportServiceImpl) TrialBalance(ctx context.Context, filter journal.DateFilter, asOf *time.Time) (*report.TrialBalance, error) {
	entries, err := s.journalRepo.List(ctx, filter.WithCutoff(asOf))
	if err != nil {
		s.logger.Error("Failed to load entries for trial balance", "error", err)
		return nil, err
	}
	return report.ComputeTrialBalance(s.logger, entries, s.resolver(ctx), filter, asOf), nil
}

// IncomeStatement reports net revenues and expenses over the range
func (s *ReportServiceImpl) IncomeStatement(ctx context.Context, filter journal.DateFilter) (*report.IncomeStatement, error) {
	entries, err := s.journalRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to load entries for income statement", "error", err)
		return nil, err
	}
	return report.ComputeIncomeStatement(s.logger, entries, s.resolver(ctx), filter), nil
}

// BalanceSheet buckets balances into the accounting equation
func (s *ReportServiceImpl) BalanceSheet(ctx context.Context, filter journal.DateFilter) (*report.BalanceSheet, error) {
	entries, err := s.journalRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to load entries for balance sheet", "error", err)
		return nil, err
	}
	return report.ComputeBalanceSheet(s.logger, entries, s.resolver(ctx), filter), nil
}

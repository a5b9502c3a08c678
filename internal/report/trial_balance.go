package report

import (
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/account"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/journal"
)

// TrialBalanceRow is one account's net balance signed to its heavier
// side. Abnormal flags an account sitting on the wrong side of its
// normal balance (an asset with a credit balance, a revenue with a
// debit balance); it is advisory, never an error.
type TrialBalanceRow struct {
	Account      string          `json:"account"`
	Type         account.Type    `json:"type,omitempty"`
	TotalDebits  decimal.Decimal `json:"total_debits"`
	TotalCredits decimal.Decimal `json:"total_credits"`
	Balance      decimal.Decimal `json:"balance"`
	BalanceType  BalanceSide     `json:"balance_type"`
	Abnormal     bool            `json:"abnormal,omitempty"`
}

// TrialBalance lists all nonzero account balances as of a cutoff date,
// with grand totals per side and the debits-equal-credits check.
type TrialBalance struct {
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"total_debits"`
	TotalCredits decimal.Decimal   `json:"total_credits"`
	Balanced     bool              `json:"balanced"`
	AsOf         *time.Time        `json:"as_of,omitempty"`
}

// ComputeTrialBalance aggregates entries inside the filter (optionally
// cut off at asOf, inclusive) into one row per account with a nonzero
// balance, sorted by account name. Balanced is |ΣDr − ΣCr| < 0.01; given
// the per-entry invariant it should always hold, but it is computed and
// exposed rather than assumed — false means corrupted stored data.
func ComputeTrialBalance(
	logger *slog.Logger,
	entries []*journal.Entry,
	resolver account.Resolver,
	filter journal.DateFilter,
	asOf *time.Time,
) *TrialBalance {
	postings := Flatten(logger, entries, filter.WithCutoff(asOf))

	type accountTotals struct {
		debits   decimal.Decimal
		credits  decimal.Decimal
		category account.Type
	}
	totals := make(map[string]*accountTotals)
	for _, p := range postings {
		t, ok := totals[p.Account]
		if !ok {
			t = &accountTotals{debits: decimal.Zero, credits: decimal.Zero}
			totals[p.Account] = t
		}
		t.debits = t.debits.Add(p.Debit)
		t.credits = t.credits.Add(p.Credit)
		if !t.category.Known() && p.Category.Known() {
			t.category = p.Category
		}
	}

	tb := &TrialBalance{
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
		AsOf:         asOf,
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := totals[name]
		balance, side := balanceOf(t.debits, t.credits)
		if side == BalanceNone {
			continue // zero balances never appear
		}

		accountType := classify(name, t.category, resolver)
		abnormal := accountType.Known() &&
			((accountType.NormalDebit() && side == BalanceCredit) ||
				(!accountType.NormalDebit() && side == BalanceDebit))

		tb.Rows = append(tb.Rows, TrialBalanceRow{
			Account:      name,
			Type:         accountType,
			TotalDebits:  t.debits,
			TotalCredits: t.credits,
			Balance:      balance,
			BalanceType:  side,
			Abnormal:     abnormal,
		})

		switch side {
		case BalanceDebit:
			tb.TotalDebits = tb.TotalDebits.Add(balance)
		case BalanceCredit:
			tb.TotalCredits = tb.TotalCredits.Add(balance)
		}
	}

	tb.Balanced = tb.TotalDebits.Sub(tb.TotalCredits).Abs().LessThan(epsilon)
	return tb
}

package report

import (
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/journal"
)

// LedgerRow is one posting in an account's ledger view, carrying the
// running balance after that posting.
type LedgerRow struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	Reference   uuid.UUID       `json:"reference"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
	BalanceType BalanceSide     `json:"balance_type"`
}

// LedgerAccount groups an account's postings with its totals.
type LedgerAccount struct {
	Account      string          `json:"account"`
	Rows         []LedgerRow     `json:"rows"`
	TotalDebits  decimal.Decimal `json:"total_debits"`
	TotalCredits decimal.Decimal `json:"total_credits"`
	Balance      decimal.Decimal `json:"balance"`
	BalanceType  BalanceSide     `json:"balance_type"`
}

// ComputeLedger folds the entry stream into per-account ledgers. Every
// account referenced by a posting is included, registered in the
// directory or not: accounts are discovered dynamically from postings.
// An empty entry stream yields an empty ledger, not an error.
func ComputeLedger(logger *slog.Logger, entries []*journal.Entry, filter journal.DateFilter) []LedgerAccount {
	postings := Flatten(logger, entries, filter)

	grouped := make(map[string][]Posting)
	var order []string
	for _, p := range postings {
		if _, seen := grouped[p.Account]; !seen {
			order = append(order, p.Account)
		}
		grouped[p.Account] = append(grouped[p.Account], p)
	}
	sort.Strings(order)

	ledger := make([]LedgerAccount, 0, len(order))
	for _, name := range order {
		ledger = append(ledger, buildLedgerAccount(name, grouped[name]))
	}
	return ledger
}

// ComputeAccountLedger is the single-account view: the same algorithm
// restricted to one account's postings. Returns an empty ledger account
// (zero totals, no rows) when the account has no postings in range.
func ComputeAccountLedger(logger *slog.Logger, entries []*journal.Entry, accountName string, filter journal.DateFilter) LedgerAccount {
	postings := Flatten(logger, entries, filter)

	var mine []Posting
	for _, p := range postings {
		if p.Account == accountName {
			mine = append(mine, p)
		}
	}
	return buildLedgerAccount(accountName, mine)
}

// buildLedgerAccount walks an account's postings in ledger order,
// accumulating debit/credit totals and deriving the running balance at
// each row: debit-heavy shows "Dr", credit-heavy "Cr", equal is blank.
func buildLedgerAccount(name string, postings []Posting) LedgerAccount {
	acc := LedgerAccount{
		Account:      name,
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
		Balance:      decimal.Zero,
	}

	for _, p := range postings {
		acc.TotalDebits = acc.TotalDebits.Add(p.Debit)
		acc.TotalCredits = acc.TotalCredits.Add(p.Credit)

		balance, side := balanceOf(acc.TotalDebits, acc.TotalCredits)
		acc.Rows = append(acc.Rows, LedgerRow{
			Date:        p.Date,
			Description: p.Description,
			Reference:   p.Reference,
			Debit:       p.Debit,
			Credit:      p.Credit,
			Balance:     balance,
			BalanceType: side,
		})
	}

	acc.Balance, acc.BalanceType = balanceOf(acc.TotalDebits, acc.TotalCredits)
	return acc
}

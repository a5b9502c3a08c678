// Package report derives the ledger, trial balance, income statement
// and balance sheet from the journal entry stream. Every computation is
// a pure function of (entries, date range): nothing is cached, repeated
// calls with the same inputs give the same answer.
package report

import (
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/account"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/journal"
)

// epsilon is the tolerance for the balanced checks: a report counts as
// balanced when |total debits - total credits| stays under one cent.
var epsilon = decimal.NewFromFloat(0.01)

// BalanceSide names the heavier side of a balance. Empty when debits
// and credits are exactly equal.
type BalanceSide string

const (
	BalanceDebit  BalanceSide = "Dr"
	BalanceCredit BalanceSide = "Cr"
	BalanceNone   BalanceSide = ""
)

// balanceOf derives the absolute balance and its side from cumulative
// debit and credit totals.
func balanceOf(debits, credits decimal.Decimal) (decimal.Decimal, BalanceSide) {
	diff := debits.Sub(credits)
	switch {
	case diff.IsPositive():
		return diff, BalanceDebit
	case diff.IsNegative():
		return diff.Neg(), BalanceCredit
	default:
		return decimal.Zero, BalanceNone
	}
}

// Posting is one flattened journal line: the debit or credit movement of
// a single account on a single date. Sibling lines of one entry share
// the same Reference so they trace back to it.
type Posting struct {
	Date        time.Time
	Account     string
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Category    account.Type // explicit line override, TypeUnknown when absent
	Reference   uuid.UUID    // originating entry ID
}

// Flatten converts entries into date-ordered postings, keeping only
// those inside the filter. Amounts are rounded to 2 decimal places here
// so all downstream equality checks compare rounded values. Entries
// with a zero date are malformed stored data: they are skipped with a
// logged diagnostic rather than failing the whole report.
func Flatten(logger *slog.Logger, entries []*journal.Entry, filter journal.DateFilter) []Posting {
	var postings []Posting
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		if entry.Date.IsZero() {
			logger.Warn("Skipping journal entry with missing date", "entry_id", entry.ID.String())
			continue
		}
		if !filter.Contains(entry.Date) {
			continue
		}

		for _, line := range entry.Lines {
			postings = append(postings, Posting{
				Date:        entry.Date,
				Account:     line.Account,
				Description: entry.Description,
				Debit:       line.Debit().Round(2),
				Credit:      line.Credit().Round(2),
				Category:    line.Category,
				Reference:   entry.ID,
			})
		}
	}

	// Stable: ties on date keep emission order, which is the
	// insertion order the repository guarantees. This fixes the
	// running-balance sequence per account.
	sort.SliceStable(postings, func(i, j int) bool {
		return postings[i].Date.Before(postings[j].Date)
	})

	return postings
}

// classify resolves a posting group's type: the first explicit line
// category wins, otherwise the resolver (directory lookup with name
// heuristic fallback) decides.
func classify(name string, explicit account.Type, resolver account.Resolver) account.Type {
	if explicit.Known() {
		return explicit
	}
	if resolver != nil {
		return resolver.ResolveType(name)
	}
	return account.Classify(name)
}

// Package journal defines the double-entry transaction model. A journal
// entry groups two or more lines, each a debit or credit against a named
// account, and is only valid when its debits and credits are equal after
// rounding to two decimal places.
package journal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/account"
)

// Side marks a line as the debit or credit movement of its entry.
type Side string

const (
	SideDebit  Side = "Debit"
	SideCredit Side = "Credit"
)

// Valid reports whether the side is one of the two recognized values.
func (s Side) Valid() bool {
	return s == SideDebit || s == SideCredit
}

// Line is a single posting within an entry: one side, one account, one
// positive amount. Category optionally overrides the account directory's
// classification for this posting (a receipt's debit side is always an
// asset regardless of how the account is registered).
type Line struct {
	Account  string
	Side     Side
	Amount   decimal.Decimal
	Category account.Type
}

// Debit returns the line amount when the line is a debit, zero otherwise.
func (l Line) Debit() decimal.Decimal {
	if l.Side == SideDebit {
		return l.Amount
	}
	return decimal.Zero
}

// Credit returns the line amount when the line is a credit, zero otherwise.
func (l Line) Credit() decimal.Decimal {
	if l.Side == SideCredit {
		return l.Amount
	}
	return decimal.Zero
}

// Entry is one committed journal transaction. Entries are append-only:
// once stored they are never updated or deleted, and every derived
// report replays the full entry history.
type Entry struct {
	ID          uuid.UUID
	Date        time.Time // calendar date, normalized to midnight UTC
	Description string
	Lines       []Line
	CreatedAt   time.Time // insertion order tiebreaker for equal dates
}

// ValidationError describes why an entry was rejected at submission
// time. Rejected entries are never persisted.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid journal entry: " + e.Reason
}

// NewEntry builds a validated entry. The date is normalized to midnight
// UTC so date-range filters compare calendar days, not instants.
func NewEntry(date time.Time, description string, lines []Line) (*Entry, error) {
	if date.IsZero() {
		return nil, &ValidationError{Reason: "date is required"}
	}
	if err := ValidateLines(lines); err != nil {
		return nil, err
	}

	return &Entry{
		ID:          uuid.New(),
		Date:        NormalizeDate(date),
		Description: description,
		Lines:       lines,
		CreatedAt:   time.Now(),
	}, nil
}

// ValidateLines enforces the double-entry invariants: at least two
// lines, every line strictly positive on exactly one side, and total
// debits equal to total credits after rounding to 2 decimal places.
// Returns a *ValidationError on the first violation.
func ValidateLines(lines []Line) error {
	if len(lines) < 2 {
		return &ValidationError{Reason: fmt.Sprintf("entry requires at least 2 lines, got %d", len(lines))}
	}

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for i, line := range lines {
		if line.Account == "" {
			return &ValidationError{Reason: fmt.Sprintf("line %d: account is required", i+1)}
		}
		if !line.Side.Valid() {
			return &ValidationError{Reason: fmt.Sprintf("line %d: side must be Debit or Credit, got %q", i+1, line.Side)}
		}
		if !line.Amount.IsPositive() {
			return &ValidationError{Reason: fmt.Sprintf("line %d: amount must be positive, got %s", i+1, line.Amount)}
		}

		totalDebits = totalDebits.Add(line.Debit().Round(2))
		totalCredits = totalCredits.Add(line.Credit().Round(2))
	}

	if !totalDebits.Equal(totalCredits) {
		return &ValidationError{Reason: fmt.Sprintf(
			"debits (%s) do not equal credits (%s)",
			totalDebits.StringFixed(2), totalCredits.StringFixed(2),
		)}
	}

	return nil
}

// NormalizeDate strips the time component, keeping the calendar day in UTC.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateFilter is an inclusive calendar-date range. A nil bound leaves
// that side unbounded.
type DateFilter struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether the date falls inside the range. Bounds are
// inclusive: an entry dated exactly on From or To is in range.
func (f DateFilter) Contains(date time.Time) bool {
	day := NormalizeDate(date)
	if f.From != nil && day.Before(NormalizeDate(*f.From)) {
		return false
	}
	if f.To != nil && day.After(NormalizeDate(*f.To)) {
		return false
	}
	return true
}

// WithCutoff returns a copy of the filter additionally bounded above by
// asOf (inclusive). Used by the trial balance's as-of view.
func (f DateFilter) WithCutoff(asOf *time.Time) DateFilter {
	if asOf == nil {
		return f
	}
	cutoff := NormalizeDate(*asOf)
	if f.To == nil || cutoff.Before(NormalizeDate(*f.To)) {
		f.To = &cutoff
	}
	return f
}

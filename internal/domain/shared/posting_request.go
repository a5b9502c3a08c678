package shared

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/account"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/journal"
)

// DateLayout is the wire and storage format for entry dates. Dates carry
// no time component.
const DateLayout = "2006-01-02"

// PostingRequest is the Kafka message carrying a validated journal entry
// from the API gateway to the journal processor. Amounts travel as
// decimal strings to avoid float drift on the wire.
type PostingRequest struct {
	EntryID       uuid.UUID     `json:"entry_id"`
	Date          string        `json:"date"` // DateLayout
	Description   string        `json:"description,omitempty"`
	Lines         []PostingLine `json:"lines"`
	SourceType    string        `json:"source_type,omitempty"` // journal | payment | receipt
	CorrelationID string        `json:"correlation_id"`
	Timestamp     time.Time     `json:"timestamp"`
}

// PostingLine mirrors the persisted line shape: one side, one account,
// a positive decimal amount, and an optional category override.
type PostingLine struct {
	Account  string `json:"account"`
	Type     string `json:"type"` // "Debit" | "Credit"
	Amount   string `json:"amount"`
	Category string `json:"category,omitempty"`
}

// ToEntry parses and validates the request into a domain entry. All
// failures come back as *journal.ValidationError so callers can treat
// them uniformly as submission rejections.
func (r *PostingRequest) ToEntry() (*journal.Entry, error) {
	date, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return nil, &journal.ValidationError{Reason: fmt.Sprintf("invalid date %q: expected %s", r.Date, DateLayout)}
	}

	lines := make([]journal.Line, 0, len(r.Lines))
	for i, raw := range r.Lines {
		amount, err := decimal.NewFromString(raw.Amount)
		if err != nil {
			return nil, &journal.ValidationError{Reason: fmt.Sprintf("line %d: invalid amount %q", i+1, raw.Amount)}
		}

		category, err := account.ParseType(raw.Category)
		if err != nil {
			return nil, &journal.ValidationError{Reason: fmt.Sprintf("line %d: invalid category %q", i+1, raw.Category)}
		}

		lines = append(lines, journal.Line{
			Account:  raw.Account,
			Side:     journal.Side(raw.Type),
			Amount:   amount,
			Category: category,
		})
	}

	entry, err := journal.NewEntry(date, r.Description, lines)
	if err != nil {
		return nil, err
	}

	if r.EntryID != uuid.Nil {
		entry.ID = r.EntryID
	}
	return entry, nil
}

// FromEntry builds the wire message for an already validated entry.
func FromEntry(entry *journal.Entry, sourceType, correlationID string) *PostingRequest {
	lines := make([]PostingLine, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		lines = append(lines, PostingLine{
			Account:  line.Account,
			Type:     string(line.Side),
			Amount:   line.Amount.String(),
			Category: string(line.Category),
		})
	}

	return &PostingRequest{
		EntryID:       entry.ID,
		Date:          entry.Date.Format(DateLayout),
		Description:   entry.Description,
		Lines:         lines,
		SourceType:    sourceType,
		CorrelationID: correlationID,
		Timestamp:     time.Now(),
	}
}

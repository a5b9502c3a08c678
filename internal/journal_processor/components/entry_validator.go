package components

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/journal"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/shared"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/journal_processor/service"
)

type EntryValidatorImpl struct {
	journalRepo journal.Repository
	logger      *slog.Logger
}

func NewEntryValidator(journalRepo journal.Repository, logger *slog.Logger) service.EntryValidator {
	return &EntryValidatorImpl{
		journalRepo: journalRepo,
		logger:      logger,
	}
}

// Validate parses the posting request into a domain entry, re-running
// the full double-entry validation. The gateway already validated the
// submission, but messages can reach the topic from anywhere.
func (v *EntryValidatorImpl) Validate(ctx context.Context, request *shared.PostingRequest) (*journal.Entry, error) {
	logger := v.logger
	if request.CorrelationID != "" {
		logger = v.logger.With("correlation_id", request.CorrelationID)
	}

	entry, err := request.ToEntry()
	if err != nil {
		logger.Warn("Posting request failed validation",
			"entry_id", request.EntryID.String(),
			"error", err,
		)
		return nil, err
	}

	return entry, nil
}

// CheckDuplicate reports whether the entry is already in the journal
// store, which makes redelivered posting messages safe to skip.
func (v *EntryValidatorImpl) CheckDuplicate(ctx context.Context, entryID uuid.UUID) (bool, error) {
	existing, err := v.journalRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, journal.ErrEntryNotFound{}) {
			return false, nil
		}
		v.logger.Error("Failed to check journal for duplicate entry", "entry_id", entryID.String(), "error", err)
		return false, fmt.Errorf("duplicate check failed for entry %s: %w", entryID.String(), err)
	}

	return existing != nil, nil
}

package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/journal"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/shared"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/platform/messaging/producers"
)

// EntryServiceImpl implements the EntryService interface
type EntryServiceImpl struct {
	journalRepo journal.Repository
	producer    producers.MessagePublisher
	logger      *slog.Logger
}

// NewEntryService creates a new journal entry service
func NewEntryService(logger *slog.Logger, journalRepo journal.Repository, producer producers.MessagePublisher) EntryService {
	return &EntryServiceImpl{
		journalRepo: journalRepo,
		producer:    producer,
		logger:      logger,
	}
}

// SubmitEntry validates the posting request synchronously, then hands it
// to the posting topic. Acceptance means "valid and queued", not
// "committed": the journal processor persists it and re-checks the
// invariants before the entry becomes visible to reports.
func (s *EntryServiceImpl) SubmitEntry(ctx context.Context, request *shared.PostingRequest) (uuid.UUID, error) {
	entry, err := request.ToEntry()
	if err != nil {
		s.logger.Info("Journal entry submission rejected",
			"correlation_id", request.CorrelationID,
			"reason", err.Error(),
		)
		return uuid.Nil, err
	}

	// The wire message carries the ID the validated entry settled on so
	// gateway and processor agree on identity.
	request.EntryID = entry.ID

	if err := s.producer.Publish(ctx, entry.ID.String(), request); err != nil {
		s.logger.Error("Failed to publish posting request",
			"entry_id", entry.ID.String(),
			"correlation_id", request.CorrelationID,
			"error", err,
		)
		return uuid.Nil, err
	}

	s.logger.Info("Journal entry accepted for posting",
		"entry_id", entry.ID.String(),
		"date", request.Date,
		"lines", len(request.Lines),
	)

	return entry.ID, nil
}

// GetEntryByID retrieves a committed entry by its ID. Returns nil if not found
func (s *EntryServiceImpl) GetEntryByID(ctx context.Context, entryID uuid.UUID) (*journal.Entry, error) {
	entry, err := s.journalRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, journal.ErrEntryNotFound{}) {
			s.logger.Info("Journal entry not found", "entry_id", entryID.String())
			return nil, nil
		}
		s.logger.Error("Failed to get journal entry", "entry_id", entryID.String(), "error", err)
		return nil, err
	}
	return entry, nil
}

// ListEntries retrieves committed entries inside the date range
func (s *EntryServiceImpl) ListEntries(ctx context.Context, filter journal.DateFilter) ([]*journal.Entry, error) {
	entries, err := s.journalRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list journal entries", "error", err)
		return nil, err
	}
	return entries, nil
}

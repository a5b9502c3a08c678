package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/journal"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/shared"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/platform/persistence"
)

type ProcessingServiceImpl struct {
	pgDB              *persistence.PostgresDB
	validator         EntryValidator
	accountRegistrar  AccountRegistrar
	outboxManager     OutboxManager
	rejectionRecorder RejectionRecorder
	logger            *slog.Logger
}

func NewProcessingService(
	pgDB *persistence.PostgresDB,
	validator EntryValidator,
	accountRegistrar AccountRegistrar,
	outboxManager OutboxManager,
	rejectionRecorder RejectionRecorder,
	logger *slog.Logger,
) ProcessingService {
	return &ProcessingServiceImpl{
		pgDB:              pgDB,
		validator:         validator,
		accountRegistrar:  accountRegistrar,
		outboxManager:     outboxManager,
		rejectionRecorder: rejectionRecorder,
		logger:            logger,
	}
}

// ProcessEntry handles one posting request: re-validate, dedupe,
// then atomically register the entry's accounts and write the
// entry-posted outbox row. The outbox poller commits the entry to the
// journal store and publishes the posted event afterwards, so a crash
// between the Postgres commit and the Mongo write is recovered by the
// poller's retry.
func (s *ProcessingServiceImpl) ProcessEntry(ctx context.Context, request *shared.PostingRequest) error {
	logger := s.logger
	if request.CorrelationID != "" {
		logger = s.logger.With("correlation_id", request.CorrelationID)
	}

	logger.Info("Processing posting request", "entry_id", request.EntryID.String(), "date", request.Date)

	// 1. Re-validate the double-entry invariants
	entry, err := s.validator.Validate(ctx, request)
	if err != nil {
		var validationErr *journal.ValidationError
		if errors.As(err, &validationErr) {
			logger.Warn("Posting request rejected",
				"entry_id", request.EntryID.String(),
				"reason", validationErr.Reason,
			)
			if recordErr := s.rejectionRecorder.RecordRejection(ctx, request, rejectionReason(validationErr), validationErr.Reason); recordErr != nil {
				logger.Error("Failed to record posting rejection", "entry_id", request.EntryID.String(), "error", recordErr)
			}
			return nil // Rejection handled, acknowledge the message
		}
		return err
	}

	// 2. Skip already committed entries (redelivery)
	duplicate, err := s.validator.CheckDuplicate(ctx, entry.ID)
	if err != nil {
		return err // Let Kafka retry
	}
	if duplicate {
		logger.Info("Entry already committed, skipping", "entry_id", entry.ID.String())
		return nil
	}

	// 3. Begin database transaction
	var tx pgx.Tx
	tx, err = s.pgDB.Pool().Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin database transaction", "entry_id", entry.ID.String(), "error", err)
		return fmt.Errorf("failed to begin DB transaction for entry %s: %w", entry.ID.String(), err)
	}
	defer func() {
		if p := recover(); p != nil {
			logger.Error("Panic recovered, rolling back transaction", "panic", p, "entry_id", entry.ID.String())
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			logger.Error("Error occurred, rolling back transaction", "error", err, "entry_id", entry.ID.String())
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Error("Failed to rollback transaction after error", "rollback_error", rbErr, "original_error", err, "entry_id", entry.ID.String())
			}
		}
	}()

	// 4. Register every account the entry posts to
	if err = s.accountRegistrar.RegisterAccounts(ctx, tx, entry); err != nil {
		return err // Let the defer handle rollback
	}

	// 5. Create the entry-posted outbox row
	if err = s.outboxManager.CreateOutboxEntry(ctx, tx, request); err != nil {
		return err
	}

	// 6. Commit transaction
	if err = tx.Commit(ctx); err != nil {
		logger.Error("Failed to commit database transaction", "entry_id", entry.ID.String(), "error", err)
		return fmt.Errorf("failed to commit DB transaction for entry %s: %w", entry.ID.String(), err)
	}

	logger.Info("Posting request staged for commit", "entry_id", entry.ID.String(), "lines", len(entry.Lines))
	return nil
}

// rejectionReason maps a validation failure to its DLQ category
func rejectionReason(err *journal.ValidationError) shared.RejectionReason {
	switch {
	case strings.Contains(err.Reason, "date"):
		return shared.RejectionReasonInvalidDate
	case strings.Contains(err.Reason, "do not equal"):
		return shared.RejectionReasonImbalanced
	default:
		return shared.RejectionReasonInvalidLine
	}
}

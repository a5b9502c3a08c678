package components

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/outbox"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/shared"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/journal_processor/service"
)

type OutboxManagerImpl struct {
	outboxRepo outbox.Repository
	logger     *slog.Logger
}

func NewOutboxManager(outboxRepo outbox.Repository, logger *slog.Logger) service.OutboxManager {
	return &OutboxManagerImpl{
		outboxRepo: outboxRepo,
		logger:     logger,
	}
}

// CreateOutboxEntry writes the entry-posted outbox row carrying the
// full posting request, in the same transaction that registered the
// entry's accounts. The poller later commits the entry to the journal
// store and publishes the posted event from this payload.
func (m *OutboxManagerImpl) CreateOutboxEntry(ctx context.Context, tx pgx.Tx, request *shared.PostingRequest) error {
	logger := m.logger
	if request.CorrelationID != "" {
		logger = m.logger.With("correlation_id", request.CorrelationID)
	}

	outboxRepoTx := m.outboxRepo.WithTx(tx)

	outboxMessage, err := outbox.NewMessage(request)
	if err != nil {
		logger.Error("Failed to create new outbox message (marshal payload)",
			"entry_id", request.EntryID.String(),
			"error", err,
		)
		return fmt.Errorf("failed to create outbox message payload for entry %s: %w", request.EntryID.String(), err)
	}

	if err = outboxRepoTx.Create(ctx, outboxMessage); err != nil {
		logger.Error("Failed to create outbox message",
			"entry_id", request.EntryID.String(),
			"error", err,
		)
		return fmt.Errorf("failed to create outbox message for entry %s: %w", request.EntryID.String(), err)
	}

	logger.Info("Outbox message created successfully",
		"entry_id", request.EntryID.String(),
		"outbox_id", outboxMessage.ID,
	)

	return nil
}

package components

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/shared"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/journal_processor/service"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/platform/messaging/producers"
)

// RejectionRecorderImpl routes rejected posting requests to the dead
// letter topic. The journal is append-only and holds valid entries
// exclusively, so a rejected submission leaves no trace anywhere else.
type RejectionRecorderImpl struct {
	producer producers.DeadLetterPublisher
	logger   *slog.Logger
}

func NewRejectionRecorder(producer producers.DeadLetterPublisher, logger *slog.Logger) service.RejectionRecorder {
	return &RejectionRecorderImpl{
		producer: producer,
		logger:   logger,
	}
}

// RecordRejection publishes the rejected request to the DLQ with its
// rejection category and detail. A missing DLQ producer downgrades to a
// logged warning so rejection handling never blocks the pipeline.
func (r *RejectionRecorderImpl) RecordRejection(ctx context.Context, request *shared.PostingRequest, reason shared.RejectionReason, detail string) error {
	logger := r.logger
	if request.CorrelationID != "" {
		logger = r.logger.With("correlation_id", request.CorrelationID)
	}

	logger.Info("Recording rejected posting request",
		"entry_id", request.EntryID.String(),
		"reason", string(reason),
		"detail", detail,
	)

	if r.producer == nil {
		logger.Warn("DLQ producer not configured, rejection is log-only",
			"entry_id", request.EntryID.String(),
			"reason", string(reason),
		)
		return nil
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal rejected posting request %s: %w", request.EntryID.String(), err)
	}

	dlqReason := fmt.Sprintf("%s: %s", reason, detail)
	if err := r.producer.PublishToDLQ(ctx, request.EntryID.String(), payload, dlqReason); err != nil {
		logger.Error("Failed to publish rejected posting request to DLQ",
			"entry_id", request.EntryID.String(),
			"error", err,
		)
		return err
	}

	return nil
}

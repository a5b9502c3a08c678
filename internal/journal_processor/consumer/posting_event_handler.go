// Package consumer bridges the Kafka posting topic to the processing
// service.
package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/shared"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/journal_processor/service"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/platform/messaging/producers"
)

// PostingEventHandler handles incoming posting request messages from Kafka
type PostingEventHandler struct {
	processingService service.ProcessingService
	producer          producers.DeadLetterPublisher
	logger            *slog.Logger
}

// NewPostingEventHandler creates a new handler
func NewPostingEventHandler(
	logger *slog.Logger,
	processingService service.ProcessingService,
	producer producers.DeadLetterPublisher,
) *PostingEventHandler {
	return &PostingEventHandler{
		processingService: processingService,
		producer:          producer,
		logger:            logger,
	}
}

// HandleMessage processes Kafka messages
func (h *PostingEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var request shared.PostingRequest
	if err := json.Unmarshal(value, &request); err != nil {
		unmarshalErrorMsg := "Failed to unmarshal posting request from Kafka message"
		h.logger.Error(unmarshalErrorMsg,
			"error", err,
			"message_key", string(key),
		)

		// Send to DLQ if available
		if h.producer != nil {
			dlqReason := fmt.Sprintf("%s: %s", unmarshalErrorMsg, err.Error())
			if dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, dlqReason); dlqErr != nil {
				h.logger.Error("Failed to publish message to DLQ after unmarshal error",
					"dlq_error", dlqErr,
					"original_error", err,
					"message_key", string(key),
				)
				// Return original error if DLQ fails
			} else {
				h.logger.Info("Successfully published unprocessable message to DLQ", "message_key", string(key), "reason", dlqReason)
				// Message handled, commit offset
				return nil
			}
		}
		// Allow Kafka retries
		return fmt.Errorf("failed to unmarshal message value: %w", err)
	}

	logger := h.logger
	if request.CorrelationID != "" {
		logger = h.logger.With("correlation_id", request.CorrelationID)
	}

	logger.Info("Received posting request for processing",
		"entry_id", request.EntryID.String(),
		"date", request.Date,
		"lines", len(request.Lines),
	)

	if err := h.processingService.ProcessEntry(ctx, &request); err != nil {
		logger.Error("Failed to process posting request",
			"entry_id", request.EntryID.String(),
			"error", err,
		)
		return fmt.Errorf("processing entry %s failed: %w", request.EntryID.String(), err)
	}

	logger.Info("Successfully processed posting request", "entry_id", request.EntryID.String())
	return nil // Success, commit offset
}

// Package outbox_poller drains the entry-posted outbox: each pending
// row is committed to the journal store and announced on the posted
// events topic.
package outbox_poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/journal"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/outbox"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/shared"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/platform/messaging/producers"
)

// EntryPostedEvent is the change notification published after an entry
// commits. Report consumers refresh their derived views on it instead
// of polling the journal.
type EntryPostedEvent struct {
	EntryID       string    `json:"entry_id"`
	Date          string    `json:"date"`
	Description   string    `json:"description,omitempty"`
	SourceType    string    `json:"source_type,omitempty"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	PostedAt      time.Time `json:"posted_at"`
}

// EntryPublisher commits an outbox message's entry and publishes its
// posted event
type EntryPublisher interface {
	PublishEntry(ctx context.Context, message *outbox.Message) error
}

// EntryPublisherImpl implements EntryPublisher
type EntryPublisherImpl struct {
	outboxRepo    outbox.Repository
	journalRepo   journal.Repository
	eventProducer producers.MessagePublisher
	logger        *slog.Logger
}

// NewEntryPublisher creates a new publisher
func NewEntryPublisher(
	outboxRepo outbox.Repository,
	journalRepo journal.Repository,
	eventProducer producers.MessagePublisher,
	logger *slog.Logger,
) EntryPublisher {
	return &EntryPublisherImpl{
		outboxRepo:    outboxRepo,
		journalRepo:   journalRepo,
		eventProducer: eventProducer,
		logger:        logger,
	}
}

// PublishEntry writes the outbox message's entry to the journal store,
// publishes the entry-posted event, and marks the message processed.
// Redeliveries are safe: a duplicate journal write is skipped and the
// event goes out at-least-once.
func (p *EntryPublisherImpl) PublishEntry(ctx context.Context, message *outbox.Message) error {
	request, err := message.GetPostingRequest()
	if err != nil {
		p.logger.Error("Failed to unmarshal posting request from outbox payload",
			"outbox_id", message.ID, "entry_id", message.EntryID, "error", err,
		)
		if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusFailedToPublish); updateErr != nil {
			p.logger.Error("Also failed to update outbox status to FAILED_TO_PUBLISH after unmarshal error", "outbox_id", message.ID, "update_error", updateErr)
		}
		return fmt.Errorf("unmarshal payload for outbox %d failed: %w", message.ID, err)
	}

	logger := p.logger
	if request.CorrelationID != "" {
		logger = p.logger.With("correlation_id", request.CorrelationID)
	}

	logger.Info("Attempting to commit outbox entry to journal", "outbox_id", message.ID, "entry_id", message.EntryID)

	// The payload was validated by the processor before the outbox row
	// was written; a failure here means the stored payload is corrupted.
	entry, err := request.ToEntry()
	if err != nil {
		logger.Error("Outbox payload failed validation",
			"outbox_id", message.ID, "entry_id", message.EntryID,
			"reason", string(shared.RejectionReasonCommitFailure), "error", err,
		)
		if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusFailedToPublish); updateErr != nil {
			p.logger.Error("Also failed to update outbox status to FAILED_TO_PUBLISH after validation error", "outbox_id", message.ID, "update_error", updateErr)
		}
		return fmt.Errorf("outbox %d payload invalid: %w", message.ID, err)
	}

	if err := p.journalRepo.Create(ctx, entry); err != nil {
		if errors.Is(err, journal.ErrDuplicateEntry{}) {
			logger.Info("Journal entry already committed", "entry_id", entry.ID.String())
		} else {
			logger.Error("Failed to commit journal entry", "entry_id", entry.ID.String(), "error", err)
			return fmt.Errorf("failed to commit journal entry %s: %w", entry.ID.String(), err)
		}
	} else {
		logger.Info("Journal entry committed", "entry_id", entry.ID.String())
	}

	event := EntryPostedEvent{
		EntryID:       entry.ID.String(),
		Date:          request.Date,
		Description:   request.Description,
		SourceType:    request.SourceType,
		CorrelationID: request.CorrelationID,
		PostedAt:      time.Now().UTC(),
	}
	if err := p.eventProducer.Publish(ctx, event.EntryID, event); err != nil {
		logger.Error("Failed to publish entry-posted event", "entry_id", entry.ID.String(), "error", err)
		return fmt.Errorf("failed to publish posted event for entry %s: %w", entry.ID.String(), err)
	}

	// Mark outbox message as processed
	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusProcessed); err != nil {
		logger.Error("Failed to update outbox message status to PROCESSED",
			"outbox_id", message.ID, "entry_id", message.EntryID, "error", err,
		)
		return fmt.Errorf("journal commit for %s OK, but failed to mark outbox %d as PROCESSED: %w", message.EntryID, message.ID, err)
	}

	logger.Info("Outbox message successfully processed and marked as PROCESSED", "outbox_id", message.ID, "entry_id", message.EntryID)
	return nil
}

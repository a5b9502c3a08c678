package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/journal"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/shared"
)

// ProcessingService defines the interface for processing posting requests.
type ProcessingService interface {
	ProcessEntry(ctx context.Context, request *shared.PostingRequest) error
}

// EntryValidator re-checks the double-entry invariants on the consumer
// side. The gateway validates before publishing, but the topic is an
// open write surface so the processor never trusts a message.
type EntryValidator interface {
	// Validate parses the posting request into a domain entry,
	// returning *journal.ValidationError on any invariant violation
	Validate(ctx context.Context, request *shared.PostingRequest) (*journal.Entry, error)

	// CheckDuplicate reports whether the entry was already committed
	CheckDuplicate(ctx context.Context, entryID uuid.UUID) (bool, error)
}

// AccountRegistrar ensures every account referenced by an entry exists
// in the Postgres account directory
type AccountRegistrar interface {
	RegisterAccounts(ctx context.Context, tx pgx.Tx, entry *journal.Entry) error
}

// OutboxManager handles the creation of entry-posted outbox rows
type OutboxManager interface {
	CreateOutboxEntry(ctx context.Context, tx pgx.Tx, request *shared.PostingRequest) error
}

// RejectionRecorder routes rejected posting requests to the dead letter
// topic. Rejected entries are never persisted; the DLQ is their only
// trace.
type RejectionRecorder interface {
	RecordRejection(ctx context.Context, request *shared.PostingRequest, reason shared.RejectionReason, detail string) error
}

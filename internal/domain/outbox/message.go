// Package outbox implements the transactional outbox for entry-posted
// events. Events are written in the same Postgres transaction that
// registers an entry's accounts, then published to Kafka by a poller so
// report consumers can refresh when the journal changes instead of
// polling it.
package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/shared"
)

// Message stores one entry-posted event awaiting publication
type Message struct {
	ID            int64               `json:"id"`
	EntryID       uuid.UUID           `json:"entry_id"`
	Payload       json.RawMessage     `json:"payload"`
	Status        shared.OutboxStatus `json:"status"`
	Attempts      int                 `json:"attempts"`
	CreatedAt     time.Time           `json:"created_at"`
	LastAttemptAt *time.Time          `json:"last_attempt_at,omitempty"`
}

// NewMessage wraps a posting request as a pending outbox event
func NewMessage(request *shared.PostingRequest) (*Message, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	return &Message{
		EntryID:   request.EntryID,
		Payload:   payload,
		Status:    shared.OutboxStatusPending,
		Attempts:  0,
		CreatedAt: time.Now(),
	}, nil
}

func (m *Message) IncrementAttempts() {
	m.Attempts++
	now := time.Now()
	m.LastAttemptAt = &now
}

func (m *Message) MarkAsProcessed() {
	m.Status = shared.OutboxStatusProcessed
	now := time.Now()
	m.LastAttemptAt = &now
}

func (m *Message) MarkAsFailed() {
	m.Status = shared.OutboxStatusFailedToPublish
	now := time.Now()
	m.LastAttemptAt = &now
}

// GetPostingRequest extracts the posting request from the payload
func (m *Message) GetPostingRequest() (*shared.PostingRequest, error) {
	var request shared.PostingRequest
	if err := json.Unmarshal(m.Payload, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

package components

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"log/slog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/shared"
)

// MockDLQPublisher for testing
type MockDLQPublisher struct {
	mock.Mock
}

func (m *MockDLQPublisher) PublishToDLQ(ctx context.Context, key string, value []byte, reason string) error {
	args := m.Called(ctx, key, value, reason)
	return args.Error(0)
}

func (m *MockDLQPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestRejectionRecorder_RecordRejection(t *testing.T) {
	logger := slog.Default()
	ctx := context.Background()

	entryID := uuid.New()
	request := &shared.PostingRequest{
		EntryID: entryID,
		Date:    "2024-03-15",
		Lines: []shared.PostingLine{
			{Account: "Cash", Type: "Debit", Amount: "100"},
			{Account: "Service Revenue", Type: "Credit", Amount: "90"},
		},
		CorrelationID: "corr1",
	}
	detail := "debits (100.00) do not equal credits (90.00)"

	t.Run("publishes rejection to DLQ", func(t *testing.T) {
		mockProducer := &MockDLQPublisher{}
		recorder := NewRejectionRecorder(mockProducer, logger)

		expectedPayload, err := json.Marshal(request)
		assert.NoError(t, err)

		mockProducer.On("PublishToDLQ", ctx, entryID.String(), expectedPayload,
			"DEBITS_NOT_EQUAL_CREDITS: "+detail).Return(nil).Once()

		err = recorder.RecordRejection(ctx, request, shared.RejectionReasonImbalanced, detail)
		assert.NoError(t, err)
		mockProducer.AssertExpectations(t)
	})

	t.Run("propagates DLQ publish error", func(t *testing.T) {
		mockProducer := &MockDLQPublisher{}
		recorder := NewRejectionRecorder(mockProducer, logger)

		dlqError := errors.New("kafka write error")
		mockProducer.On("PublishToDLQ", ctx, entryID.String(), mock.Anything, mock.Anything).Return(dlqError).Once()

		err := recorder.RecordRejection(ctx, request, shared.RejectionReasonImbalanced, detail)
		assert.Error(t, err)
		assert.ErrorIs(t, err, dlqError)
		mockProducer.AssertExpectations(t)
	})

	t.Run("missing producer downgrades to log-only", func(t *testing.T) {
		recorder := NewRejectionRecorder(nil, logger)

		err := recorder.RecordRejection(ctx, request, shared.RejectionReasonInvalidDate, `invalid date "15/03/2024"`)
		assert.NoError(t, err)
	})
}

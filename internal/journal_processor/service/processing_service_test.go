package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/journal"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/shared"
)

// Mock implementations of the dependencies

type MockEntryValidator struct {
	mock.Mock
}

func (m *MockEntryValidator) Validate(ctx context.Context, request *shared.PostingRequest) (*journal.Entry, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Entry), args.Error(1)
}

func (m *MockEntryValidator) CheckDuplicate(ctx context.Context, entryID uuid.UUID) (bool, error) {
	args := m.Called(ctx, entryID)
	return args.Bool(0), args.Error(1)
}

type MockAccountRegistrar struct {
	mock.Mock
}

func (m *MockAccountRegistrar) RegisterAccounts(ctx context.Context, tx pgx.Tx, entry *journal.Entry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

type MockOutboxManager struct {
	mock.Mock
}

func (m *MockOutboxManager) CreateOutboxEntry(ctx context.Context, tx pgx.Tx, request *shared.PostingRequest) error {
	args := m.Called(ctx, tx, request)
	return args.Error(0)
}

type MockRejectionRecorder struct {
	mock.Mock
}

func (m *MockRejectionRecorder) RecordRejection(ctx context.Context, request *shared.PostingRequest, reason shared.RejectionReason, detail string) error {
	args := m.Called(ctx, request, reason, detail)
	return args.Error(0)
}

// MockTx implements the pgx.Tx interface for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	return nil
}

func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return &pgconn.StatementDescription{}, nil
}

func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (m *MockTx) LargeObjects() pgx.LargeObjects {
	return pgx.LargeObjects{}
}

func (m *MockTx) Conn() *pgx.Conn {
	return nil
}

// TestProcessingService is a simplified implementation of ProcessingService for testing
type TestProcessingService struct {
	validator         EntryValidator
	accountRegistrar  AccountRegistrar
	outboxManager     OutboxManager
	rejectionRecorder RejectionRecorder
	logger            *slog.Logger
	beginTxFunc       func(ctx context.Context) (pgx.Tx, error)
}

// NewTestProcessingService creates a new TestProcessingService
func NewTestProcessingService(
	validator EntryValidator,
	accountRegistrar AccountRegistrar,
	outboxManager OutboxManager,
	rejectionRecorder RejectionRecorder,
	logger *slog.Logger,
	beginTxFunc func(ctx context.Context) (pgx.Tx, error),
) *TestProcessingService {
	return &TestProcessingService{
		validator:         validator,
		accountRegistrar:  accountRegistrar,
		outboxManager:     outboxManager,
		rejectionRecorder: rejectionRecorder,
		logger:            logger,
		beginTxFunc:       beginTxFunc,
	}
}

// ProcessEntry implements the ProcessingService interface
func (s *TestProcessingService) ProcessEntry(ctx context.Context, request *shared.PostingRequest) error {
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
		return nil
	}

	// 3. Begin database transaction
	var tx pgx.Tx
	tx, err = s.beginTxFunc(ctx)
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

	return nil
}

func TestProcessingService_ProcessEntry(t *testing.T) {
	// Create mocks
	mockValidator := &MockEntryValidator{}
	mockAccountRegistrar := &MockAccountRegistrar{}
	mockOutboxManager := &MockOutboxManager{}
	mockRejectionRecorder := &MockRejectionRecorder{}
	mockTx := &MockTx{}
	logger := slog.Default()

	// Create a test request
	entryID := uuid.New()
	request := &shared.PostingRequest{
		EntryID: entryID,
		Date:    "2024-03-15",
		Lines: []shared.PostingLine{
			{Account: "Cash", Type: "Debit", Amount: "100"},
			{Account: "Service Revenue", Type: "Credit", Amount: "100"},
		},
		SourceType:    "journal",
		CorrelationID: "corr1",
	}

	amount := decimal.RequireFromString("100")
	testEntry := &journal.Entry{
		ID: entryID,
		Lines: []journal.Line{
			{Account: "Cash", Side: journal.SideDebit, Amount: amount},
			{Account: "Service Revenue", Side: journal.SideCredit, Amount: amount},
		},
	}

	// Test cases
	tests := []struct {
		name          string
		setupMocks    func()
		beginTxFunc   func(ctx context.Context) (pgx.Tx, error)
		expectedError error
	}{
		{
			name: "successful entry processing",
			setupMocks: func() {
				// Validation passes
				mockValidator.On("Validate", mock.Anything, request).Return(testEntry, nil).Once()

				// Not already committed
				mockValidator.On("CheckDuplicate", mock.Anything, entryID).Return(false, nil).Once()

				// Register accounts inside the transaction
				mockAccountRegistrar.On("RegisterAccounts", mock.Anything, mockTx, testEntry).Return(nil).Once()

				// Create outbox entry
				mockOutboxManager.On("CreateOutboxEntry", mock.Anything, mockTx, request).Return(nil).Once()

				// Commit transaction
				mockTx.On("Commit", mock.Anything).Return(nil).Once()
			},
			beginTxFunc: func(ctx context.Context) (pgx.Tx, error) {
				return mockTx, nil
			},
			expectedError: nil,
		},
		{
			name: "validation failure routes to rejection recorder",
			setupMocks: func() {
				// Validation fails with a domain rejection
				mockValidator.On("Validate", mock.Anything, request).Return(nil,
					&journal.ValidationError{Reason: "debits (100.00) do not equal credits (90.00)"}).Once()

				// Record rejection
				mockRejectionRecorder.On("RecordRejection", mock.Anything, request,
					shared.RejectionReasonImbalanced, "debits (100.00) do not equal credits (90.00)").Return(nil).Once()
			},
			beginTxFunc: func(ctx context.Context) (pgx.Tx, error) {
				return mockTx, nil
			},
			expectedError: nil, // We return nil to Kafka consumer on validation failure
		},
		{
			name: "rejection recorder failure still acknowledges",
			setupMocks: func() {
				mockValidator.On("Validate", mock.Anything, request).Return(nil,
					&journal.ValidationError{Reason: `invalid date "15/03/2024": expected 2006-01-02`}).Once()

				mockRejectionRecorder.On("RecordRejection", mock.Anything, request,
					shared.RejectionReasonInvalidDate, mock.Anything).Return(errors.New("dlq error")).Once()
			},
			beginTxFunc: func(ctx context.Context) (pgx.Tx, error) {
				return mockTx, nil
			},
			expectedError: nil,
		},
		{
			name: "non-validation error is retried",
			setupMocks: func() {
				mockValidator.On("Validate", mock.Anything, request).Return(nil, errors.New("store error")).Once()
			},
			beginTxFunc: func(ctx context.Context) (pgx.Tx, error) {
				return mockTx, nil
			},
			expectedError: errors.New("store error"),
		},
		{
			name: "duplicate check returns skip",
			setupMocks: func() {
				// Validation passes
				mockValidator.On("Validate", mock.Anything, request).Return(testEntry, nil).Once()

				// Already committed
				mockValidator.On("CheckDuplicate", mock.Anything, entryID).Return(true, nil).Once()
			},
			beginTxFunc: func(ctx context.Context) (pgx.Tx, error) {
				return mockTx, nil
			},
			expectedError: nil, // We return nil to Kafka consumer if already committed
		},
		{
			name: "duplicate check error",
			setupMocks: func() {
				// Validation passes
				mockValidator.On("Validate", mock.Anything, request).Return(testEntry, nil).Once()

				// Error checking the journal store
				mockValidator.On("CheckDuplicate", mock.Anything, entryID).Return(false, errors.New("db error")).Once()
			},
			beginTxFunc: func(ctx context.Context) (pgx.Tx, error) {
				return mockTx, nil
			},
			expectedError: errors.New("db error"),
		},
		{
			name: "begin transaction error",
			setupMocks: func() {
				// Validation passes
				mockValidator.On("Validate", mock.Anything, request).Return(testEntry, nil).Once()

				// Not already committed
				mockValidator.On("CheckDuplicate", mock.Anything, entryID).Return(false, nil).Once()
			},
			beginTxFunc: func(ctx context.Context) (pgx.Tx, error) {
				return nil, errors.New("db error")
			},
			expectedError: errors.New("failed to begin DB transaction"),
		},
		{
			name: "account registration error",
			setupMocks: func() {
				// Validation passes
				mockValidator.On("Validate", mock.Anything, request).Return(testEntry, nil).Once()

				// Not already committed
				mockValidator.On("CheckDuplicate", mock.Anything, entryID).Return(false, nil).Once()

				// Error registering accounts
				mockAccountRegistrar.On("RegisterAccounts", mock.Anything, mockTx, testEntry).Return(errors.New("db error")).Once()

				// Rollback transaction
				mockTx.On("Rollback", mock.Anything).Return(nil).Once()
			},
			beginTxFunc: func(ctx context.Context) (pgx.Tx, error) {
				return mockTx, nil
			},
			expectedError: errors.New("db error"),
		},
		{
			name: "create outbox entry error",
			setupMocks: func() {
				// Validation passes
				mockValidator.On("Validate", mock.Anything, request).Return(testEntry, nil).Once()

				// Not already committed
				mockValidator.On("CheckDuplicate", mock.Anything, entryID).Return(false, nil).Once()

				// Register accounts
				mockAccountRegistrar.On("RegisterAccounts", mock.Anything, mockTx, testEntry).Return(nil).Once()

				// Error creating outbox entry
				mockOutboxManager.On("CreateOutboxEntry", mock.Anything, mockTx, request).Return(errors.New("db error")).Once()

				// Rollback transaction
				mockTx.On("Rollback", mock.Anything).Return(nil).Once()
			},
			beginTxFunc: func(ctx context.Context) (pgx.Tx, error) {
				return mockTx, nil
			},
			expectedError: errors.New("db error"),
		},
		{
			name: "commit transaction error",
			setupMocks: func() {
				// Validation passes
				mockValidator.On("Validate", mock.Anything, request).Return(testEntry, nil).Once()

				// Not already committed
				mockValidator.On("CheckDuplicate", mock.Anything, entryID).Return(false, nil).Once()

				// Register accounts
				mockAccountRegistrar.On("RegisterAccounts", mock.Anything, mockTx, testEntry).Return(nil).Once()

				// Create outbox entry
				mockOutboxManager.On("CreateOutboxEntry", mock.Anything, mockTx, request).Return(nil).Once()

				// Error committing transaction
				mockTx.On("Commit", mock.Anything).Return(errors.New("db error")).Once()

				// Rollback transaction
				mockTx.On("Rollback", mock.Anything).Return(nil).Once()
			},
			beginTxFunc: func(ctx context.Context) (pgx.Tx, error) {
				return mockTx, nil
			},
			expectedError: errors.New("failed to commit DB transaction"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset mocks for each test
			mockValidator = &MockEntryValidator{}
			mockAccountRegistrar = &MockAccountRegistrar{}
			mockOutboxManager = &MockOutboxManager{}
			mockRejectionRecorder = &MockRejectionRecorder{}
			mockTx = &MockTx{}

			// Create the test service
			service := NewTestProcessingService(
				mockValidator,
				mockAccountRegistrar,
				mockOutboxManager,
				mockRejectionRecorder,
				logger,
				tt.beginTxFunc,
			)

			tt.setupMocks()
			ctx := context.Background()

			// Call the service
			err := service.ProcessEntry(ctx, request)

			// Check the result
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}

			// Verify that all expected mock calls were made
			mockValidator.AssertExpectations(t)
			mockAccountRegistrar.AssertExpectations(t)
			mockOutboxManager.AssertExpectations(t)
			mockRejectionRecorder.AssertExpectations(t)
			mockTx.AssertExpectations(t)
		})
	}
}

func TestRejectionReason(t *testing.T) {
	tests := []struct {
		name   string
		reason string
		want   shared.RejectionReason
	}{
		{
			name:   "imbalanced totals",
			reason: "debits (100.00) do not equal credits (90.00)",
			want:   shared.RejectionReasonImbalanced,
		},
		{
			name:   "bad date",
			reason: `invalid date "15/03/2024": expected 2006-01-02`,
			want:   shared.RejectionReasonInvalidDate,
		},
		{
			name:   "missing date",
			reason: "date is required",
			want:   shared.RejectionReasonInvalidDate,
		},
		{
			name:   "bad line",
			reason: "line 2: amount must be positive",
			want:   shared.RejectionReasonInvalidLine,
		},
		{
			name:   "too few lines",
			reason: "entry requires at least 2 lines, got 1",
			want:   shared.RejectionReasonInvalidLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rejectionReason(&journal.ValidationError{Reason: tt.reason})
			assert.Equal(t, tt.want, got)
		})
	}
}

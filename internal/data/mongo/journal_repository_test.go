package mongo

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/account"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/journal"
)

type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) Create(ctx context.Context, entry *journal.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) GetByID(ctx context.Context, entryID uuid.UUID) (*journal.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Entry), args.Error(1)
}

func (m *MockJournalRepository) List(ctx context.Context, filter journal.DateFilter) ([]*journal.Entry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*journal.Entry), args.Error(1)
}

func (m *MockJournalRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestNewJournalRepository(t *testing.T) {
	db := &mongo.Database{}
	logger := slog.Default()

	repo := NewJournalRepository(logger, db)

	assert.NotNil(t, repo)
	assert.IsType(t, &JournalRepository{}, repo)
}

func TestMockJournalRepository_ContractBehaviors(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate create is rejected", func(t *testing.T) {
		mockRepo := new(MockJournalRepository)
		entry := &journal.Entry{ID: uuid.New()}
		mockRepo.On("Create", ctx, entry).Return(journal.ErrDuplicateEntry{EntryID: entry.ID})

		err := mockRepo.Create(ctx, entry)
		assert.ErrorIs(t, err, journal.ErrDuplicateEntry{})
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing entry", func(t *testing.T) {
		mockRepo := new(MockJournalRepository)
		entryID := uuid.New()
		mockRepo.On("GetByID", ctx, entryID).Return(nil, journal.ErrEntryNotFound{EntryID: entryID})

		entry, err := mockRepo.GetByID(ctx, entryID)
		assert.Nil(t, entry)
		assert.ErrorIs(t, err, journal.ErrEntryNotFound{})
		mockRepo.AssertExpectations(t)
	})
}

func TestToDocument(t *testing.T) {
	entry := &journal.Entry{
		ID:          uuid.New(),
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Consulting fee received",
		Lines: []journal.Line{
			{Account: "Cash", Side: journal.SideDebit, Amount: decimal.RequireFromString("1500.25"), Category: account.TypeAsset},
			{Account: "Service Revenue", Side: journal.SideCredit, Amount: decimal.RequireFromString("1500.25")},
		},
		CreatedAt: time.Now(),
	}

	doc := toDocument(entry)
	assert.Equal(t, entry.ID, doc.EntryID)
	assert.Equal(t, "2024-03-15", doc.Date)
	assert.Equal(t, "Consulting fee received", doc.Description)
	require.Len(t, doc.Entries, 2)
	assert.Equal(t, "Cash", doc.Entries[0].Account)
	assert.Equal(t, "Debit", doc.Entries[0].Type)
	assert.Equal(t, 1500.25, doc.Entries[0].Amount)
	assert.Equal(t, "asset", doc.Entries[0].Category)
	assert.Empty(t, doc.Entries[1].Category)
	assert.Equal(t, entry.CreatedAt, doc.CreatedAt)
}

func TestFromDocument(t *testing.T) {
	logger := slog.Default()
	repo := &JournalRepository{logger: logger}

	t.Run("well formed document", func(t *testing.T) {
		doc := &entryDocument{
			EntryID:     uuid.New(),
			Date:        "2024-03-15",
			Description: "Consulting fee received",
			Entries: []lineDocument{
				{Account: "Cash", Type: "Debit", Amount: 1500.25, Category: "asset"},
				{Account: "Service Revenue", Type: "Credit", Amount: 1500.25, Category: "revenue"},
			},
			CreatedAt: time.Now(),
		}

		entry := repo.fromDocument(doc)
		assert.Equal(t, doc.EntryID, entry.ID)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), entry.Date)
		require.Len(t, entry.Lines, 2)
		assert.Equal(t, journal.SideDebit, entry.Lines[0].Side)
		assert.True(t, entry.Lines[0].Amount.Equal(decimal.RequireFromString("1500.25")))
		assert.Equal(t, account.TypeAsset, entry.Lines[0].Category)
		assert.Equal(t, account.TypeRevenue, entry.Lines[1].Category)
	})

	t.Run("malformed date yields zero date", func(t *testing.T) {
		doc := &entryDocument{
			EntryID: uuid.New(),
			Date:    "15-03-2024",
			Entries: []lineDocument{
				{Account: "Cash", Type: "Debit", Amount: 100},
			},
		}

		entry := repo.fromDocument(doc)
		assert.True(t, entry.Date.IsZero())
	})

	t.Run("unrecognized category treated as unclassified", func(t *testing.T) {
		doc := &entryDocument{
			EntryID: uuid.New(),
			Date:    "2024-03-15",
			Entries: []lineDocument{
				{Account: "Cash", Type: "Debit", Amount: 100, Category: "ASSET"},
			},
		}

		entry := repo.fromDocument(doc)
		require.Len(t, entry.Lines, 1)
		assert.Equal(t, account.TypeUnknown, entry.Lines[0].Category)
	})

	t.Run("round trip preserves the entry", func(t *testing.T) {
		original := &journal.Entry{
			ID:   uuid.New(),
			Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Lines: []journal.Line{
				{Account: "Rent Expense", Side: journal.SideDebit, Amount: decimal.RequireFromString("800.50"), Category: account.TypeExpense},
				{Account: "Cash", Side: journal.SideCredit, Amount: decimal.RequireFromString("800.50")},
			},
			CreatedAt: time.Now(),
		}

		recovered := repo.fromDocument(toDocument(original))
		assert.Equal(t, original.ID, recovered.ID)
		assert.Equal(t, original.Date, recovered.Date)
		require.Len(t, recovered.Lines, 2)
		assert.True(t, recovered.Lines[0].Amount.Equal(original.Lines[0].Amount))
		assert.Equal(t, original.Lines[0].Category, recovered.Lines[0].Category)
	})
}

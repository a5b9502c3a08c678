package shared

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/account"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/journal"
)

func validRequest() *PostingRequest {
	return &PostingRequest{
		EntryID:     uuid.New(),
		Date:        "2024-03-15",
		Description: "Consulting fee received",
		Lines: []PostingLine{
			{Account: "Cash", Type: "Debit", Amount: "1500.00", Category: "asset"},
			{Account: "Service Revenue", Type: "Credit", Amount: "1500.00", Category: "revenue"},
		},
		SourceType:    SourceTypeJournal,
		CorrelationID: "corr-123",
		Timestamp:     time.Now(),
	}
}

func TestPostingRequest_ToEntry(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		request := validRequest()
		entry, err := request.ToEntry()
		require.NoError(t, err)
		require.NotNil(t, entry)

		assert.Equal(t, request.EntryID, entry.ID)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), entry.Date)
		assert.Equal(t, "Consulting fee received", entry.Description)
		require.Len(t, entry.Lines, 2)
		assert.Equal(t, journal.SideDebit, entry.Lines[0].Side)
		assert.True(t, entry.Lines[0].Amount.Equal(decimal.RequireFromString("1500.00")))
		assert.Equal(t, account.TypeAsset, entry.Lines[0].Category)
		assert.Equal(t, account.TypeRevenue, entry.Lines[1].Category)
	})

	t.Run("nil entry id gets a generated one", func(t *testing.T) {
		request := validRequest()
		request.EntryID = uuid.Nil
		entry, err := request.ToEntry()
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, entry.ID)
	})

	t.Run("invalid date", func(t *testing.T) {
		request := validRequest()
		request.Date = "15/03/2024"
		entry, err := request.ToEntry()
		assert.Nil(t, entry)
		var validationErr *journal.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Reason, "invalid date")
	})

	t.Run("invalid amount", func(t *testing.T) {
		request := validRequest()
		request.Lines[0].Amount = "abc"
		_, err := request.ToEntry()
		var validationErr *journal.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Reason, `line 1: invalid amount "abc"`)
	})

	t.Run("invalid category", func(t *testing.T) {
		request := validRequest()
		request.Lines[1].Category = "REVENUE"
		_, err := request.ToEntry()
		var validationErr *journal.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Reason, "line 2: invalid category")
	})

	t.Run("imbalanced lines", func(t *testing.T) {
		request := validRequest()
		request.Lines[1].Amount = "1400.00"
		_, err := request.ToEntry()
		var validationErr *journal.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Reason, "do not equal")
	})
}

func TestFromEntry(t *testing.T) {
	entry, err := journal.NewEntry(
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		"Consulting fee received",
		[]journal.Line{
			{Account: "Cash", Side: journal.SideDebit, Amount: decimal.RequireFromString("1500"), Category: account.TypeAsset},
			{Account: "Service Revenue", Side: journal.SideCredit, Amount: decimal.RequireFromString("1500")},
		},
	)
	require.NoError(t, err)

	request := FromEntry(entry, SourceTypeReceipt, "corr-456")
	assert.Equal(t, entry.ID, request.EntryID)
	assert.Equal(t, "2024-03-15", request.Date)
	assert.Equal(t, SourceTypeReceipt, request.SourceType)
	assert.Equal(t, "corr-456", request.CorrelationID)
	require.Len(t, request.Lines, 2)
	assert.Equal(t, "Debit", request.Lines[0].Type)
	assert.Equal(t, "1500", request.Lines[0].Amount)
	assert.Equal(t, "asset", request.Lines[0].Category)
	assert.Empty(t, request.Lines[1].Category)
	assert.WithinDuration(t, time.Now(), request.Timestamp, time.Second)
}

func TestFromEntry_RoundTrip(t *testing.T) {
	original := validRequest()
	entry, err := original.ToEntry()
	require.NoError(t, err)

	wire := FromEntry(entry, original.SourceType, original.CorrelationID)
	recovered, err := wire.ToEntry()
	require.NoError(t, err)

	assert.Equal(t, entry.ID, recovered.ID)
	assert.Equal(t, entry.Date, recovered.Date)
	require.Len(t, recovered.Lines, len(entry.Lines))
	for i := range entry.Lines {
		assert.Equal(t, entry.Lines[i].Account, recovered.Lines[i].Account)
		assert.True(t, entry.Lines[i].Amount.Equal(recovered.Lines[i].Amount))
	}
}

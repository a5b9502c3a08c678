// Package mongo provides the MongoDB implementation of the journal
// repository. Documents keep the shape the original bookkeeping data
// was stored with: an ISO date string and an entries array of
// account/type/amount lines, so existing collections stay readable.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/account"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/journal"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/shared"
)

const (
	// JournalCollectionName is the name of the journal entries collection
	JournalCollectionName = "journal_entries"
)

// entryDocument is the persisted shape of a journal entry
type entryDocument struct {
	EntryID     uuid.UUID      `bson:"entry_id"`
	Date        string         `bson:"date"` // shared.DateLayout; no time component
	Description string         `bson:"description,omitempty"`
	SourceType  string         `bson:"source_type,omitempty"`
	Entries     []lineDocument `bson:"entries"`
	CreatedAt   time.Time      `bson:"created_at"`
}

// lineDocument is one debit or credit line within an entry document
type lineDocument struct {
	Account  string  `bson:"account"`
	Type     string  `bson:"type"` // "Debit" | "Credit"
	Amount   float64 `bson:"amount"`
	Category string  `bson:"category,omitempty"`
}

// JournalRepository implements the journal.Repository interface for MongoDB
type JournalRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewJournalRepository creates a new MongoDB journal repository
func NewJournalRepository(logger *slog.Logger, db *mongo.Database) journal.Repository {
	return &JournalRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new journal entry after checking for duplicates.
// Returns ErrDuplicateEntry if an entry with the same ID exists, which
// makes redelivered posting messages safe to replay.
func (r *JournalRepository) Create(ctx context.Context, entry *journal.Entry) error {
	collection := r.db.Collection(JournalCollectionName)

	existing, err := r.GetByID(ctx, entry.ID)
	if err != nil && !errors.Is(err, journal.ErrEntryNotFound{}) {
		r.logger.Error("Failed to check for existing journal entry",
			"entry_id", entry.ID.String(),
			"error", err)
		return fmt.Errorf("failed to check for existing journal entry: %w", err)
	}

	if existing != nil {
		return journal.ErrDuplicateEntry{EntryID: entry.ID}
	}

	_, err = collection.InsertOne(ctx, toDocument(entry))
	if err != nil {
		r.logger.Error("Failed to create journal entry",
			"entry_id", entry.ID.String(),
			"error", err)
		return fmt.Errorf("failed to create journal entry: %w", err)
	}

	return nil
}

// GetByID retrieves a journal entry by its ID.
// Returns ErrEntryNotFound if no entry exists.
func (r *JournalRepository) GetByID(ctx context.Context, entryID uuid.UUID) (*journal.Entry, error) {
	collection := r.db.Collection(JournalCollectionName)

	filter := bson.M{"entry_id": entryID}
	var doc entryDocument
	err := collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, journal.ErrEntryNotFound{EntryID: entryID}
		}
		r.logger.Error("Failed to get journal entry",
			"entry_id", entryID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}

	return r.fromDocument(&doc), nil
}

// List retrieves entries in the date range, sorted by date ascending
// with insertion order breaking ties. This is the ordering every
// report replays, so it must be stable across calls.
func (r *JournalRepository) List(ctx context.Context, filter journal.DateFilter) ([]*journal.Entry, error) {
	collection := r.db.Collection(JournalCollectionName)

	query := bson.M{}
	dateRange := bson.M{}
	if filter.From != nil {
		dateRange["$gte"] = filter.From.Format(shared.DateLayout)
	}
	if filter.To != nil {
		dateRange["$lte"] = filter.To.Format(shared.DateLayout)
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "created_at", Value: 1}})

	cursor, err := collection.Find(ctx, query, opts)
	if err != nil {
		r.logger.Error("Failed to list journal entries", "error", err)
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []entryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode journal entries", "error", err)
		return nil, fmt.Errorf("failed to decode journal entries: %w", err)
	}

	entries := make([]*journal.Entry, 0, len(docs))
	for i := range docs {
		entries = append(entries, r.fromDocument(&docs[i]))
	}
	return entries, nil
}

// Count returns the total number of committed journal entries
func (r *JournalRepository) Count(ctx context.Context) (int64, error) {
	collection := r.db.Collection(JournalCollectionName)

	count, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		r.logger.Error("Failed to count journal entries", "error", err)
		return 0, fmt.Errorf("failed to count journal entries: %w", err)
	}

	return count, nil
}

func toDocument(entry *journal.Entry) *entryDocument {
	lines := make([]lineDocument, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		lines = append(lines, lineDocument{
			Account:  line.Account,
			Type:     string(line.Side),
			Amount:   line.Amount.InexactFloat64(),
			Category: string(line.Category),
		})
	}

	return &entryDocument{
		EntryID:     entry.ID,
		Date:        entry.Date.Format(shared.DateLayout),
		Description: entry.Description,
		Entries:     lines,
		CreatedAt:   entry.CreatedAt,
	}
}

// fromDocument maps a stored document back to the domain entry. A
// document with an unparseable date yields a zero-date entry; the
// report layer skips those with a diagnostic instead of failing the
// whole query.
func (r *JournalRepository) fromDocument(doc *entryDocument) *journal.Entry {
	date, err := time.Parse(shared.DateLayout, doc.Date)
	if err != nil {
		r.logger.Warn("Stored journal entry has malformed date",
			"entry_id", doc.EntryID.String(),
			"date", doc.Date)
		date = time.Time{}
	}

	lines := make([]journal.Line, 0, len(doc.Entries))
	for _, line := range doc.Entries {
		category, catErr := account.ParseType(line.Category)
		if catErr != nil {
			r.logger.Warn("Stored journal line has unrecognized category, treating as unclassified",
				"entry_id", doc.EntryID.String(),
				"category", line.Category)
			category = account.TypeUnknown
		}
		lines = append(lines, journal.Line{
			Account:  line.Account,
			Side:     journal.Side(line.Type),
			Amount:   decimal.NewFromFloat(line.Amount).Round(2),
			Category: category,
		})
	}

	return &journal.Entry{
		ID:          doc.EntryID,
		Date:        date,
		Description: doc.Description,
		Lines:       lines,
		CreatedAt:   doc.CreatedAt,
	}
}

package mongodb

import (
	"context"
	"time"

	"github.com/Sk192011s/2d-backup/internal/models"
	"github.com/Sk192011s/2d-backup/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure HistoryRepository implements the interface
var _ repositories.HistoryRepository = (*HistoryRepository)(nil)

// HistoryRepository handles MongoDB operations for per-day result records
type HistoryRepository struct {
	collection *mongo.Collection
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	return &HistoryRepository{
		collection: db.Collection("history"),
	}
}

// Merge upserts the record for its date. Only non-placeholder fields are
// written, so a real result already on the record survives a later fetch
// that saw the placeholder; a real value fetched in the same run overwrites.
func (r *HistoryRepository) Merge(ctx context.Context, record *models.HistoryRecord) error {
	set := bson.M{"updatedAt": time.Now()}
	setOnInsert := bson.M{"date": record.Date}
	if record.Morning != models.HistoryPlaceholder && record.Morning != "" {
		set["morning"] = record.Morning
	} else {
		setOnInsert["morning"] = models.HistoryPlaceholder
	}
	if record.Evening != models.HistoryPlaceholder && record.Evening != "" {
		set["evening"] = record.Evening
	} else {
		setOnInsert["evening"] = models.HistoryPlaceholder
	}

	filter := bson.M{"date": record.Date}
	update := bson.M{"$set": set, "$setOnInsert": setOnInsert}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindRecent returns the latest records, newest date first
func (r *HistoryRepository) FindRecent(ctx context.Context, limit int64) ([]*models.HistoryRecord, error) {
	opts := options.Find().SetSort(bson.M{"date": -1})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*models.HistoryRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []*models.HistoryRecord{}
	}
	return records, nil
}

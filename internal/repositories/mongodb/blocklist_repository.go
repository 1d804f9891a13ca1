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

// Compile-time check to ensure BlocklistRepository implements the interface
var _ repositories.BlocklistRepository = (*BlocklistRepository)(nil)

// BlocklistRepository handles MongoDB operations for blocked numbers
type BlocklistRepository struct {
	collection *mongo.Collection
}

// NewBlocklistRepository creates a new BlocklistRepository
func NewBlocklistRepository(db *mongo.Database) *BlocklistRepository {
	return &BlocklistRepository{
		collection: db.Collection("blocks"),
	}
}

// IsBlocked checks if a number is present in the blocklist
func (r *BlocklistRepository) IsBlocked(ctx context.Context, number string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"number": number})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddAll upserts each number so blocking is idempotent
func (r *BlocklistRepository) AddAll(ctx context.Context, numbers []string) error {
	opts := options.Update().SetUpsert(true)
	for _, n := range numbers {
		update := bson.M{"$setOnInsert": bson.M{"number": n, "createdAt": time.Now()}}
		if _, err := r.collection.UpdateOne(ctx, bson.M{"number": n}, update, opts); err != nil {
			return err
		}
	}
	return nil
}

// Remove removes a number from the blocklist
func (r *BlocklistRepository) Remove(ctx context.Context, number string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"number": number})
	return err
}

// Clear removes every entry
func (r *BlocklistRepository) Clear(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}

// FindAll returns the blocked numbers sorted ascending
func (r *BlocklistRepository) FindAll(ctx context.Context) ([]string, error) {
	opts := options.Find().SetSort(bson.M{"number": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.BlockEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	numbers := make([]string, 0, len(entries))
	for _, e := range entries {
		numbers = append(numbers, e.Number)
	}
	return numbers, nil
}

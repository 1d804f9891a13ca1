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

// Compile-time check to ensure WagerRepository implements the interface
var _ repositories.WagerRepository = (*WagerRepository)(nil)

// WagerRepository handles MongoDB read and maintenance operations for Wager
type WagerRepository struct {
	collection *mongo.Collection
}

// NewWagerRepository creates a new WagerRepository
func NewWagerRepository(db *mongo.Database) *WagerRepository {
	return &WagerRepository{
		collection: db.Collection("wagers"),
	}
}

// FindByUsername finds a user's wagers, newest first
func (r *WagerRepository) FindByUsername(ctx context.Context, username string, limit int64) ([]*models.Wager, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(ctx, bson.M{"username": username}, opts)
}

// FindRecent finds the most recent wagers across all accounts
func (r *WagerRepository) FindRecent(ctx context.Context, limit int64) ([]*models.Wager, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(ctx, bson.M{}, opts)
}

// FindPending finds all unresolved wagers. Settlement tolerates wagers
// appearing after this snapshot was taken; they wait for the next pass.
func (r *WagerRepository) FindPending(ctx context.Context) ([]*models.Wager, error) {
	return r.find(ctx, bson.M{"status": models.WagerPending}, options.Find())
}

// FindByCreatedRange finds wagers created within [start, end)
func (r *WagerRepository) FindByCreatedRange(ctx context.Context, start, end time.Time) ([]*models.Wager, error) {
	filter := bson.M{"createdAt": bson.M{"$gte": start, "$lt": end}}
	return r.find(ctx, filter, options.Find())
}

// DeleteSettledByUsername removes the user's resolved wagers. PENDING wagers
// are never deletable by their owner.
func (r *WagerRepository) DeleteSettledByUsername(ctx context.Context, username string) (int64, error) {
	filter := bson.M{
		"username": username,
		"status":   bson.M{"$ne": models.WagerPending},
	}
	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// Count counts all wagers
func (r *WagerRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *WagerRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Wager, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var wagers []*models.Wager
	if err := cursor.All(ctx, &wagers); err != nil {
		return nil, err
	}
	if wagers == nil {
		wagers = []*models.Wager{}
	}
	return wagers, nil
}

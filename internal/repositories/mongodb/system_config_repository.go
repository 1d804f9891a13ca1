package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/Sk192011s/2d-backup/internal/models"
	"github.com/Sk192011s/2d-backup/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure SystemConfigRepository implements the interface
var _ repositories.SystemConfigRepository = (*SystemConfigRepository)(nil)

// SystemConfigRepository handles MongoDB operations for system configuration
type SystemConfigRepository struct {
	collection *mongo.Collection
}

// NewSystemConfigRepository creates a new SystemConfigRepository
func NewSystemConfigRepository(db *mongo.Database) *SystemConfigRepository {
	return &SystemConfigRepository{
		collection: db.Collection("system_config"),
	}
}

// FindByKey finds a system configuration by key.
// Note: The Value field is interface{}, so the caller needs to perform type assertion.
func (r *SystemConfigRepository) FindByKey(ctx context.Context, key string) (*models.SystemConfig, error) {
	var config models.SystemConfig
	err := r.collection.FindOne(ctx, bson.M{"key": key}).Decode(&config)
	if err != nil {
		return nil, fmt.Errorf("failed to find system config by key %q: %w", key, err)
	}
	return &config, nil
}

// UpsertByKey updates a system configuration by key, or creates it if it doesn't exist.
func (r *SystemConfigRepository) UpsertByKey(ctx context.Context, key string, value interface{}) error {
	filter := bson.M{"key": key}
	update := bson.M{
		"$set": bson.M{
			"value":     value,
			"updatedAt": time.Now(),
		},
		"$setOnInsert": bson.M{
			"key":       key,
			"createdAt": time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert system config for key %q: %w", key, err)
	}
	return nil
}

// FindAll finds all system configurations sorted by key
func (r *SystemConfigRepository) FindAll(ctx context.Context) ([]*models.SystemConfig, error) {
	opts := options.Find().SetSort(bson.M{"key": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var configs []*models.SystemConfig
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, err
	}
	if configs == nil {
		configs = []*models.SystemConfig{}
	}
	return configs, nil
}

package mongodb

import (
	"context"
	"time"

	"github.com/Sk192011s/2d-backup/internal/models"
	"github.com/Sk192011s/2d-backup/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure TransactionRepository implements the interface
var _ repositories.TransactionRepository = (*TransactionRepository)(nil)

// TransactionRepository handles MongoDB operations for the append-only audit
// log. Records are only ever inserted and read.
type TransactionRepository struct {
	collection *mongo.Collection
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{
		collection: db.Collection("transactions"),
	}
}

// Create inserts a new audit record
func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	tx.ID = primitive.NewObjectID()
	tx.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, tx)
	return err
}

// FindByUsername finds a user's audit records, newest first
func (r *TransactionRepository) FindByUsername(ctx context.Context, username string, limit int64) ([]*models.Transaction, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.collection.Find(ctx, bson.M{"username": username}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var txs []*models.Transaction
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []*models.Transaction{}
	}
	return txs, nil
}

package mongodb

import (
	"context"
	"time"

	"github.com/Sk192011s/2d-backup/internal/models"
	"github.com/Sk192011s/2d-backup/internal/repositories"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure AccountRepository implements the interface
var _ repositories.AccountRepository = (*AccountRepository)(nil)

// AccountRepository handles MongoDB operations for Account
type AccountRepository struct {
	collection *mongo.Collection
}

// NewAccountRepository creates a new AccountRepository. The unique index on
// username closes the check-then-insert race during registration: the second
// of two concurrent inserts fails with a duplicate-key error.
func NewAccountRepository(db *mongo.Database) *AccountRepository {
	collection := db.Collection("accounts")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.WithError(err).Warn("failed to ensure unique username index")
	}

	return &AccountRepository{
		collection: collection,
	}
}

// Create inserts a new account
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	account.ID = primitive.NewObjectID()
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, account)
	return err
}

// FindByID finds an account by ID
func (r *AccountRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	var account models.Account
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&account)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &account, nil
}

// FindByUsername finds an account by its unique, case-sensitive username
func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&account)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &account, nil
}

// UpdateAvatar sets the avatar reference on an account
func (r *AccountRepository) UpdateAvatar(ctx context.Context, id primitive.ObjectID, avatar string) error {
	update := bson.M{"$set": bson.M{"avatar": avatar, "updatedAt": time.Now()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// UpdatePasswordHash replaces the stored password hash
func (r *AccountRepository) UpdatePasswordHash(ctx context.Context, id primitive.ObjectID, hash string) error {
	update := bson.M{"$set": bson.M{"passwordHash": hash, "updatedAt": time.Now()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// Credit atomically adds amount to the balance. The version bump makes any
// in-flight placement CAS against this account fail and retry, so a credit
// and a debit can never interleave into a lost update.
func (r *AccountRepository) Credit(ctx context.Context, id primitive.ObjectID, amount int64) error {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$inc": bson.M{"balance": amount, "version": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Count counts all accounts
func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

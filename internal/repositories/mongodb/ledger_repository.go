package mongodb

import (
	"context"
	"time"

	"github.com/Sk192011s/2d-backup/internal/models"
	"github.com/Sk192011s/2d-backup/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure LedgerRepository implements the interface
var _ repositories.LedgerRepository = (*LedgerRepository)(nil)

// LedgerRepository performs the writes that must pair an account mutation
// with a wager mutation. Both operations run inside a MongoDB session
// transaction: either every write commits or none does, which is the one
// invariant that must survive a process crash mid-request.
type LedgerRepository struct {
	client   *mongo.Client
	accounts *mongo.Collection
	wagers   *mongo.Collection
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(client *mongo.Client, db *mongo.Database) *LedgerRepository {
	return &LedgerRepository{
		client:   client,
		accounts: db.Collection("accounts"),
		wagers:   db.Collection("wagers"),
	}
}

// PlaceBatch debits the account and inserts the batch's wagers as one
// indivisible unit. The account update carries a version precondition: if
// another writer (a concurrent placement by the same user, or a top-up)
// changed the account since the caller's read, the update matches nothing,
// the transaction aborts, and ErrVersionConflict is returned with no state
// committed. The engine never retries on the caller's behalf.
func (r *LedgerRepository) PlaceBatch(ctx context.Context, accountID primitive.ObjectID, version int64, newBalance int64, wagers []*models.Wager) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		filter := bson.M{"_id": accountID, "version": version}
		update := bson.M{
			"$set": bson.M{"balance": newBalance, "updatedAt": time.Now()},
			"$inc": bson.M{"version": 1},
		}
		result, err := r.accounts.UpdateOne(sc, filter, update)
		if err != nil {
			return nil, err
		}
		if result.MatchedCount == 0 {
			return nil, repositories.ErrVersionConflict
		}

		docs := make([]interface{}, 0, len(wagers))
		for _, w := range wagers {
			docs = append(docs, w)
		}
		if _, err := r.wagers.InsertMany(sc, docs); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// ResolveWager flips a wager out of PENDING and, on a WIN, credits the
// owner. The status filter makes the flip conditional: a wager that was
// already resolved matches nothing and the call reports false with no
// writes, so re-running settlement for a session is a safe no-op.
func (r *LedgerRepository) ResolveWager(ctx context.Context, wagerID, accountID primitive.ObjectID, status models.WagerStatus, winAmount int64) (bool, error) {
	session, err := r.client.StartSession()
	if err != nil {
		return false, err
	}
	defer session.EndSession(ctx)

	resolved, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		set := bson.M{"status": status}
		if status == models.WagerWin {
			set["winAmount"] = winAmount
		}
		filter := bson.M{"_id": wagerID, "status": models.WagerPending}
		result, err := r.wagers.UpdateOne(sc, filter, bson.M{"$set": set})
		if err != nil {
			return false, err
		}
		if result.MatchedCount == 0 {
			return false, nil
		}

		if status == models.WagerWin {
			credit := bson.M{
				"$inc": bson.M{"balance": winAmount, "version": 1},
				"$set": bson.M{"updatedAt": time.Now()},
			}
			if _, err := r.accounts.UpdateOne(sc, bson.M{"_id": accountID}, credit); err != nil {
				return false, err
			}
		}
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return resolved.(bool), nil
}

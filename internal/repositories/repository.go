package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Sk192011s/2d-backup/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrVersionConflict is returned by LedgerRepository.PlaceBatch when the
// account was modified by another writer between the caller's read and the
// commit. Nothing has been written; retrying is the caller's decision.
var ErrVersionConflict = errors.New("account version conflict")

// AccountRepository defines the interface for account data operations
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	UpdateAvatar(ctx context.Context, id primitive.ObjectID, avatar string) error
	UpdatePasswordHash(ctx context.Context, id primitive.ObjectID, hash string) error
	// Credit atomically adds amount to the balance and bumps the version so
	// concurrent placements observe the change.
	Credit(ctx context.Context, id primitive.ObjectID, amount int64) error
	Count(ctx context.Context) (int64, error)
}

// WagerRepository defines the read and maintenance operations on the wager
// ledger. All writes that move money go through LedgerRepository instead.
type WagerRepository interface {
	FindByUsername(ctx context.Context, username string, limit int64) ([]*models.Wager, error)
	FindRecent(ctx context.Context, limit int64) ([]*models.Wager, error)
	FindPending(ctx context.Context) ([]*models.Wager, error)
	FindByCreatedRange(ctx context.Context, start, end time.Time) ([]*models.Wager, error)
	// DeleteSettledByUsername removes the user's non-PENDING wagers and
	// returns how many were deleted.
	DeleteSettledByUsername(ctx context.Context, username string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// LedgerRepository defines the money-moving operations that must pair an
// account write with a wager write. The store's transaction primitive is the
// durability boundary: either both sides commit or neither does.
type LedgerRepository interface {
	// PlaceBatch debits the account to newBalance if and only if the account
	// is still at the given version, and creates every wager in the same
	// transaction. Returns ErrVersionConflict when the precondition fails.
	PlaceBatch(ctx context.Context, accountID primitive.ObjectID, version int64, newBalance int64, wagers []*models.Wager) error
	// ResolveWager flips a PENDING wager to the given status and, for a WIN,
	// credits winAmount to the owner, both in one transaction. Returns false
	// without side effects when the wager is no longer PENDING, which makes
	// settlement re-entry a no-op.
	ResolveWager(ctx context.Context, wagerID, accountID primitive.ObjectID, status models.WagerStatus, winAmount int64) (bool, error)
}

// BlocklistRepository defines the interface for blocked-number operations
type BlocklistRepository interface {
	IsBlocked(ctx context.Context, number string) (bool, error)
	AddAll(ctx context.Context, numbers []string) error
	Remove(ctx context.Context, number string) error
	Clear(ctx context.Context) error
	FindAll(ctx context.Context) ([]string, error)
}

// SystemConfigRepository defines the interface for system configuration
// operations
type SystemConfigRepository interface {
	FindByKey(ctx context.Context, key string) (*models.SystemConfig, error)
	UpsertByKey(ctx context.Context, key string, value interface{}) error
	FindAll(ctx context.Context) ([]*models.SystemConfig, error)
}

// TransactionRepository defines the interface for the append-only audit log
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	FindByUsername(ctx context.Context, username string, limit int64) ([]*models.Transaction, error)
}

// HistoryRepository defines the interface for per-day result records
type HistoryRepository interface {
	// Merge upserts the record for its date. Placeholder fields never
	// overwrite a previously recorded real value.
	Merge(ctx context.Context, record *models.HistoryRecord) error
	FindRecent(ctx context.Context, limit int64) ([]*models.HistoryRecord, error)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Sk192011s/2d-backup/internal/market"
	"github.com/Sk192011s/2d-backup/internal/models"
	"github.com/Sk192011s/2d-backup/internal/repositories"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlacementStatus is the typed outcome of a placement attempt. All of these
// are expected user-facing results, not errors; only store failures surface
// as errors.
type PlacementStatus string

const (
	PlacementSuccess           PlacementStatus = "SUCCESS"
	PlacementClosed            PlacementStatus = "CLOSED"
	PlacementInvalidAmount     PlacementStatus = "INVALID_AMOUNT"
	PlacementBlocked           PlacementStatus = "BLOCKED"
	PlacementInsufficientFunds PlacementStatus = "INSUFFICIENT_FUNDS"
	PlacementRetry             PlacementStatus = "RETRY"
)

// Receipt is returned to the caller on a successful placement.
type Receipt struct {
	BatchID         string    `json:"batchId"`
	Username        string    `json:"username"`
	Numbers         []string  `json:"numbers"`
	AmountPerNumber int64     `json:"amountPerNumber"`
	Total           int64     `json:"total"`
	PlacedAt        time.Time `json:"placedAt"`
}

// PlacementResult carries the outcome of PlaceWager. BlockedNumber is set
// only for PlacementBlocked; Receipt only for PlacementSuccess.
type PlacementResult struct {
	Status        PlacementStatus `json:"status"`
	BlockedNumber string          `json:"blockedNumber,omitempty"`
	Receipt       *Receipt        `json:"receipt,omitempty"`
}

// WagerService implements the placement protocol. Every precondition is
// checked in order with no side effects on failure; the commit itself is a
// single optimistic transaction against the account's version.
type WagerService struct {
	accountRepo   repositories.AccountRepository
	wagerRepo     repositories.WagerRepository
	ledgerRepo    repositories.LedgerRepository
	blocklistRepo repositories.BlocklistRepository
}

// NewWagerService creates a new WagerService
func NewWagerService(accountRepo repositories.AccountRepository, wagerRepo repositories.WagerRepository, ledgerRepo repositories.LedgerRepository, blocklistRepo repositories.BlocklistRepository) *WagerService {
	return &WagerService{
		accountRepo:   accountRepo,
		wagerRepo:     wagerRepo,
		ledgerRepo:    ledgerRepo,
		blocklistRepo: blocklistRepo,
	}
}

// PlaceWager runs the admission gates and, if they all pass, debits the
// account and creates one PENDING wager per number as one atomic unit.
// A RETRY result means another writer touched the account between our read
// and the commit; nothing was charged and the caller decides whether to try
// again.
func (s *WagerService) PlaceWager(ctx context.Context, username string, numbers []string, amount int64, now time.Time) (*PlacementResult, error) {
	mins := market.MinutesSinceMidnight(now)
	if market.StateOf(mins) == market.StateClosed {
		return &PlacementResult{Status: PlacementClosed}, nil
	}

	cleaned := make([]string, 0, len(numbers))
	for _, n := range numbers {
		if n = strings.TrimSpace(n); n != "" {
			cleaned = append(cleaned, n)
		}
	}
	if len(cleaned) == 0 || amount < models.MinStake || amount > models.MaxStake {
		return &PlacementResult{Status: PlacementInvalidAmount}, nil
	}

	for _, n := range cleaned {
		blocked, err := s.blocklistRepo.IsBlocked(ctx, n)
		if err != nil {
			return nil, fmt.Errorf("failed to check blocklist: %w", err)
		}
		if blocked {
			return &PlacementResult{Status: PlacementBlocked, BlockedNumber: n}, nil
		}
	}

	account, err := s.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to load account %q: %w", username, err)
	}

	cost := int64(len(cleaned)) * amount
	if account.Balance < cost {
		return &PlacementResult{Status: PlacementInsufficientFunds}, nil
	}

	batchID := uuid.NewString()
	wagers := make([]*models.Wager, 0, len(cleaned))
	for _, n := range cleaned {
		wagers = append(wagers, &models.Wager{
			ID:              primitive.NewObjectID(),
			AccountID:       account.ID,
			Username:        account.Username,
			Number:          n,
			Amount:          amount,
			Status:          models.WagerPending,
			PlacedAtMinutes: mins,
			BatchID:         batchID,
			CreatedAt:       now,
		})
	}

	err = s.ledgerRepo.PlaceBatch(ctx, account.ID, account.Version, account.Balance-cost, wagers)
	if errors.Is(err, repositories.ErrVersionConflict) {
		log.WithFields(log.Fields{"username": username, "batchId": batchID}).Info("placement lost version race")
		return &PlacementResult{Status: PlacementRetry}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to commit wager batch: %w", err)
	}

	log.WithFields(log.Fields{
		"username": username,
		"batchId":  batchID,
		"numbers":  len(cleaned),
		"cost":     cost,
	}).Info("wager batch placed")

	return &PlacementResult{
		Status: PlacementSuccess,
		Receipt: &Receipt{
			BatchID:         batchID,
			Username:        account.Username,
			Numbers:         cleaned,
			AmountPerNumber: amount,
			Total:           cost,
			PlacedAt:        now,
		},
	}, nil
}

// WagersByUsername returns a user's wagers, newest first
func (s *WagerService) WagersByUsername(ctx context.Context, username string, limit int64) ([]*models.Wager, error) {
	return s.wagerRepo.FindByUsername(ctx, username, limit)
}

// RecentWagers returns the newest wagers across all accounts (admin view)
func (s *WagerService) RecentWagers(ctx context.Context, limit int64) ([]*models.Wager, error) {
	return s.wagerRepo.FindRecent(ctx, limit)
}

// ClearSettled deletes the user's resolved wagers and reports how many were
// removed. PENDING wagers are left untouched.
func (s *WagerService) ClearSettled(ctx context.Context, username string) (int64, error) {
	return s.wagerRepo.DeleteSettledByUsername(ctx, username)
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sk192011s/2d-backup/internal/market"
	"github.com/Sk192011s/2d-backup/internal/models"
	"github.com/Sk192011s/2d-backup/internal/repositories"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// SettlementService resolves PENDING wagers against an announced winning
// number. Each wager is classified into its session from the minute-of-day
// stored at placement; only wagers belonging to the target session are
// touched, so settling a session never disturbs the other session's open
// wagers. Resolution is per-wager, not one cross-wager transaction; the
// PENDING precondition on each flip is what makes a repeated run a no-op.
type SettlementService struct {
	wagerRepo  repositories.WagerRepository
	ledgerRepo repositories.LedgerRepository
	configRepo repositories.SystemConfigRepository
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(wagerRepo repositories.WagerRepository, ledgerRepo repositories.LedgerRepository, configRepo repositories.SystemConfigRepository) *SettlementService {
	return &SettlementService{
		wagerRepo:  wagerRepo,
		ledgerRepo: ledgerRepo,
		configRepo: configRepo,
	}
}

// SettlementSummary reports what one settlement pass did.
type SettlementSummary struct {
	Session  market.Session `json:"session"`
	Winning  string         `json:"winningNumber"`
	Rate     int64          `json:"payoutRate"`
	Wins     int            `json:"wins"`
	Losses   int            `json:"losses"`
	Skipped  int            `json:"skipped"`
	Credited int64          `json:"credited"`
}

// Settle resolves every PENDING wager of the target session. Wagers placed
// while the scan is running are left for the next pass. A wager that loses
// its PENDING status concurrently is counted as skipped.
func (s *SettlementService) Settle(ctx context.Context, winningNumber string, session market.Session) (*SettlementSummary, error) {
	rate, err := s.PayoutRate(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := s.wagerRepo.FindPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan pending wagers: %w", err)
	}

	summary := &SettlementSummary{Session: session, Winning: winningNumber, Rate: rate}
	for _, w := range pending {
		if market.SessionOf(w.PlacedAtMinutes) != session {
			continue
		}

		status := models.WagerLose
		var winAmount int64
		if w.Number == winningNumber {
			status = models.WagerWin
			winAmount = w.Amount * rate
		}

		resolved, err := s.ledgerRepo.ResolveWager(ctx, w.ID, w.AccountID, status, winAmount)
		if err != nil {
			log.WithError(err).WithField("wagerId", w.ID.Hex()).Error("failed to resolve wager")
			continue
		}
		if !resolved {
			summary.Skipped++
			continue
		}
		if status == models.WagerWin {
			summary.Wins++
			summary.Credited += winAmount
		} else {
			summary.Losses++
		}
	}

	log.WithFields(log.Fields{
		"session":  session,
		"winning":  winningNumber,
		"wins":     summary.Wins,
		"losses":   summary.Losses,
		"credited": summary.Credited,
	}).Info("settlement pass complete")
	return summary, nil
}

// PayoutRate returns the configured WIN multiplier, falling back to the
// default when nothing has been configured yet.
func (s *SettlementService) PayoutRate(ctx context.Context) (int64, error) {
	config, err := s.configRepo.FindByKey(ctx, models.ConfigKeyPayoutRate)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.DefaultPayoutRate, nil
		}
		return 0, fmt.Errorf("failed to read payout rate: %w", err)
	}
	switch v := config.Value.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	}
	return models.DefaultPayoutRate, nil
}

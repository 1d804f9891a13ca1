package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Sk192011s/2d-backup/internal/market"
	"github.com/Sk192011s/2d-backup/internal/models"
	"github.com/Sk192011s/2d-backup/internal/repositories"
	"github.com/Sk192011s/2d-backup/pkg/liveresults"
	log "github.com/sirupsen/logrus"
)

// ResultsFeed is the read-only external feed of the day's announced
// results. Implemented by pkg/liveresults; injectable for tests.
type ResultsFeed interface {
	FetchToday(ctx context.Context) (*liveresults.Result, error)
}

// HistoryService snapshots the external feed into per-day history records.
// It is fully isolated from the ledger: feed failures are swallowed and
// logged, never surfaced to callers.
type HistoryService struct {
	historyRepo repositories.HistoryRepository
	feed        ResultsFeed
	clock       market.Clock
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(historyRepo repositories.HistoryRepository, feed ResultsFeed, clock market.Clock) *HistoryService {
	return &HistoryService{
		historyRepo: historyRepo,
		feed:        feed,
		clock:       clock,
	}
}

// Snapshot fetches today's results once and merges them into the day's
// record. Weekends are skipped (no draws). A real value already recorded is
// never replaced by a placeholder.
func (s *HistoryService) Snapshot(ctx context.Context) error {
	now := s.clock.Now()
	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return nil
	}

	result, err := s.feed.FetchToday(ctx)
	if err != nil {
		log.WithError(err).Warn("live results feed unavailable, skipping snapshot")
		return nil
	}

	morning, evening := result.Morning, result.Evening
	if morning == "" {
		morning = models.HistoryPlaceholder
	}
	if evening == "" {
		evening = models.HistoryPlaceholder
	}
	if morning == models.HistoryPlaceholder && evening == models.HistoryPlaceholder {
		return nil
	}

	record := &models.HistoryRecord{
		Date:    now.Format("2006-01-02"),
		Morning: morning,
		Evening: evening,
	}
	if err := s.historyRepo.Merge(ctx, record); err != nil {
		return fmt.Errorf("failed to merge history record: %w", err)
	}
	return nil
}

// Run snapshots on a fixed interval until the context is cancelled
func (s *HistoryService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.WithField("interval", interval).Info("history snapshotter started")
	for {
		select {
		case <-ctx.Done():
			log.Info("history snapshotter stopped")
			return
		case <-ticker.C:
			if err := s.Snapshot(ctx); err != nil {
				log.WithError(err).Warn("history snapshot failed")
			}
		}
	}
}

// AddManual merges an operator-entered record. Empty fields are treated as
// placeholders so a partial entry cannot wipe a recorded result.
func (s *HistoryService) AddManual(ctx context.Context, date, morning, evening string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	if morning == "" {
		morning = models.HistoryPlaceholder
	}
	if evening == "" {
		evening = models.HistoryPlaceholder
	}
	return s.historyRepo.Merge(ctx, &models.HistoryRecord{
		Date:    date,
		Morning: morning,
		Evening: evening,
	})
}

// Recent returns the latest records, newest first
func (s *HistoryService) Recent(ctx context.Context, limit int64) ([]*models.HistoryRecord, error) {
	return s.historyRepo.FindRecent(ctx, limit)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sk192011s/2d-backup/internal/models"
	"github.com/Sk192011s/2d-backup/internal/repositories"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrAccountNotFound is returned by operator actions naming an account that
// does not exist.
var ErrAccountNotFound = errors.New("account not found")

// AdminService implements the operator-only surface: top-ups, settings, and
// the derived daily statistics view.
type AdminService struct {
	accountRepo repositories.AccountRepository
	txRepo      repositories.TransactionRepository
	configRepo  repositories.SystemConfigRepository
	wagerRepo   repositories.WagerRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(accountRepo repositories.AccountRepository, txRepo repositories.TransactionRepository, configRepo repositories.SystemConfigRepository, wagerRepo repositories.WagerRepository) *AdminService {
	return &AdminService{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		configRepo:  configRepo,
		wagerRepo:   wagerRepo,
	}
}

// TopUp credits an account directly and appends an immutable audit record.
// The credit is a single atomic increment; its version bump means any
// placement racing this top-up gets a RETRY instead of a lost update.
func (s *AdminService) TopUp(ctx context.Context, username string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("top-up amount must be positive, got %d", amount)
	}

	account, err := s.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to load account %q: %w", username, err)
	}

	if err := s.accountRepo.Credit(ctx, account.ID, amount); err != nil {
		return fmt.Errorf("failed to credit account %q: %w", username, err)
	}

	tx := &models.Transaction{
		Username: account.Username,
		Amount:   amount,
		Type:     models.TransactionTopup,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		// The credit already landed; losing the audit row is logged, not
		// rolled back.
		log.WithError(err).WithField("username", username).Error("failed to record top-up transaction")
		return fmt.Errorf("credit applied but audit record failed: %w", err)
	}

	log.WithFields(log.Fields{"username": username, "amount": amount}).Info("account topped up")
	return nil
}

// SettingsUpdate carries the optional fields of an operator settings change.
// Nil fields are left untouched.
type SettingsUpdate struct {
	PayoutRate *int64          `json:"payoutRate,omitempty"`
	DailyTip   *string         `json:"dailyTip,omitempty"`
	Contact    *models.Contact `json:"contact,omitempty"`
}

// UpdateSettings upserts each provided value under its config key
func (s *AdminService) UpdateSettings(ctx context.Context, update SettingsUpdate) error {
	if update.PayoutRate != nil {
		if *update.PayoutRate <= 0 {
			return fmt.Errorf("payout rate must be positive, got %d", *update.PayoutRate)
		}
		if err := s.configRepo.UpsertByKey(ctx, models.ConfigKeyPayoutRate, *update.PayoutRate); err != nil {
			return err
		}
	}
	if update.DailyTip != nil {
		if err := s.configRepo.UpsertByKey(ctx, models.ConfigKeyDailyTip, *update.DailyTip); err != nil {
			return err
		}
	}
	if update.Contact != nil {
		if err := s.configRepo.UpsertByKey(ctx, models.ConfigKeyContact, *update.Contact); err != nil {
			return err
		}
	}
	return nil
}

// GetSettings assembles the current configurable values, applying defaults
// for anything not yet configured.
func (s *AdminService) GetSettings(ctx context.Context) (*models.Settings, error) {
	settings := &models.Settings{PayoutRate: models.DefaultPayoutRate}

	configs, err := s.configRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	for _, c := range configs {
		switch c.Key {
		case models.ConfigKeyPayoutRate:
			switch v := c.Value.(type) {
			case int64:
				settings.PayoutRate = v
			case int32:
				settings.PayoutRate = int64(v)
			case int:
				settings.PayoutRate = int64(v)
			case float64:
				settings.PayoutRate = int64(v)
			}
		case models.ConfigKeyDailyTip:
			if v, ok := c.Value.(string); ok {
				settings.DailyTip = v
			}
		case models.ConfigKeyContact:
			decodeContact(c.Value, &settings.Contact)
		}
	}
	return settings, nil
}

// decodeContact tolerates every shape the value arrives in: a typed Contact
// straight from a write, the primitive.D the driver decodes a subdocument
// into for interface{} fields, or a plain map.
func decodeContact(value interface{}, out *models.Contact) {
	switch v := value.(type) {
	case models.Contact:
		*out = v
	case primitive.D:
		raw, err := bson.Marshal(v)
		if err != nil {
			return
		}
		_ = bson.Unmarshal(raw, out)
	case map[string]interface{}:
		if s, ok := v["kpayNo"].(string); ok {
			out.KpayNo = s
		}
		if s, ok := v["kpayName"].(string); ok {
			out.KpayName = s
		}
		if s, ok := v["waveNo"].(string); ok {
			out.WaveNo = s
		}
		if s, ok := v["waveName"].(string); ok {
			out.WaveName = s
		}
		if s, ok := v["teleLink"].(string); ok {
			out.TeleLink = s
		}
	}
}

// DailyStats is the operator's derived sale/payout view for one day. It is
// computed from wager timestamps at request time and never persisted.
type DailyStats struct {
	Date   string `json:"date"`
	Sale   int64  `json:"sale"`
	Payout int64  `json:"payout"`
	Profit int64  `json:"profit"`
}

// StatsForDay sums today's stakes and WIN payouts from the wagers created
// between local midnight and now.
func (s *AdminService) StatsForDay(ctx context.Context, now time.Time) (*DailyStats, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	wagers, err := s.wagerRepo.FindByCreatedRange(ctx, start, start.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to load wagers for stats: %w", err)
	}

	stats := &DailyStats{Date: start.Format("2006-01-02")}
	for _, w := range wagers {
		stats.Sale += w.Amount
		if w.Status == models.WagerWin {
			stats.Payout += w.WinAmount
		}
	}
	stats.Profit = stats.Sale - stats.Payout
	return stats, nil
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Sk192011s/2d-backup/internal/models"
)

func newAdminFixture() (*AdminService, *memStore, *memTransactionRepo, *memConfigRepo) {
	store := newMemStore()
	txRepo := &memTransactionRepo{}
	configRepo := newMemConfigRepo()
	svc := NewAdminService(store, txRepo, configRepo, &memWagerRepo{store: store})
	return svc, store, txRepo, configRepo
}

func TestTopUpCreditsAndRecordsAudit(t *testing.T) {
	svc, store, txRepo, _ := newAdminFixture()
	store.addAccount("mgmg", 500)

	require.NoError(t, svc.TopUp(context.Background(), "mgmg", 1000))

	assert.Equal(t, int64(1500), store.balanceOf("mgmg"))

	txs, err := txRepo.FindByUsername(context.Background(), "mgmg", 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, models.TransactionTopup, txs[0].Type)
	assert.Equal(t, int64(1000), txs[0].Amount)
}

func TestTopUpBumpsVersion(t *testing.T) {
	svc, store, _, _ := newAdminFixture()
	account := store.addAccount("mgmg", 0)

	require.NoError(t, svc.TopUp(context.Background(), "mgmg", 100))

	after, err := store.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.Version+1, after.Version)
}

func TestTopUpUnknownAccount(t *testing.T) {
	svc, _, txRepo, _ := newAdminFixture()

	err := svc.TopUp(context.Background(), "nobody", 1000)
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Empty(t, txRepo.txs)
}

func TestTopUpRejectsNonPositiveAmount(t *testing.T) {
	svc, store, _, _ := newAdminFixture()
	store.addAccount("mgmg", 500)

	assert.Error(t, svc.TopUp(context.Background(), "mgmg", 0))
	assert.Error(t, svc.TopUp(context.Background(), "mgmg", -100))
	assert.Equal(t, int64(500), store.balanceOf("mgmg"))
}

func TestSettingsRoundTrip(t *testing.T) {
	svc, _, _, _ := newAdminFixture()
	ctx := context.Background()

	rate := int64(90)
	tip := "23.45.67"
	contact := models.Contact{KpayNo: "09123456789", KpayName: "U Mg Mg"}
	require.NoError(t, svc.UpdateSettings(ctx, SettingsUpdate{
		PayoutRate: &rate,
		DailyTip:   &tip,
		Contact:    &contact,
	}))

	settings, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(90), settings.PayoutRate)
	assert.Equal(t, tip, settings.DailyTip)
	assert.Equal(t, contact, settings.Contact)
}

func TestGetSettingsContactSurvivesBsonRoundTrip(t *testing.T) {
	svc, _, _, configRepo := newAdminFixture()
	ctx := context.Background()

	contact := models.Contact{KpayNo: "09912345", KpayName: "Mg Mg", WaveNo: "09954321", TeleLink: "t.me/twod"}

	// The driver hands interface{} subdocuments back as primitive.D, not as
	// the typed struct that was written.
	raw, err := bson.Marshal(models.SystemConfig{Key: models.ConfigKeyContact, Value: contact})
	require.NoError(t, err)
	var stored models.SystemConfig
	require.NoError(t, bson.Unmarshal(raw, &stored))
	require.NoError(t, configRepo.UpsertByKey(ctx, models.ConfigKeyContact, stored.Value))

	settings, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, contact, settings.Contact)
}

func TestSettingsPartialUpdate(t *testing.T) {
	svc, _, _, _ := newAdminFixture()
	ctx := context.Background()

	tip := "daily tip"
	require.NoError(t, svc.UpdateSettings(ctx, SettingsUpdate{DailyTip: &tip}))

	settings, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPayoutRate, settings.PayoutRate)
	assert.Equal(t, tip, settings.DailyTip)
}

func TestSettingsRejectsNonPositiveRate(t *testing.T) {
	svc, _, _, _ := newAdminFixture()

	rate := int64(0)
	assert.Error(t, svc.UpdateSettings(context.Background(), SettingsUpdate{PayoutRate: &rate}))
}

func TestGetSettingsDefaults(t *testing.T) {
	svc, _, _, _ := newAdminFixture()

	settings, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPayoutRate, settings.PayoutRate)
	assert.Empty(t, settings.DailyTip)
	assert.Equal(t, models.Contact{}, settings.Contact)
}

func TestStatsForDay(t *testing.T) {
	svc, store, _, _ := newAdminFixture()
	account := store.addAccount("mgmg", 0)

	now := time.Date(2026, 1, 5, 14, 0, 0, 0, time.UTC)
	store.wagers = append(store.wagers,
		&models.Wager{AccountID: account.ID, Username: "mgmg", Number: "12", Amount: 100, Status: models.WagerLose, CreatedAt: now.Add(-2 * time.Hour)},
		&models.Wager{AccountID: account.ID, Username: "mgmg", Number: "34", Amount: 200, Status: models.WagerWin, WinAmount: 16000, CreatedAt: now.Add(-1 * time.Hour)},
		// Yesterday's wager must not count.
		&models.Wager{AccountID: account.ID, Username: "mgmg", Number: "56", Amount: 500, Status: models.WagerWin, WinAmount: 40000, CreatedAt: now.Add(-24 * time.Hour)},
	)

	stats, err := svc.StatsForDay(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-05", stats.Date)
	assert.Equal(t, int64(300), stats.Sale)
	assert.Equal(t, int64(16000), stats.Payout)
	assert.Equal(t, int64(-15700), stats.Profit)
}

package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sk192011s/2d-backup/internal/models"
	"github.com/Sk192011s/2d-backup/internal/repositories"
	"github.com/Sk192011s/2d-backup/pkg/liveresults"
)

var (
	_ repositories.AccountRepository      = (*memStore)(nil)
	_ repositories.WagerRepository        = (*memWagerRepo)(nil)
	_ repositories.LedgerRepository       = (*memLedgerRepo)(nil)
	_ repositories.BlocklistRepository    = (*memBlocklistRepo)(nil)
	_ repositories.SystemConfigRepository = (*memConfigRepo)(nil)
	_ repositories.TransactionRepository  = (*memTransactionRepo)(nil)
	_ repositories.HistoryRepository      = (*memHistoryRepo)(nil)
	_ ResultsFeed                         = (*fakeFeed)(nil)
)

// memStore is an in-memory stand-in for the account, wager and ledger
// repositories. It mirrors the store's concurrency contract: reads hand out
// copies, PlaceBatch commits only against an unchanged version, and
// ResolveWager flips a wager only while it is still PENDING.
type memStore struct {
	mu       sync.Mutex
	accounts map[primitive.ObjectID]*models.Account
	wagers   []*models.Wager
}

func newMemStore() *memStore {
	return &memStore{accounts: make(map[primitive.ObjectID]*models.Account)}
}

func (m *memStore) addAccount(username string, balance int64) *models.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	account := &models.Account{
		ID:       primitive.NewObjectID(),
		Username: username,
		Role:     models.RoleUser,
		Balance:  balance,
	}
	m.accounts[account.ID] = account
	return account
}

func (m *memStore) balanceOf(username string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Username == username {
			return a.Balance
		}
	}
	return -1
}

func (m *memStore) Create(ctx context.Context, account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Mirrors the unique index on username.
	for _, a := range m.accounts {
		if a.Username == account.Username {
			return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}
	if account.ID.IsZero() {
		account.ID = primitive.NewObjectID()
	}
	clone := *account
	m.accounts[account.ID] = &clone
	return nil
}

func (m *memStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[id]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memStore) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Username == username {
			clone := *a
			return &clone, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memStore) UpdateAvatar(ctx context.Context, id primitive.ObjectID, avatar string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[id]; ok {
		a.Avatar = avatar
		return nil
	}
	return mongo.ErrNoDocuments
}

func (m *memStore) UpdatePasswordHash(ctx context.Context, id primitive.ObjectID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[id]; ok {
		a.PasswordHash = hash
		return nil
	}
	return mongo.ErrNoDocuments
}

func (m *memStore) Credit(ctx context.Context, id primitive.ObjectID, amount int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	a.Balance += amount
	a.Version++
	return nil
}

func (m *memStore) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.accounts)), nil
}

func (m *memStore) FindByUsernameWagers(username string) []*models.Wager {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Wager
	for _, w := range m.wagers {
		if w.Username == username {
			clone := *w
			out = append(out, &clone)
		}
	}
	return out
}

type memWagerRepo struct{ store *memStore }

func (r *memWagerRepo) FindByUsername(ctx context.Context, username string, limit int64) ([]*models.Wager, error) {
	return r.store.FindByUsernameWagers(username), nil
}

func (r *memWagerRepo) FindRecent(ctx context.Context, limit int64) ([]*models.Wager, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*models.Wager, 0, len(r.store.wagers))
	for _, w := range r.store.wagers {
		clone := *w
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memWagerRepo) FindPending(ctx context.Context) ([]*models.Wager, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.Wager
	for _, w := range r.store.wagers {
		if w.Status == models.WagerPending {
			clone := *w
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memWagerRepo) FindByCreatedRange(ctx context.Context, start, end time.Time) ([]*models.Wager, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.Wager
	for _, w := range r.store.wagers {
		if !w.CreatedAt.Before(start) && w.CreatedAt.Before(end) {
			clone := *w
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memWagerRepo) DeleteSettledByUsername(ctx context.Context, username string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var kept []*models.Wager
	var deleted int64
	for _, w := range r.store.wagers {
		if w.Username == username && w.Status != models.WagerPending {
			deleted++
			continue
		}
		kept = append(kept, w)
	}
	r.store.wagers = kept
	return deleted, nil
}

func (r *memWagerRepo) Count(ctx context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.wagers)), nil
}

type memLedgerRepo struct{ store *memStore }

func (r *memLedgerRepo) PlaceBatch(ctx context.Context, accountID primitive.ObjectID, version int64, newBalance int64, wagers []*models.Wager) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.accounts[accountID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if a.Version != version {
		return repositories.ErrVersionConflict
	}
	a.Balance = newBalance
	a.Version++
	for _, w := range wagers {
		clone := *w
		r.store.wagers = append(r.store.wagers, &clone)
	}
	return nil
}

func (r *memLedgerRepo) ResolveWager(ctx context.Context, wagerID, accountID primitive.ObjectID, status models.WagerStatus, winAmount int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, w := range r.store.wagers {
		if w.ID != wagerID {
			continue
		}
		if w.Status != models.WagerPending {
			return false, nil
		}
		w.Status = status
		w.WinAmount = winAmount
		if status == models.WagerWin {
			if a, ok := r.store.accounts[accountID]; ok {
				a.Balance += winAmount
				a.Version++
			}
		}
		return true, nil
	}
	return false, nil
}

type memBlocklistRepo struct {
	mu      sync.Mutex
	blocked map[string]bool
}

func newMemBlocklistRepo() *memBlocklistRepo {
	return &memBlocklistRepo{blocked: make(map[string]bool)}
}

func (r *memBlocklistRepo) IsBlocked(ctx context.Context, number string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blocked[number], nil
}

func (r *memBlocklistRepo) AddAll(ctx context.Context, numbers []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range numbers {
		r.blocked[n] = true
	}
	return nil
}

func (r *memBlocklistRepo) Remove(ctx context.Context, number string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.blocked, number)
	return nil
}

func (r *memBlocklistRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocked = make(map[string]bool)
	return nil
}

func (r *memBlocklistRepo) FindAll(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.blocked))
	for n := range r.blocked {
		out = append(out, n)
	}
	sort.Strings(out)
	return out, nil
}

type memConfigRepo struct {
	mu     sync.Mutex
	values map[string]interface{}
}

func newMemConfigRepo() *memConfigRepo {
	return &memConfigRepo{values: make(map[string]interface{})}
}

func (r *memConfigRepo) FindByKey(ctx context.Context, key string) (*models.SystemConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.values[key]; ok {
		return &models.SystemConfig{Key: key, Value: v}, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memConfigRepo) UpsertByKey(ctx context.Context, key string, value interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

func (r *memConfigRepo) FindAll(ctx context.Context) ([]*models.SystemConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.SystemConfig, 0, len(r.values))
	for k, v := range r.values {
		out = append(out, &models.SystemConfig{Key: k, Value: v})
	}
	return out, nil
}

type memTransactionRepo struct {
	mu  sync.Mutex
	txs []*models.Transaction
}

func (r *memTransactionRepo) Create(ctx context.Context, tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *tx
	if clone.ID.IsZero() {
		clone.ID = primitive.NewObjectID()
	}
	r.txs = append(r.txs, &clone)
	return nil
}

func (r *memTransactionRepo) FindByUsername(ctx context.Context, username string, limit int64) ([]*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Transaction
	for _, tx := range r.txs {
		if tx.Username == username {
			clone := *tx
			out = append(out, &clone)
		}
	}
	return out, nil
}

type memHistoryRepo struct {
	mu      sync.Mutex
	records map[string]*models.HistoryRecord
}

func newMemHistoryRepo() *memHistoryRepo {
	return &memHistoryRepo{records: make(map[string]*models.HistoryRecord)}
}

func (r *memHistoryRepo) Merge(ctx context.Context, record *models.HistoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.records[record.Date]
	if !ok {
		clone := *record
		r.records[record.Date] = &clone
		return nil
	}
	if record.Morning != models.HistoryPlaceholder {
		existing.Morning = record.Morning
	}
	if record.Evening != models.HistoryPlaceholder {
		existing.Evening = record.Evening
	}
	return nil
}

func (r *memHistoryRepo) FindRecent(ctx context.Context, limit int64) ([]*models.HistoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.HistoryRecord, 0, len(r.records))
	for _, rec := range r.records {
		clone := *rec
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeFeed is a scripted ResultsFeed.
type fakeFeed struct {
	result *liveresults.Result
	err    error
	calls  int
}

func (f *fakeFeed) FetchToday(ctx context.Context) (*liveresults.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// fixedClock pins the market clock to one instant.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

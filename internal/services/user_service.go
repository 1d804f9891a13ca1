package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sk192011s/2d-backup/internal/models"
	"github.com/Sk192011s/2d-backup/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserService handles the player-facing profile surface: balance view,
// avatar reference, and the personal audit-log listing.
type UserService struct {
	accountRepo repositories.AccountRepository
	txRepo      repositories.TransactionRepository
}

// NewUserService creates a new UserService
func NewUserService(accountRepo repositories.AccountRepository, txRepo repositories.TransactionRepository) *UserService {
	return &UserService{
		accountRepo: accountRepo,
		txRepo:      txRepo,
	}
}

// GetByUsername retrieves an account
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	account, err := s.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return account, nil
}

// UpdateAvatar stores a new avatar reference on the account
func (s *UserService) UpdateAvatar(ctx context.Context, username, avatar string) error {
	account, err := s.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.accountRepo.UpdateAvatar(ctx, account.ID, avatar)
}

// Transactions returns the user's most recent audit records
func (s *UserService) Transactions(ctx context.Context, username string, limit int64) ([]*models.Transaction, error) {
	return s.txRepo.FindByUsername(ctx, username, limit)
}

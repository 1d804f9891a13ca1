package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sk192011s/2d-backup/internal/config"
	"github.com/Sk192011s/2d-backup/internal/models"
	"github.com/Sk192011s/2d-backup/internal/repositories"
	"github.com/Sk192011s/2d-backup/internal/utils"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials is returned for a bad username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService handles registration and login. Passwords are stored as
// bcrypt hashes only; there is no fallback to any other scheme.
type AuthService struct {
	accountRepo repositories.AccountRepository
	cfg         *config.Config
}

// NewAuthService creates a new AuthService
func NewAuthService(accountRepo repositories.AccountRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		cfg:         cfg,
	}
}

// Register creates a new account with zero balance. Usernames are unique
// and case-sensitive.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.Account, error) {
	_, err := s.accountRepo.FindByUsername(ctx, req.Username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := models.RoleUser
	if req.Username == s.cfg.Admin.Username {
		role = models.RoleAdmin
	}

	account := &models.Account{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
		Balance:      0,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		// A concurrent registration can pass the username check above and
		// lose the insert race against the unique index.
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	log.WithField("username", account.Username).Info("account registered")
	return account, nil
}

// Login verifies the password and issues a bearer token
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	account, err := s.accountRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(account.Username, account.Role, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.LoginResponse{
		Token:    token,
		Username: account.Username,
		Role:     account.Role,
	}, nil
}

// ChangePassword re-hashes and stores a new password for the account
func (s *AuthService) ChangePassword(ctx context.Context, username, newPassword string) error {
	account, err := s.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to load account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.accountRepo.UpdatePasswordHash(ctx, account.ID, string(hash))
}

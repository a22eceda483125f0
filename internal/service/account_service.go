package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"boardapi/internal/auth"
	apperrors "boardapi/internal/errors"
	"boardapi/internal/model"
	"boardapi/internal/repository"
)

// AuthResult is an account together with a freshly issued bearer token.
type AuthResult struct {
	Account *model.Account
	Token   string
}

// AccountService handles registration, login and profile management.
type AccountService interface {
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetByID(ctx context.Context, id uint) (*model.Account, error)
	List(ctx context.Context) ([]model.Account, error)
	UpdateProfile(ctx context.Context, callerID uint, name, password string) (*model.Account, error)
	ChangePassword(ctx context.Context, callerID uint, oldPassword, newPassword string) error
	Delete(ctx context.Context, email, password string) error
}

type accountService struct {
	accountRepo repository.AccountRepository
	hasher      auth.PasswordHasher
	jwtService  *auth.JWTService
	log         *zap.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo repository.AccountRepository, hasher auth.PasswordHasher, jwtService *auth.JWTService, log *zap.Logger) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		hasher:      hasher,
		jwtService:  jwtService,
		log:         log,
	}
}

// Register creates a new account with a hashed password and signs a token for it.
func (s *accountService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if password == "" {
		return nil, apperrors.ErrPasswordRequired
	}

	// The unique index is the real arbiter; this check just avoids hashing for a taken email.
	_, err := s.accountRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check account existence: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	token, err := s.jwtService.GenerateAccessToken(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	s.log.Info("account registered", zap.Uint("account_id", account.ID), zap.String("email", account.Email))
	return &AuthResult{Account: account, Token: token}, nil
}

// Login verifies credentials. Unknown email and wrong password look the same to
// the caller; only the server log tells them apart.
func (s *accountService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Info("login failed", zap.String("email", email), zap.String("reason", "unknown email"))
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	if !s.hasher.Verify(account.PasswordHash, password) {
		s.log.Info("login failed", zap.String("email", email), zap.String("reason", "wrong password"))
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateAccessToken(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	return &AuthResult{Account: account, Token: token}, nil
}

func (s *accountService) GetByID(ctx context.Context, id uint) (*model.Account, error) {
	return s.findAccount(ctx, id)
}

func (s *accountService) List(ctx context.Context) ([]model.Account, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateProfile renames the caller after confirming their current password.
func (s *accountService) UpdateProfile(ctx context.Context, callerID uint, name, password string) (*model.Account, error) {
	account, err := s.findAccount(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(account.PasswordHash, password) {
		return nil, apperrors.ErrWrongPassword
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.ErrNameRequired
	}

	if err := s.accountRepo.UpdateName(ctx, account.ID, name); err != nil {
		return nil, fmt.Errorf("update account name: %w", err)
	}
	account.Name = name
	return account, nil
}

func (s *accountService) ChangePassword(ctx context.Context, callerID uint, oldPassword, newPassword string) error {
	account, err := s.findAccount(ctx, callerID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(account.PasswordHash, oldPassword) {
		return apperrors.ErrWrongPassword
	}
	if newPassword == "" {
		return apperrors.ErrPasswordRequired
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.accountRepo.UpdatePasswordHash(ctx, account.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.log.Info("password changed", zap.Uint("account_id", account.ID))
	return nil
}

// Delete removes the account identified by email once the password matches.
// Owned board posts and saved images go with it.
func (s *accountService) Delete(ctx context.Context, email, password string) error {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrAccountNotFound
		}
		return fmt.Errorf("find account: %w", err)
	}
	if !s.hasher.Verify(account.PasswordHash, password) {
		s.log.Info("account deletion refused", zap.Uint("account_id", account.ID), zap.String("reason", "wrong password"))
		return apperrors.ErrWrongPassword
	}

	if err := s.accountRepo.Delete(ctx, account.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrAccountNotFound
		}
		return fmt.Errorf("delete account: %w", err)
	}

	s.log.Info("account deleted", zap.Uint("account_id", account.ID), zap.String("email", account.Email))
	return nil
}

func (s *accountService) findAccount(ctx context.Context, id uint) (*model.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return account, nil
}

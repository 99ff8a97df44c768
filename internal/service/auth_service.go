package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"autoClassifieds/internal/models"
	"autoClassifieds/internal/repository"
)

type LoginResult struct {
	Token   string          `json:"token"`
	Account *models.Account `json:"account"`
}

type AuthService interface {
	CheckEmail(ctx context.Context, email string) (bool, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	CurrentAccount(ctx context.Context, identity models.Identity) (*models.Account, error)
	SeedAdmin(ctx context.Context, email, password string) (bool, error)
	Authenticate(token string) (models.Identity, error)
}

type authService struct {
	accounts repository.AccountRepository
	hasher   PasswordHasher
	tokens   TokenService
}

func NewAuthService(accounts repository.AccountRepository, hasher PasswordHasher, tokens TokenService) AuthService {
	return &authService{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
	}
}

func (s *authService) CheckEmail(ctx context.Context, email string) (bool, error) {
	exists, err := s.accounts.ExistsByEmail(ctx, email)
	if err != nil {
		return false, internal(err)
	}
	return exists, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, internal(err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return nil, fmt.Errorf("invalid password for %s: %w", email, models.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(account.AccountID, account.Email, account.Role)
	if err != nil {
		return nil, internal(err)
	}

	return &LoginResult{Token: token, Account: account}, nil
}

func (s *authService) CurrentAccount(ctx context.Context, identity models.Identity) (*models.Account, error) {
	if !identity.Authenticated() {
		return nil, fmt.Errorf("authentication required: %w", models.ErrUnauthorized)
	}

	account, err := s.accounts.GetByID(ctx, identity.AccountID)
	if err != nil {
		return nil, internal(err)
	}

	return account, nil
}

// SeedAdmin creates the administrator account unless the email is already taken.
func (s *authService) SeedAdmin(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, errors.New("admin email and password are required")
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return false, err
	}

	created, err := s.accounts.CreateIfAbsent(ctx, &models.Account{
		Email:        email,
		PasswordHash: digest,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		return false, err
	}

	if created {
		log.Info().Str("email", email).Msg("administrator account created")
	} else {
		log.Info().Str("email", email).Msg("administrator account already exists")
	}

	return created, nil
}

func (s *authService) Authenticate(token string) (models.Identity, error) {
	return s.tokens.Verify(token)
}

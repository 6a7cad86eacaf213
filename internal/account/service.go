// Package account handles account signup.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/CameronXie/mealserve/internal/apperror"
	"github.com/CameronXie/mealserve/internal/domain"
	"github.com/CameronXie/mealserve/internal/repository"
)

// Repository persists accounts.
type Repository interface {
	CreateAccount(ctx context.Context, account *domain.Account) error
}

// Option configures a Service.
type Option func(*Service)

// WithInitialPoint sets the balance a new account starts with.
func WithInitialPoint(point int64) Option {
	return func(s *Service) {
		s.initialPoint = point
	}
}

// WithBcryptCost sets the bcrypt cost used to hash passwords.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

type Service struct {
	repo         Repository
	logger       *slog.Logger
	initialPoint int64
	bcryptCost   int
}

func NewService(repo Repository, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		logger:     logger,
		bcryptCost: bcrypt.DefaultCost,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Signup validates req, hashes the password and creates the account.
func (s *Service) Signup(ctx context.Context, req *SignupRequest) (*domain.Account, error) {
	if fields := ValidateSignup(req); fields != nil {
		return nil, apperror.ErrInvalidRequest.WithFields(fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Address:      req.Address,
		Phone:        req.Phone,
		IsOwner:      req.IsOwner,
		Point:        s.initialPoint,
	}

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		var dupErr *repository.DuplicateError
		if errors.As(err, &dupErr) {
			return nil, apperror.ErrDuplicateEmail.Wrap(err)
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.logger.InfoContext(ctx, "account_created", "account_id", account.ID, "role", account.Role())
	return account, nil
}

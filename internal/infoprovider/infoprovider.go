package infoprovider

import (
	"context"
	"fmt"
	"strconv"

	"github.com/CameronXie/mealserve/internal/domain"
)

// InfoProvider resolves the roles held by a subject.
type InfoProvider interface {
	GetRoles(ctx context.Context, subject string) ([]string, error)
}

// AccountRepository looks up accounts by ID.
type AccountRepository interface {
	GetAccountByID(ctx context.Context, id int64) (*domain.Account, error)
}

type accountInfoProvider struct {
	repo AccountRepository
}

// GetRoles returns the single role of the account whose ID is subject.
func (p *accountInfoProvider) GetRoles(ctx context.Context, subject string) ([]string, error) {
	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid subject %q: %w", subject, err)
	}

	account, err := p.repo.GetAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return []string{account.Role()}, nil
}

// NewAccountInfoProvider creates an InfoProvider that derives roles from stored accounts.
func NewAccountInfoProvider(repo AccountRepository) InfoProvider {
	return &accountInfoProvider{repo: repo}
}

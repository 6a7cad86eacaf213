package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/CameronXie/mealserve/internal/domain"
	"github.com/CameronXie/mealserve/internal/repository"
)

const (
	uniqueViolationCode = "23505"

	accountColumns = "id, email, password, address, phone, is_owner, point, created_at"
)

// AccountRepository provides database operations for accounts
type AccountRepository struct {
	db DBTX
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

// CreateAccount inserts account and fills in its generated ID and creation time.
func (r *AccountRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	const query = `
INSERT INTO accounts (email, password, address, phone, is_owner, point)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx,
		query,
		account.Email,
		account.PasswordHash,
		account.Address,
		account.Phone,
		account.IsOwner,
		account.Point,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return &repository.DuplicateError{
				Resource: repository.AccountResource,
				Key:      "email",
				Value:    account.Email,
			}
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetAccountByID retrieves an account by its ID.
func (r *AccountRepository) GetAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.getAccount(ctx, "SELECT "+accountColumns+" FROM accounts WHERE id = $1", id)
}

// GetAccountByIDForUpdate retrieves an account and locks its row until the transaction ends.
func (r *AccountRepository) GetAccountByIDForUpdate(ctx context.Context, id int64) (*domain.Account, error) {
	return r.getAccount(ctx, "SELECT "+accountColumns+" FROM accounts WHERE id = $1 FOR UPDATE", id)
}

// AddPoint credits amount to the account balance and returns the new balance.
// A negative amount that would take the balance below zero is rejected by the
// point >= 0 constraint.
func (r *AccountRepository) AddPoint(ctx context.Context, id, amount int64) (int64, error) {
	const query = "UPDATE accounts SET point = point + $1 WHERE id = $2 RETURNING point"

	var point int64
	err := r.db.QueryRow(ctx, query, amount, id).Scan(&point)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.NewNotFoundError(repository.AccountResource, "id", id)
		}
		return 0, fmt.Errorf("add %d point to account %d: %w", amount, id, err)
	}

	return point, nil
}

func (r *AccountRepository) getAccount(ctx context.Context, query string, id int64) (*domain.Account, error) {
	var account domain.Account
	err := r.db.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Address,
		&account.Phone,
		&account.IsOwner,
		&account.Point,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.NewNotFoundError(repository.AccountResource, "id", id)
		}
		return nil, fmt.Errorf("failed to retrieve account with id %d: %w", id, err)
	}

	return &account, nil
}

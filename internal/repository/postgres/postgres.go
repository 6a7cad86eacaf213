package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CameronXie/mealserve/internal/ordering"
)

//go:embed schema.sql
var schema string

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so repositories can run
// against the pool or inside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	return nil
}

// NewRepositories binds the order workflow repositories to db.
func NewRepositories(db DBTX) ordering.Repositories {
	return ordering.Repositories{
		Accounts: NewAccountRepository(db),
		Stores:   NewStoreRepository(db),
		Menus:    NewMenuRepository(db),
		Orders:   NewOrderRepository(db),
	}
}

// Transactor runs functions inside pgx transactions.
type Transactor struct {
	pool *pgxpool.Pool
}

// NewTransactor creates a Transactor over pool.
func NewTransactor(pool *pgxpool.Pool) *Transactor {
	return &Transactor{pool: pool}
}

// WithinTx runs fn in a read-write transaction.
func (t *Transactor) WithinTx(
	ctx context.Context,
	fn func(ctx context.Context, repos ordering.Repositories) error,
) error {
	return t.run(ctx, pgx.TxOptions{}, fn)
}

// WithinReadOnlyTx runs fn in a read-only transaction.
func (t *Transactor) WithinReadOnlyTx(
	ctx context.Context,
	fn func(ctx context.Context, repos ordering.Repositories) error,
) error {
	return t.run(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (t *Transactor) run(
	ctx context.Context,
	opts pgx.TxOptions,
	fn func(ctx context.Context, repos ordering.Repositories) error,
) error {
	tx, err := t.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// Rollback after a successful commit is a no-op.
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(ctx, NewRepositories(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/CameronXie/mealserve/internal/domain"
	"github.com/CameronXie/mealserve/internal/repository"
)

type StoreRepository struct {
	db DBTX
}

func NewStoreRepository(db DBTX) *StoreRepository {
	return &StoreRepository{db: db}
}

// GetStoreByID retrieves a store by its ID.
func (r *StoreRepository) GetStoreByID(ctx context.Context, id int64) (*domain.Store, error) {
	return r.getStore(ctx, "SELECT id, name, owner_id FROM stores WHERE id = $1", "id", id)
}

// GetStoreByOwnerID retrieves the store owned by the given account.
func (r *StoreRepository) GetStoreByOwnerID(ctx context.Context, ownerID int64) (*domain.Store, error) {
	return r.getStore(ctx, "SELECT id, name, owner_id FROM stores WHERE owner_id = $1", "owner_id", ownerID)
}

func (r *StoreRepository) getStore(ctx context.Context, query, key string, value int64) (*domain.Store, error) {
	var store domain.Store
	err := r.db.QueryRow(ctx, query, value).Scan(&store.ID, &store.Name, &store.OwnerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.NewNotFoundError(repository.StoreResource, key, value)
		}
		return nil, fmt.Errorf("query store by %s %d: %w", key, value, err)
	}

	return &store, nil
}

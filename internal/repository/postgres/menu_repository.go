package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/CameronXie/mealserve/internal/domain"
	"github.com/CameronXie/mealserve/internal/repository"
)

type MenuRepository struct {
	db DBTX
}

func NewMenuRepository(db DBTX) *MenuRepository {
	return &MenuRepository{db: db}
}

// GetMenuByIDForShare retrieves a menu and holds a share lock on it, so its
// price cannot change before the transaction ends.
func (r *MenuRepository) GetMenuByIDForShare(ctx context.Context, id int64) (*domain.Menu, error) {
	const query = "SELECT id, store_id, name, price FROM menus WHERE id = $1 FOR SHARE"

	var menu domain.Menu
	err := r.db.QueryRow(ctx, query, id).Scan(&menu.ID, &menu.StoreID, &menu.Name, &menu.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.NewNotFoundError(repository.MenuResource, "id", id)
		}
		return nil, fmt.Errorf("query menu by id %d: %w", id, err)
	}

	return &menu, nil
}

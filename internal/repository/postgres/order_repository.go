package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/CameronXie/mealserve/internal/domain"
	"github.com/CameronXie/mealserve/internal/repository"
)

const orderSelect = `
SELECT
  o.id, o.price, o.quantity, o.status, o.created_at,
  a.id, a.email, a.address, a.phone,
  m.id, m.store_id, m.name, m.price
FROM orders o
JOIN menus m ON m.id = o.menu_id
JOIN accounts a ON a.id = o.account_id
`

// OrderRepository provides database operations for orders
type OrderRepository struct {
	db DBTX
}

// NewOrderRepository creates a new OrderRepository instance
func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrder inserts order and fills in its generated ID and creation time.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	const query = `
INSERT INTO orders (account_id, menu_id, price, quantity, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx,
		query,
		order.Customer.ID,
		order.Menu.ID,
		order.Price,
		order.Quantity,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// ListOrdersByStoreID returns the orders with status placed at a store, oldest first.
func (r *OrderRepository) ListOrdersByStoreID(
	ctx context.Context,
	storeID int64,
	status domain.DeliverStatus,
) ([]domain.Order, error) {
	query := orderSelect + "WHERE m.store_id = $1 AND o.status = $2 ORDER BY o.created_at, o.id"

	rows, err := r.db.Query(ctx, query, storeID, status)
	if err != nil {
		return nil, fmt.Errorf("query orders of store %d: %w", storeID, err)
	}

	orders, err := pgx.CollectRows(rows, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("scan orders of store %d: %w", storeID, err)
	}

	return orders, nil
}

// ListOrdersByAccountIDForUpdate returns the orders with status an account
// placed at a store and locks them until the transaction ends.
func (r *OrderRepository) ListOrdersByAccountIDForUpdate(
	ctx context.Context,
	accountID, storeID int64,
	status domain.DeliverStatus,
) ([]domain.Order, error) {
	query := orderSelect + `WHERE o.account_id = $1 AND m.store_id = $2 AND o.status = $3
ORDER BY o.created_at, o.id
FOR UPDATE OF o`

	rows, err := r.db.Query(ctx, query, accountID, storeID, status)
	if err != nil {
		return nil, fmt.Errorf("query orders of account %d: %w", accountID, err)
	}

	orders, err := pgx.CollectRows(rows, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("scan orders of account %d: %w", accountID, err)
	}

	return orders, nil
}

// UpdateOrderStatus sets the status of an order.
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id int64, status domain.DeliverStatus) error {
	tag, err := r.db.Exec(ctx, "UPDATE orders SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("update status of order %d: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return repository.NewNotFoundError(repository.OrderResource, "id", id)
	}

	return nil
}

func scanOrder(row pgx.CollectableRow) (domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID,
		&order.Price,
		&order.Quantity,
		&order.Status,
		&order.CreatedAt,
		&order.Customer.ID,
		&order.Customer.Email,
		&order.Customer.Address,
		&order.Customer.Phone,
		&order.Menu.ID,
		&order.Menu.StoreID,
		&order.Menu.Name,
		&order.Menu.Price,
	)

	return order, err
}

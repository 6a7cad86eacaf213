package ordering

import (
	"context"

	"github.com/CameronXie/mealserve/internal/domain"
)

// AccountRepository reads and mutates customer accounts inside a transaction.
type AccountRepository interface {
	GetAccountByIDForUpdate(ctx context.Context, id int64) (*domain.Account, error)
	AddPoint(ctx context.Context, id int64, amount int64) (int64, error)
}

// StoreRepository resolves stores.
type StoreRepository interface {
	GetStoreByID(ctx context.Context, id int64) (*domain.Store, error)
	GetStoreByOwnerID(ctx context.Context, ownerID int64) (*domain.Store, error)
}

// MenuRepository resolves menus with a price snapshot that stays stable for the transaction.
type MenuRepository interface {
	GetMenuByIDForShare(ctx context.Context, id int64) (*domain.Menu, error)
}

// OrderRepository persists and lists orders.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	ListOrdersByStoreID(ctx context.Context, storeID int64, status domain.DeliverStatus) ([]domain.Order, error)
	ListOrdersByAccountIDForUpdate(
		ctx context.Context,
		accountID, storeID int64,
		status domain.DeliverStatus,
	) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.DeliverStatus) error
}

// Repositories groups the repositories bound to one transaction.
type Repositories struct {
	Accounts AccountRepository
	Stores   StoreRepository
	Menus    MenuRepository
	Orders   OrderRepository
}

// Transactor runs fn inside a transaction that commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	WithinReadOnlyTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

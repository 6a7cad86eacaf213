// Package ordering implements the order workflow: placing orders against a
// customer's point balance, listing pending orders of an owner's store grouped
// by customer, and completing a customer's orders.
//
// Every operation runs in a single transaction obtained from the Transactor, so
// the order rows and the balance mutation of one call are applied together or
// not at all.
package ordering

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/CameronXie/mealserve/internal/apperror"
	"github.com/CameronXie/mealserve/internal/domain"
	"github.com/CameronXie/mealserve/internal/repository"
)

const tracerName = "github.com/CameronXie/mealserve/internal/ordering"

// MaxLineItems is the largest number of line items one PlaceOrder call accepts.
const MaxLineItems = 100

// LineItem is a (menu, quantity) pair of an order request.
type LineItem struct {
	MenuID   int64
	Quantity int
}

// OrderLine is the view of one order.
type OrderLine struct {
	OrderID  int64                `json:"order_id"`
	MenuID   int64                `json:"menu_id"`
	MenuName string               `json:"menu_name"`
	Price    int64                `json:"price"`
	Quantity int                  `json:"quantity"`
	Subtotal int64                `json:"subtotal"`
	Status   domain.DeliverStatus `json:"status"`
}

// OrderSummary is the result of placing orders.
type OrderSummary struct {
	Orders     []OrderLine `json:"orders"`
	TotalPrice int64       `json:"total_price"`
}

// CustomerOrders groups the pending orders of one customer.
type CustomerOrders struct {
	Customer   domain.Customer `json:"customer"`
	Orders     []OrderLine     `json:"orders"`
	TotalPrice int64           `json:"total_price"`
}

// Option configures a Service.
type Option func(*Service)

// WithTracer overrides the tracer, which defaults to the global provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// Service orchestrates the order workflow.
type Service struct {
	tx     Transactor
	logger *slog.Logger
	tracer trace.Tracer
}

// NewService creates a Service running its operations through tx.
func NewService(tx Transactor, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		tx:     tx,
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// PlaceOrder creates one PREPARE order per line item for the customer.
// The store is resolved before any menu, and the balance is checked against
// the full total before any order is written.
func (s *Service) PlaceOrder(
	ctx context.Context,
	storeID int64,
	items []LineItem,
	customerID int64,
) (*OrderSummary, error) {
	ctx, span := s.tracer.Start(ctx, "ordering.PlaceOrder", trace.WithAttributes(
		attribute.Int64("store.id", storeID),
		attribute.Int64("account.id", customerID),
		attribute.Int("line_items", len(items)),
	))
	defer span.End()

	if err := validateLineItems(items); err != nil {
		return nil, recordError(span, err)
	}

	var summary *OrderSummary
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		if _, err := repos.Stores.GetStoreByID(ctx, storeID); err != nil {
			return translateNotFound(err, apperror.ErrStoreNotFound)
		}

		customer, err := repos.Accounts.GetAccountByIDForUpdate(ctx, customerID)
		if err != nil {
			return translateNotFound(err, apperror.ErrAccountNotFound)
		}

		orders := make([]*domain.Order, 0, len(items))
		var total int64
		for _, item := range items {
			menu, err := findMenu(ctx, repos.Menus, storeID, item.MenuID)
			if err != nil {
				return err
			}

			order := domain.NewOrder(customer.ID, *menu, item.Quantity)
			// A total past int64 exceeds any balance.
			if total, err = addSubtotal(total, order); err != nil {
				return apperror.ErrInsufficientPoint.Wrap(err)
			}
			orders = append(orders, order)
		}

		if !customer.HasEnoughPoint(total) {
			return apperror.ErrInsufficientPoint
		}

		lines := make([]OrderLine, 0, len(orders))
		for _, order := range orders {
			if err := repos.Orders.CreateOrder(ctx, order); err != nil {
				return fmt.Errorf("create order for menu %d: %w", order.Menu.ID, err)
			}
			lines = append(lines, newOrderLine(order))
		}

		summary = &OrderSummary{Orders: lines, TotalPrice: total}
		return nil
	})
	if err != nil {
		return nil, recordError(span, err)
	}

	s.logger.InfoContext(ctx, "order_placed",
		"store_id", storeID,
		"account_id", customerID,
		"orders", len(summary.Orders),
		"total_price", summary.TotalPrice,
	)

	return summary, nil
}

// ListPendingOrdersForOwner returns the PREPARE orders of the owner's store,
// one entry per customer in order of first appearance.
func (s *Service) ListPendingOrdersForOwner(ctx context.Context, ownerID int64) ([]CustomerOrders, error) {
	ctx, span := s.tracer.Start(ctx, "ordering.ListPendingOrdersForOwner", trace.WithAttributes(
		attribute.Int64("owner.id", ownerID),
	))
	defer span.End()

	var result []CustomerOrders
	err := s.tx.WithinReadOnlyTx(ctx, func(ctx context.Context, repos Repositories) error {
		store, err := repos.Stores.GetStoreByOwnerID(ctx, ownerID)
		if err != nil {
			return translateNotFound(err, apperror.ErrStoreNotFound)
		}

		orders, err := repos.Orders.ListOrdersByStoreID(ctx, store.ID, domain.DeliverStatusPrepare)
		if err != nil {
			return fmt.Errorf("list orders of store %d: %w", store.ID, err)
		}

		result = groupByCustomer(orders)
		return nil
	})
	if err != nil {
		return nil, recordError(span, err)
	}

	return result, nil
}

// CompleteOrders completes every PREPARE order the customer placed at the
// owner's store and credits the customer with their total. Orders of other
// stores and orders already completed are left untouched.
func (s *Service) CompleteOrders(ctx context.Context, ownerID, accountID int64) error {
	ctx, span := s.tracer.Start(ctx, "ordering.CompleteOrders", trace.WithAttributes(
		attribute.Int64("owner.id", ownerID),
		attribute.Int64("account.id", accountID),
	))
	defer span.End()

	var completed int
	var credited, balance int64
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		store, err := repos.Stores.GetStoreByOwnerID(ctx, ownerID)
		if err != nil {
			return translateNotFound(err, apperror.ErrStoreNotFound)
		}

		orders, err := repos.Orders.ListOrdersByAccountIDForUpdate(ctx, accountID, store.ID, domain.DeliverStatusPrepare)
		if err != nil {
			return fmt.Errorf("list orders of account %d: %w", accountID, err)
		}

		if len(orders) == 0 {
			return nil
		}

		var total int64
		for i := range orders {
			order := &orders[i]
			if err := order.Complete(); err != nil {
				return fmt.Errorf("complete order %d: %w", order.ID, err)
			}

			if err := repos.Orders.UpdateOrderStatus(ctx, order.ID, order.Status); err != nil {
				return fmt.Errorf("update order %d: %w", order.ID, err)
			}

			if total, err = addSubtotal(total, order); err != nil {
				return fmt.Errorf("credit order %d: %w", order.ID, err)
			}
		}

		balance, err = repos.Accounts.AddPoint(ctx, accountID, total)
		if err != nil {
			return translateNotFound(err, apperror.ErrAccountNotFound)
		}

		completed = len(orders)
		credited = total
		return nil
	})
	if err != nil {
		return recordError(span, err)
	}

	s.logger.InfoContext(ctx, "orders_completed",
		"owner_id", ownerID,
		"account_id", accountID,
		"orders", completed,
		"credited_point", credited,
		"point", balance,
	)

	return nil
}

// groupByCustomer buckets orders by purchaser, keeping the order in which
// each customer first appears and the order of lines within a bucket.
func groupByCustomer(orders []domain.Order) []CustomerOrders {
	result := make([]CustomerOrders, 0)
	index := make(map[int64]int)

	for i := range orders {
		order := &orders[i]
		pos, ok := index[order.Customer.ID]
		if !ok {
			pos = len(result)
			index[order.Customer.ID] = pos
			result = append(result, CustomerOrders{Customer: order.Customer, Orders: []OrderLine{}})
		}

		result[pos].Orders = append(result[pos].Orders, newOrderLine(order))
		result[pos].TotalPrice += order.Subtotal()
	}

	return result
}

func findMenu(ctx context.Context, menus MenuRepository, storeID, menuID int64) (*domain.Menu, error) {
	menu, err := menus.GetMenuByIDForShare(ctx, menuID)
	if err != nil {
		return nil, translateNotFound(err, apperror.ErrMenuNotFound)
	}

	if menu.StoreID != storeID {
		return nil, apperror.ErrMenuNotFound.Wrap(
			fmt.Errorf("menu %d belongs to store %d, not %d", menu.ID, menu.StoreID, storeID),
		)
	}

	return menu, nil
}

func addSubtotal(total int64, order *domain.Order) (int64, error) {
	subtotal, err := order.CheckedSubtotal()
	if err != nil {
		return 0, err
	}

	return domain.AddAmount(total, subtotal)
}

func validateLineItems(items []LineItem) error {
	switch {
	case len(items) == 0:
		return apperror.ErrInvalidRequest.WithFields(map[string]string{"items": "at least one item is required"})
	case len(items) > MaxLineItems:
		return apperror.ErrInvalidRequest.WithFields(map[string]string{
			"items": fmt.Sprintf("at most %d items are allowed", MaxLineItems),
		})
	}

	for i, item := range items {
		if item.Quantity < 1 || item.Quantity > domain.MaxQuantity {
			return apperror.ErrInvalidRequest.WithFields(map[string]string{
				fmt.Sprintf("items[%d].quantity", i): fmt.Sprintf("must be between 1 and %d", domain.MaxQuantity),
			})
		}
	}

	return nil
}

func newOrderLine(order *domain.Order) OrderLine {
	return OrderLine{
		OrderID:  order.ID,
		MenuID:   order.Menu.ID,
		MenuName: order.Menu.Name,
		Price:    order.Price,
		Quantity: order.Quantity,
		Subtotal: order.Subtotal(),
		Status:   order.Status,
	}
}

// translateNotFound maps a repository not found error to appErr and passes other errors through.
func translateNotFound(err error, appErr *apperror.Error) error {
	var notFoundErr *repository.NotFoundError
	if errors.As(err, &notFoundErr) {
		return appErr.Wrap(err)
	}

	return err
}

func recordError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

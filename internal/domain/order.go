package domain

import (
	"errors"
	"math"
	"time"
)

// MaxQuantity is the largest quantity a single order can carry.
const MaxQuantity = math.MaxInt32

// DeliverStatus is the fulfillment state of an order.
type DeliverStatus string

const (
	DeliverStatusPrepare  DeliverStatus = "PREPARE"
	DeliverStatusComplete DeliverStatus = "COMPLETE"
)

// ErrOrderNotPreparing is returned when completing an order that is not in PREPARE.
var ErrOrderNotPreparing = errors.New("order is not in PREPARE status")

// ErrAmountOverflow is returned when a point amount does not fit in an int64.
var ErrAmountOverflow = errors.New("point amount overflows")

// Customer is the purchaser data an owner needs to deliver an order.
type Customer struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Order is one line item placed by a customer.
// Price is the menu price captured when the order was placed.
type Order struct {
	ID        int64
	Customer  Customer
	Menu      Menu
	Price     int64
	Quantity  int
	Status    DeliverStatus
	CreatedAt time.Time
}

// NewOrder creates an order in PREPARE status, capturing the current menu price.
func NewOrder(customerID int64, menu Menu, quantity int) *Order {
	return &Order{
		Customer: Customer{ID: customerID},
		Menu:     menu,
		Price:    menu.Price,
		Quantity: quantity,
		Status:   DeliverStatusPrepare,
	}
}

// Subtotal returns price x quantity. Use CheckedSubtotal for orders not yet
// validated.
func (o *Order) Subtotal() int64 {
	return o.Price * int64(o.Quantity)
}

// CheckedSubtotal returns price x quantity, or ErrAmountOverflow when the
// product does not fit in an int64 or either factor is negative.
func (o *Order) CheckedSubtotal() (int64, error) {
	if o.Price < 0 || o.Quantity < 0 {
		return 0, ErrAmountOverflow
	}
	if o.Quantity != 0 && o.Price > math.MaxInt64/int64(o.Quantity) {
		return 0, ErrAmountOverflow
	}

	return o.Price * int64(o.Quantity), nil
}

// AddAmount returns a + b for non-negative amounts, or ErrAmountOverflow.
func AddAmount(a, b int64) (int64, error) {
	if a < 0 || b < 0 || a > math.MaxInt64-b {
		return 0, ErrAmountOverflow
	}

	return a + b, nil
}

// Complete moves the order from PREPARE to COMPLETE.
func (o *Order) Complete() error {
	if o.Status != DeliverStatusPrepare {
		return ErrOrderNotPreparing
	}

	o.Status = DeliverStatusComplete
	return nil
}

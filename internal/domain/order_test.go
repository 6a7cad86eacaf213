package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOrder(t *testing.T) {
	menu := Menu{ID: 7, StoreID: 3, Name: "Bibimbap", Price: 12}

	order := NewOrder(42, menu, 3)

	assert.Equal(t, int64(42), order.Customer.ID)
	assert.Equal(t, menu, order.Menu)
	assert.Equal(t, int64(12), order.Price)
	assert.Equal(t, 3, order.Quantity)
	assert.Equal(t, DeliverStatusPrepare, order.Status)
	assert.Equal(t, int64(36), order.Subtotal())
}

func TestOrder_CheckedSubtotal(t *testing.T) {
	testCases := map[string]struct {
		price         int64
		quantity      int
		expected      int64
		expectedError error
	}{
		"should multiply price and quantity": {price: 12, quantity: 3, expected: 36},
		"should allow zero price":            {price: 0, quantity: MaxQuantity, expected: 0},
		"should allow largest exact product": {price: math.MaxInt64 / MaxQuantity, quantity: MaxQuantity, expected: (math.MaxInt64 / MaxQuantity) * MaxQuantity},
		"should reject product above int64": {
			price:         5_000_000_000,
			quantity:      2_000_000_000,
			expectedError: ErrAmountOverflow,
		},
		"should reject negative price": {price: -1, quantity: 1, expectedError: ErrAmountOverflow},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			order := &Order{Price: tc.price, Quantity: tc.quantity}

			subtotal, err := order.CheckedSubtotal()

			assert.ErrorIs(t, err, tc.expectedError)
			assert.Equal(t, tc.expected, subtotal)
		})
	}
}

func TestAddAmount(t *testing.T) {
	testCases := map[string]struct {
		a, b          int64
		expected      int64
		expectedError error
	}{
		"should add amounts":           {a: 20, b: 5, expected: 25},
		"should allow sum at the limit": {a: math.MaxInt64 - 1, b: 1, expected: math.MaxInt64},
		"should reject sum above int64": {a: math.MaxInt64, b: 1, expectedError: ErrAmountOverflow},
		"should reject negative amount": {a: 10, b: -1, expectedError: ErrAmountOverflow},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			sum, err := AddAmount(tc.a, tc.b)

			assert.ErrorIs(t, err, tc.expectedError)
			assert.Equal(t, tc.expected, sum)
		})
	}
}

func TestOrder_Complete(t *testing.T) {
	testCases := map[string]struct {
		status         DeliverStatus
		expectedStatus DeliverStatus
		expectedError  error
	}{
		"should complete order in PREPARE status": {
			status:         DeliverStatusPrepare,
			expectedStatus: DeliverStatusComplete,
		},
		"should reject order already completed": {
			status:         DeliverStatusComplete,
			expectedStatus: DeliverStatusComplete,
			expectedError:  ErrOrderNotPreparing,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			order := &Order{Status: tc.status}

			err := order.Complete()

			assert.ErrorIs(t, err, tc.expectedError)
			assert.Equal(t, tc.expectedStatus, order.Status)
		})
	}
}

func TestAccount_Role(t *testing.T) {
	assert.Equal(t, RoleOwner, (&Account{IsOwner: true}).Role())
	assert.Equal(t, RoleCustomer, (&Account{}).Role())
}

func TestAccount_HasEnoughPoint(t *testing.T) {
	testCases := map[string]struct {
		point    int64
		amount   int64
		expected bool
	}{
		"should allow amount below balance": {point: 30, amount: 25, expected: true},
		"should allow amount equal to balance": {point: 25, amount: 25, expected: true},
		"should reject amount above balance":  {point: 24, amount: 25, expected: false},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			account := &Account{Point: tc.point}
			assert.Equal(t, tc.expected, account.HasEnoughPoint(tc.amount))
		})
	}
}

package domain

import "time"

const (
	RoleOwner    = "owner"
	RoleCustomer = "customer"
)

// Account is a customer or store owner with a point balance.
type Account struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	IsOwner      bool      `json:"is_owner"`
	Point        int64     `json:"point"`
	CreatedAt    time.Time `json:"created_at"`
}

// Role returns the access control role of the account.
func (a *Account) Role() string {
	if a.IsOwner {
		return RoleOwner
	}

	return RoleCustomer
}

// HasEnoughPoint reports whether the balance covers amount.
func (a *Account) HasEnoughPoint(amount int64) bool {
	return a.Point >= amount
}

package repository

import (
	"fmt"
)

const (
	AccountResource = "account"
	StoreResource   = "store"
	MenuResource    = "menu"
	OrderResource   = "order"
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	Key      string
	Value    string
}

// NewNotFoundError builds a NotFoundError, formatting value with %v.
func NewNotFoundError(resource, key string, value any) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Key:      key,
		Value:    fmt.Sprint(value),
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with %s %s not found", e.Resource, e.Key, e.Value)
}

// DuplicateError is returned when a unique constraint rejects a write.
type DuplicateError struct {
	Resource string
	Key      string
	Value    string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with %s %s already exists", e.Resource, e.Key, e.Value)
}

// Package apperror defines the structured errors returned by the services to the HTTP layer.
package apperror

import (
	"errors"
	"fmt"
)

// Code identifies an error kind.
type Code string

const (
	CodeStoreNotFound     Code = "STORE_NOT_FOUND"
	CodeMenuNotFound      Code = "MENU_NOT_FOUND"
	CodeAccountNotFound   Code = "ACCOUNT_NOT_FOUND"
	CodeInsufficientPoint Code = "INSUFFICIENT_POINT"
	CodeDuplicateEmail    Code = "DUPLICATE_EMAIL"
	CodeInvalidRequest    Code = "INVALID_REQUEST"
)

var (
	ErrStoreNotFound     = New(CodeStoreNotFound, "store not found")
	ErrMenuNotFound      = New(CodeMenuNotFound, "menu not found")
	ErrAccountNotFound   = New(CodeAccountNotFound, "account not found")
	ErrInsufficientPoint = New(CodeInsufficientPoint, "insufficient point")
	ErrDuplicateEmail    = New(CodeDuplicateEmail, "email is already registered")
	ErrInvalidRequest    = New(CodeInvalidRequest, "invalid request")
)

// Error carries a code, a user facing message and optional per-field details.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	Err     error
}

// New creates an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Code == e.Code
}

// Wrap returns a copy of e with cause attached.
func (e *Error) Wrap(cause error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Fields: e.Fields, Err: cause}
}

// WithFields returns a copy of e carrying per-field messages.
func (e *Error) WithFields(fields map[string]string) *Error {
	return &Error{Code: e.Code, Message: e.Message, Fields: fields, Err: e.Err}
}

// CodeOf extracts the code of err, or an empty code when err is not an *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ""
}

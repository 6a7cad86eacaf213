package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Error(t *testing.T) {
	testCases := map[string]struct {
		err      error
		expected string
	}{
		"should format error message with all fields": {
			err: &NotFoundError{
				Resource: AccountResource,
				Key:      "email",
				Value:    "john.doe@example.com",
			},
			expected: "account with email john.doe@example.com not found",
		},
		"should format numeric value": {
			err:      NewNotFoundError(StoreResource, "owner_id", int64(12)),
			expected: "store with owner_id 12 not found",
		},
		"should format duplicate error": {
			err: &DuplicateError{
				Resource: AccountResource,
				Key:      "email",
				Value:    "jane@example.com",
			},
			expected: "account with email jane@example.com already exists",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			result := tc.err.Error()
			assert.Equal(t, tc.expected, result)
		})
	}
}

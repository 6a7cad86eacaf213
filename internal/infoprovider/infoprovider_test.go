package infoprovider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/CameronXie/mealserve/internal/domain"
	"github.com/CameronXie/mealserve/internal/repository"
)

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) GetAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func TestAccountInfoProvider_GetRoles(t *testing.T) {
	testCases := map[string]struct {
		subject       string
		account       *domain.Account
		repoErr       error
		expectedRoles []string
		expectedError string
	}{
		"should return owner role": {
			subject:       "7",
			account:       &domain.Account{ID: 7, IsOwner: true},
			expectedRoles: []string{domain.RoleOwner},
		},
		"should return customer role": {
			subject:       "42",
			account:       &domain.Account{ID: 42},
			expectedRoles: []string{domain.RoleCustomer},
		},
		"should reject non numeric subject": {
			subject:       "alice",
			expectedError: `invalid subject "alice": strconv.ParseInt: parsing "alice": invalid syntax`,
		},
		"should return repository error": {
			subject:       "99",
			repoErr:       repository.NewNotFoundError(repository.AccountResource, "id", 99),
			expectedError: "account with id 99 not found",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			repo := new(mockAccountRepository)
			repo.On("GetAccountByID", mock.Anything, mock.Anything).Return(tc.account, tc.repoErr)

			roles, err := NewAccountInfoProvider(repo).GetRoles(context.Background(), tc.subject)

			if tc.expectedError != "" {
				assert.EqualError(t, err, tc.expectedError)
				assert.Nil(t, roles)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expectedRoles, roles)
		})
	}
}

package opa

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/CameronXie/mealserve/internal/decisionmaker"
	"github.com/CameronXie/mealserve/policies"
)

type MockPolicyRetriever struct {
	mock.Mock
}

func (m *MockPolicyRetriever) GetPolicy() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func TestMakeDecision(t *testing.T) {
	cases := map[string]struct {
		mockPolicy string
		errPolicy  error
		query      string
		request    *decisionmaker.DecisionRequest
		expected   bool
		wantErr    string
	}{
		"customer places order": {
			mockPolicy: policies.RegoPolicy,
			query:      policies.RegoQuery,
			request: &decisionmaker.DecisionRequest{
				Subject:  "42",
				Roles:    []string{"customer"},
				Action:   "post",
				Resource: "/api/v1/stores/3/orders",
			},
			expected: true,
		},
		"owner completes orders": {
			mockPolicy: policies.RegoPolicy,
			query:      policies.RegoQuery,
			request: &decisionmaker.DecisionRequest{
				Subject:  "7",
				Roles:    []string{"owner"},
				Action:   "post",
				Resource: "/api/v1/owner/customers/42/orders/complete",
			},
			expected: true,
		},
		"customer cannot list owner orders": {
			mockPolicy: policies.RegoPolicy,
			query:      policies.RegoQuery,
			request: &decisionmaker.DecisionRequest{
				Subject:  "42",
				Roles:    []string{"customer"},
				Action:   "get",
				Resource: "/api/v1/owner/orders",
			},
			expected: false,
		},
		"glob does not cross path segments": {
			mockPolicy: policies.RegoPolicy,
			query:      policies.RegoQuery,
			request: &decisionmaker.DecisionRequest{
				Subject:  "42",
				Roles:    []string{"customer"},
				Action:   "post",
				Resource: "/api/v1/stores/3/extra/orders",
			},
			expected: false,
		},
		"no roles": {
			mockPolicy: policies.RegoPolicy,
			query:      policies.RegoQuery,
			request: &decisionmaker.DecisionRequest{
				Subject:  "42",
				Action:   "get",
				Resource: "/api/v1/owner/orders",
			},
			expected: false,
		},
		"Policy retriever error": {
			errPolicy: errors.New("some error"),
			query:     policies.RegoQuery,
			request:   &decisionmaker.DecisionRequest{},
			expected:  false,
			wantErr:   "failed to get policy: some error",
		},
		"Query initialisation error": {
			mockPolicy: "",
			query:      policies.RegoQuery,
			request:    &decisionmaker.DecisionRequest{},
			expected:   false,
			wantErr:    "failed to prepare query:",
		},
		"Undefined query": {
			mockPolicy: policies.RegoPolicy,
			query:      "data.mealserve.rbac.missing",
			request:    &decisionmaker.DecisionRequest{},
			expected:   false,
			wantErr:    "failed to evaluate query: no result for data.mealserve.rbac.missing",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			policyRetrieverMock := new(MockPolicyRetriever)
			policyRetrieverMock.On("GetPolicy").Return(tc.mockPolicy, tc.errPolicy)
			decisionMaker := NewDecisionMaker(policyRetrieverMock, tc.query)

			got, err := decisionMaker.MakeDecision(context.TODO(), tc.request)

			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tc.expected, got)
		})
	}
}

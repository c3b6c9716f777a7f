package dto_test

import (
	"encoding/json"
	"testing"

	"customer-service/internal/api/handler/dto"
	"customer-service/internal/domain/customer"
	"customer-service/internal/domain/loan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRequestValidate(t *testing.T) {
	testCases := []struct {
		name        string
		request     dto.CustomerRequest
		expectedErr string
	}{
		{
			name:    "Valid Request",
			request: dto.CustomerRequest{Name: "Ada", Email: "ada@x.com", Phone: "555"},
		},
		{
			name:        "Missing Name",
			request:     dto.CustomerRequest{Email: "ada@x.com", Phone: "555"},
			expectedErr: "name is required",
		},
		{
			name:        "Missing Email",
			request:     dto.CustomerRequest{Name: "Ada", Phone: "555"},
			expectedErr: "email is required",
		},
		{
			name:        "Malformed Email",
			request:     dto.CustomerRequest{Name: "Ada", Email: "not-an-email", Phone: "555"},
			expectedErr: "email should be valid",
		},
		{
			name:        "Missing Phone",
			request:     dto.CustomerRequest{Name: "Ada", Email: "ada@x.com"},
			expectedErr: "phone is required",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.request.Validate()
			if tc.expectedErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.EqualError(t, err, tc.expectedErr)
		})
	}
}

func TestNewCustomerResponse(t *testing.T) {
	t.Run("Maps Domain Fields", func(t *testing.T) {
		cust := &customer.Customer{ID: 7, Name: "Ada", Email: "ada@x.com", Phone: "555"}

		resp := dto.NewCustomerResponse(cust)

		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, "Ada", resp.Name)
		assert.Equal(t, "ada@x.com", resp.Email)
		assert.Equal(t, "555", resp.Phone)
	})

	t.Run("Nil Customer Yields Zero Value", func(t *testing.T) {
		resp := dto.NewCustomerResponse(nil)
		assert.Equal(t, dto.CustomerResponse{}, resp)
	})
}

func TestNewCustomerDetailsResponse(t *testing.T) {
	t.Run("Loan Payload Passed Through Untouched", func(t *testing.T) {
		details := &customer.CustomerDetails{
			Customer: &customer.Customer{ID: 42, Name: "Ada", Email: "ada@x.com", Phone: "555"},
			Loan:     loan.Loan(`{"amount":1000,"status":"ACTIVE"}`),
		}

		resp := dto.NewCustomerDetailsResponse(details)

		encoded, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"customer":{"id":42,"name":"Ada","email":"ada@x.com","phone":"555"},"loan":{"amount":1000,"status":"ACTIVE"}}`,
			string(encoded))
	})

	t.Run("Empty Loan Encodes As Null", func(t *testing.T) {
		details := &customer.CustomerDetails{
			Customer: &customer.Customer{ID: 42, Name: "Ada", Email: "ada@x.com", Phone: "555"},
		}

		resp := dto.NewCustomerDetailsResponse(details)

		encoded, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"customer":{"id":42,"name":"Ada","email":"ada@x.com","phone":"555"},"loan":null}`,
			string(encoded))
	})
}

package loan_test

import (
	"encoding/json"
	"testing"

	"customer-service/internal/domain/loan"

	"github.com/stretchr/testify/assert"
)

func TestLoanMarshalJSON(t *testing.T) {
	t.Run("Passes Payload Through Unchanged", func(t *testing.T) {
		payload := loan.Loan(`{"amount":1000,"termWeeks":50}`)

		out, err := json.Marshal(payload)

		assert.NoError(t, err)
		assert.JSONEq(t, `{"amount":1000,"termWeeks":50}`, string(out))
	})

	t.Run("Empty Loan Marshals As Null", func(t *testing.T) {
		out, err := json.Marshal(loan.Loan(nil))

		assert.NoError(t, err)
		assert.Equal(t, "null", string(out))
	})
}

func TestLoanUnmarshalJSON(t *testing.T) {
	var l loan.Loan
	err := json.Unmarshal([]byte(`{"amount":1000}`), &l)

	assert.NoError(t, err)
	assert.JSONEq(t, `{"amount":1000}`, string(l))
}

package loan

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrLookup indicates the loan-service call failed, either at the transport
// level or with a non-success response. Callers do not distinguish the two.
var ErrLookup = errors.New("loan lookup failed")

// Loan is the payload returned by the loan-service for a customer. It is
// owned by the peer service and relayed as-is, never persisted or validated
// here.
type Loan json.RawMessage

func (l Loan) MarshalJSON() ([]byte, error) {
	if len(l) == 0 {
		return []byte("null"), nil
	}
	return json.RawMessage(l).MarshalJSON()
}

func (l *Loan) UnmarshalJSON(data []byte) error {
	return (*json.RawMessage)(l).UnmarshalJSON(data)
}

// LookupClient resolves the loan belonging to a customer via the gateway.
type LookupClient interface {
	GetLoanForCustomer(ctx context.Context, customerID int64) (Loan, error)
}

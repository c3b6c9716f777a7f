package customer

import "customer-service/internal/domain/loan"

type Customer struct {
	ID    int64
	Name  string
	Email string
	Phone string
}

// CustomerDetails pairs a customer with the loan fetched from the
// loan-service. Built per request, never stored.
type CustomerDetails struct {
	Customer *Customer
	Loan     loan.Loan
}

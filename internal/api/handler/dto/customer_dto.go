package dto

import (
	"encoding/json"
	"errors"
	"time"

	"customer-service/internal/domain/customer"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type CustomerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

// Validate mirrors the field-level messages surfaced to API clients.
func (r *CustomerRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		switch {
		case fe.Field() == "Name":
			return errors.New("name is required")
		case fe.Field() == "Email" && fe.Tag() == "required":
			return errors.New("email is required")
		case fe.Field() == "Email":
			return errors.New("email should be valid")
		case fe.Field() == "Phone":
			return errors.New("phone is required")
		}
	}
	return err
}

type CustomerResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}
	return CustomerResponse{
		ID:    cust.ID,
		Name:  cust.Name,
		Email: cust.Email,
		Phone: cust.Phone,
	}
}

type CustomerDetailsResponse struct {
	Customer CustomerResponse `json:"customer"`
	Loan     json.RawMessage  `json:"loan"`
}

func NewCustomerDetailsResponse(details *customer.CustomerDetails) CustomerDetailsResponse {
	if details == nil {
		return CustomerDetailsResponse{}
	}
	loanPayload := json.RawMessage(details.Loan)
	if len(loanPayload) == 0 {
		loanPayload = json.RawMessage("null")
	}
	return CustomerDetailsResponse{
		Customer: NewCustomerResponse(details.Customer),
		Loan:     loanPayload,
	}
}

// ErrorResponse is the error body shape shared by all endpoints.
type ErrorResponse struct {
	Time    time.Time `json:"time"`
	Status  int       `json:"status"`
	Message string    `json:"message"`
	Path    string    `json:"path"`
}

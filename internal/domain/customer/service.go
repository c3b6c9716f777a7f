package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"os"
	"strings"

	"customer-service/internal/domain/loan"
	"customer-service/internal/pkg/apperrors"
)

const customerNotFoundMsg = "Customer not found: %d"

type CustomerService interface {
	CreateCustomer(ctx context.Context, name, email, phone string) (*Customer, error)
	GetAllCustomers(ctx context.Context) ([]*Customer, error)
	GetCustomerByID(ctx context.Context, customerID int64) (*Customer, error)
	UpdateCustomer(ctx context.Context, customerID int64, name, email, phone string) (*Customer, error)
	DeleteCustomer(ctx context.Context, customerID int64) error
	GetCustomerDetails(ctx context.Context, customerID int64) (*CustomerDetails, error)
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   CustomerRepository
	loans  loan.LookupClient
	logger *slog.Logger
}

func NewCustomerService(repo CustomerRepository, loans loan.LookupClient, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if loans == nil {
		panic("loan lookup client cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	return &customerService{
		repo:   repo,
		loans:  loans,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

// validateInput checks presence of all three fields and email syntax. It runs
// before any repository call so an invalid request never partially persists.
func validateInput(name, email, phone string) (string, string, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if name == "" {
		return "", "", "", apperrors.NewValidationError("name", "name is required")
	}
	if email == "" {
		return "", "", "", apperrors.NewValidationError("email", "email is required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return "", "", "", apperrors.NewValidationError("email", "email should be valid")
	}
	if phone == "" {
		return "", "", "", apperrors.NewValidationError("phone", "phone is required")
	}
	return name, email, phone, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, apperrors.ErrNotFound)
}

func (s *customerService) CreateCustomer(ctx context.Context, name, email, phone string) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to create new customer")

	name, email, phone, err := validateInput(name, email, phone)
	if err != nil {
		s.logger.WarnContext(ctx, "Validation failed for create customer", slog.Any("error", err))
		return nil, err
	}

	cust := &Customer{
		Name:  name,
		Email: email,
		Phone: phone,
	}

	if err := s.repo.Save(ctx, cust); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully created new customer", slog.Int64("customerID", cust.ID))
	return cust, nil
}

func (s *customerService) GetAllCustomers(ctx context.Context) ([]*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to list all customers")

	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID int64) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to get customer by ID", slog.Int64("customerID", customerID))

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if isNotFound(err) {
			s.logger.WarnContext(ctx, "Customer not found by repository", slog.Int64("customerID", customerID))
			return nil, apperrors.NewNotFoundError(customerNotFoundMsg, customerID)
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved customer")
	return cust, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID int64, name, email, phone string) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to update customer", slog.Int64("customerID", customerID))

	name, email, phone, err := validateInput(name, email, phone)
	if err != nil {
		s.logger.WarnContext(ctx, "Validation failed for update customer", slog.Any("error", err))
		return nil, err
	}

	// Existence check before any write; the fetched row is the one mutated.
	existing, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if isNotFound(err) {
			s.logger.WarnContext(ctx, "Customer not found by repository for update", slog.Int64("customerID", customerID))
			return nil, apperrors.NewNotFoundError(customerNotFoundMsg, customerID)
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer for update", slog.Any("error", err))
		return nil, fmt.Errorf("cannot find customer %d to update: %w", customerID, err)
	}

	existing.Name = name
	existing.Email = email
	existing.Phone = phone

	if err := s.repo.Save(ctx, existing); err != nil {
		if isNotFound(err) {
			s.logger.ErrorContext(ctx, "Customer disappeared before save completed", slog.Int64("customerID", customerID))
			return nil, apperrors.NewNotFoundError(customerNotFoundMsg, customerID)
		}
		s.logger.ErrorContext(ctx, "Repository failed to save updated customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save updated customer %d: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Successfully updated customer")
	return existing, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	s.logger.InfoContext(ctx, "Attempting to delete customer", slog.Int64("customerID", customerID))

	if err := s.repo.Delete(ctx, customerID); err != nil {
		if isNotFound(err) {
			s.logger.WarnContext(ctx, "Customer not found by repository for delete", slog.Int64("customerID", customerID))
			return apperrors.NewNotFoundError(customerNotFoundMsg, customerID)
		}
		s.logger.ErrorContext(ctx, "Repository error deleting customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Successfully deleted customer")
	return nil
}

// GetCustomerDetails performs the composed read: the local lookup always runs
// first, and the loan-service is never called for an unknown customer. The
// enrichment is all-or-nothing; a failed lookup fails the whole operation
// rather than degrading to a customer-only response.
func (s *customerService) GetCustomerDetails(ctx context.Context, customerID int64) (*CustomerDetails, error) {
	s.logger.InfoContext(ctx, "Attempting to get customer details", slog.Int64("customerID", customerID))

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if isNotFound(err) {
			s.logger.WarnContext(ctx, "Customer not found by repository for details", slog.Int64("customerID", customerID))
			return nil, apperrors.NewNotFoundError(customerNotFoundMsg, customerID)
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer for details", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Calling loan-service through gateway", slog.Int64("customerID", customerID))
	customerLoan, err := s.loans.GetLoanForCustomer(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Loan lookup failed", slog.Any("error", err))
		return nil, apperrors.WrapRemoteLookupError(err, fmt.Sprintf("failed to fetch loan for customer %d", customerID))
	}

	s.logger.InfoContext(ctx, "Successfully assembled customer details")
	return &CustomerDetails{
		Customer: cust,
		Loan:     customerLoan,
	}, nil
}

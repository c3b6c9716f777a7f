package gateway

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"strconv"
	"time"

	"customer-service/internal/domain/loan"
	"customer-service/internal/infrastructure/monitoring"
)

// LoanClient resolves loans from the loan-service through the API gateway
// with a single blocking GET per lookup. No retries, no caching.
type LoanClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

var _ loan.LookupClient = (*LoanClient)(nil)

func NewLoanClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*LoanClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return &LoanClient{
		baseURL: parsed,
		logger:  logger.With(slog.String("component", "LoanClient")),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// GetLoanForCustomer requests GET {gateway}/loans/customer/{id}. The response
// body is relayed untouched; an explicit empty payload from the remote passes
// through as an empty loan.
func (c *LoanClient) GetLoanForCustomer(ctx context.Context, customerID int64) (loan.Loan, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/loans/customer/", strconv.FormatInt(customerID, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", loan.ErrLookup, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		monitoring.RecordLoanLookup("transport_error", time.Since(start))
		c.logger.ErrorContext(ctx, "Loan lookup transport failure", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", loan.ErrLookup, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			monitoring.RecordLoanLookup("read_error", time.Since(start))
			return nil, fmt.Errorf("%w: %w", loan.ErrLookup, err)
		}
		monitoring.RecordLoanLookup("ok", time.Since(start))
		return loan.Loan(body), nil
	case http.StatusNoContent:
		monitoring.RecordLoanLookup("empty", time.Since(start))
		return loan.Loan(nil), nil
	default:
		body, _ := io.ReadAll(resp.Body)
		monitoring.RecordLoanLookup("remote_error", time.Since(start))
		c.logger.ErrorContext(ctx, "Loan lookup failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("%w: loan-service returned %s", loan.ErrLookup, resp.Status)
	}
}

// Package demand talks to remote demand-host payment-details APIs. Each
// network host that paid us exposes a paginated report of which served cases
// an incoming payment settles.
package demand

import (
	"context"
	"fmt"
	"net/url"

	"github.com/clickchain/settlement/internal/adapter"
	"github.com/clickchain/settlement/internal/domain"
)

// Client fetches payment details from a demand host.
//
//go:generate mockgen -source=demand.go -destination=../mocks/demand.go -package=mocks -mock_names=Client=MockDemandClient
type Client interface {
	// FetchPaymentDetails returns one page of the host's payment report for
	// a transaction. Returns domain.ErrEmptyInventory when the host has no
	// inventory yet and domain.ErrUnexpectedResponse on a malformed reply.
	FetchPaymentDetails(ctx context.Context, hostURL, txID string, limit, offset int) ([]domain.PaymentDetail, error)
}

type paymentDetailsResponse struct {
	Code     int                    `json:"code"`
	Message  string                 `json:"message"`
	Payments []domain.PaymentDetail `json:"payments"`
}

const codeEmptyInventory = 42201

type client struct {
	http adapter.HTTPClient
}

// NewClient creates a demand host client. Request timeouts belong to the
// HTTP client passed in.
func NewClient(http adapter.HTTPClient) Client {
	return &client{http: http}
}

// FetchPaymentDetails returns one page of the host's payment report
func (c *client) FetchPaymentDetails(ctx context.Context, hostURL, txID string, limit, offset int) ([]domain.PaymentDetail, error) {
	endpoint, err := url.JoinPath(hostURL, "api", "v1", "payment-details", url.PathEscape(txID))
	if err != nil {
		return nil, fmt.Errorf("invalid host url %s: %w", hostURL, err)
	}
	endpoint = fmt.Sprintf("%s?limit=%d&offset=%d", endpoint, limit, offset)

	var resp paymentDetailsResponse
	if err := c.http.Get(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch payment details from %s: %w", hostURL, err)
	}

	if resp.Code == codeEmptyInventory {
		return nil, fmt.Errorf("host %s has no inventory for %s: %w", hostURL, txID, domain.ErrEmptyInventory)
	}
	if resp.Code != 0 {
		return nil, fmt.Errorf("host %s returned code %d (%s): %w",
			hostURL, resp.Code, resp.Message, domain.ErrUnexpectedResponse)
	}

	for _, detail := range resp.Payments {
		if detail.CaseID == "" {
			return nil, fmt.Errorf("host %s returned a payment without case id: %w",
				hostURL, domain.ErrUnexpectedResponse)
		}
	}

	return resp.Payments, nil
}

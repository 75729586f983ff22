// Package license reads the license server's account address and fee
// coefficients. Coefficients change rarely, so reads go through a short
// in-process cache.
package license

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clickchain/settlement/internal/adapter"
	"github.com/clickchain/settlement/internal/config"
	"github.com/clickchain/settlement/internal/domain"
)

// Fee coefficient keys known to the license server
const (
	KeyLicenseFee  = "license_fee"
	KeyOperatorFee = "operator_fee"
)

// Reader provides the license account address and fee coefficients.
//
//go:generate mockgen -source=license.go -destination=../mocks/license.go -package=mocks -mock_names=Reader=MockLicenseReader
type Reader interface {
	// Address returns the account that receives license fees
	Address(ctx context.Context) (domain.AccountAddress, error)

	// Fee returns the coefficient stored under key
	Fee(ctx context.Context, key string) (decimal.Decimal, error)
}

type licenseResponse struct {
	Address domain.AccountAddress `json:"address"`
	Fees    map[string]string     `json:"fees"`
}

type reader struct {
	http  adapter.HTTPClient
	clock adapter.Clock
	url   string
	ttl   time.Duration

	mu        sync.Mutex
	cached    *licenseResponse
	fetchedAt time.Time
}

// NewReader creates a license reader with a local TTL cache
func NewReader(http adapter.HTTPClient, clock adapter.Clock, cfg config.LicenseConfig) Reader {
	return &reader{
		http:  http,
		clock: clock,
		url:   cfg.URL,
		ttl:   cfg.CacheTTL,
	}
}

func (r *reader) Address(ctx context.Context) (domain.AccountAddress, error) {
	resp, err := r.fetch(ctx)
	if err != nil {
		return "", err
	}
	if !resp.Address.Valid() {
		return "", fmt.Errorf("license server returned invalid address %q: %w",
			resp.Address, domain.ErrUnexpectedResponse)
	}
	return resp.Address.Normalize(), nil
}

func (r *reader) Fee(ctx context.Context, key string) (decimal.Decimal, error) {
	resp, err := r.fetch(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	raw, ok := resp.Fees[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("license server has no fee %q: %w",
			key, domain.ErrUnexpectedResponse)
	}

	fee, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("license fee %q is not a decimal: %w", key, err)
	}
	if fee.IsNegative() || fee.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("license fee %q out of range: %s: %w",
			key, fee, domain.ErrUnexpectedResponse)
	}

	return fee, nil
}

func (r *reader) fetch(ctx context.Context) (*licenseResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != nil && r.clock.Since(r.fetchedAt) < r.ttl {
		return r.cached, nil
	}

	var resp licenseResponse
	if err := r.http.Get(ctx, r.url, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch license data: %w", err)
	}

	r.cached = &resp
	r.fetchedAt = r.clock.Now()

	return &resp, nil
}

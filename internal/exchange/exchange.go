// Package exchange fetches clicks-to-fiat exchange rates. The withdrawal
// checker converts user balances into the configured display currency through
// these rates; rates are cached in Redis so one run does not hammer the
// provider.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/clickchain/settlement/internal/adapter"
	"github.com/clickchain/settlement/internal/config"
	"github.com/clickchain/settlement/internal/domain"
	"github.com/clickchain/settlement/internal/logger"
)

// RateReader provides exchange rates for a point in time.
//
//go:generate mockgen -source=exchange.go -destination=../mocks/exchange.go -package=mocks -mock_names=RateReader=MockRateReader
type RateReader interface {
	// FetchExchangeRate returns the rate for converting clicks into currency
	// at the given date. A zero date means the latest available rate.
	FetchExchangeRate(ctx context.Context, date time.Time, currency string) (*domain.ExchangeRate, error)
}

type httpReader struct {
	http    adapter.HTTPClient
	baseURL string
}

// NewHTTPReader creates a rate reader backed by the configured provider
func NewHTTPReader(http adapter.HTTPClient, cfg config.ExchangeConfig) RateReader {
	return &httpReader{http: http, baseURL: cfg.URL}
}

func (r *httpReader) FetchExchangeRate(ctx context.Context, date time.Time, currency string) (*domain.ExchangeRate, error) {
	params := url.Values{}
	params.Set("currency", currency)
	if !date.IsZero() {
		params.Set("date", date.UTC().Format("2006-01-02"))
	}

	var rate domain.ExchangeRate
	endpoint := fmt.Sprintf("%s?%s", r.baseURL, params.Encode())
	if err := r.http.Get(ctx, endpoint, &rate); err != nil {
		return nil, fmt.Errorf("failed to fetch exchange rate: %w", err)
	}

	if !rate.Rate.IsPositive() {
		return nil, fmt.Errorf("provider returned non-positive rate %s for %s: %w",
			rate.Rate, currency, domain.ErrUnexpectedResponse)
	}

	return &rate, nil
}

type cachedReader struct {
	next  RateReader
	redis adapter.RedisClient
	ttl   time.Duration
}

// NewCachedReader decorates a rate reader with a Redis cache. Cache failures
// fall through to the underlying reader.
func NewCachedReader(next RateReader, redis adapter.RedisClient, ttl time.Duration) RateReader {
	return &cachedReader{next: next, redis: redis, ttl: ttl}
}

func (r *cachedReader) FetchExchangeRate(ctx context.Context, date time.Time, currency string) (*domain.ExchangeRate, error) {
	key := cacheKey(date, currency)

	cached, err := r.redis.Get(ctx, key)
	if err == nil {
		var rate domain.ExchangeRate
		if err := json.Unmarshal([]byte(cached), &rate); err == nil {
			return &rate, nil
		}
		logger.Warn("discarding malformed cached exchange rate", zap.String("key", key))
	} else if !adapter.IsRedisNil(err) {
		logger.Warn("exchange rate cache read failed", zap.Error(err), zap.String("key", key))
	}

	rate, err := r.next.FetchExchangeRate(ctx, date, currency)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(rate); err == nil {
		if err := r.redis.Set(ctx, key, string(payload), r.ttl); err != nil {
			logger.Warn("exchange rate cache write failed", zap.Error(err), zap.String("key", key))
		}
	}

	return rate, nil
}

func cacheKey(date time.Time, currency string) string {
	day := "latest"
	if !date.IsZero() {
		day = date.UTC().Format("2006-01-02")
	}
	return fmt.Sprintf("settlement:exchange_rate:%s:%s", currency, day)
}

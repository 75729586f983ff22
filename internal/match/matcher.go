// Package match implements the core settlement algorithm: resolving which
// served cases an inbound ad-network payment settles, splitting every event
// value into license fee, operator fee and publisher share, and crediting
// publishers once the full payment report has been consumed. Matching is
// resumable: the consumed position in the remote report is persisted with
// each page, so an interrupted run picks up exactly where it stopped.
package match

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/clickchain/settlement/internal/adapter"
	"github.com/clickchain/settlement/internal/demand"
	"github.com/clickchain/settlement/internal/domain"
	"github.com/clickchain/settlement/internal/events"
	"github.com/clickchain/settlement/internal/fee"
	"github.com/clickchain/settlement/internal/license"
	"github.com/clickchain/settlement/internal/logger"
	"github.com/clickchain/settlement/internal/store"
	"github.com/clickchain/settlement/internal/store/schema"
)

// Config holds the matching parameters
type Config struct {
	// TryOutWindow bounds candidate retries; older candidates are reserved
	TryOutWindow time.Duration
	// PageLimit is the page size for the remote payment-details feed
	PageLimit int
	// WorkerPoolSize bounds concurrent payment processing
	WorkerPoolSize int
	// WorkerQueueSize bounds the pool's pending queue
	WorkerQueueSize int
	// Currency is the display currency recorded alongside each case payment
	Currency string
	// DefaultLicenseRate is used when the license server is unreachable
	DefaultLicenseRate decimal.Decimal
	// DefaultOperatorRate is used when the license server is unreachable
	DefaultOperatorRate decimal.Decimal
}

// FeeSenderFactory builds the license fee sender once the license address is
// known
type FeeSenderFactory func(licenseAddress domain.AccountAddress) FeeSender

// Matcher processes inbound ad-network payment candidates.
//
//go:generate mockgen -source=matcher.go -destination=../mocks/matcher.go -package=mocks -mock_names=Matcher=MockMatcher
type Matcher interface {
	// Run performs one matching pass over all candidates
	Run(ctx context.Context) error
}

type matcher struct {
	store        store.Store
	demand       demand.Client
	license      license.Reader
	exchange     exchangeReader
	clock        adapter.Clock
	recorder     events.Recorder
	feeSenderFor FeeSenderFactory
	cfg          Config
}

// exchangeReader is the slice of exchange.RateReader the matcher needs
type exchangeReader interface {
	FetchExchangeRate(ctx context.Context, date time.Time, currency string) (*domain.ExchangeRate, error)
}

// NewMatcher creates an event payment matcher
func NewMatcher(
	s store.Store,
	demandClient demand.Client,
	licenseReader license.Reader,
	exchangeReader exchangeReader,
	clock adapter.Clock,
	recorder events.Recorder,
	feeSenderFor FeeSenderFactory,
	cfg Config,
) Matcher {
	return &matcher{
		store:        s,
		demand:       demandClient,
		license:      licenseReader,
		exchange:     exchangeReader,
		clock:        clock,
		recorder:     recorder,
		feeSenderFor: feeSenderFor,
		cfg:          cfg,
	}
}

// runTerms is the per-run environment shared by all payment workers: fee
// coefficients, the exchange rate snapshot and the license fee sender.
type runTerms struct {
	licenseRate  decimal.Decimal
	operatorRate decimal.Decimal
	rate         domain.ExchangeRate
	feeSender    FeeSender
}

type runCounts struct {
	matched  atomic.Int64
	reserved atomic.Int64
	deferred atomic.Int64
	failed   atomic.Int64
}

// Run performs one matching pass. Failing to resolve the license account
// aborts the run before any candidate is touched; per-candidate failures are
// logged and the candidate retried next run.
func (m *matcher) Run(ctx context.Context) error {
	terms, err := m.loadRunTerms(ctx)
	if err != nil {
		return err
	}

	candidates, err := m.store.ListAdsPaymentsByStatus(ctx, schema.AdsPaymentStatusEventPaymentCandidate)
	if err != nil {
		return fmt.Errorf("failed to list candidates: %w", err)
	}

	logger.InfoCtx(ctx, "matching inbound payments", zap.Int("candidates", len(candidates)))

	var counts runCounts
	pool := pond.NewPool(m.cfg.WorkerPoolSize,
		pond.WithQueueSize(m.cfg.WorkerQueueSize),
		pond.WithContext(ctx),
	)

	for _, candidate := range candidates {
		payment := candidate
		pool.Submit(func() {
			m.processPayment(ctx, payment, terms, &counts)
		})
	}
	pool.StopAndWait()

	// Dues are persisted, so a failed remittance simply waits for the next run
	if err := terms.feeSender.SendAll(ctx); err != nil {
		logger.WarnCtx(ctx, "license fee payment postponed to next run", zap.Error(err))
	}

	if len(candidates) > 0 {
		if err := m.recorder.Record(ctx, schema.ServerEventTypeSupplyPaymentMatched, map[string]interface{}{
			"candidates": len(candidates),
			"matched":    counts.matched.Load(),
			"reserved":   counts.reserved.Load(),
			"deferred":   counts.deferred.Load(),
			"failed":     counts.failed.Load(),
		}); err != nil {
			logger.WarnCtx(ctx, "failed to record matching event", zap.Error(err))
		}
	}

	return nil
}

// loadRunTerms resolves the license account, fee coefficients and exchange
// rate once per run. Coefficients fall back to the configured defaults when
// the license server cannot serve them; an unknown license address aborts.
func (m *matcher) loadRunTerms(ctx context.Context) (*runTerms, error) {
	address, err := m.license.Address(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve license address: %w", err)
	}

	terms := &runTerms{
		licenseRate:  m.cfg.DefaultLicenseRate,
		operatorRate: m.cfg.DefaultOperatorRate,
		feeSender:    m.feeSenderFor(address),
	}

	if rate, err := m.license.Fee(ctx, license.KeyLicenseFee); err != nil {
		logger.WarnCtx(ctx, "using configured license rate", zap.Error(err))
	} else {
		terms.licenseRate = rate
	}
	if rate, err := m.license.Fee(ctx, license.KeyOperatorFee); err != nil {
		logger.WarnCtx(ctx, "using configured operator rate", zap.Error(err))
	} else {
		terms.operatorRate = rate
	}

	if rate, err := m.exchange.FetchExchangeRate(ctx, time.Time{}, m.cfg.Currency); err != nil {
		logger.WarnCtx(ctx, "no exchange rate for this run, recording zero fiat amounts", zap.Error(err))
		terms.rate = domain.ExchangeRate{Currency: m.cfg.Currency}
	} else {
		terms.rate = *rate
	}

	return terms, nil
}

func (m *matcher) processPayment(ctx context.Context, payment *schema.AdsPayment, terms *runTerms, counts *runCounts) {
	outcome, err := m.matchPayment(ctx, payment, terms)
	if err != nil {
		counts.failed.Add(1)
		logger.ErrorCtx(ctx, err,
			zap.Int64("ads_payment_id", payment.ID),
			zap.String("txid", payment.TxID),
		)
		return
	}

	switch outcome {
	case outcomeMatched:
		counts.matched.Add(1)
	case outcomeReserved:
		counts.reserved.Add(1)
	case outcomeDeferred:
		counts.deferred.Add(1)
	}
}

type matchOutcome int

const (
	outcomeMatched matchOutcome = iota
	outcomeReserved
	outcomeDeferred
)

// matchPayment consumes the remote payment report for one candidate from its
// persisted offset until a short page signals end of data.
func (m *matcher) matchPayment(ctx context.Context, payment *schema.AdsPayment, terms *runTerms) (matchOutcome, error) {
	if m.clock.Since(payment.CreatedAt) > m.cfg.TryOutWindow {
		logger.InfoCtx(ctx, "candidate exceeded try-out window, reserving",
			zap.Int64("ads_payment_id", payment.ID),
			zap.Time("created_at", payment.CreatedAt),
		)
		if err := m.store.UpdateAdsPaymentStatus(ctx, payment.ID, schema.AdsPaymentStatusReserved); err != nil {
			return 0, fmt.Errorf("failed to reserve expired candidate: %w", err)
		}
		return outcomeReserved, nil
	}

	host, err := m.store.GetNetworkHostByAddress(ctx, payment.Address)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve host: %w", err)
	}
	if host == nil {
		logger.InfoCtx(ctx, "sender is not a known host yet, retrying later",
			zap.Int64("ads_payment_id", payment.ID),
			zap.String("address", string(payment.Address)),
		)
		return outcomeDeferred, nil
	}

	offset := payment.LastOffset
	var licenseTotal domain.Click

	if offset > 0 {
		// Resuming: pages applied by an earlier run carry license fees too,
		// recover them so the matched payment reports its fee whole
		totals, err := m.store.GetCasePaymentTotals(ctx, payment.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to recompute totals at offset %d: %w", offset, err)
		}
		licenseTotal = totals.LicenseFee
	}

	for {
		details, err := m.demand.FetchPaymentDetails(ctx, host.HostURL, payment.TxID, m.cfg.PageLimit, offset)
		if err != nil {
			// Done for now, not fatal: the candidate keeps its offset and the
			// next run continues from here
			if errors.Is(err, domain.ErrEmptyInventory) || errors.Is(err, domain.ErrUnexpectedResponse) {
				logger.InfoCtx(ctx, "host cannot serve payment details now",
					zap.Int64("ads_payment_id", payment.ID),
					zap.Int("offset", offset),
					zap.Error(err),
				)
			} else {
				logger.WarnCtx(ctx, "payment details fetch failed, retrying next run",
					zap.Int64("ads_payment_id", payment.ID),
					zap.Int("offset", offset),
					zap.Error(err),
				)
			}
			return outcomeDeferred, nil
		}

		pageLicense, casePayments, err := m.buildCasePayments(ctx, payment, details, terms)
		if err != nil {
			return 0, err
		}

		offset += len(details)
		if err := m.store.AddCasePayments(ctx, payment.ID, casePayments, offset); err != nil {
			return 0, fmt.Errorf("failed to apply page at offset %d: %w", offset, err)
		}
		licenseTotal += pageLicense

		if len(details) < m.cfg.PageLimit {
			break
		}
	}

	credits, err := m.store.GetPublisherCredits(ctx, payment.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to compute publisher credits: %w", err)
	}

	entries := make([]*schema.LedgerEntry, 0, len(credits))
	from := payment.Address
	for _, credit := range credits {
		entries = append(entries, &schema.LedgerEntry{
			UserID:      credit.PublisherID,
			Amount:      credit.Amount,
			Status:      schema.LedgerEntryStatusAccepted,
			Type:        schema.LedgerEntryTypeAdIncome,
			AddressFrom: &from,
			TxID:        &payment.TxID,
		})
	}

	if err := m.store.FinishEventPayment(ctx, payment.ID, entries); err != nil {
		return 0, fmt.Errorf("failed to finish event payment: %w", err)
	}

	logger.InfoCtx(ctx, "inbound payment matched",
		zap.Int64("ads_payment_id", payment.ID),
		zap.String("txid", payment.TxID),
		zap.Int("publishers", len(entries)),
		zap.Int64("license_fee", licenseTotal),
	)

	return outcomeMatched, nil
}

// buildCasePayments resolves one page of detail records against locally known
// cases and fee-splits each value. Unknown cases are logged and skipped; the
// offset still advances past them.
func (m *matcher) buildCasePayments(ctx context.Context, payment *schema.AdsPayment, details []domain.PaymentDetail, terms *runTerms) (domain.Click, []*schema.NetworkCasePayment, error) {
	if len(details) == 0 {
		return 0, nil, nil
	}

	caseIDs := make([]string, 0, len(details))
	for _, detail := range details {
		caseIDs = append(caseIDs, detail.CaseID)
	}

	cases, err := m.store.GetNetworkCasesByCaseIDs(ctx, caseIDs)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to resolve cases: %w", err)
	}
	byCaseID := make(map[string]*schema.NetworkCase, len(cases))
	for _, networkCase := range cases {
		byCaseID[networkCase.CaseID] = networkCase
	}

	now := m.clock.Now().UTC()
	var pageLicense domain.Click
	casePayments := make([]*schema.NetworkCasePayment, 0, len(details))

	for _, detail := range details {
		networkCase, ok := byCaseID[detail.CaseID]
		if !ok {
			logger.WarnCtx(ctx, "skipping detail for unknown case",
				zap.Int64("ads_payment_id", payment.ID),
				zap.String("case_id", detail.CaseID),
			)
			continue
		}

		licenseFee, operatorFee, paid := fee.Split(detail.EventValue, terms.licenseRate, terms.operatorRate)
		pageLicense += licenseFee

		casePayments = append(casePayments, &schema.NetworkCasePayment{
			NetworkCaseID:      networkCase.ID,
			AdsPaymentID:       payment.ID,
			PayTime:            now,
			TotalAmount:        detail.EventValue,
			LicenseFee:         licenseFee,
			OperatorFee:        operatorFee,
			PaidAmount:         paid,
			ExchangeRate:       terms.rate.Rate,
			PaidAmountCurrency: terms.rate.ToCurrency(paid),
		})
	}

	return pageLicense, casePayments, nil
}

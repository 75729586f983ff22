package match

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clickchain/settlement/internal/domain"
	"github.com/clickchain/settlement/internal/license"
	"github.com/clickchain/settlement/internal/mocks"
	"github.com/clickchain/settlement/internal/store"
	"github.com/clickchain/settlement/internal/store/schema"
)

const (
	hostAddress    = domain.AccountAddress("0002-00000010-73F2")
	licenseAddress = domain.AccountAddress("0006-00000001-2B5C")
)

type fakeFeeSender struct {
	mu   sync.Mutex
	sent bool
}

func (f *fakeFeeSender) SendAll(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = true
	return nil
}

type matcherMocks struct {
	store     *mocks.MockStore
	demand    *mocks.MockDemandClient
	license   *mocks.MockLicenseReader
	exchange  *mocks.MockRateReader
	clock     *mocks.MockClock
	recorder  *mocks.MockEventRecorder
	feeSender *fakeFeeSender
}

func newTestMatcher(t *testing.T, pageLimit int) (*matcherMocks, Matcher) {
	ctrl := gomock.NewController(t)
	m := &matcherMocks{
		store:     mocks.NewMockStore(ctrl),
		demand:    mocks.NewMockDemandClient(ctrl),
		license:   mocks.NewMockLicenseReader(ctrl),
		exchange:  mocks.NewMockRateReader(ctrl),
		clock:     mocks.NewMockClock(ctrl),
		recorder:  mocks.NewMockEventRecorder(ctrl),
		feeSender: &fakeFeeSender{},
	}

	matcher := NewMatcher(m.store, m.demand, m.license, m.exchange, m.clock, m.recorder,
		func(address domain.AccountAddress) FeeSender {
			assert.Equal(t, licenseAddress, address)
			return m.feeSender
		},
		Config{
			TryOutWindow:        24 * time.Hour,
			PageLimit:           pageLimit,
			WorkerPoolSize:      2,
			WorkerQueueSize:     16,
			Currency:            "USD",
			DefaultLicenseRate:  decimal.RequireFromString("0.01"),
			DefaultOperatorRate: decimal.RequireFromString("0.05"),
		})

	return m, matcher
}

// expectRunTerms arranges the per-run license and exchange lookups
func (m *matcherMocks) expectRunTerms(ctx context.Context) {
	m.license.EXPECT().Address(ctx).Return(licenseAddress, nil)
	m.license.EXPECT().Fee(ctx, license.KeyLicenseFee).
		Return(decimal.RequireFromString("0.01"), nil)
	m.license.EXPECT().Fee(ctx, license.KeyOperatorFee).
		Return(decimal.RequireFromString("0.05"), nil)
	m.exchange.EXPECT().FetchExchangeRate(ctx, time.Time{}, "USD").
		Return(&domain.ExchangeRate{
			Rate:     decimal.RequireFromString("0.00000000123"),
			Currency: "USD",
		}, nil)
}

func candidatePayment(id int64, lastOffset int) *schema.AdsPayment {
	return &schema.AdsPayment{
		ID:         id,
		TxID:       "0002:00000001:0001",
		Address:    hostAddress,
		Amount:     100000,
		Status:     schema.AdsPaymentStatusEventPaymentCandidate,
		LastOffset: lastOffset,
		TxTime:     time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		CreatedAt:  time.Date(2026, 2, 1, 10, 0, 5, 0, time.UTC),
	}
}

func knownHost() *schema.NetworkHost {
	return &schema.NetworkHost{
		Address: hostAddress,
		HostURL: "https://host-a.example.com",
		Status:  schema.NetworkHostStatusActive,
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("license address failure aborts before any candidate", func(t *testing.T) {
		m, matcher := newTestMatcher(t, 5000)

		m.license.EXPECT().Address(ctx).Return(domain.AccountAddress(""), errors.New("license server down"))

		err := matcher.Run(ctx)
		assert.ErrorContains(t, err, "license server down")
	})

	t.Run("no candidates sends no license fee event", func(t *testing.T) {
		m, matcher := newTestMatcher(t, 5000)

		m.expectRunTerms(ctx)
		m.store.EXPECT().
			ListAdsPaymentsByStatus(ctx, schema.AdsPaymentStatusEventPaymentCandidate).
			Return(nil, nil)

		require.NoError(t, matcher.Run(ctx))
		assert.True(t, m.feeSender.sent)
	})

	t.Run("single short page matches the payment end to end", func(t *testing.T) {
		m, matcher := newTestMatcher(t, 5000)
		payment := candidatePayment(7, 0)
		publisherID := uuid.New()

		m.expectRunTerms(ctx)
		m.store.EXPECT().
			ListAdsPaymentsByStatus(ctx, schema.AdsPaymentStatusEventPaymentCandidate).
			Return([]*schema.AdsPayment{payment}, nil)
		m.clock.EXPECT().Since(payment.CreatedAt).Return(time.Hour)
		m.store.EXPECT().GetNetworkHostByAddress(ctx, hostAddress).Return(knownHost(), nil)
		m.demand.EXPECT().
			FetchPaymentDetails(ctx, "https://host-a.example.com", payment.TxID, 5000, 0).
			Return([]domain.PaymentDetail{{CaseID: "case-1", EventValue: 1000}}, nil)
		m.store.EXPECT().
			GetNetworkCasesByCaseIDs(ctx, []string{"case-1"}).
			Return([]*schema.NetworkCase{{ID: 31, CaseID: "case-1", PublisherID: publisherID, PayTo: "0004-00000001-1D32"}}, nil)
		m.clock.EXPECT().Now().Return(time.Date(2026, 2, 1, 11, 0, 0, 0, time.UTC))
		m.store.EXPECT().
			AddCasePayments(ctx, payment.ID, gomock.Any(), 1).
			DoAndReturn(func(_ context.Context, _ int64, casePayments []*schema.NetworkCasePayment, _ int) error {
				require.Len(t, casePayments, 1)
				// 1000 at 0.01/0.05: license 10, operator 49, paid 941
				assert.Equal(t, domain.Click(10), casePayments[0].LicenseFee)
				assert.Equal(t, domain.Click(49), casePayments[0].OperatorFee)
				assert.Equal(t, domain.Click(941), casePayments[0].PaidAmount)
				assert.Equal(t, int64(31), casePayments[0].NetworkCaseID)
				return nil
			})
		m.store.EXPECT().
			GetPublisherCredits(ctx, payment.ID).
			Return([]*store.PublisherCredit{{PublisherID: publisherID, Amount: 941}}, nil)
		m.store.EXPECT().
			FinishEventPayment(ctx, payment.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, entries []*schema.LedgerEntry) error {
				require.Len(t, entries, 1)
				assert.Equal(t, publisherID, entries[0].UserID)
				assert.Equal(t, domain.Click(941), entries[0].Amount)
				assert.Equal(t, schema.LedgerEntryTypeAdIncome, entries[0].Type)
				return nil
			})
		m.recorder.EXPECT().
			Record(ctx, schema.ServerEventTypeSupplyPaymentMatched, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ schema.ServerEventType, props map[string]interface{}) error {
				assert.Equal(t, int64(1), props["matched"])
				return nil
			})

		require.NoError(t, matcher.Run(ctx))
		assert.True(t, m.feeSender.sent)
	})

	t.Run("resumes from persisted offset", func(t *testing.T) {
		m, matcher := newTestMatcher(t, 5000)
		payment := candidatePayment(8, 5000)
		publisherID := uuid.New()

		m.expectRunTerms(ctx)
		m.store.EXPECT().
			ListAdsPaymentsByStatus(ctx, schema.AdsPaymentStatusEventPaymentCandidate).
			Return([]*schema.AdsPayment{payment}, nil)
		m.clock.EXPECT().Since(payment.CreatedAt).Return(time.Hour)
		m.store.EXPECT().GetNetworkHostByAddress(ctx, hostAddress).Return(knownHost(), nil)
		m.store.EXPECT().
			GetCasePaymentTotals(ctx, payment.ID).
			Return(&store.CasePaymentTotals{TotalAmount: 500000, LicenseFee: 5000, OperatorFee: 24750, PaidAmount: 470250}, nil)

		// 2000 remaining records: one short page ends the feed
		details := make([]domain.PaymentDetail, 2000)
		caseIDs := make([]string, 2000)
		for i := range details {
			details[i] = domain.PaymentDetail{CaseID: "case-1", EventValue: 100}
			caseIDs[i] = "case-1"
		}
		m.demand.EXPECT().
			FetchPaymentDetails(ctx, "https://host-a.example.com", payment.TxID, 5000, 5000).
			Return(details, nil)
		m.store.EXPECT().
			GetNetworkCasesByCaseIDs(ctx, caseIDs).
			Return([]*schema.NetworkCase{{ID: 31, CaseID: "case-1", PublisherID: publisherID}}, nil)
		m.clock.EXPECT().Now().Return(time.Date(2026, 2, 1, 11, 0, 0, 0, time.UTC))
		m.store.EXPECT().AddCasePayments(ctx, payment.ID, gomock.Any(), 7000).Return(nil)
		m.store.EXPECT().
			GetPublisherCredits(ctx, payment.ID).
			Return([]*store.PublisherCredit{{PublisherID: publisherID, Amount: 658250}}, nil)
		m.store.EXPECT().FinishEventPayment(ctx, payment.ID, gomock.Any()).Return(nil)
		m.recorder.EXPECT().Record(ctx, schema.ServerEventTypeSupplyPaymentMatched, gomock.Any()).Return(nil)

		require.NoError(t, matcher.Run(ctx))
	})

	t.Run("full page keeps looping until a short page", func(t *testing.T) {
		m, matcher := newTestMatcher(t, 2)
		payment := candidatePayment(9, 0)
		publisherID := uuid.New()

		fullPage := []domain.PaymentDetail{
			{CaseID: "case-1", EventValue: 1000},
			{CaseID: "case-1", EventValue: 1000},
		}
		shortPage := []domain.PaymentDetail{{CaseID: "case-1", EventValue: 1000}}
		networkCases := []*schema.NetworkCase{{ID: 31, CaseID: "case-1", PublisherID: publisherID}}

		m.expectRunTerms(ctx)
		m.store.EXPECT().
			ListAdsPaymentsByStatus(ctx, schema.AdsPaymentStatusEventPaymentCandidate).
			Return([]*schema.AdsPayment{payment}, nil)
		m.clock.EXPECT().Since(payment.CreatedAt).Return(time.Hour)
		m.store.EXPECT().GetNetworkHostByAddress(ctx, hostAddress).Return(knownHost(), nil)

		m.demand.EXPECT().
			FetchPaymentDetails(ctx, "https://host-a.example.com", payment.TxID, 2, 0).
			Return(fullPage, nil)
		m.store.EXPECT().GetNetworkCasesByCaseIDs(ctx, gomock.Any()).Return(networkCases, nil)
		m.clock.EXPECT().Now().Return(time.Now()).AnyTimes()
		m.store.EXPECT().AddCasePayments(ctx, payment.ID, gomock.Any(), 2).Return(nil)

		m.demand.EXPECT().
			FetchPaymentDetails(ctx, "https://host-a.example.com", payment.TxID, 2, 2).
			Return(shortPage, nil)
		m.store.EXPECT().GetNetworkCasesByCaseIDs(ctx, gomock.Any()).Return(networkCases, nil)
		m.store.EXPECT().AddCasePayments(ctx, payment.ID, gomock.Any(), 3).Return(nil)

		m.store.EXPECT().
			GetPublisherCredits(ctx, payment.ID).
			Return([]*store.PublisherCredit{{PublisherID: publisherID, Amount: 2823}}, nil)
		m.store.EXPECT().FinishEventPayment(ctx, payment.ID, gomock.Any()).Return(nil)
		m.recorder.EXPECT().Record(ctx, schema.ServerEventTypeSupplyPaymentMatched, gomock.Any()).Return(nil)

		require.NoError(t, matcher.Run(ctx))
	})

	t.Run("unknown case is skipped but the offset still advances", func(t *testing.T) {
		m, matcher := newTestMatcher(t, 5000)
		payment := candidatePayment(10, 0)
		publisherID := uuid.New()

		m.expectRunTerms(ctx)
		m.store.EXPECT().
			ListAdsPaymentsByStatus(ctx, schema.AdsPaymentStatusEventPaymentCandidate).
			Return([]*schema.AdsPayment{payment}, nil)
		m.clock.EXPECT().Since(payment.CreatedAt).Return(time.Hour)
		m.store.EXPECT().GetNetworkHostByAddress(ctx, hostAddress).Return(knownHost(), nil)
		m.demand.EXPECT().
			FetchPaymentDetails(ctx, gomock.Any(), payment.TxID, 5000, 0).
			Return([]domain.PaymentDetail{
				{CaseID: "known", EventValue: 1000},
				{CaseID: "ghost", EventValue: 9999},
			}, nil)
		m.store.EXPECT().
			GetNetworkCasesByCaseIDs(ctx, []string{"known", "ghost"}).
			Return([]*schema.NetworkCase{{ID: 31, CaseID: "known", PublisherID: publisherID}}, nil)
		m.clock.EXPECT().Now().Return(time.Now())
		m.store.EXPECT().
			AddCasePayments(ctx, payment.ID, gomock.Any(), 2).
			DoAndReturn(func(_ context.Context, _ int64, casePayments []*schema.NetworkCasePayment, offset int) error {
				// Only the known case is persisted; the offset covers both
				require.Len(t, casePayments, 1)
				assert.Equal(t, 2, offset)
				return nil
			})
		m.store.EXPECT().
			GetPublisherCredits(ctx, payment.ID).
			Return([]*store.PublisherCredit{{PublisherID: publisherID, Amount: 941}}, nil)
		m.store.EXPECT().FinishEventPayment(ctx, payment.ID, gomock.Any()).Return(nil)
		m.recorder.EXPECT().Record(ctx, schema.ServerEventTypeSupplyPaymentMatched, gomock.Any()).Return(nil)

		require.NoError(t, matcher.Run(ctx))
	})

	t.Run("candidate past the try-out window is reserved", func(t *testing.T) {
		m, matcher := newTestMatcher(t, 5000)
		payment := candidatePayment(11, 0)

		m.expectRunTerms(ctx)
		m.store.EXPECT().
			ListAdsPaymentsByStatus(ctx, schema.AdsPaymentStatusEventPaymentCandidate).
			Return([]*schema.AdsPayment{payment}, nil)
		m.clock.EXPECT().Since(payment.CreatedAt).Return(25 * time.Hour)
		m.store.EXPECT().
			UpdateAdsPaymentStatus(ctx, payment.ID, schema.AdsPaymentStatusReserved).
			Return(nil)
		m.recorder.EXPECT().
			Record(ctx, schema.ServerEventTypeSupplyPaymentMatched, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ schema.ServerEventType, props map[string]interface{}) error {
				assert.Equal(t, int64(1), props["reserved"])
				return nil
			})

		require.NoError(t, matcher.Run(ctx))
	})

	t.Run("unknown host defers the candidate", func(t *testing.T) {
		m, matcher := newTestMatcher(t, 5000)
		payment := candidatePayment(12, 0)

		m.expectRunTerms(ctx)
		m.store.EXPECT().
			ListAdsPaymentsByStatus(ctx, schema.AdsPaymentStatusEventPaymentCandidate).
			Return([]*schema.AdsPayment{payment}, nil)
		m.clock.EXPECT().Since(payment.CreatedAt).Return(time.Hour)
		m.store.EXPECT().GetNetworkHostByAddress(ctx, hostAddress).Return(nil, nil)
		m.recorder.EXPECT().
			Record(ctx, schema.ServerEventTypeSupplyPaymentMatched, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ schema.ServerEventType, props map[string]interface{}) error {
				assert.Equal(t, int64(1), props["deferred"])
				return nil
			})

		require.NoError(t, matcher.Run(ctx))
	})

	t.Run("empty inventory keeps the offset for the next run", func(t *testing.T) {
		m, matcher := newTestMatcher(t, 5000)
		payment := candidatePayment(13, 5000)

		m.expectRunTerms(ctx)
		m.store.EXPECT().
			ListAdsPaymentsByStatus(ctx, schema.AdsPaymentStatusEventPaymentCandidate).
			Return([]*schema.AdsPayment{payment}, nil)
		m.clock.EXPECT().Since(payment.CreatedAt).Return(time.Hour)
		m.store.EXPECT().GetNetworkHostByAddress(ctx, hostAddress).Return(knownHost(), nil)
		m.store.EXPECT().
			GetCasePaymentTotals(ctx, payment.ID).
			Return(&store.CasePaymentTotals{LicenseFee: 5000}, nil)
		m.demand.EXPECT().
			FetchPaymentDetails(ctx, gomock.Any(), payment.TxID, 5000, 5000).
			Return(nil, domain.ErrEmptyInventory)
		m.recorder.EXPECT().
			Record(ctx, schema.ServerEventTypeSupplyPaymentMatched, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ schema.ServerEventType, props map[string]interface{}) error {
				assert.Equal(t, int64(1), props["deferred"])
				return nil
			})

		require.NoError(t, matcher.Run(ctx))
	})

	t.Run("coefficient fetch failure falls back to configured rates", func(t *testing.T) {
		m, matcher := newTestMatcher(t, 5000)
		payment := candidatePayment(14, 0)
		publisherID := uuid.New()

		m.license.EXPECT().Address(ctx).Return(licenseAddress, nil)
		m.license.EXPECT().Fee(ctx, license.KeyLicenseFee).
			Return(decimal.Zero, errors.New("license server flaky"))
		m.license.EXPECT().Fee(ctx, license.KeyOperatorFee).
			Return(decimal.Zero, errors.New("license server flaky"))
		m.exchange.EXPECT().FetchExchangeRate(ctx, time.Time{}, "USD").
			Return(nil, errors.New("rate provider down"))

		m.store.EXPECT().
			ListAdsPaymentsByStatus(ctx, schema.AdsPaymentStatusEventPaymentCandidate).
			Return([]*schema.AdsPayment{payment}, nil)
		m.clock.EXPECT().Since(payment.CreatedAt).Return(time.Hour)
		m.store.EXPECT().GetNetworkHostByAddress(ctx, hostAddress).Return(knownHost(), nil)
		m.demand.EXPECT().
			FetchPaymentDetails(ctx, gomock.Any(), payment.TxID, 5000, 0).
			Return([]domain.PaymentDetail{{CaseID: "case-1", EventValue: 1000}}, nil)
		m.store.EXPECT().
			GetNetworkCasesByCaseIDs(ctx, gomock.Any()).
			Return([]*schema.NetworkCase{{ID: 31, CaseID: "case-1", PublisherID: publisherID}}, nil)
		m.clock.EXPECT().Now().Return(time.Now())
		m.store.EXPECT().
			AddCasePayments(ctx, payment.ID, gomock.Any(), 1).
			DoAndReturn(func(_ context.Context, _ int64, casePayments []*schema.NetworkCasePayment, _ int) error {
				// Configured defaults 0.01/0.05 still apply
				assert.Equal(t, domain.Click(10), casePayments[0].LicenseFee)
				assert.Equal(t, domain.Click(49), casePayments[0].OperatorFee)
				// No exchange rate this run: fiat amount recorded as zero
				assert.Equal(t, int64(0), casePayments[0].PaidAmountCurrency)
				return nil
			})
		m.store.EXPECT().
			GetPublisherCredits(ctx, payment.ID).
			Return([]*store.PublisherCredit{{PublisherID: publisherID, Amount: 941}}, nil)
		m.store.EXPECT().FinishEventPayment(ctx, payment.ID, gomock.Any()).Return(nil)
		m.recorder.EXPECT().Record(ctx, schema.ServerEventTypeSupplyPaymentMatched, gomock.Any()).Return(nil)

		require.NoError(t, matcher.Run(ctx))
	})
}

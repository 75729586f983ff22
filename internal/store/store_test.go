package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/clickchain/settlement/internal/domain"
	"github.com/clickchain/settlement/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// testTx unwraps the *gorm.DB behind the store so tests can seed rows the
// engine itself never writes (users, cases, joining fees)
func testTx(t *testing.T, s Store) *gorm.DB {
	pg, ok := s.(*pgStore)
	require.True(t, ok, "store is not a pgStore")
	return pg.db
}

func seedUser(t *testing.T, s Store, withdrawAddress *domain.AccountAddress, limit *int64) *schema.User {
	user := &schema.User{
		UUID:                uuid.New(),
		WithdrawAddress:     withdrawAddress,
		AutoWithdrawalLimit: limit,
	}
	require.NoError(t, testTx(t, s).Create(user).Error)
	return user
}

func seedNetworkCase(t *testing.T, s Store, payTo domain.AccountAddress) *schema.NetworkCase {
	return seedNetworkCaseOwned(t, s, uuid.New(), payTo)
}

func seedNetworkCaseOwned(t *testing.T, s Store, publisherID uuid.UUID, payTo domain.AccountAddress) *schema.NetworkCase {
	networkCase := &schema.NetworkCase{
		CaseID:      uuid.NewString(),
		PublisherID: publisherID,
		CampaignID:  uuid.NewString(),
		BannerID:    uuid.NewString(),
		ZoneID:      uuid.NewString(),
		PayTo:       payTo,
	}
	require.NoError(t, testTx(t, s).Create(networkCase).Error)
	return networkCase
}

// seedPublisherAccount registers a local user account for a case's publisher
func seedPublisherAccount(t *testing.T, s Store, publisherID uuid.UUID) *schema.User {
	user := &schema.User{UUID: publisherID}
	require.NoError(t, testTx(t, s).Create(user).Error)
	return user
}

func seedJoiningFee(t *testing.T, s Store, address domain.AccountAddress, total, left domain.Click) *schema.JoiningFee {
	fee := &schema.JoiningFee{
		AdsAddress:  address,
		TotalAmount: total,
		LeftAmount:  left,
	}
	require.NoError(t, testTx(t, s).Create(fee).Error)
	return fee
}

func buildTestAdsPayment(txid string, amount domain.Click, status schema.AdsPaymentStatus) *schema.AdsPayment {
	return &schema.AdsPayment{
		TxID:    txid,
		Address: "0002-00000010-73F2",
		Amount:  amount,
		Status:  status,
		TxTime:  time.Now().UTC().Truncate(time.Microsecond),
	}
}

func buildTestCasePayment(caseID, adsPaymentID int64, total, license, operator, paid domain.Click) *schema.NetworkCasePayment {
	return &schema.NetworkCasePayment{
		NetworkCaseID:      caseID,
		AdsPaymentID:       adsPaymentID,
		PayTime:            time.Now().UTC().Truncate(time.Microsecond),
		TotalAmount:        total,
		LicenseFee:         license,
		OperatorFee:        operator,
		PaidAmount:         paid,
		ExchangeRate:       decimal.RequireFromString("0.00000000123"),
		PaidAmountCurrency: 0,
	}
}

// =============================================================================
// Test: key-value cursors
// =============================================================================

func testLogCursor(t *testing.T, store Store) {
	ctx := context.Background()
	address := domain.AccountAddress("0001-00000000-9B6F")

	t.Run("missing cursor returns zero time", func(t *testing.T) {
		at, err := store.GetLogCursor(ctx, address)
		require.NoError(t, err)
		assert.True(t, at.IsZero())
	})

	t.Run("set and get round-trips", func(t *testing.T) {
		want := time.Date(2026, 2, 3, 12, 30, 45, 123456000, time.UTC)
		require.NoError(t, store.SetLogCursor(ctx, address, want))

		got, err := store.GetLogCursor(ctx, address)
		require.NoError(t, err)
		assert.True(t, got.Equal(want))
	})

	t.Run("set overwrites previous cursor", func(t *testing.T) {
		first := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)
		second := first.Add(time.Hour)
		require.NoError(t, store.SetLogCursor(ctx, address, first))
		require.NoError(t, store.SetLogCursor(ctx, address, second))

		got, err := store.GetLogCursor(ctx, address)
		require.NoError(t, err)
		assert.True(t, got.Equal(second))
	})

	t.Run("cursors are per address", func(t *testing.T) {
		other := domain.AccountAddress("0002-00000010-73F2")
		at, err := store.GetLogCursor(ctx, other)
		require.NoError(t, err)
		assert.True(t, at.IsZero())
	})
}

func testTimestamps(t *testing.T, store Store) {
	ctx := context.Background()

	at, err := store.GetTimestamp(ctx, "notify:cold_wallet")
	require.NoError(t, err)
	assert.True(t, at.IsZero())

	want := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, store.SetTimestamp(ctx, "notify:cold_wallet", want))

	got, err := store.GetTimestamp(ctx, "notify:cold_wallet")
	require.NoError(t, err)
	assert.True(t, got.Equal(want))
}

// =============================================================================
// Test: users
// =============================================================================

func testUsers(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("get user by uuid", func(t *testing.T) {
		user := seedUser(t, store, nil, nil)

		got, err := store.GetUserByUUID(ctx, user.UUID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("unknown uuid returns nil", func(t *testing.T) {
		got, err := store.GetUserByUUID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("list auto-withdrawal users", func(t *testing.T) {
		address := domain.AccountAddress("0001-00000005-B54D")
		limit := int64(1000)

		withBoth := seedUser(t, store, &address, &limit)
		seedUser(t, store, &address, nil) // no limit
		seedUser(t, store, nil, &limit)   // no address

		users, err := store.ListAutoWithdrawalUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, withBoth.ID, users[0].ID)
	})
}

// =============================================================================
// Test: ledger
// =============================================================================

func testLedgerEntries(t *testing.T, store Store) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("balance of empty ledger is zero", func(t *testing.T) {
		balance, err := store.GetUserBalance(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, domain.Click(0), balance)
	})

	t.Run("balance sums accepted entries only", func(t *testing.T) {
		entries := []*schema.LedgerEntry{
			{UserID: userID, Amount: 1000, Status: schema.LedgerEntryStatusAccepted, Type: schema.LedgerEntryTypeDeposit},
			{UserID: userID, Amount: 250, Status: schema.LedgerEntryStatusAccepted, Type: schema.LedgerEntryTypeAdIncome},
			{UserID: userID, Amount: -100, Status: schema.LedgerEntryStatusAccepted, Type: schema.LedgerEntryTypeAdExpenditure},
			{UserID: userID, Amount: -500, Status: schema.LedgerEntryStatusPending, Type: schema.LedgerEntryTypeWithdrawal},
			{UserID: userID, Amount: 9999, Status: schema.LedgerEntryStatusRejected, Type: schema.LedgerEntryTypeDeposit},
		}
		for _, entry := range entries {
			require.NoError(t, store.CreateLedgerEntry(ctx, entry))
		}

		balance, err := store.GetUserBalance(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, domain.Click(1150), balance)
	})

	t.Run("guarded status transition", func(t *testing.T) {
		entry := &schema.LedgerEntry{
			UserID: userID,
			Amount: -200,
			Status: schema.LedgerEntryStatusPending,
			Type:   schema.LedgerEntryTypeWithdrawal,
		}
		require.NoError(t, store.CreateLedgerEntry(ctx, entry))

		require.NoError(t, store.UpdateLedgerEntryStatus(ctx, entry.ID,
			schema.LedgerEntryStatusPending, schema.LedgerEntryStatusAccepted))

		// Second transition from pending must fail: the entry moved on
		err := store.UpdateLedgerEntryStatus(ctx, entry.ID,
			schema.LedgerEntryStatusPending, schema.LedgerEntryStatusRejected)
		assert.ErrorIs(t, err, domain.ErrStatusConflict)
	})

	t.Run("settle withdrawal records txid", func(t *testing.T) {
		entry := &schema.LedgerEntry{
			UserID: userID,
			Amount: -300,
			Status: schema.LedgerEntryStatusPending,
			Type:   schema.LedgerEntryTypeWithdrawal,
		}
		require.NoError(t, store.CreateLedgerEntry(ctx, entry))

		require.NoError(t, store.SettleWithdrawal(ctx, entry.ID, "0001:00000002:0001", schema.LedgerEntryStatusAccepted))

		var got schema.LedgerEntry
		require.NoError(t, testTx(t, store).First(&got, entry.ID).Error)
		assert.Equal(t, schema.LedgerEntryStatusAccepted, got.Status)
		require.NotNil(t, got.TxID)
		assert.Equal(t, "0001:00000002:0001", *got.TxID)

		// Settling again must fail: entry is no longer pending
		err := store.SettleWithdrawal(ctx, entry.ID, "0001:00000002:0002", schema.LedgerEntryStatusRejected)
		assert.ErrorIs(t, err, domain.ErrStatusConflict)
	})
}

func testRebuildUserBlockade(t *testing.T, store Store) {
	ctx := context.Background()
	userID := uuid.New()

	stale := []*schema.LedgerEntry{
		{UserID: userID, Amount: -100, Status: schema.LedgerEntryStatusBlocked, Type: schema.LedgerEntryTypeAdExpenditure},
		{UserID: userID, Amount: -200, Status: schema.LedgerEntryStatusBlocked, Type: schema.LedgerEntryTypeAdExpenditure},
	}
	for _, entry := range stale {
		require.NoError(t, store.CreateLedgerEntry(ctx, entry))
	}
	accepted := &schema.LedgerEntry{
		UserID: userID, Amount: 5000, Status: schema.LedgerEntryStatusAccepted, Type: schema.LedgerEntryTypeDeposit,
	}
	require.NoError(t, store.CreateLedgerEntry(ctx, accepted))

	fresh := []*schema.LedgerEntry{
		{UserID: userID, Amount: -450, Status: schema.LedgerEntryStatusBlocked, Type: schema.LedgerEntryTypeAdExpenditure},
	}
	require.NoError(t, store.RebuildUserBlockade(ctx, userID, fresh))

	var blocked []schema.LedgerEntry
	require.NoError(t, testTx(t, store).
		Where("user_id = ? AND status = ?", userID, schema.LedgerEntryStatusBlocked).
		Find(&blocked).Error)
	require.Len(t, blocked, 1)
	assert.Equal(t, domain.Click(-450), blocked[0].Amount)

	// Accepted entries survive the rebuild
	balance, err := store.GetUserBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.Click(5000), balance)

	// Rebuilding with no entries clears the blockade
	require.NoError(t, store.RebuildUserBlockade(ctx, userID, nil))
	var count int64
	require.NoError(t, testTx(t, store).
		Model(&schema.LedgerEntry{}).
		Where("user_id = ? AND status = ?", userID, schema.LedgerEntryStatusBlocked).
		Count(&count).Error)
	assert.Zero(t, count)
}

// =============================================================================
// Test: ads payments
// =============================================================================

func testAdsPayments(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("create dedupes by txid", func(t *testing.T) {
		payments := []*schema.AdsPayment{
			buildTestAdsPayment("0002:00000001:0001", 1000, schema.AdsPaymentStatusNew),
			buildTestAdsPayment("0002:00000001:0002", 2000, schema.AdsPaymentStatusNew),
		}
		inserted, err := store.CreateAdsPayments(ctx, payments)
		require.NoError(t, err)
		assert.Equal(t, int64(2), inserted)

		// Replaying the same transactions inserts nothing new
		replay := []*schema.AdsPayment{
			buildTestAdsPayment("0002:00000001:0001", 1000, schema.AdsPaymentStatusNew),
			buildTestAdsPayment("0002:00000001:0003", 3000, schema.AdsPaymentStatusNew),
		}
		inserted, err = store.CreateAdsPayments(ctx, replay)
		require.NoError(t, err)
		assert.Equal(t, int64(1), inserted)
	})

	t.Run("list by status oldest first", func(t *testing.T) {
		older := buildTestAdsPayment("0002:00000002:0001", 100, schema.AdsPaymentStatusEventPaymentCandidate)
		older.TxTime = time.Now().UTC().Add(-2 * time.Hour).Truncate(time.Microsecond)
		newer := buildTestAdsPayment("0002:00000002:0002", 200, schema.AdsPaymentStatusEventPaymentCandidate)
		newer.TxTime = time.Now().UTC().Add(-1 * time.Hour).Truncate(time.Microsecond)

		_, err := store.CreateAdsPayments(ctx, []*schema.AdsPayment{newer, older})
		require.NoError(t, err)

		candidates, err := store.ListAdsPaymentsByStatus(ctx, schema.AdsPaymentStatusEventPaymentCandidate)
		require.NoError(t, err)
		require.Len(t, candidates, 2)
		assert.Equal(t, older.TxID, candidates[0].TxID)
		assert.Equal(t, newer.TxID, candidates[1].TxID)
	})

	t.Run("update status", func(t *testing.T) {
		payment := buildTestAdsPayment("0002:00000003:0001", 100, schema.AdsPaymentStatusNew)
		_, err := store.CreateAdsPayments(ctx, []*schema.AdsPayment{payment})
		require.NoError(t, err)

		require.NoError(t, store.UpdateAdsPaymentStatus(ctx, payment.ID, schema.AdsPaymentStatusReserved))

		reserved, err := store.ListAdsPaymentsByStatus(ctx, schema.AdsPaymentStatusReserved)
		require.NoError(t, err)
		require.Len(t, reserved, 1)
		assert.Equal(t, payment.ID, reserved[0].ID)

		err = store.UpdateAdsPaymentStatus(ctx, 999999, schema.AdsPaymentStatusReserved)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("get by txid", func(t *testing.T) {
		payment := buildTestAdsPayment("0002:00000003:0002", 400, schema.AdsPaymentStatusNew)
		_, err := store.CreateAdsPayments(ctx, []*schema.AdsPayment{payment})
		require.NoError(t, err)

		got, err := store.GetAdsPaymentByTxID(ctx, payment.TxID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, payment.ID, got.ID)
		assert.Equal(t, schema.AdsPaymentStatusNew, got.Status)

		missing, err := store.GetAdsPaymentByTxID(ctx, "0002:00009999:0001")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func testAcceptUserDeposit(t *testing.T, store Store) {
	ctx := context.Background()
	user := seedUser(t, store, nil, nil)

	payment := buildTestAdsPayment("0002:00000004:0001", 7500, schema.AdsPaymentStatusNew)
	_, err := store.CreateAdsPayments(ctx, []*schema.AdsPayment{payment})
	require.NoError(t, err)

	entry := &schema.LedgerEntry{
		UserID: user.UUID,
		Amount: payment.Amount,
		Status: schema.LedgerEntryStatusAccepted,
		Type:   schema.LedgerEntryTypeDeposit,
		TxID:   &payment.TxID,
	}
	require.NoError(t, store.AcceptUserDeposit(ctx, payment.ID, entry))

	deposits, err := store.ListAdsPaymentsByStatus(ctx, schema.AdsPaymentStatusUserDeposit)
	require.NoError(t, err)
	require.Len(t, deposits, 1)

	balance, err := store.GetUserBalance(ctx, user.UUID)
	require.NoError(t, err)
	assert.Equal(t, domain.Click(7500), balance)

	// Re-accepting must fail and must not double-credit
	err = store.AcceptUserDeposit(ctx, payment.ID, &schema.LedgerEntry{
		UserID: user.UUID,
		Amount: payment.Amount,
		Status: schema.LedgerEntryStatusAccepted,
		Type:   schema.LedgerEntryTypeDeposit,
	})
	assert.ErrorIs(t, err, domain.ErrStatusConflict)

	balance, err = store.GetUserBalance(ctx, user.UUID)
	require.NoError(t, err)
	assert.Equal(t, domain.Click(7500), balance)
}

// =============================================================================
// Test: network hosts
// =============================================================================

func testNetworkHosts(t *testing.T, store Store) {
	ctx := context.Background()
	address := domain.AccountAddress("0003-00000020-D1A5")

	t.Run("unknown address returns nil", func(t *testing.T) {
		host, err := store.GetNetworkHostByAddress(ctx, address)
		require.NoError(t, err)
		assert.Nil(t, host)
	})

	t.Run("upsert creates then refreshes", func(t *testing.T) {
		require.NoError(t, store.UpsertNetworkHost(ctx, &schema.NetworkHost{
			Address: address,
			HostURL: "https://host-a.example.com",
			Name:    "host-a",
			Status:  schema.NetworkHostStatusActive,
		}))

		host, err := store.GetNetworkHostByAddress(ctx, address)
		require.NoError(t, err)
		require.NotNil(t, host)
		assert.Equal(t, "https://host-a.example.com", host.HostURL)

		seen := time.Now().UTC().Truncate(time.Microsecond)
		require.NoError(t, store.UpsertNetworkHost(ctx, &schema.NetworkHost{
			Address:    address,
			HostURL:    "https://host-a.example.org",
			Name:       "host-a",
			Status:     schema.NetworkHostStatusExcluded,
			LastSeenAt: &seen,
		}))

		host, err = store.GetNetworkHostByAddress(ctx, address)
		require.NoError(t, err)
		require.NotNil(t, host)
		assert.Equal(t, "https://host-a.example.org", host.HostURL)
		assert.Equal(t, schema.NetworkHostStatusExcluded, host.Status)
		require.NotNil(t, host.LastSeenAt)
	})
}

// =============================================================================
// Test: case payments
// =============================================================================

func testCasePayments(t *testing.T, store Store) {
	ctx := context.Background()

	payment := buildTestAdsPayment("0002:00000005:0001", 10000, schema.AdsPaymentStatusEventPaymentCandidate)
	_, err := store.CreateAdsPayments(ctx, []*schema.AdsPayment{payment})
	require.NoError(t, err)

	caseA := seedNetworkCase(t, store, "0004-00000001-1D32")
	caseB := seedNetworkCase(t, store, "0004-00000002-64A0")

	t.Run("totals of unmatched payment are zero", func(t *testing.T) {
		totals, err := store.GetCasePaymentTotals(ctx, payment.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.Click(0), totals.TotalAmount)
	})

	t.Run("add page advances offset", func(t *testing.T) {
		page := []*schema.NetworkCasePayment{
			buildTestCasePayment(caseA.ID, payment.ID, 1000, 10, 49, 941),
			buildTestCasePayment(caseB.ID, payment.ID, 500, 5, 24, 471),
		}
		require.NoError(t, store.AddCasePayments(ctx, payment.ID, page, 2))

		var got schema.AdsPayment
		require.NoError(t, testTx(t, store).First(&got, payment.ID).Error)
		assert.Equal(t, 2, got.LastOffset)

		totals, err := store.GetCasePaymentTotals(ctx, payment.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.Click(1500), totals.TotalAmount)
		assert.Equal(t, domain.Click(15), totals.LicenseFee)
		assert.Equal(t, domain.Click(73), totals.OperatorFee)
		assert.Equal(t, domain.Click(1412), totals.PaidAmount)
	})

	t.Run("replaying a page is idempotent but still advances offset", func(t *testing.T) {
		replay := []*schema.NetworkCasePayment{
			buildTestCasePayment(caseA.ID, payment.ID, 1000, 10, 49, 941),
			buildTestCasePayment(caseB.ID, payment.ID, 500, 5, 24, 471),
		}
		require.NoError(t, store.AddCasePayments(ctx, payment.ID, replay, 4))

		var count int64
		require.NoError(t, testTx(t, store).
			Model(&schema.NetworkCasePayment{}).
			Where("ads_payment_id = ?", payment.ID).
			Count(&count).Error)
		assert.Equal(t, int64(2), count)

		var got schema.AdsPayment
		require.NoError(t, testTx(t, store).First(&got, payment.ID).Error)
		assert.Equal(t, 4, got.LastOffset)

		totals, err := store.GetCasePaymentTotals(ctx, payment.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.Click(1500), totals.TotalAmount)
	})

	t.Run("empty page still advances offset", func(t *testing.T) {
		require.NoError(t, store.AddCasePayments(ctx, payment.ID, nil, 6))

		var got schema.AdsPayment
		require.NoError(t, testTx(t, store).First(&got, payment.ID).Error)
		assert.Equal(t, 6, got.LastOffset)
	})

	t.Run("publisher credits are grouped by publisher with an account", func(t *testing.T) {
		seedPublisherAccount(t, store, caseA.PublisherID)
		seedPublisherAccount(t, store, caseB.PublisherID)

		// A publisher without a local account settles on-chain instead
		caseC := seedNetworkCase(t, store, "0004-00000009-C5E1")
		require.NoError(t, store.AddCasePayments(ctx, payment.ID, []*schema.NetworkCasePayment{
			buildTestCasePayment(caseC.ID, payment.ID, 300, 3, 14, 283),
		}, 8))

		credits, err := store.GetPublisherCredits(ctx, payment.ID)
		require.NoError(t, err)
		require.Len(t, credits, 2)

		byPublisher := make(map[uuid.UUID]domain.Click)
		for _, credit := range credits {
			byPublisher[credit.PublisherID] = credit.Amount
		}
		assert.Equal(t, domain.Click(941), byPublisher[caseA.PublisherID])
		assert.Equal(t, domain.Click(471), byPublisher[caseB.PublisherID])
	})

	t.Run("get network cases by case ids", func(t *testing.T) {
		cases, err := store.GetNetworkCasesByCaseIDs(ctx, []string{caseA.CaseID, caseB.CaseID, "missing"})
		require.NoError(t, err)
		assert.Len(t, cases, 2)

		cases, err = store.GetNetworkCasesByCaseIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, cases)
	})
}

func testFinishEventPayment(t *testing.T, store Store) {
	ctx := context.Background()

	payment := buildTestAdsPayment("0002:00000006:0001", 10000, schema.AdsPaymentStatusEventPaymentCandidate)
	_, err := store.CreateAdsPayments(ctx, []*schema.AdsPayment{payment})
	require.NoError(t, err)

	publisher := seedUser(t, store, nil, nil)
	localCase := seedNetworkCaseOwned(t, store, publisher.UUID, "0004-00000001-1D32")
	remoteCase := seedNetworkCase(t, store, "0004-00000002-64A0")
	require.NoError(t, store.AddCasePayments(ctx, payment.ID, []*schema.NetworkCasePayment{
		buildTestCasePayment(localCase.ID, payment.ID, 1000, 10, 49, 941),
		buildTestCasePayment(remoteCase.ID, payment.ID, 500, 5, 24, 471),
	}, 2))

	credits := []*schema.LedgerEntry{
		{UserID: publisher.UUID, Amount: 941, Status: schema.LedgerEntryStatusAccepted, Type: schema.LedgerEntryTypeAdIncome, TxID: &payment.TxID},
	}
	require.NoError(t, store.FinishEventPayment(ctx, payment.ID, credits))

	matched, err := store.ListAdsPaymentsByStatus(ctx, schema.AdsPaymentStatusEventPayment)
	require.NoError(t, err)
	require.Len(t, matched, 1)

	balance, err := store.GetUserBalance(ctx, publisher.UUID)
	require.NoError(t, err)
	assert.Equal(t, domain.Click(941), balance)

	// The credited share is marked settled; the remote publisher's share
	// stays open for the payout batcher
	settled := make(map[int64]bool)
	var rows []schema.NetworkCasePayment
	require.NoError(t, testTx(t, store).
		Where("ads_payment_id = ?", payment.ID).
		Find(&rows).Error)
	for _, row := range rows {
		settled[row.NetworkCaseID] = row.LedgerSettled
	}
	assert.True(t, settled[localCase.ID])
	assert.False(t, settled[remoteCase.ID])

	// Finishing twice must fail and must not double-credit
	err = store.FinishEventPayment(ctx, payment.ID, credits)
	assert.ErrorIs(t, err, domain.ErrStatusConflict)
}

// =============================================================================
// Test: payout batches
// =============================================================================

func testBatchUnpaidCasePayments(t *testing.T, store Store) {
	ctx := context.Background()

	payment := buildTestAdsPayment("0002:00000007:0001", 100000, schema.AdsPaymentStatusEventPayment)
	_, err := store.CreateAdsPayments(ctx, []*schema.AdsPayment{payment})
	require.NoError(t, err)

	payToA := domain.AccountAddress("0004-00000003-F1C6")
	payToB := domain.AccountAddress("0004-00000004-A2B7")
	caseA1 := seedNetworkCase(t, store, payToA)
	caseA2 := seedNetworkCase(t, store, payToA)
	caseB1 := seedNetworkCase(t, store, payToB)

	page := []*schema.NetworkCasePayment{
		buildTestCasePayment(caseA1.ID, payment.ID, 1000, 10, 49, 941),
		buildTestCasePayment(caseA2.ID, payment.ID, 2000, 20, 99, 1881),
		buildTestCasePayment(caseB1.ID, payment.ID, 500, 5, 24, 471),
	}
	require.NoError(t, store.AddCasePayments(ctx, payment.ID, page, 3))

	// A share already settled through a publisher's ledger account must never
	// reach a payout batch, even when it pays to a batched address
	publisher := seedUser(t, store, nil, nil)
	settledPayment := buildTestAdsPayment("0002:00000007:0002", 600, schema.AdsPaymentStatusEventPaymentCandidate)
	_, err = store.CreateAdsPayments(ctx, []*schema.AdsPayment{settledPayment})
	require.NoError(t, err)
	settledCase := seedNetworkCaseOwned(t, store, publisher.UUID, payToA)
	require.NoError(t, store.AddCasePayments(ctx, settledPayment.ID, []*schema.NetworkCasePayment{
		buildTestCasePayment(settledCase.ID, settledPayment.ID, 600, 6, 29, 565),
	}, 1))
	require.NoError(t, store.FinishEventPayment(ctx, settledPayment.ID, []*schema.LedgerEntry{
		{UserID: publisher.UUID, Amount: 565, Status: schema.LedgerEntryStatusAccepted, Type: schema.LedgerEntryTypeAdIncome},
	}))

	// Shares of a payment still being matched wait for the matcher
	pendingPayment := buildTestAdsPayment("0002:00000007:0003", 700, schema.AdsPaymentStatusEventPaymentCandidate)
	_, err = store.CreateAdsPayments(ctx, []*schema.AdsPayment{pendingPayment})
	require.NoError(t, err)
	pendingCase := seedNetworkCase(t, store, payToB)
	require.NoError(t, store.AddCasePayments(ctx, pendingPayment.ID, []*schema.NetworkCasePayment{
		buildTestCasePayment(pendingCase.ID, pendingPayment.ID, 700, 7, 34, 659),
	}, 1))

	created, err := store.BatchUnpaidCasePayments(ctx, 0)
	require.NoError(t, err)
	require.Len(t, created, 2)

	byAddress := make(map[domain.AccountAddress]*schema.Payment)
	for _, batch := range created {
		byAddress[batch.AccountAddress] = batch
		assert.Equal(t, schema.PaymentStateNew, batch.State)
	}
	require.Contains(t, byAddress, payToA)
	require.Contains(t, byAddress, payToB)
	assert.Equal(t, domain.Click(941+1881), byAddress[payToA].Amount)
	assert.Equal(t, domain.Click(471), byAddress[payToB].Amount)

	// Only the ledger-settled share and the unmatched share stay unbatched
	var unbatched []schema.NetworkCasePayment
	require.NoError(t, testTx(t, store).
		Where("payment_id IS NULL").
		Find(&unbatched).Error)
	require.Len(t, unbatched, 2)

	// A second pass finds nothing to batch
	created, err = store.BatchUnpaidCasePayments(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, created)
}

// =============================================================================
// Test: license fee remittance
// =============================================================================

func testLicenseFeeRemittance(t *testing.T, store Store) {
	ctx := context.Background()

	matchedA := buildTestAdsPayment("0002:00000009:0001", 10000, schema.AdsPaymentStatusEventPayment)
	matchedB := buildTestAdsPayment("0002:00000009:0002", 5000, schema.AdsPaymentStatusEventPayment)
	candidate := buildTestAdsPayment("0002:00000009:0003", 3000, schema.AdsPaymentStatusEventPaymentCandidate)
	feeless := buildTestAdsPayment("0002:00000009:0004", 100, schema.AdsPaymentStatusEventPayment)
	_, err := store.CreateAdsPayments(ctx, []*schema.AdsPayment{matchedA, matchedB, candidate, feeless})
	require.NoError(t, err)

	caseA := seedNetworkCase(t, store, "0004-00000010-E7A3")
	require.NoError(t, store.AddCasePayments(ctx, matchedA.ID, []*schema.NetworkCasePayment{
		buildTestCasePayment(caseA.ID, matchedA.ID, 1000, 10, 49, 941),
		buildTestCasePayment(caseA.ID, matchedA.ID, 2000, 20, 99, 1881),
	}, 2))
	require.NoError(t, store.AddCasePayments(ctx, matchedB.ID, []*schema.NetworkCasePayment{
		buildTestCasePayment(caseA.ID, matchedB.ID, 500, 5, 24, 471),
	}, 1))
	require.NoError(t, store.AddCasePayments(ctx, candidate.ID, []*schema.NetworkCasePayment{
		buildTestCasePayment(caseA.ID, candidate.ID, 700, 7, 34, 659),
	}, 1))
	require.NoError(t, store.AddCasePayments(ctx, feeless.ID, []*schema.NetworkCasePayment{
		buildTestCasePayment(caseA.ID, feeless.ID, 100, 0, 4, 96),
	}, 1))

	// Fees accrue per matched payment; unmatched and fee-free ones stay out
	dues, err := store.ListUnremittedLicenseFees(ctx)
	require.NoError(t, err)
	require.Len(t, dues, 2)
	assert.Equal(t, matchedA.ID, dues[0].AdsPaymentID)
	assert.Equal(t, domain.Click(30), dues[0].Amount)
	assert.Equal(t, matchedB.ID, dues[1].AdsPaymentID)
	assert.Equal(t, domain.Click(5), dues[1].Amount)

	// Marking one payment leaves the other outstanding
	require.NoError(t, store.MarkLicenseFeesRemitted(ctx, []int64{matchedA.ID}))
	dues, err = store.ListUnremittedLicenseFees(ctx)
	require.NoError(t, err)
	require.Len(t, dues, 1)
	assert.Equal(t, matchedB.ID, dues[0].AdsPaymentID)

	// Marking nothing is a no-op
	require.NoError(t, store.MarkLicenseFeesRemitted(ctx, nil))

	require.NoError(t, store.MarkLicenseFeesRemitted(ctx, []int64{matchedB.ID}))
	dues, err = store.ListUnremittedLicenseFees(ctx)
	require.NoError(t, err)
	assert.Empty(t, dues)
}

// =============================================================================
// Test: wallet exposure aggregates
// =============================================================================

func testWalletExposure(t *testing.T, store Store) {
	ctx := context.Background()

	total, err := store.GetTotalUserBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Click(0), total)
	pending, err := store.GetPendingWithdrawalTotal(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Click(0), pending)

	userA := uuid.New()
	userB := uuid.New()
	entries := []*schema.LedgerEntry{
		{UserID: userA, Amount: 1000, Status: schema.LedgerEntryStatusAccepted, Type: schema.LedgerEntryTypeDeposit},
		{UserID: userA, Amount: -100, Status: schema.LedgerEntryStatusAccepted, Type: schema.LedgerEntryTypeWithdrawal},
		{UserID: userA, Amount: -500, Status: schema.LedgerEntryStatusPending, Type: schema.LedgerEntryTypeWithdrawal},
		{UserID: userB, Amount: 250, Status: schema.LedgerEntryStatusAccepted, Type: schema.LedgerEntryTypeAdIncome},
		{UserID: userB, Amount: -50, Status: schema.LedgerEntryStatusBlocked, Type: schema.LedgerEntryTypeWithdrawal},
		{UserID: userB, Amount: 300, Status: schema.LedgerEntryStatusPending, Type: schema.LedgerEntryTypeDeposit},
	}
	for _, entry := range entries {
		require.NoError(t, store.CreateLedgerEntry(ctx, entry))
	}

	// Accepted entries across all users
	total, err = store.GetTotalUserBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Click(1150), total)

	// Pending withdrawals only, as a positive number
	pending, err = store.GetPendingWithdrawalTotal(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Click(500), pending)

	// Available balance nets blocked entries against accepted ones
	available, err := store.GetUserAvailableBalance(ctx, userB)
	require.NoError(t, err)
	assert.Equal(t, domain.Click(200), available)

	inFlight, err := store.ListPendingWithdrawals(ctx, userA)
	require.NoError(t, err)
	require.Len(t, inFlight, 1)
	assert.Equal(t, domain.Click(-500), inFlight[0].Amount)

	inFlight, err = store.ListPendingWithdrawals(ctx, userB)
	require.NoError(t, err)
	assert.Empty(t, inFlight)
}

func testPaymentStateMachine(t *testing.T, store Store) {
	ctx := context.Background()

	payment := &schema.Payment{
		AccountAddress: "0004-00000005-C3D8",
		State:          schema.PaymentStateNew,
		Amount:         5000,
	}
	require.NoError(t, testTx(t, store).Create(payment).Error)

	t.Run("sending flips exactly once", func(t *testing.T) {
		flipped, err := store.MarkPaymentSending(ctx, payment.ID)
		require.NoError(t, err)
		assert.True(t, flipped)

		flipped, err = store.MarkPaymentSending(ctx, payment.ID)
		require.NoError(t, err)
		assert.False(t, flipped)
	})

	t.Run("sent records the node receipt", func(t *testing.T) {
		result := &domain.TransactionResult{
			TxID:           "0001:00000042:0001",
			TxTime:         time.Now().UTC().Truncate(time.Microsecond),
			Deduct:         5050,
			Fee:            50,
			AccountHashin:  "1A2B3C4D5E6F70811A2B3C4D5E6F70811A2B3C4D5E6F70811A2B3C4D5E6F7081",
			AccountHashout: "2B3C4D5E6F7081922B3C4D5E6F7081922B3C4D5E6F7081922B3C4D5E6F708192",
			AccountMsid:    42,
		}
		require.NoError(t, store.MarkPaymentSent(ctx, payment.ID, result))

		sent, err := store.ListPaymentsByState(ctx, schema.PaymentStateSent)
		require.NoError(t, err)
		require.Len(t, sent, 1)
		require.NotNil(t, sent[0].TxID)
		assert.Equal(t, result.TxID, *sent[0].TxID)
		require.NotNil(t, sent[0].Fee)
		assert.Equal(t, domain.Click(50), *sent[0].Fee)
		require.NotNil(t, sent[0].AccountMsid)
		assert.Equal(t, int64(42), *sent[0].AccountMsid)

		// Sent again fails: no longer in sending
		err = store.MarkPaymentSent(ctx, payment.ID, result)
		assert.ErrorIs(t, err, domain.ErrStatusConflict)
	})

	t.Run("ok completes the batch", func(t *testing.T) {
		require.NoError(t, store.MarkPaymentOK(ctx, payment.ID))

		ok, err := store.ListPaymentsByState(ctx, schema.PaymentStateOK)
		require.NoError(t, err)
		require.Len(t, ok, 1)
		assert.True(t, ok[0].Completed)
	})

	t.Run("failed batches stay retryable", func(t *testing.T) {
		failing := &schema.Payment{
			AccountAddress: "0004-00000006-E4F9",
			State:          schema.PaymentStateSending,
			Amount:         100,
		}
		require.NoError(t, testTx(t, store).Create(failing).Error)

		require.NoError(t, store.MarkPaymentFailed(ctx, failing.ID))

		failed, err := store.ListPaymentsByState(ctx, schema.PaymentStateFailed)
		require.NoError(t, err)
		require.Len(t, failed, 1)
		assert.False(t, failed[0].Completed)

		require.NoError(t, store.RetryPayment(ctx, failing.ID))

		fresh, err := store.ListPaymentsByState(ctx, schema.PaymentStateNew)
		require.NoError(t, err)
		require.Len(t, fresh, 1)
		assert.Equal(t, failing.ID, fresh[0].ID)

		// Only failed batches can be retried
		err = store.RetryPayment(ctx, failing.ID)
		assert.ErrorIs(t, err, domain.ErrStatusConflict)
	})
}

// =============================================================================
// Test: joining fees
// =============================================================================

func testJoiningFees(t *testing.T, store Store) {
	ctx := context.Background()
	address := domain.AccountAddress("0005-00000001-5A6B")

	fee := seedJoiningFee(t, store, address, 100000, 60000)
	seedJoiningFee(t, store, "0005-00000002-7C8D", 50000, 0) // fully allocated

	t.Run("list returns only fees with balance", func(t *testing.T) {
		fees, err := store.ListJoiningFeesWithBalance(ctx)
		require.NoError(t, err)
		require.Len(t, fees, 1)
		assert.Equal(t, fee.ID, fees[0].ID)
	})

	t.Run("allocation decrements the remainder", func(t *testing.T) {
		require.NoError(t, store.CreateJoiningFeePayment(ctx, fee.ID, &schema.Payment{
			AccountAddress: address,
			State:          schema.PaymentStateNew,
			Amount:         25000,
		}))

		var got schema.JoiningFee
		require.NoError(t, testTx(t, store).First(&got, fee.ID).Error)
		assert.Equal(t, domain.Click(35000), got.LeftAmount)

		batches, err := store.ListPaymentsByState(ctx, schema.PaymentStateNew)
		require.NoError(t, err)
		require.Len(t, batches, 1)
		assert.Equal(t, domain.Click(25000), batches[0].Amount)
	})

	t.Run("allocation cannot exceed the remainder", func(t *testing.T) {
		err := store.CreateJoiningFeePayment(ctx, fee.ID, &schema.Payment{
			AccountAddress: address,
			State:          schema.PaymentStateNew,
			Amount:         35001,
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

		// Neither side of the transaction happened
		var got schema.JoiningFee
		require.NoError(t, testTx(t, store).First(&got, fee.ID).Error)
		assert.Equal(t, domain.Click(35000), got.LeftAmount)

		batches, err := store.ListPaymentsByState(ctx, schema.PaymentStateNew)
		require.NoError(t, err)
		assert.Len(t, batches, 1)
	})
}

// =============================================================================
// Test: server events
// =============================================================================

func testServerEvents(t *testing.T, store Store) {
	ctx := context.Background()

	for i := range 5 {
		event := &schema.ServerEvent{
			ID:         ulid.Make().String(),
			Type:       schema.ServerEventTypeInboundTxProcessed,
			Properties: datatypes.JSON(fmt.Sprintf(`{"processed":%d}`, i)),
		}
		require.NoError(t, store.CreateServerEvent(ctx, event))
	}

	events, err := store.ListRecentServerEvents(ctx, 3)
	require.NoError(t, err)
	require.Len(t, events, 3)

	// Newest first
	assert.Greater(t, events[0].ID, events[1].ID)
	assert.Greater(t, events[1].ID, events[2].ID)

	// Duplicate IDs are rejected
	dup := &schema.ServerEvent{
		ID:         events[0].ID,
		Type:       schema.ServerEventTypePayoutSent,
		Properties: datatypes.JSON(`{}`),
	}
	err = store.CreateServerEvent(ctx, dup)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, gorm.ErrRecordNotFound))
}

// RunStoreTests runs the full store suite against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"LogCursor", testLogCursor},
		{"Timestamps", testTimestamps},
		{"Users", testUsers},
		{"LedgerEntries", testLedgerEntries},
		{"RebuildUserBlockade", testRebuildUserBlockade},
		{"AdsPayments", testAdsPayments},
		{"AcceptUserDeposit", testAcceptUserDeposit},
		{"NetworkHosts", testNetworkHosts},
		{"CasePayments", testCasePayments},
		{"FinishEventPayment", testFinishEventPayment},
		{"BatchUnpaidCasePayments", testBatchUnpaidCasePayments},
		{"LicenseFeeRemittance", testLicenseFeeRemittance},
		{"WalletExposure", testWalletExposure},
		{"PaymentStateMachine", testPaymentStateMachine},
		{"JoiningFees", testJoiningFees},
		{"ServerEvents", testServerEvents},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}

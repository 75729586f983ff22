// Package wallet keeps the operator's hot balance inside its configured
// bounds and turns eligible user balances into on-chain withdrawals.
package wallet

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/clickchain/settlement/internal/adapter"
	"github.com/clickchain/settlement/internal/config"
	"github.com/clickchain/settlement/internal/domain"
	"github.com/clickchain/settlement/internal/events"
	"github.com/clickchain/settlement/internal/logger"
	"github.com/clickchain/settlement/internal/node"
	"github.com/clickchain/settlement/internal/store"
	"github.com/clickchain/settlement/internal/store/schema"
)

const coldWalletNotifyKey = "notify:cold_wallet"

// coldWalletMessage travels on-chain with every excess transfer so the
// movement is identifiable in both accounts' logs.
const coldWalletMessage = "cold_wallet_transfer"

// ColdWalletManager keeps the hot wallet's free surplus inside its bounds.
// The surplus is the node balance minus the exposure owed to users (pending
// withdrawals plus ledger balances). Excess surplus is moved to cold storage;
// a shortfall can only be fixed by a manual transfer from cold storage, so it
// raises an operator alert instead.
//
//go:generate mockgen -source=cold_wallet.go -destination=../mocks/cold_wallet.go -package=mocks -mock_names=ColdWalletManager=MockColdWalletManager
type ColdWalletManager interface {
	// Run performs one balance check
	Run(ctx context.Context) error
}

type coldWalletManager struct {
	store    store.Store
	node     node.Client
	clock    adapter.Clock
	recorder events.Recorder
	cfg      config.ColdWalletConfig
	cold     domain.AccountAddress
}

// NewColdWalletManager creates a cold wallet manager
func NewColdWalletManager(s store.Store, nodeClient node.Client, clock adapter.Clock,
	recorder events.Recorder, cfg config.ColdWalletConfig) ColdWalletManager {
	return &coldWalletManager{
		store:    s,
		node:     nodeClient,
		clock:    clock,
		recorder: recorder,
		cfg:      cfg,
		cold:     domain.AccountAddress(cfg.Address).Normalize(),
	}
}

func (m *coldWalletManager) Run(ctx context.Context) error {
	if err := m.reclassifyColdInflows(ctx); err != nil {
		logger.WarnCtx(ctx, "cold wallet inflow reclassification skipped", zap.Error(err))
	}

	balance, err := m.node.GetBalance(ctx)
	if err != nil {
		return fmt.Errorf("failed to read hot wallet balance: %w", err)
	}

	pending, err := m.store.GetPendingWithdrawalTotal(ctx)
	if err != nil {
		return fmt.Errorf("failed to total pending withdrawals: %w", err)
	}
	userBalances, err := m.store.GetTotalUserBalance(ctx)
	if err != nil {
		return fmt.Errorf("failed to total user balances: %w", err)
	}

	// Everything owed to users stays on the hot wallet: in-flight withdrawals
	// plus every balance a user could ask for next. Only the surplus beyond
	// that is the operator's to move.
	exposure := pending + userBalances
	surplus := balance - exposure

	switch {
	case surplus > m.cfg.MaxHotBalance:
		return m.transferExcess(ctx, surplus)
	case surplus < m.cfg.MinHotBalance:
		return m.alertShortfall(ctx, balance, exposure)
	}

	return nil
}

func (m *coldWalletManager) transferExcess(ctx context.Context, surplus domain.Click) error {
	excess := surplus - m.cfg.MaxHotBalance
	if excess < m.cfg.MinTransfer {
		return nil
	}

	result, err := m.node.SendOne(ctx, m.cold, excess, coldWalletMessage)
	if err != nil {
		return fmt.Errorf("failed to transfer excess to cold wallet: %w", err)
	}

	logger.InfoCtx(ctx, "excess moved to cold wallet",
		zap.Int64("amount", excess),
		zap.String("txid", result.TxID),
	)

	return m.recorder.Record(ctx, schema.ServerEventTypeColdWalletTransfer, map[string]interface{}{
		"amount": excess,
		"txid":   result.TxID,
	})
}

// alertShortfall raises a rate-limited operator alert. Replenishment requires
// the cold wallet's key, which never touches this system.
func (m *coldWalletManager) alertShortfall(ctx context.Context, balance, exposure domain.Click) error {
	last, err := m.store.GetTimestamp(ctx, coldWalletNotifyKey)
	if err != nil {
		return fmt.Errorf("failed to read notification timestamp: %w", err)
	}
	if !last.IsZero() && m.clock.Since(last) < m.cfg.NotifyInterval {
		return nil
	}

	logger.WarnCtx(ctx, "hot wallet surplus below minimum",
		zap.Int64("balance", balance),
		zap.Int64("exposure", exposure),
		zap.Int64("min_hot_balance", m.cfg.MinHotBalance),
	)

	if err := m.recorder.Record(ctx, schema.ServerEventTypeColdWalletTransfer, map[string]interface{}{
		"alert":           "hot_balance_low",
		"balance":         balance,
		"exposure":        exposure,
		"min_hot_balance": m.cfg.MinHotBalance,
	}); err != nil {
		return err
	}

	return m.store.SetTimestamp(ctx, coldWalletNotifyKey, m.clock.Now())
}

// reclassifyColdInflows claims inbound transactions sent from the cold wallet
// address. The ingester records them like any other inbound transfer; only
// this job knows the cold address, so the claim happens here before the
// matcher wastes a try-out window on them.
func (m *coldWalletManager) reclassifyColdInflows(ctx context.Context) error {
	for _, status := range []schema.AdsPaymentStatus{
		schema.AdsPaymentStatusEventPaymentCandidate,
		schema.AdsPaymentStatusReserved,
	} {
		payments, err := m.store.ListAdsPaymentsByStatus(ctx, status)
		if err != nil {
			return err
		}

		for _, payment := range payments {
			if payment.Address.Normalize() != m.cold {
				continue
			}
			if err := m.store.UpdateAdsPaymentStatus(ctx, payment.ID,
				schema.AdsPaymentStatusTransferFromColdWallet); err != nil {
				return err
			}
			logger.InfoCtx(ctx, "cold wallet replenishment recorded",
				zap.Int64("payment_id", payment.ID),
				zap.String("txid", payment.TxID),
				zap.Int64("amount", payment.Amount),
			)
		}
	}

	return nil
}

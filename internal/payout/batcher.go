// Package payout turns matched publisher earnings into on-chain transfers.
// Batching groups unpaid case payments by payout address into frozen payment
// batches; sending moves batches through a persisted state machine so an
// interrupted send is reconciled against the node instead of blindly resent.
package payout

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/clickchain/settlement/internal/adapter"
	"github.com/clickchain/settlement/internal/domain"
	"github.com/clickchain/settlement/internal/logger"
	"github.com/clickchain/settlement/internal/store"
	"github.com/clickchain/settlement/internal/store/schema"
)

const joiningFeeAllocationKey = "joining_fee:last_allocation"

// BatcherConfig holds the batching parameters
type BatcherConfig struct {
	// BatchLimit caps how many case payments one batching pass picks up;
	// zero means no cap
	BatchLimit int
	// JoiningFeePeriod is the interval between joining-fee allocations
	JoiningFeePeriod time.Duration
	// JoiningFeeDecay is the fraction of the remaining joining fee released
	// each period
	JoiningFeeDecay decimal.Decimal
}

// Batcher groups unpaid earnings into payment batches.
//
//go:generate mockgen -source=batcher.go -destination=../mocks/payout_batcher.go -package=mocks -mock_names=Batcher=MockPayoutBatcher
type Batcher interface {
	// Run performs one batching pass
	Run(ctx context.Context) error
}

type batcher struct {
	store store.Store
	clock adapter.Clock
	cfg   BatcherConfig
}

// NewBatcher creates a payout batcher
func NewBatcher(s store.Store, clock adapter.Clock, cfg BatcherConfig) Batcher {
	return &batcher{store: s, clock: clock, cfg: cfg}
}

// Run groups unpaid case payments into one batch per payout address and
// releases due joining-fee allocations into the same payout queue. A batch,
// once created, is frozen: membership never changes.
func (b *batcher) Run(ctx context.Context) error {
	created, err := b.store.BatchUnpaidCasePayments(ctx, b.cfg.BatchLimit)
	if err != nil {
		return fmt.Errorf("failed to batch unpaid case payments: %w", err)
	}

	var total domain.Click
	for _, batch := range created {
		total += batch.Amount
	}
	logger.InfoCtx(ctx, "payout batches created",
		zap.Int("batches", len(created)),
		zap.Int64("total", total),
	)

	if err := b.allocateJoiningFees(ctx); err != nil {
		logger.WarnCtx(ctx, "joining fee allocation skipped", zap.Error(err))
	}

	return nil
}

// allocateJoiningFees releases the next slice of every joining fee with a
// remaining balance, at most once per configured period. Each allocation is
// the decay fraction of what is left, floored, so payouts shrink
// exponentially; a remainder too small to split is released whole.
func (b *batcher) allocateJoiningFees(ctx context.Context) error {
	last, err := b.store.GetTimestamp(ctx, joiningFeeAllocationKey)
	if err != nil {
		return fmt.Errorf("failed to read allocation timestamp: %w", err)
	}
	if !last.IsZero() && b.clock.Since(last) < b.cfg.JoiningFeePeriod {
		return nil
	}

	fees, err := b.store.ListJoiningFeesWithBalance(ctx)
	if err != nil {
		return fmt.Errorf("failed to list joining fees: %w", err)
	}

	for _, joiningFee := range fees {
		amount := domain.Click(decimal.NewFromInt(int64(joiningFee.LeftAmount)).
			Mul(b.cfg.JoiningFeeDecay).Floor().IntPart())
		if amount <= 0 {
			amount = joiningFee.LeftAmount
		}

		payment := &schema.Payment{
			AccountAddress: joiningFee.AdsAddress,
			State:          schema.PaymentStateNew,
			Amount:         amount,
		}
		if err := b.store.CreateJoiningFeePayment(ctx, joiningFee.ID, payment); err != nil {
			logger.ErrorCtx(ctx, err,
				zap.Int64("joining_fee_id", joiningFee.ID),
				zap.Int64("amount", amount),
			)
			continue
		}

		logger.InfoCtx(ctx, "joining fee allocation released",
			zap.Int64("joining_fee_id", joiningFee.ID),
			zap.String("address", string(joiningFee.AdsAddress)),
			zap.Int64("amount", amount),
		)
	}

	if err := b.store.SetTimestamp(ctx, joiningFeeAllocationKey, b.clock.Now()); err != nil {
		return fmt.Errorf("failed to store allocation timestamp: %w", err)
	}

	return nil
}

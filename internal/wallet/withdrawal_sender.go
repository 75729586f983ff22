package wallet

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/clickchain/settlement/internal/domain"
	"github.com/clickchain/settlement/internal/logger"
	"github.com/clickchain/settlement/internal/messaging"
	"github.com/clickchain/settlement/internal/node"
	"github.com/clickchain/settlement/internal/store"
	"github.com/clickchain/settlement/internal/store/schema"
)

// WithdrawalSender consumes queued withdrawal jobs and performs the on-chain
// sends. It runs until the context is cancelled.
//
//go:generate mockgen -source=withdrawal_sender.go -destination=../mocks/withdrawal_sender.go -package=mocks -mock_names=WithdrawalSender=MockWithdrawalSender
type WithdrawalSender interface {
	Run(ctx context.Context) error
}

type withdrawalSender struct {
	store      store.Store
	node       node.Client
	subscriber messaging.Subscriber
}

// NewWithdrawalSender creates a withdrawal sender
func NewWithdrawalSender(s store.Store, nodeClient node.Client,
	subscriber messaging.Subscriber) WithdrawalSender {
	return &withdrawalSender{store: s, node: nodeClient, subscriber: subscriber}
}

func (s *withdrawalSender) Run(ctx context.Context) error {
	return s.subscriber.SubscribeWithdrawalJobs(ctx, s.handle)
}

// withdrawalMessage ties the on-chain transfer back to its ledger entry so
// an operator can reconcile a job that was paid but never settled.
func withdrawalMessage(entryID int64) string {
	return fmt.Sprintf("withdrawal:%d", entryID)
}

// handle performs one withdrawal. A returned error naks the message for
// redelivery; insufficient operator balance is the usual cause and resolves
// once the hot wallet is replenished.
func (s *withdrawalSender) handle(ctx context.Context, job *domain.WithdrawalJob) error {
	result, err := s.node.SendOne(ctx, job.Address, job.Amount, withdrawalMessage(job.LedgerEntryID))
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			logger.WarnCtx(ctx, "withdrawal postponed, hot wallet balance too low",
				zap.Int64("ledger_entry_id", job.LedgerEntryID),
				zap.Int64("amount", job.Amount),
			)
		}
		return fmt.Errorf("failed to send withdrawal: %w", err)
	}

	err = s.store.SettleWithdrawal(ctx, job.LedgerEntryID, result.TxID, schema.LedgerEntryStatusAccepted)
	if errors.Is(err, domain.ErrStatusConflict) {
		// already settled by an earlier delivery
		logger.WarnCtx(ctx, "withdrawal was already settled",
			zap.Int64("ledger_entry_id", job.LedgerEntryID),
			zap.String("txid", result.TxID),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to settle withdrawal: %w", err)
	}

	logger.InfoCtx(ctx, "withdrawal settled",
		zap.Int64("ledger_entry_id", job.LedgerEntryID),
		zap.String("user_id", job.UserID.String()),
		zap.String("address", string(job.Address)),
		zap.Int64("amount", job.Amount),
		zap.String("txid", result.TxID),
	)

	return nil
}

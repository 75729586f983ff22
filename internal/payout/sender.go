package payout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clickchain/settlement/internal/domain"
	"github.com/clickchain/settlement/internal/events"
	"github.com/clickchain/settlement/internal/logger"
	"github.com/clickchain/settlement/internal/node"
	"github.com/clickchain/settlement/internal/store"
	"github.com/clickchain/settlement/internal/store/schema"
)

// reconcileSlack widens the log window when looking for a batch that was
// submitted but whose receipt was lost, to tolerate clock skew between the
// database and the node.
const reconcileSlack = time.Minute

// Sender submits payout batches to the node.
//
//go:generate mockgen -source=sender.go -destination=../mocks/payout_sender.go -package=mocks -mock_names=Sender=MockPayoutSender
type Sender interface {
	// Run performs one sending pass
	Run(ctx context.Context) error
}

type sender struct {
	store    store.Store
	node     node.Client
	recorder events.Recorder
}

// NewSender creates a payout sender
func NewSender(s store.Store, nodeClient node.Client, recorder events.Recorder) Sender {
	return &sender{store: s, node: nodeClient, recorder: recorder}
}

// payoutMessage is the on-chain transfer message of a batch. It is how a lost
// receipt is recovered: a sending batch whose message appears in the operator's
// outgoing log was submitted, one whose message does not was not.
func payoutMessage(paymentID int64) string {
	return fmt.Sprintf("payout:%d", paymentID)
}

// Run reconciles batches stuck in sending, re-queues failed batches, then
// submits every new batch as one transfer each. Submission errors other than
// a node rejection leave the batch in sending for the next reconciliation.
func (s *sender) Run(ctx context.Context) error {
	if err := s.reconcile(ctx); err != nil {
		return fmt.Errorf("failed to reconcile sending batches: %w", err)
	}

	if err := s.requeueFailed(ctx); err != nil {
		return fmt.Errorf("failed to requeue failed batches: %w", err)
	}

	batches, err := s.store.ListPaymentsByState(ctx, schema.PaymentStateNew)
	if err != nil {
		return fmt.Errorf("failed to list new batches: %w", err)
	}

	var sent, failed int
	var sentAmount domain.Click
	for _, batch := range batches {
		switch err := s.send(ctx, batch); {
		case err == nil:
			sent++
			sentAmount += batch.Amount
		case errors.Is(err, domain.ErrStatusConflict):
			// another sender picked it up
		default:
			failed++
			logger.ErrorCtx(ctx, err,
				zap.Int64("payment_id", batch.ID),
				zap.String("address", string(batch.AccountAddress)),
				zap.Int64("amount", batch.Amount),
			)
		}
	}

	if len(batches) > 0 {
		if err := s.recorder.Record(ctx, schema.ServerEventTypePayoutSent, map[string]interface{}{
			"batches": len(batches),
			"sent":    sent,
			"failed":  failed,
			"amount":  sentAmount,
		}); err != nil {
			logger.WarnCtx(ctx, "failed to record payout event", zap.Error(err))
		}
	}

	return nil
}

// reconcile resolves batches a previous run left in sending. The operator's
// outgoing log is searched for each batch's payout message: found means the
// transfer reached the chain and only the receipt was lost, not found means
// the submission never went through and the batch can be retried.
func (s *sender) reconcile(ctx context.Context) error {
	pending, err := s.store.ListPaymentsByState(ctx, schema.PaymentStateSending)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	since := pending[0].CreatedAt.Add(-reconcileSlack)
	entries, err := s.node.GetLog(ctx, since)
	if err != nil {
		return err
	}

	outgoing := make(map[string]domain.TransactionLogEntry)
	for _, entry := range entries {
		if entry.Direction == domain.TxDirectionOut {
			outgoing[entry.Message] = entry
		}
	}

	for _, batch := range pending {
		entry, found := outgoing[payoutMessage(batch.ID)]
		if !found {
			logger.WarnCtx(ctx, "payout batch never reached the chain, retrying",
				zap.Int64("payment_id", batch.ID),
			)
			if err := s.store.MarkPaymentFailed(ctx, batch.ID); err != nil {
				return err
			}
			continue
		}

		result := &domain.TransactionResult{
			TxID:   entry.TxID,
			TxTime: entry.Time,
		}
		if err := s.store.MarkPaymentSent(ctx, batch.ID, result); err != nil {
			return err
		}
		if err := s.store.MarkPaymentOK(ctx, batch.ID); err != nil {
			return err
		}

		logger.InfoCtx(ctx, "payout batch recovered from chain log",
			zap.Int64("payment_id", batch.ID),
			zap.String("txid", entry.TxID),
		)
	}

	return nil
}

func (s *sender) requeueFailed(ctx context.Context) error {
	failed, err := s.store.ListPaymentsByState(ctx, schema.PaymentStateFailed)
	if err != nil {
		return err
	}

	for _, batch := range failed {
		if err := s.store.RetryPayment(ctx, batch.ID); err != nil {
			if errors.Is(err, domain.ErrStatusConflict) {
				continue
			}
			return err
		}
	}

	return nil
}

// send submits one batch. The sending state is persisted before the node call
// so a crash in between is caught by reconcile instead of causing a double
// send. A node rejection flips the batch to failed; any other submission
// error leaves it in sending because the outcome is unknown.
func (s *sender) send(ctx context.Context, batch *schema.Payment) error {
	ok, err := s.store.MarkPaymentSending(ctx, batch.ID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrStatusConflict
	}

	result, err := s.node.SendOne(ctx, batch.AccountAddress, batch.Amount, payoutMessage(batch.ID))
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			if markErr := s.store.MarkPaymentFailed(ctx, batch.ID); markErr != nil {
				return markErr
			}
		}
		return err
	}

	if err := s.store.MarkPaymentSent(ctx, batch.ID, result); err != nil {
		return err
	}
	if err := s.store.MarkPaymentOK(ctx, batch.ID); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "payout batch sent",
		zap.Int64("payment_id", batch.ID),
		zap.String("address", string(batch.AccountAddress)),
		zap.Int64("amount", batch.Amount),
		zap.String("txid", result.TxID),
	)

	return nil
}

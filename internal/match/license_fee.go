package match

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/clickchain/settlement/internal/domain"
	"github.com/clickchain/settlement/internal/events"
	"github.com/clickchain/settlement/internal/logger"
	"github.com/clickchain/settlement/internal/node"
	"github.com/clickchain/settlement/internal/store"
	"github.com/clickchain/settlement/internal/store/schema"
)

// FeeSender remits license fees owed to the license issuer.
//
//go:generate mockgen -source=license_fee.go -destination=../mocks/license_fee.go -package=mocks -mock_names=FeeSender=MockFeeSender
type FeeSender interface {
	// SendAll issues one aggregated on-chain transfer for every outstanding
	// license fee
	SendAll(ctx context.Context) error
}

// LicenseFeeSender batches license fees into a single transfer per run,
// keeping transaction count (and on-chain fees) down. The outstanding amount
// lives in the store, not in memory: a run that fails to send leaves every
// due recorded, and the next run picks them up again.
type LicenseFeeSender struct {
	store    store.Store
	node     node.Client
	recorder events.Recorder
	address  domain.AccountAddress
}

// NewLicenseFeeSender creates a license fee sender remitting to the given
// license account
func NewLicenseFeeSender(s store.Store, nodeClient node.Client, recorder events.Recorder,
	address domain.AccountAddress) *LicenseFeeSender {
	return &LicenseFeeSender{
		store:    s,
		node:     nodeClient,
		recorder: recorder,
		address:  address.Normalize(),
	}
}

// SendAll issues one aggregated transfer to the license account for every
// matched payment whose license fee has not gone out yet. Insufficient
// operator balance is not fatal: the dues stay recorded and the next run
// retries. Other node errors are returned for the caller to log, with the
// dues equally untouched.
func (s *LicenseFeeSender) SendAll(ctx context.Context) error {
	dues, err := s.store.ListUnremittedLicenseFees(ctx)
	if err != nil {
		return fmt.Errorf("failed to list outstanding license fees: %w", err)
	}

	var total domain.Click
	payments := make([]int64, 0, len(dues))
	for _, due := range dues {
		total += due.Amount
		payments = append(payments, due.AdsPaymentID)
	}
	if total <= 0 {
		return nil
	}

	result, err := s.node.SendOne(ctx, s.address, total, "license_fee")
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			logger.WarnCtx(ctx, "skipping license fee payment, insufficient operator balance",
				zap.Int64("amount", total),
				zap.String("recipient", string(s.address)),
			)
			return nil
		}
		logger.ErrorCtx(ctx, err,
			zap.Int64("amount", total),
			zap.String("recipient", string(s.address)),
			zap.Int64s("ads_payment_ids", payments),
		)
		return err
	}

	// Marking after the send: a crash in between re-remits next run, which
	// over-pays the issuer rather than losing the fee
	if err := s.store.MarkLicenseFeesRemitted(ctx, payments); err != nil {
		return fmt.Errorf("license fee sent in %s but not marked remitted: %w", result.TxID, err)
	}

	logger.InfoCtx(ctx, "license fee sent",
		zap.Int64("amount", total),
		zap.String("txid", result.TxID),
		zap.Int("payments", len(payments)),
	)

	if err := s.recorder.Record(ctx, schema.ServerEventTypeLicenseFeeSent, map[string]interface{}{
		"amount":   total,
		"txid":     result.TxID,
		"payments": len(payments),
	}); err != nil {
		logger.WarnCtx(ctx, "failed to record license fee event", zap.Error(err))
	}

	return nil
}

// Package ingest watches the operator account's on-chain transaction log and
// classifies every inbound transfer: user deposits are credited to ledgers,
// ad-network payments become matching candidates, everything else is reserved
// or marked invalid. Transactions are deduplicated by txid, so replaying the
// log after a crash is safe.
package ingest

import (
	"context"
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

// Ingester processes the inbound transaction log.
//
//go:generate mockgen -source=ingest.go -destination=../mocks/ingest.go -package=mocks -mock_names=Ingester=MockIngester
type Ingester interface {
	// Run performs one ingestion pass: fetch the log since the persisted
	// cursor, classify each inbound transaction, advance the cursor
	Run(ctx context.Context) error
}

type ingester struct {
	node     node.Client
	store    store.Store
	recorder events.Recorder
	operator domain.AccountAddress
}

// NewIngester creates an inbound payment ingester for the operator account
func NewIngester(nodeClient node.Client, s store.Store, recorder events.Recorder, operator domain.AccountAddress) Ingester {
	return &ingester{
		node:     nodeClient,
		store:    s,
		recorder: recorder,
		operator: operator.Normalize(),
	}
}

// Run performs one ingestion pass. A node failure before the loop aborts the
// whole run; per-transaction failures are logged and skipped, and the cursor
// stops just before the first failed transaction so the next run re-reads it.
// Entries after a failure are still processed; replaying them later is safe.
func (i *ingester) Run(ctx context.Context) error {
	cursor, err := i.store.GetLogCursor(ctx, i.operator)
	if err != nil {
		return fmt.Errorf("failed to read log cursor: %w", err)
	}

	entries, err := i.node.GetLog(ctx, cursor)
	if err != nil {
		return fmt.Errorf("failed to fetch transaction log: %w", err)
	}

	logger.InfoCtx(ctx, "ingesting transaction log",
		zap.Time("since", cursor),
		zap.Int("entries", len(entries)),
	)

	counts := map[schema.AdsPaymentStatus]int{}
	var cursorTime time.Time
	var failed int

	for _, entry := range entries {
		if entry.Direction != domain.TxDirectionIn {
			if failed == 0 && entry.Time.After(cursorTime) {
				cursorTime = entry.Time
			}
			continue
		}

		status, err := i.processEntry(ctx, &entry)
		if err != nil {
			failed++
			logger.ErrorCtx(ctx, err, zap.String("txid", entry.TxID))
			continue
		}
		if status != "" {
			counts[status]++
		}
		if failed == 0 && entry.Time.After(cursorTime) {
			cursorTime = entry.Time
		}
	}

	// The cursor never moves past a failed entry: everything from the first
	// failure on is fetched again next run
	if !cursorTime.IsZero() {
		if err := i.store.SetLogCursor(ctx, i.operator, cursorTime); err != nil {
			return fmt.Errorf("failed to advance log cursor: %w", err)
		}
	}

	if len(counts) > 0 || failed > 0 {
		if err := i.recorder.Record(ctx, schema.ServerEventTypeInboundTxProcessed, map[string]interface{}{
			"deposits":   counts[schema.AdsPaymentStatusUserDeposit],
			"candidates": counts[schema.AdsPaymentStatusEventPaymentCandidate],
			"reserved":   counts[schema.AdsPaymentStatusReserved],
			"invalid":    counts[schema.AdsPaymentStatusInvalid],
			"failed":     failed,
		}); err != nil {
			logger.WarnCtx(ctx, "failed to record ingestion event", zap.Error(err))
		}
	}

	return nil
}

// processEntry persists and classifies one inbound transaction. Returns the
// assigned status, or "" when the transaction was already fully ingested.
func (i *ingester) processEntry(ctx context.Context, entry *domain.TransactionLogEntry) (schema.AdsPaymentStatus, error) {
	payment := &schema.AdsPayment{
		TxID:    entry.TxID,
		Address: entry.SenderAddress.Normalize(),
		Amount:  i.inboundAmount(entry),
		Status:  schema.AdsPaymentStatusNew,
		TxTime:  entry.Time,
	}

	inserted, err := i.store.CreateAdsPayments(ctx, []*schema.AdsPayment{payment})
	if err != nil {
		return "", fmt.Errorf("failed to persist inbound transaction: %w", err)
	}
	if inserted == 0 {
		// Seen in a previous run. A run that crashed between the insert and
		// the classification leaves the row behind unclassified; finish the
		// classification now, the log entry is at hand anyway.
		existing, err := i.store.GetAdsPaymentByTxID(ctx, entry.TxID)
		if err != nil {
			return "", fmt.Errorf("failed to load ingested transaction: %w", err)
		}
		if existing == nil {
			return "", fmt.Errorf("inbound transaction %s vanished after insert", entry.TxID)
		}
		if existing.Status != schema.AdsPaymentStatusNew {
			return "", nil
		}
		payment.ID = existing.ID
	}

	switch entry.Type {
	case domain.TxTypeSendOne:
		return i.classifySendOne(ctx, payment, entry)
	case domain.TxTypeSendMany:
		return i.classifySendMany(ctx, payment, entry)
	default:
		if err := i.store.UpdateAdsPaymentStatus(ctx, payment.ID, schema.AdsPaymentStatusInvalid); err != nil {
			return "", err
		}
		return schema.AdsPaymentStatusInvalid, nil
	}
}

// classifySendOne handles a direct transfer: a message carrying a known user
// id is a deposit; a well-formed message with an unknown user is held back;
// anything else is an ad-network payment candidate.
func (i *ingester) classifySendOne(ctx context.Context, payment *schema.AdsPayment, entry *domain.TransactionLogEntry) (schema.AdsPaymentStatus, error) {
	userID, err := domain.DecodeDepositUserID(entry.Message)
	if err != nil {
		// No user id in the message: ad-network payment candidate
		if err := i.store.UpdateAdsPaymentStatus(ctx, payment.ID, schema.AdsPaymentStatusEventPaymentCandidate); err != nil {
			return "", err
		}
		return schema.AdsPaymentStatusEventPaymentCandidate, nil
	}

	user, err := i.store.GetUserByUUID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to look up user %s: %w", userID, err)
	}
	if user == nil {
		logger.WarnCtx(ctx, "deposit for unknown user, reserving",
			zap.String("txid", entry.TxID),
			zap.String("user_id", userID.String()),
		)
		if err := i.store.UpdateAdsPaymentStatus(ctx, payment.ID, schema.AdsPaymentStatusReserved); err != nil {
			return "", err
		}
		return schema.AdsPaymentStatusReserved, nil
	}

	from := entry.SenderAddress.Normalize()
	to := i.operator
	ledgerEntry := &schema.LedgerEntry{
		UserID:      userID,
		Amount:      payment.Amount,
		Status:      schema.LedgerEntryStatusAccepted,
		Type:        schema.LedgerEntryTypeDeposit,
		AddressFrom: &from,
		AddressTo:   &to,
		TxID:        &entry.TxID,
	}
	if err := i.store.AcceptUserDeposit(ctx, payment.ID, ledgerEntry); err != nil {
		return "", fmt.Errorf("failed to accept deposit %s: %w", entry.TxID, err)
	}

	logger.InfoCtx(ctx, "user deposit accepted",
		zap.String("txid", entry.TxID),
		zap.String("user_id", userID.String()),
		zap.Int64("amount", payment.Amount),
	)

	return schema.AdsPaymentStatusUserDeposit, nil
}

// classifySendMany reserves multi-wire transfers that include the operator
// account; the matcher claims them later. Anything else is invalid.
func (i *ingester) classifySendMany(ctx context.Context, payment *schema.AdsPayment, entry *domain.TransactionLogEntry) (schema.AdsPaymentStatus, error) {
	status := schema.AdsPaymentStatusInvalid
	for _, wire := range entry.Wires {
		if wire.TargetAddress.Normalize() == i.operator {
			status = schema.AdsPaymentStatusReserved
			break
		}
	}

	if err := i.store.UpdateAdsPaymentStatus(ctx, payment.ID, status); err != nil {
		return "", err
	}

	return status, nil
}

// inboundAmount is the amount actually received by the operator account: the
// full amount for send_one, the sum of our wires for send_many.
func (i *ingester) inboundAmount(entry *domain.TransactionLogEntry) domain.Click {
	if entry.Type != domain.TxTypeSendMany {
		return entry.Amount
	}

	var total domain.Click
	for _, wire := range entry.Wires {
		if wire.TargetAddress.Normalize() == i.operator {
			total += wire.Amount
		}
	}
	return total
}

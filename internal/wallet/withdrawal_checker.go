package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clickchain/settlement/internal/config"
	"github.com/clickchain/settlement/internal/domain"
	"github.com/clickchain/settlement/internal/events"
	"github.com/clickchain/settlement/internal/exchange"
	"github.com/clickchain/settlement/internal/logger"
	"github.com/clickchain/settlement/internal/messaging"
	"github.com/clickchain/settlement/internal/store"
	"github.com/clickchain/settlement/internal/store/schema"
)

// WithdrawalChecker dispatches automatic withdrawals for users whose balance
// crossed their configured limit. The check only debits the ledger and queues
// a job; the on-chain send happens asynchronously in the withdrawal sender.
//
//go:generate mockgen -source=withdrawal_checker.go -destination=../mocks/withdrawal_checker.go -package=mocks -mock_names=WithdrawalChecker=MockWithdrawalChecker
type WithdrawalChecker interface {
	// Run performs one auto-withdrawal pass
	Run(ctx context.Context) error
}

type withdrawalChecker struct {
	store     store.Store
	exchange  exchange.RateReader
	publisher messaging.Publisher
	recorder  events.Recorder
	currency  string
	cfg       config.WithdrawalConfig
}

// NewWithdrawalChecker creates a withdrawal checker
func NewWithdrawalChecker(s store.Store, rates exchange.RateReader,
	publisher messaging.Publisher, recorder events.Recorder,
	currency string, cfg config.WithdrawalConfig) WithdrawalChecker {
	return &withdrawalChecker{
		store:     s,
		exchange:  rates,
		publisher: publisher,
		recorder:  recorder,
		currency:  currency,
		cfg:       cfg,
	}
}

func (c *withdrawalChecker) Run(ctx context.Context) error {
	users, err := c.store.ListAutoWithdrawalUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list auto-withdrawal users: %w", err)
	}
	if len(users) == 0 {
		return nil
	}

	rate, err := c.exchange.FetchExchangeRate(ctx, time.Time{}, c.currency)
	if err != nil {
		return fmt.Errorf("failed to fetch exchange rate: %w", err)
	}

	var dispatched int
	var total domain.Click
	for _, user := range users {
		amount, err := c.dispatch(ctx, user, rate)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("user_id", user.UUID.String()))
			continue
		}
		if amount > 0 {
			dispatched++
			total += amount
		}
	}

	if dispatched > 0 {
		if err := c.recorder.Record(ctx, schema.ServerEventTypeWithdrawalDispatched, map[string]interface{}{
			"users":  dispatched,
			"amount": total,
		}); err != nil {
			logger.WarnCtx(ctx, "failed to record withdrawal event", zap.Error(err))
		}
	}

	return nil
}

// dispatch debits the user's available balance as a pending withdrawal and
// queues the send. Returns zero when the user is below their limit. The
// pending entry keeps the funds unspendable while the job is in flight; a
// failed publish rolls it back immediately.
func (c *withdrawalChecker) dispatch(ctx context.Context, user *schema.User, rate *domain.ExchangeRate) (domain.Click, error) {
	if user.WithdrawAddress == nil || user.AutoWithdrawalLimit == nil {
		return 0, nil
	}
	address := user.WithdrawAddress.Normalize()
	if !address.Valid() {
		return 0, fmt.Errorf("user has invalid withdraw address %q", *user.WithdrawAddress)
	}

	if err := c.blockInFlight(ctx, user.UUID); err != nil {
		return 0, err
	}

	// Available means accepted minus blocked. Funds already pending in an
	// earlier withdrawal never dispatch twice.
	balance, err := c.store.GetUserAvailableBalance(ctx, user.UUID)
	if err != nil {
		return 0, fmt.Errorf("failed to read balance: %w", err)
	}
	if balance < c.cfg.MinAmount {
		return 0, nil
	}
	if rate.ToCurrency(balance) < *user.AutoWithdrawalLimit {
		return 0, nil
	}

	entry := &schema.LedgerEntry{
		UserID:    user.UUID,
		Amount:    -balance,
		Status:    schema.LedgerEntryStatusPending,
		Type:      schema.LedgerEntryTypeWithdrawal,
		AddressTo: &address,
	}
	if err := c.store.CreateLedgerEntry(ctx, entry); err != nil {
		return 0, fmt.Errorf("failed to create withdrawal entry: %w", err)
	}

	job := &domain.WithdrawalJob{
		LedgerEntryID: entry.ID,
		UserID:        user.UUID,
		Address:       address,
		Amount:        balance,
	}
	if err := c.publisher.PublishWithdrawalJob(ctx, job); err != nil {
		if rollbackErr := c.store.UpdateLedgerEntryStatus(ctx, entry.ID,
			schema.LedgerEntryStatusPending, schema.LedgerEntryStatusRejected); rollbackErr != nil {
			logger.ErrorCtx(ctx, rollbackErr, zap.Int64("ledger_entry_id", entry.ID))
		}
		return 0, fmt.Errorf("failed to publish withdrawal job: %w", err)
	}

	logger.InfoCtx(ctx, "withdrawal dispatched",
		zap.String("user_id", user.UUID.String()),
		zap.String("address", string(address)),
		zap.Int64("amount", balance),
	)

	return balance, nil
}

// blockInFlight mirrors the user's pending withdrawals as blocked ledger
// entries, so the available balance excludes funds a queued job will send
func (c *withdrawalChecker) blockInFlight(ctx context.Context, userID uuid.UUID) error {
	pending, err := c.store.ListPendingWithdrawals(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list pending withdrawals: %w", err)
	}

	blocked := make([]*schema.LedgerEntry, 0, len(pending))
	for _, entry := range pending {
		blocked = append(blocked, &schema.LedgerEntry{
			UserID:    userID,
			Amount:    entry.Amount,
			Status:    schema.LedgerEntryStatusBlocked,
			Type:      schema.LedgerEntryTypeWithdrawal,
			AddressTo: entry.AddressTo,
		})
	}

	if err := c.store.RebuildUserBlockade(ctx, userID, blocked); err != nil {
		return fmt.Errorf("failed to rebuild blockade: %w", err)
	}
	return nil
}

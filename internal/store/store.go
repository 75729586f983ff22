package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clickchain/settlement/internal/domain"
	"github.com/clickchain/settlement/internal/store/schema"
)

// CasePaymentTotals is the accumulated settlement state of one inbound
// payment, recomputed from persisted case payments when matching resumes
// from a non-zero offset.
type CasePaymentTotals struct {
	TotalAmount domain.Click
	LicenseFee  domain.Click
	OperatorFee domain.Click
	PaidAmount  domain.Click
}

// PublisherCredit is one publisher's share of a matched inbound payment
type PublisherCredit struct {
	PublisherID uuid.UUID
	Amount      domain.Click
}

// LicenseFeeDue is the outstanding license fee of one matched inbound payment
type LicenseFeeDue struct {
	AdsPaymentID int64
	Amount       domain.Click
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetLogCursor retrieves the node-log read position for an account,
	// zero time when no cursor exists yet
	GetLogCursor(ctx context.Context, address domain.AccountAddress) (time.Time, error)
	// SetLogCursor stores the node-log read position for an account
	SetLogCursor(ctx context.Context, address domain.AccountAddress, at time.Time) error
	// GetTimestamp retrieves an arbitrary named timestamp, zero time when absent
	GetTimestamp(ctx context.Context, key string) (time.Time, error)
	// SetTimestamp stores an arbitrary named timestamp
	SetTimestamp(ctx context.Context, key string, at time.Time) error

	// GetUserByUUID retrieves a user by its network-wide identifier, nil when absent
	GetUserByUUID(ctx context.Context, userUUID uuid.UUID) (*schema.User, error)
	// ListAutoWithdrawalUsers retrieves users with auto-withdrawal configured
	ListAutoWithdrawalUsers(ctx context.Context) ([]*schema.User, error)

	// CreateLedgerEntry appends a ledger entry
	CreateLedgerEntry(ctx context.Context, entry *schema.LedgerEntry) error
	// UpdateLedgerEntryStatus transitions a ledger entry from one status to
	// another; returns domain.ErrStatusConflict when the entry is not in the
	// expected status
	UpdateLedgerEntryStatus(ctx context.Context, entryID int64, from, to schema.LedgerEntryStatus) error
	// SettleWithdrawal records the on-chain outcome of a pending withdrawal
	SettleWithdrawal(ctx context.Context, entryID int64, txID string, status schema.LedgerEntryStatus) error
	// GetUserBalance computes the spendable balance as the sum of accepted entries
	GetUserBalance(ctx context.Context, userID uuid.UUID) (domain.Click, error)
	// GetUserAvailableBalance computes the balance net of blockades: the sum
	// of accepted and blocked entries
	GetUserAvailableBalance(ctx context.Context, userID uuid.UUID) (domain.Click, error)
	// GetTotalUserBalance sums the spendable balances of all users
	GetTotalUserBalance(ctx context.Context) (domain.Click, error)
	// GetPendingWithdrawalTotal sums the amounts of in-flight withdrawals,
	// as a positive number
	GetPendingWithdrawalTotal(ctx context.Context) (domain.Click, error)
	// ListPendingWithdrawals retrieves a user's in-flight withdrawal entries
	ListPendingWithdrawals(ctx context.Context, userID uuid.UUID) ([]*schema.LedgerEntry, error)
	// RebuildUserBlockade replaces all blocked entries of a user in one transaction
	RebuildUserBlockade(ctx context.Context, userID uuid.UUID, entries []*schema.LedgerEntry) error

	// CreateAdsPayments inserts inbound payments, silently skipping already
	// recorded transaction ids; returns the number actually inserted
	CreateAdsPayments(ctx context.Context, payments []*schema.AdsPayment) (int64, error)
	// GetAdsPaymentByTxID retrieves an inbound payment by its transaction id,
	// nil when absent
	GetAdsPaymentByTxID(ctx context.Context, txID string) (*schema.AdsPayment, error)
	// ListAdsPaymentsByStatus retrieves inbound payments in a given status,
	// oldest first
	ListAdsPaymentsByStatus(ctx context.Context, status schema.AdsPaymentStatus) ([]*schema.AdsPayment, error)
	// UpdateAdsPaymentStatus sets the classification state of an inbound payment
	UpdateAdsPaymentStatus(ctx context.Context, paymentID int64, status schema.AdsPaymentStatus) error
	// AcceptUserDeposit classifies an inbound payment as a user deposit and
	// credits the user's ledger in a single transaction
	AcceptUserDeposit(ctx context.Context, paymentID int64, entry *schema.LedgerEntry) error

	// GetNetworkHostByAddress retrieves a host by its account address, nil when absent
	GetNetworkHostByAddress(ctx context.Context, address domain.AccountAddress) (*schema.NetworkHost, error)
	// UpsertNetworkHost creates or refreshes a host record keyed by address
	UpsertNetworkHost(ctx context.Context, host *schema.NetworkHost) error

	// GetNetworkCasesByCaseIDs retrieves cases by their network-wide identifiers
	GetNetworkCasesByCaseIDs(ctx context.Context, caseIDs []string) ([]*schema.NetworkCase, error)
	// GetCasePaymentTotals sums the case payments already applied for an
	// inbound payment
	GetCasePaymentTotals(ctx context.Context, adsPaymentID int64) (*CasePaymentTotals, error)
	// AddCasePayments inserts one page of case payments and advances the
	// inbound payment's offset cursor in a single transaction; duplicate
	// (case, payment) pairs are skipped
	AddCasePayments(ctx context.Context, adsPaymentID int64, casePayments []*schema.NetworkCasePayment, lastOffset int) error
	// GetPublisherCredits sums the applied case payments of an inbound payment
	// by publisher, limited to publishers with a local account; the matcher
	// turns these into one ledger credit each. Shares of publishers without
	// an account are left for the payout batcher.
	GetPublisherCredits(ctx context.Context, adsPaymentID int64) ([]*PublisherCredit, error)
	// FinishEventPayment marks an inbound payment fully matched, credits each
	// publisher's ledger and marks the credited case payments ledger-settled,
	// all in a single transaction
	FinishEventPayment(ctx context.Context, paymentID int64, credits []*schema.LedgerEntry) error
	// ListUnremittedLicenseFees sums the license fees of matched inbound
	// payments that have not been remitted to the license issuer yet
	ListUnremittedLicenseFees(ctx context.Context) ([]*LicenseFeeDue, error)
	// MarkLicenseFeesRemitted flags matched inbound payments as remitted so
	// their license fees are not sent twice
	MarkLicenseFeesRemitted(ctx context.Context, adsPaymentIDs []int64) error

	// BatchUnpaidCasePayments groups the unbatched case payments of matched
	// inbound payments by payout address into new payment batches, atomically
	// with their membership; ledger-settled shares are never batched
	BatchUnpaidCasePayments(ctx context.Context, limit int) ([]*schema.Payment, error)
	// ListPaymentsByState retrieves payout batches in a given state, oldest first
	ListPaymentsByState(ctx context.Context, state schema.PaymentState) ([]*schema.Payment, error)
	// MarkPaymentSending flips a batch new->sending; returns false when the
	// batch was not in state new (another sender got there first)
	MarkPaymentSending(ctx context.Context, paymentID int64) (bool, error)
	// MarkPaymentSent records the node receipt and flips sending->sent
	MarkPaymentSent(ctx context.Context, paymentID int64, result *domain.TransactionResult) error
	// MarkPaymentOK flips a batch to ok and marks it completed
	MarkPaymentOK(ctx context.Context, paymentID int64) error
	// MarkPaymentFailed flips a batch to failed so it can be retried
	MarkPaymentFailed(ctx context.Context, paymentID int64) error
	// RetryPayment flips a batch failed->new for another send attempt
	RetryPayment(ctx context.Context, paymentID int64) error

	// ListJoiningFeesWithBalance retrieves joining fees with unallocated amounts
	ListJoiningFeesWithBalance(ctx context.Context) ([]*schema.JoiningFee, error)
	// CreateJoiningFeePayment creates a payout batch for a joining-fee
	// allocation and decrements the remaining amount in a single transaction
	CreateJoiningFeePayment(ctx context.Context, feeID int64, payment *schema.Payment) error

	// CreateServerEvent records an operator-visible event
	CreateServerEvent(ctx context.Context, event *schema.ServerEvent) error
	// ListRecentServerEvents retrieves the newest operator events
	ListRecentServerEvents(ctx context.Context, limit int) ([]*schema.ServerEvent, error)
}

package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Click is the smallest indivisible currency unit. All ledger and fee
// arithmetic is integer arithmetic on clicks; floats never touch balances.
type Click = int64

// AccountAddress is a network account identifier in the form
// NNNN-XXXXXXXX-CCCC (node id, user id, checksum), e.g. "0001-00000001-8B4E".
type AccountAddress string

var accountAddressPattern = regexp.MustCompile(`^[0-9A-F]{4}-[0-9A-F]{8}-[0-9A-F]{4}$`)

// Valid reports whether the address matches the canonical account format.
func (a AccountAddress) Valid() bool {
	return accountAddressPattern.MatchString(string(a))
}

// Normalize upper-cases the address so comparisons are canonical.
func (a AccountAddress) Normalize() AccountAddress {
	return AccountAddress(strings.ToUpper(string(a)))
}

// TxType is the node-level transaction type.
type TxType string

const (
	TxTypeSendOne  TxType = "send_one"
	TxTypeSendMany TxType = "send_many"
)

// TxDirection indicates whether a log entry is an inflow or outflow.
type TxDirection string

const (
	TxDirectionIn  TxDirection = "in"
	TxDirectionOut TxDirection = "out"
)

// Wire is one recipient leg of a send_many transaction.
type Wire struct {
	TargetAddress AccountAddress `json:"target_address"`
	Amount        Click          `json:"amount"`
}

// TransactionLogEntry is one entry of the node's account transaction log.
type TransactionLogEntry struct {
	TxID          string         `json:"id"`
	Type          TxType         `json:"type"`
	Direction     TxDirection    `json:"inout"`
	Amount        Click          `json:"amount"`
	SenderAddress AccountAddress `json:"address"`
	TargetAddress AccountAddress `json:"target_address"`
	Message       string         `json:"message"`
	Wires         []Wire         `json:"wires,omitempty"`
	Time          time.Time      `json:"time"`
}

// TransactionResult is the node's receipt for a submitted transaction.
type TransactionResult struct {
	TxID           string    `json:"tx_id"`
	TxTime         time.Time `json:"tx_time"`
	Deduct         Click     `json:"deduct"`
	Fee            Click     `json:"fee"`
	AccountHashin  string    `json:"account_hashin"`
	AccountHashout string    `json:"account_hashout"`
	AccountMsid    int64     `json:"account_msid"`
}

// PaymentDetail is one record of a demand host's paginated payment report:
// the served case it settles and the gross event value in clicks.
type PaymentDetail struct {
	CaseID     string `json:"case_id"`
	EventValue Click  `json:"event_value"`
}

// ExchangeRate is a clicks-to-fiat conversion rate valid at a point in time.
// The rate stays decimal until the final conversion, which floors at the
// integer boundary; floating error is never accumulated across conversions.
type ExchangeRate struct {
	Rate     decimal.Decimal `json:"rate"`
	Date     time.Time       `json:"date"`
	Currency string          `json:"currency"`
}

// ToCurrency converts an amount of clicks into the rate's currency,
// flooring at the integer boundary.
func (r ExchangeRate) ToCurrency(amount Click) int64 {
	return decimal.NewFromInt(amount).Mul(r.Rate).Floor().IntPart()
}

// ToClicks converts a currency amount back into clicks, flooring at the
// integer boundary. Returns an error for a non-positive rate.
func (r ExchangeRate) ToClicks(amount int64) (Click, error) {
	if !r.Rate.IsPositive() {
		return 0, fmt.Errorf("non-positive exchange rate %s", r.Rate)
	}
	return decimal.NewFromInt(amount).Div(r.Rate).Floor().IntPart(), nil
}

// WithdrawalJob is an asynchronous on-chain send request dispatched by the
// withdrawal checker and consumed by the withdrawal sender. The ledger entry
// referenced is already pending; the consumer settles it.
type WithdrawalJob struct {
	LedgerEntryID int64          `json:"ledger_entry_id"`
	UserID        uuid.UUID      `json:"user_id"`
	Address       AccountAddress `json:"address"`
	Amount        Click          `json:"amount"`
}

// depositMessagePattern matches the 64-hex-digit transfer message attached to
// user deposits: zero padding followed by a 32-hex-digit user UUID.
var depositMessagePattern = regexp.MustCompile(`^0*([0-9a-fA-F]{32})$`)

// DecodeDepositUserID extracts the user UUID embedded in a send_one transfer
// message. Returns uuid.Nil and an error when the message does not carry one.
func DecodeDepositUserID(message string) (uuid.UUID, error) {
	m := depositMessagePattern.FindStringSubmatch(strings.TrimSpace(message))
	if m == nil {
		return uuid.Nil, fmt.Errorf("message %q does not encode a user id", message)
	}
	id, err := uuid.Parse(m[1])
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id in message: %w", err)
	}
	return id, nil
}

// EncodeDepositMessage renders a user UUID as a 64-hex-digit transfer message.
func EncodeDepositMessage(userID uuid.UUID) string {
	return strings.Repeat("0", 32) + strings.ReplaceAll(userID.String(), "-", "")
}

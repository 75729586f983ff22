package schema

import (
	"time"

	"github.com/clickchain/settlement/internal/domain"
)

// AdsPaymentStatus is the classification state of an inbound transaction
type AdsPaymentStatus string

const (
	// AdsPaymentStatusNew is an inbound transaction not yet classified
	AdsPaymentStatusNew AdsPaymentStatus = "new"
	// AdsPaymentStatusUserDeposit is a transfer credited to a user's ledger
	AdsPaymentStatusUserDeposit AdsPaymentStatus = "user_deposit"
	// AdsPaymentStatusEventPaymentCandidate is an ad-network payment awaiting
	// matching against locally recorded cases
	AdsPaymentStatusEventPaymentCandidate AdsPaymentStatus = "event_payment_candidate"
	// AdsPaymentStatusEventPayment is a fully matched ad-network payment
	AdsPaymentStatusEventPayment AdsPaymentStatus = "event_payment"
	// AdsPaymentStatusReserved is held back for later classification or
	// abandoned after the try-out window
	AdsPaymentStatusReserved AdsPaymentStatus = "reserved"
	// AdsPaymentStatusTransferFromColdWallet is a replenishment transfer from
	// cold storage
	AdsPaymentStatusTransferFromColdWallet AdsPaymentStatus = "transfer_from_cold_wallet"
	// AdsPaymentStatusInvalid is a transaction that matches no known pattern
	AdsPaymentStatusInvalid AdsPaymentStatus = "invalid"
)

// AdsPayment represents the ads_payments table - one inbound on-chain
// transaction. LastOffset is the resumable cursor into the sending host's
// paginated payment-details feed: matching can be interrupted at any point
// and resumed without re-counting amounts already applied.
type AdsPayment struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TxID is the on-chain transaction id (unique; ingestion dedup key)
	TxID string `gorm:"column:txid;not null;uniqueIndex;type:varchar(64)"`
	// Address is the sender's network address
	Address domain.AccountAddress `gorm:"column:address;not null;type:varchar(18)"`
	// Amount is the transferred amount in clicks
	Amount domain.Click `gorm:"column:amount;not null"`
	// Status is the classification state
	Status AdsPaymentStatus `gorm:"column:status;not null;type:varchar(32);index"`
	// LastOffset is the number of payment-detail records already applied
	LastOffset int `gorm:"column:last_offset;not null;default:0"`
	// LicenseFeeRemitted is set once the license fees split off this payment
	// went out on-chain; unremitted matched payments are picked up again on
	// the next remittance run
	LicenseFeeRemitted bool `gorm:"column:license_fee_remitted;not null;default:false"`
	// TxTime is the on-chain transaction time
	TxTime time.Time `gorm:"column:tx_time;not null;type:timestamptz"`
	// CreatedAt is the timestamp when this payment was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this payment was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the AdsPayment model
func (AdsPayment) TableName() string {
	return "ads_payments"
}

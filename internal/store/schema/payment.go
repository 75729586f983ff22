package schema

import (
	"time"

	"github.com/clickchain/settlement/internal/domain"
)

// PaymentState is the outgoing payout batch state machine:
// new -> sending -> sent -> ok | failed.
type PaymentState string

const (
	// PaymentStateNew is a batch created but not yet submitted
	PaymentStateNew PaymentState = "new"
	// PaymentStateSending marks that a network submission was attempted; it is
	// persisted before the node call so a crash between the call and the
	// receipt can be reconciled from the node instead of blindly resent
	PaymentStateSending PaymentState = "sending"
	// PaymentStateSent is a batch accepted by the node, receipt recorded
	PaymentStateSent PaymentState = "sent"
	// PaymentStateOK is a batch confirmed on-chain
	PaymentStateOK PaymentState = "ok"
	// PaymentStateFailed is a batch rejected by the node
	PaymentStateFailed PaymentState = "failed"
)

// Payment represents the payments table - one outgoing payout batch. All
// unpaid settlements owed to one address are grouped into a single on-chain
// transaction; membership is frozen at creation and never rebalanced.
type Payment struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// AccountAddress is the payout recipient
	AccountAddress domain.AccountAddress `gorm:"column:account_address;not null;type:varchar(18);index"`
	// State is the batch state
	State PaymentState `gorm:"column:state;not null;type:varchar(16);index"`
	// Completed marks a batch whose ledger effects were applied
	Completed bool `gorm:"column:completed;not null;default:false"`
	// Amount is the summed payout in clicks
	Amount domain.Click `gorm:"column:amount;not null"`
	// Fee is the on-chain transfer fee in clicks, known after sending
	Fee *domain.Click `gorm:"column:fee"`
	// TxID is the on-chain transaction id, known after sending
	TxID *string `gorm:"column:tx_id;type:varchar(64)"`
	// TxTime is the on-chain transaction time, known after sending
	TxTime *time.Time `gorm:"column:tx_time;type:timestamptz"`
	// AccountHashin is the account chain hash before the transaction
	AccountHashin *string `gorm:"column:account_hashin;type:varchar(64)"`
	// AccountHashout is the account chain hash after the transaction
	AccountHashout *string `gorm:"column:account_hashout;type:varchar(64)"`
	// AccountMsid is the account message sequence id of the transaction
	AccountMsid *int64 `gorm:"column:account_msid"`
	// CreatedAt is the timestamp when this batch was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this batch was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	CasePayments []NetworkCasePayment `gorm:"foreignKey:PaymentID"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

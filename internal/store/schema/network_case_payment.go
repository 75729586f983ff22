package schema

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/clickchain/settlement/internal/domain"
)

// NetworkCasePayment represents the network_case_payments table - the
// financial settlement of one case by one inbound ad-network payment.
// The unique (network_case_id, ads_payment_id) pair makes page retries
// idempotent: re-processing a page can never pay the same case twice for
// the same inbound payment.
//
// Invariant: TotalAmount = LicenseFee + OperatorFee + PaidAmount exactly.
type NetworkCasePayment struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// NetworkCaseID references the settled case
	NetworkCaseID int64 `gorm:"column:network_case_id;not null;uniqueIndex:idx_case_payments_case_payment,priority:1"`
	// AdsPaymentID references the inbound payment funding this settlement
	AdsPaymentID int64 `gorm:"column:ads_payment_id;not null;uniqueIndex:idx_case_payments_case_payment,priority:2;index"`
	// PayTime is when the settlement was computed
	PayTime time.Time `gorm:"column:pay_time;not null;type:timestamptz;index"`
	// TotalAmount is the gross event value in clicks
	TotalAmount domain.Click `gorm:"column:total_amount;not null"`
	// LicenseFee is the license issuer's cut in clicks
	LicenseFee domain.Click `gorm:"column:license_fee;not null"`
	// OperatorFee is the operator's cut in clicks
	OperatorFee domain.Click `gorm:"column:operator_fee;not null"`
	// PaidAmount is the publisher's net share in clicks
	PaidAmount domain.Click `gorm:"column:paid_amount;not null"`
	// ExchangeRate is the clicks-to-currency rate at settlement time
	ExchangeRate decimal.Decimal `gorm:"column:exchange_rate;not null;type:numeric(20,11)"`
	// PaidAmountCurrency is PaidAmount converted at ExchangeRate, floored
	PaidAmountCurrency int64 `gorm:"column:paid_amount_currency;not null"`
	// PaymentID references the outgoing payout batch, once batched
	PaymentID *int64 `gorm:"column:payment_id;index"`
	// LedgerSettled marks a share settled through the publisher's local
	// ledger account; every row settles through exactly one channel, either
	// a ledger credit or an on-chain payout batch
	LedgerSettled bool `gorm:"column:ledger_settled;not null;default:false"`
	// CreatedAt is the timestamp when this settlement was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	NetworkCase NetworkCase `gorm:"foreignKey:NetworkCaseID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for the NetworkCasePayment model
func (NetworkCasePayment) TableName() string {
	return "network_case_payments"
}

package schema

import (
	"time"

	"gorm.io/datatypes"
)

// ServerEventType classifies operator-visible job outcomes
type ServerEventType string

const (
	ServerEventTypeInboundTxProcessed   ServerEventType = "inbound_tx_processed"
	ServerEventTypeSupplyPaymentMatched ServerEventType = "supply_payment_matched"
	ServerEventTypePayoutSent           ServerEventType = "payout_sent"
	ServerEventTypeLicenseFeeSent       ServerEventType = "license_fee_sent"
	ServerEventTypeColdWalletTransfer   ServerEventType = "cold_wallet_transfer"
	ServerEventTypeWithdrawalDispatched ServerEventType = "withdrawal_dispatched"
)

// ServerEvent represents the server_events table - the operator dashboard's
// audit feed of batch-job outcomes (processed/failed counts and amounts).
type ServerEvent struct {
	// ID is a ULID, time-sortable and unique across hosts
	ID string `gorm:"column:id;primaryKey;type:varchar(26)"`
	// Type is the event type
	Type ServerEventType `gorm:"column:type;not null;type:varchar(40);index"`
	// Properties is the event payload as JSON
	Properties datatypes.JSON `gorm:"column:properties;not null;type:jsonb"`
	// CreatedAt is the timestamp when this event was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz;index"`
}

// TableName specifies the table name for the ServerEvent model
func (ServerEvent) TableName() string {
	return "server_events"
}

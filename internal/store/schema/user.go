package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/clickchain/settlement/internal/domain"
)

// User represents the users table - the minimal account data the settlement
// engine needs. Full account management lives in a sibling service.
type User struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// UUID is the network-wide user identifier (embedded in deposit messages)
	UUID uuid.UUID `gorm:"column:uuid;not null;uniqueIndex;type:uuid"`
	// WithdrawAddress is the user's payout address, when configured
	WithdrawAddress *domain.AccountAddress `gorm:"column:withdraw_address;type:varchar(18)"`
	// AutoWithdrawalLimit enables auto-withdrawal when set: the minimum
	// balance, in currency units, that triggers an automatic payout
	AutoWithdrawalLimit *int64 `gorm:"column:auto_withdrawal_limit"`
	// CreatedAt is the timestamp when this user was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this user was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

package schema

import (
	"time"

	"github.com/clickchain/settlement/internal/domain"
)

// JoiningFee represents the joining_fees table - a fee paid by a host joining
// the network, disbursed back on an exponential halving schedule. LeftAmount
// only ever decreases and never goes negative.
type JoiningFee struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// AdsAddress is the network address the allocations are paid to
	AdsAddress domain.AccountAddress `gorm:"column:ads_address;not null;type:varchar(18);index"`
	// TotalAmount is the original fee in clicks
	TotalAmount domain.Click `gorm:"column:total_amount;not null"`
	// LeftAmount is the portion not yet allocated, in clicks
	LeftAmount domain.Click `gorm:"column:left_amount;not null"`
	// CreatedAt anchors the allocation schedule
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this fee was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the JoiningFee model
func (JoiningFee) TableName() string {
	return "joining_fees"
}

package schema

import (
	"time"

	"github.com/clickchain/settlement/internal/domain"
)

// NetworkHostStatus is the registration status of a remote network host.
// Hosts are never hard-deleted; Excluded is an explicit tombstone so past
// settlements keep resolving for audit.
type NetworkHostStatus string

const (
	NetworkHostStatusActive   NetworkHostStatus = "active"
	NetworkHostStatusExcluded NetworkHostStatus = "excluded"
)

// NetworkHost represents the network_hosts table - a remote demand host that
// serves campaigns and reports payment details for its transfers.
type NetworkHost struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Address is the host's network account address (payment source match key)
	Address domain.AccountAddress `gorm:"column:address;not null;uniqueIndex;type:varchar(18)"`
	// HostURL is the base URL of the host's reporting API
	HostURL string `gorm:"column:host_url;not null;type:text"`
	// Name is the host's self-reported display name
	Name string `gorm:"column:name;type:varchar(64)"`
	// Status is the registration status
	Status NetworkHostStatus `gorm:"column:status;not null;type:varchar(16);default:active"`
	// LastSeenAt is the last successful broadcast or fetch from this host
	LastSeenAt *time.Time `gorm:"column:last_seen_at;type:timestamptz"`
	// CreatedAt is the timestamp when this host was registered
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this host was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the NetworkHost model
func (NetworkHost) TableName() string {
	return "network_hosts"
}

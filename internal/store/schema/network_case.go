package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/clickchain/settlement/internal/domain"
)

// NetworkCase represents the network_cases table - one served ad event
// (impression or click) matched to a campaign, banner, zone and publisher.
type NetworkCase struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// CaseID is the network-wide case identifier reported by demand hosts
	CaseID string `gorm:"column:case_id;not null;uniqueIndex;type:varchar(36)"`
	// PublisherID is the local publisher whose zone served the event
	PublisherID uuid.UUID `gorm:"column:publisher_id;not null;type:uuid;index"`
	// CampaignID is the demand-side campaign identifier
	CampaignID string `gorm:"column:campaign_id;not null;type:varchar(36)"`
	// BannerID is the demand-side banner identifier
	BannerID string `gorm:"column:banner_id;not null;type:varchar(36)"`
	// ZoneID is the local zone the event was served in
	ZoneID string `gorm:"column:zone_id;not null;type:varchar(36)"`
	// PayTo is the network address the publisher collects payouts on
	PayTo domain.AccountAddress `gorm:"column:pay_to;not null;type:varchar(18);index"`
	// CreatedAt is the timestamp when this case was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the NetworkCase model
func (NetworkCase) TableName() string {
	return "network_cases"
}

package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/clickchain/settlement/internal/domain"
)

// LedgerEntryStatus is the lifecycle status of a ledger entry
type LedgerEntryStatus string

const (
	// LedgerEntryStatusPending is an entry awaiting confirmation (e.g. an
	// unconfirmed withdrawal); pending entries do not count toward the
	// spendable balance
	LedgerEntryStatusPending LedgerEntryStatus = "pending"
	// LedgerEntryStatusAccepted is a confirmed entry; the spendable balance
	// is the sum of accepted entries
	LedgerEntryStatusAccepted LedgerEntryStatus = "accepted"
	// LedgerEntryStatusRejected is an entry that failed confirmation
	LedgerEntryStatusRejected LedgerEntryStatus = "rejected"
	// LedgerEntryStatusBlocked is a negative entry reserving not-yet-spent
	// campaign budget; blockades are recomputed wholesale each run
	LedgerEntryStatusBlocked LedgerEntryStatus = "blocked"
)

// LedgerEntryType classifies the business origin of a ledger entry
type LedgerEntryType string

const (
	LedgerEntryTypeDeposit       LedgerEntryType = "deposit"
	LedgerEntryTypeWithdrawal    LedgerEntryType = "withdrawal"
	LedgerEntryTypeAdIncome      LedgerEntryType = "ad_income"
	LedgerEntryTypeAdExpenditure LedgerEntryType = "ad_expenditure"
	LedgerEntryTypeRefund        LedgerEntryType = "refund"
)

// LedgerEntry represents the user_ledger_entries table - the append-only
// per-user balance journal. Entries are never deleted (audit trail); the only
// permitted mutation is the pending -> accepted|rejected status transition.
type LedgerEntry struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// UserID is the owning user
	UserID uuid.UUID `gorm:"column:user_id;not null;type:uuid;index:idx_ledger_user_status,priority:1"`
	// Amount is the signed amount in clicks (positive credit, negative debit)
	Amount domain.Click `gorm:"column:amount;not null"`
	// Status is the entry lifecycle status
	Status LedgerEntryStatus `gorm:"column:status;not null;type:varchar(16);index:idx_ledger_user_status,priority:2"`
	// Type is the business origin of the entry
	Type LedgerEntryType `gorm:"column:type;not null;type:varchar(20)"`
	// AddressFrom is the source network address, when on-chain
	AddressFrom *domain.AccountAddress `gorm:"column:address_from;type:varchar(18)"`
	// AddressTo is the target network address, when on-chain
	AddressTo *domain.AccountAddress `gorm:"column:address_to;type:varchar(18)"`
	// TxID is the on-chain transaction id backing this entry, when known
	TxID *string `gorm:"column:txid;type:varchar(64)"`
	// CreatedAt is the timestamp when this entry was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this entry was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the LedgerEntry model
func (LedgerEntry) TableName() string {
	return "user_ledger_entries"
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clickchain/settlement/internal/domain"
	"github.com/clickchain/settlement/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	// Set defaults if not provided
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// calculateSafeBatchSize computes the batch size for bulk inserts that stays
// under PostgreSQL's extended-protocol limit of 65535 parameters per query.
// Each record consumes one parameter per inserted field, and ON CONFLICT
// clauses plus GORM bookkeeping add batch-level overhead, reserved as a fixed
// headroom.
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000 // Total parameter headroom for batch-level overhead

	availableParams := maxParams - totalHeadroom
	safeBatchSize := max(availableParams/fieldsPerRecord, 1)

	if safeBatchSize > totalRecords {
		return totalRecords
	}

	return safeBatchSize
}

// GetTimestamp retrieves an arbitrary named timestamp, zero time when absent
func (s *pgStore) GetTimestamp(ctx context.Context, key string) (time.Time, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to get timestamp %q: %w", key, err)
	}

	at, err := time.Parse(time.RFC3339Nano, kv.Value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", key, err)
	}

	return at, nil
}

// SetTimestamp stores an arbitrary named timestamp
func (s *pgStore) SetTimestamp(ctx context.Context, key string, at time.Time) error {
	kv := schema.KeyValueStore{
		Key:   key,
		Value: at.UTC().Format(time.RFC3339Nano),
	}

	if err := s.db.WithContext(ctx).Save(&kv).Error; err != nil {
		return fmt.Errorf("failed to set timestamp %q: %w", key, err)
	}

	return nil
}

// GetLogCursor retrieves the node-log read position for an account
func (s *pgStore) GetLogCursor(ctx context.Context, address domain.AccountAddress) (time.Time, error) {
	return s.GetTimestamp(ctx, logCursorKey(address))
}

// SetLogCursor stores the node-log read position for an account
func (s *pgStore) SetLogCursor(ctx context.Context, address domain.AccountAddress, at time.Time) error {
	return s.SetTimestamp(ctx, logCursorKey(address), at)
}

func logCursorKey(address domain.AccountAddress) string {
	return fmt.Sprintf("log_cursor:%s", address)
}

// GetUserByUUID retrieves a user by its network-wide identifier
func (s *pgStore) GetUserByUUID(ctx context.Context, userUUID uuid.UUID) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("uuid = ?", userUUID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// ListAutoWithdrawalUsers retrieves users with auto-withdrawal configured
func (s *pgStore) ListAutoWithdrawalUsers(ctx context.Context) ([]*schema.User, error) {
	var users []*schema.User
	err := s.db.WithContext(ctx).
		Where("auto_withdrawal_limit IS NOT NULL AND withdraw_address IS NOT NULL").
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list auto-withdrawal users: %w", err)
	}

	return users, nil
}

// CreateLedgerEntry appends a ledger entry
func (s *pgStore) CreateLedgerEntry(ctx context.Context, entry *schema.LedgerEntry) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}

	return nil
}

// UpdateLedgerEntryStatus transitions a ledger entry between statuses.
// The WHERE guard on the current status makes the transition safe under
// concurrent runners.
func (s *pgStore) UpdateLedgerEntryStatus(ctx context.Context, entryID int64, from, to schema.LedgerEntryStatus) error {
	result := s.db.WithContext(ctx).
		Model(&schema.LedgerEntry{}).
		Where("id = ? AND status = ?", entryID, from).
		Update("status", to)
	if result.Error != nil {
		return fmt.Errorf("failed to update ledger entry status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("ledger entry %d not in status %s: %w", entryID, from, domain.ErrStatusConflict)
	}

	return nil
}

// SettleWithdrawal records the on-chain outcome of a pending withdrawal
func (s *pgStore) SettleWithdrawal(ctx context.Context, entryID int64, txID string, status schema.LedgerEntryStatus) error {
	updates := map[string]interface{}{
		"status": status,
	}
	if txID != "" {
		updates["txid"] = txID
	}

	result := s.db.WithContext(ctx).
		Model(&schema.LedgerEntry{}).
		Where("id = ? AND status = ?", entryID, schema.LedgerEntryStatusPending).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to settle withdrawal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("withdrawal entry %d not pending: %w", entryID, domain.ErrStatusConflict)
	}

	return nil
}

// GetUserBalance computes the spendable balance as the sum of accepted entries
func (s *pgStore) GetUserBalance(ctx context.Context, userID uuid.UUID) (domain.Click, error) {
	var balance *int64
	err := s.db.WithContext(ctx).
		Model(&schema.LedgerEntry{}).
		Select("SUM(amount)").
		Where("user_id = ? AND status = ?", userID, schema.LedgerEntryStatusAccepted).
		Scan(&balance).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get user balance: %w", err)
	}
	if balance == nil {
		return 0, nil
	}

	return domain.Click(*balance), nil
}

// GetUserAvailableBalance computes the balance net of blockades: the sum of
// accepted and blocked entries
func (s *pgStore) GetUserAvailableBalance(ctx context.Context, userID uuid.UUID) (domain.Click, error) {
	var balance *int64
	err := s.db.WithContext(ctx).
		Model(&schema.LedgerEntry{}).
		Select("SUM(amount)").
		Where("user_id = ? AND status IN ?", userID,
			[]schema.LedgerEntryStatus{schema.LedgerEntryStatusAccepted, schema.LedgerEntryStatusBlocked}).
		Scan(&balance).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get available balance: %w", err)
	}
	if balance == nil {
		return 0, nil
	}

	return domain.Click(*balance), nil
}

// GetTotalUserBalance sums the spendable balances of all users
func (s *pgStore) GetTotalUserBalance(ctx context.Context) (domain.Click, error) {
	var total *int64
	err := s.db.WithContext(ctx).
		Model(&schema.LedgerEntry{}).
		Select("SUM(amount)").
		Where("status = ?", schema.LedgerEntryStatusAccepted).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get total user balance: %w", err)
	}
	if total == nil {
		return 0, nil
	}

	return domain.Click(*total), nil
}

// GetPendingWithdrawalTotal sums the amounts of in-flight withdrawals.
// Withdrawal entries are negative debits; the result is their magnitude.
func (s *pgStore) GetPendingWithdrawalTotal(ctx context.Context) (domain.Click, error) {
	var total *int64
	err := s.db.WithContext(ctx).
		Model(&schema.LedgerEntry{}).
		Select("SUM(-amount)").
		Where("status = ? AND type = ?",
			schema.LedgerEntryStatusPending, schema.LedgerEntryTypeWithdrawal).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get pending withdrawal total: %w", err)
	}
	if total == nil {
		return 0, nil
	}

	return domain.Click(*total), nil
}

// ListPendingWithdrawals retrieves a user's in-flight withdrawal entries
func (s *pgStore) ListPendingWithdrawals(ctx context.Context, userID uuid.UUID) ([]*schema.LedgerEntry, error) {
	var entries []*schema.LedgerEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND type = ?", userID,
			schema.LedgerEntryStatusPending, schema.LedgerEntryTypeWithdrawal).
		Order("id").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending withdrawals: %w", err)
	}

	return entries, nil
}

// RebuildUserBlockade replaces all blocked entries of a user in one
// transaction. Blockades reserve amounts committed elsewhere and are derived
// state, so delete-then-reinsert keeps them consistent with what is reserved
// right now.
func (s *pgStore) RebuildUserBlockade(ctx context.Context, userID uuid.UUID, entries []*schema.LedgerEntry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ? AND status = ?", userID, schema.LedgerEntryStatusBlocked).
			Delete(&schema.LedgerEntry{}).Error; err != nil {
			return fmt.Errorf("failed to delete blocked entries: %w", err)
		}

		if len(entries) == 0 {
			return nil
		}

		if err := tx.Create(entries).Error; err != nil {
			return fmt.Errorf("failed to create blocked entries: %w", err)
		}

		return nil
	})
}

// CreateAdsPayments inserts inbound payments, silently skipping already
// recorded transaction ids
func (s *pgStore) CreateAdsPayments(ctx context.Context, payments []*schema.AdsPayment) (int64, error) {
	if len(payments) == 0 {
		return 0, nil
	}

	batchSize := calculateSafeBatchSize(len(payments), 8)
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "txid"}},
			DoNothing: true,
		}).
		CreateInBatches(payments, batchSize)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to create ads payments: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// GetAdsPaymentByTxID retrieves an inbound payment by its transaction id
func (s *pgStore) GetAdsPaymentByTxID(ctx context.Context, txID string) (*schema.AdsPayment, error) {
	var payment schema.AdsPayment
	err := s.db.WithContext(ctx).Where("txid = ?", txID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ads payment: %w", err)
	}

	return &payment, nil
}

// ListAdsPaymentsByStatus retrieves inbound payments in a given status, oldest first
func (s *pgStore) ListAdsPaymentsByStatus(ctx context.Context, status schema.AdsPaymentStatus) ([]*schema.AdsPayment, error) {
	var payments []*schema.AdsPayment
	err := s.db.WithContext(ctx).
		Where("status = ?", status).
		Order("tx_time").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ads payments: %w", err)
	}

	return payments, nil
}

// UpdateAdsPaymentStatus sets the classification state of an inbound payment
func (s *pgStore) UpdateAdsPaymentStatus(ctx context.Context, paymentID int64, status schema.AdsPaymentStatus) error {
	result := s.db.WithContext(ctx).
		Model(&schema.AdsPayment{}).
		Where("id = ?", paymentID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update ads payment status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("ads payment %d not found: %w", paymentID, gorm.ErrRecordNotFound)
	}

	return nil
}

// AcceptUserDeposit classifies an inbound payment as a user deposit and
// credits the user's ledger in a single transaction
func (s *pgStore) AcceptUserDeposit(ctx context.Context, paymentID int64, entry *schema.LedgerEntry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Model(&schema.AdsPayment{}).
			Where("id = ? AND status = ?", paymentID, schema.AdsPaymentStatusNew).
			Update("status", schema.AdsPaymentStatusUserDeposit)
		if result.Error != nil {
			return fmt.Errorf("failed to update ads payment status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("ads payment %d not new: %w", paymentID, domain.ErrStatusConflict)
		}

		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to create deposit ledger entry: %w", err)
		}

		return nil
	})
}

// GetNetworkHostByAddress retrieves a host by its account address
func (s *pgStore) GetNetworkHostByAddress(ctx context.Context, address domain.AccountAddress) (*schema.NetworkHost, error) {
	var host schema.NetworkHost
	err := s.db.WithContext(ctx).Where("address = ?", address).First(&host).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get network host: %w", err)
	}

	return &host, nil
}

// UpsertNetworkHost creates or refreshes a host record keyed by address
func (s *pgStore) UpsertNetworkHost(ctx context.Context, host *schema.NetworkHost) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "address"}},
			DoUpdates: clause.AssignmentColumns([]string{"host_url", "name", "status", "last_seen_at", "updated_at"}),
		}).
		Create(host).Error
	if err != nil {
		return fmt.Errorf("failed to upsert network host: %w", err)
	}

	return nil
}

// GetNetworkCasesByCaseIDs retrieves cases by their network-wide identifiers
func (s *pgStore) GetNetworkCasesByCaseIDs(ctx context.Context, caseIDs []string) ([]*schema.NetworkCase, error) {
	if len(caseIDs) == 0 {
		return []*schema.NetworkCase{}, nil
	}

	var cases []*schema.NetworkCase
	err := s.db.WithContext(ctx).
		Where("case_id IN ?", caseIDs).
		Find(&cases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get network cases: %w", err)
	}

	return cases, nil
}

// GetCasePaymentTotals sums the case payments already applied for an inbound payment
func (s *pgStore) GetCasePaymentTotals(ctx context.Context, adsPaymentID int64) (*CasePaymentTotals, error) {
	var totals struct {
		TotalAmount *int64
		LicenseFee  *int64
		OperatorFee *int64
		PaidAmount  *int64
	}

	err := s.db.WithContext(ctx).
		Model(&schema.NetworkCasePayment{}).
		Select("SUM(total_amount) AS total_amount, SUM(license_fee) AS license_fee, SUM(operator_fee) AS operator_fee, SUM(paid_amount) AS paid_amount").
		Where("ads_payment_id = ?", adsPaymentID).
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get case payment totals: %w", err)
	}

	result := &CasePaymentTotals{}
	if totals.TotalAmount != nil {
		result.TotalAmount = domain.Click(*totals.TotalAmount)
	}
	if totals.LicenseFee != nil {
		result.LicenseFee = domain.Click(*totals.LicenseFee)
	}
	if totals.OperatorFee != nil {
		result.OperatorFee = domain.Click(*totals.OperatorFee)
	}
	if totals.PaidAmount != nil {
		result.PaidAmount = domain.Click(*totals.PaidAmount)
	}

	return result, nil
}

// AddCasePayments inserts one page of case payments and advances the inbound
// payment's offset cursor in a single transaction. Re-running the same page
// inserts nothing (unique (case, payment) pair) but still advances the cursor.
func (s *pgStore) AddCasePayments(ctx context.Context, adsPaymentID int64, casePayments []*schema.NetworkCasePayment, lastOffset int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(casePayments) > 0 {
			batchSize := calculateSafeBatchSize(len(casePayments), 10)
			if err := tx.
				Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "network_case_id"}, {Name: "ads_payment_id"}},
					DoNothing: true,
				}).
				Clauses(clause.Returning{Columns: []clause.Column{}}).
				CreateInBatches(casePayments, batchSize).Error; err != nil {
				return fmt.Errorf("failed to create case payments: %w", err)
			}
		}

		result := tx.
			Model(&schema.AdsPayment{}).
			Where("id = ?", adsPaymentID).
			Update("last_offset", lastOffset)
		if result.Error != nil {
			return fmt.Errorf("failed to advance payment offset: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("ads payment %d not found: %w", adsPaymentID, gorm.ErrRecordNotFound)
		}

		return nil
	})
}

// GetPublisherCredits sums the applied case payments of an inbound payment
// by publisher, limited to publishers with a local account. Shares of
// publishers without an account stay unsettled for the payout batcher, so
// every share goes through exactly one channel.
func (s *pgStore) GetPublisherCredits(ctx context.Context, adsPaymentID int64) ([]*PublisherCredit, error) {
	var credits []*PublisherCredit

	err := s.db.WithContext(ctx).
		Table("network_case_payments").
		Select("network_cases.publisher_id AS publisher_id, SUM(network_case_payments.paid_amount) AS amount").
		Joins("JOIN network_cases ON network_cases.id = network_case_payments.network_case_id").
		Joins("JOIN users ON users.uuid = network_cases.publisher_id").
		Where("network_case_payments.ads_payment_id = ?", adsPaymentID).
		Group("network_cases.publisher_id").
		Scan(&credits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get publisher credits: %w", err)
	}

	return credits, nil
}

// FinishEventPayment marks an inbound payment fully matched, credits each
// publisher's ledger and flags the credited case payments ledger-settled in
// a single transaction. The flag keeps the payout batcher off shares that
// were already paid through the ledger.
func (s *pgStore) FinishEventPayment(ctx context.Context, paymentID int64, credits []*schema.LedgerEntry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Model(&schema.AdsPayment{}).
			Where("id = ? AND status = ?", paymentID, schema.AdsPaymentStatusEventPaymentCandidate).
			Update("status", schema.AdsPaymentStatusEventPayment)
		if result.Error != nil {
			return fmt.Errorf("failed to update ads payment status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("ads payment %d not a candidate: %w", paymentID, domain.ErrStatusConflict)
		}

		if len(credits) == 0 {
			return nil
		}

		if err := tx.Create(credits).Error; err != nil {
			return fmt.Errorf("failed to create publisher credits: %w", err)
		}

		publisherIDs := make([]uuid.UUID, 0, len(credits))
		for _, credit := range credits {
			publisherIDs = append(publisherIDs, credit.UserID)
		}
		if err := tx.
			Model(&schema.NetworkCasePayment{}).
			Where("ads_payment_id = ? AND network_case_id IN (?)", paymentID,
				tx.Model(&schema.NetworkCase{}).Select("id").Where("publisher_id IN ?", publisherIDs)).
			Update("ledger_settled", true).Error; err != nil {
			return fmt.Errorf("failed to mark case payments ledger-settled: %w", err)
		}

		return nil
	})
}

// ListUnremittedLicenseFees sums the license fees of matched inbound payments
// that have not been remitted to the license issuer yet
func (s *pgStore) ListUnremittedLicenseFees(ctx context.Context) ([]*LicenseFeeDue, error) {
	var dues []*LicenseFeeDue

	err := s.db.WithContext(ctx).
		Table("network_case_payments").
		Select("network_case_payments.ads_payment_id AS ads_payment_id, SUM(network_case_payments.license_fee) AS amount").
		Joins("JOIN ads_payments ON ads_payments.id = network_case_payments.ads_payment_id").
		Where("ads_payments.status = ? AND ads_payments.license_fee_remitted = false",
			schema.AdsPaymentStatusEventPayment).
		Group("network_case_payments.ads_payment_id").
		Having("SUM(network_case_payments.license_fee) > 0").
		Order("ads_payment_id").
		Scan(&dues).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unremitted license fees: %w", err)
	}

	return dues, nil
}

// MarkLicenseFeesRemitted flags matched inbound payments as remitted
func (s *pgStore) MarkLicenseFeesRemitted(ctx context.Context, adsPaymentIDs []int64) error {
	if len(adsPaymentIDs) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).
		Model(&schema.AdsPayment{}).
		Where("id IN ? AND license_fee_remitted = false", adsPaymentIDs).
		Update("license_fee_remitted", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark license fees remitted: %w", err)
	}

	return nil
}

// BatchUnpaidCasePayments groups unbatched case payments by payout address
// into new payment batches, atomically with their membership. Only fully
// matched payments are batched, and never shares the matcher already settled
// through a publisher's ledger.
func (s *pgStore) BatchUnpaidCasePayments(ctx context.Context, limit int) ([]*schema.Payment, error) {
	var created []*schema.Payment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []struct {
			ID         int64
			PaidAmount int64
			PayTo      domain.AccountAddress
		}

		query := tx.
			Table("network_case_payments").
			Select("network_case_payments.id, network_case_payments.paid_amount, network_cases.pay_to").
			Joins("JOIN network_cases ON network_cases.id = network_case_payments.network_case_id").
			Joins("JOIN ads_payments ON ads_payments.id = network_case_payments.ads_payment_id").
			Where("network_case_payments.payment_id IS NULL").
			Where("network_case_payments.ledger_settled = false").
			Where("ads_payments.status = ?", schema.AdsPaymentStatusEventPayment).
			Order("network_case_payments.id")
		if limit > 0 {
			query = query.Limit(limit)
		}
		if err := query.Scan(&rows).Error; err != nil {
			return fmt.Errorf("failed to list unbatched case payments: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}

		// Group membership by payout address, preserving first-seen order
		type group struct {
			ids    []int64
			amount domain.Click
		}
		groups := make(map[domain.AccountAddress]*group)
		var order []domain.AccountAddress
		for _, row := range rows {
			g, ok := groups[row.PayTo]
			if !ok {
				g = &group{}
				groups[row.PayTo] = g
				order = append(order, row.PayTo)
			}
			g.ids = append(g.ids, row.ID)
			g.amount += domain.Click(row.PaidAmount)
		}

		for _, address := range order {
			g := groups[address]
			payment := &schema.Payment{
				AccountAddress: address,
				State:          schema.PaymentStateNew,
				Amount:         g.amount,
			}
			if err := tx.Create(payment).Error; err != nil {
				return fmt.Errorf("failed to create payment batch: %w", err)
			}

			if err := tx.
				Model(&schema.NetworkCasePayment{}).
				Where("id IN ? AND payment_id IS NULL", g.ids).
				Update("payment_id", payment.ID).Error; err != nil {
				return fmt.Errorf("failed to assign case payments to batch: %w", err)
			}

			created = append(created, payment)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// ListPaymentsByState retrieves payout batches in a given state, oldest first
func (s *pgStore) ListPaymentsByState(ctx context.Context, state schema.PaymentState) ([]*schema.Payment, error) {
	var payments []*schema.Payment
	err := s.db.WithContext(ctx).
		Where("state = ?", state).
		Order("id").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return payments, nil
}

// MarkPaymentSending flips a batch new->sending. The sending state is
// persisted before the node call so an interrupted send can be reconciled
// from the node instead of blindly resent.
func (s *pgStore) MarkPaymentSending(ctx context.Context, paymentID int64) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.Payment{}).
		Where("id = ? AND state = ?", paymentID, schema.PaymentStateNew).
		Update("state", schema.PaymentStateSending)
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark payment sending: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// MarkPaymentSent records the node receipt and flips sending->sent
func (s *pgStore) MarkPaymentSent(ctx context.Context, paymentID int64, result *domain.TransactionResult) error {
	updates := map[string]interface{}{
		"state":           schema.PaymentStateSent,
		"tx_id":           result.TxID,
		"tx_time":         result.TxTime,
		"fee":             int64(result.Fee),
		"account_hashin":  result.AccountHashin,
		"account_hashout": result.AccountHashout,
		"account_msid":    result.AccountMsid,
	}

	res := s.db.WithContext(ctx).
		Model(&schema.Payment{}).
		Where("id = ? AND state = ?", paymentID, schema.PaymentStateSending).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to mark payment sent: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("payment %d not sending: %w", paymentID, domain.ErrStatusConflict)
	}

	return nil
}

// MarkPaymentOK flips a batch to ok and marks it completed
func (s *pgStore) MarkPaymentOK(ctx context.Context, paymentID int64) error {
	result := s.db.WithContext(ctx).
		Model(&schema.Payment{}).
		Where("id = ?", paymentID).
		Updates(map[string]interface{}{
			"state":     schema.PaymentStateOK,
			"completed": true,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark payment ok: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("payment %d not found: %w", paymentID, gorm.ErrRecordNotFound)
	}

	return nil
}

// MarkPaymentFailed flips a batch to failed so it can be retried
func (s *pgStore) MarkPaymentFailed(ctx context.Context, paymentID int64) error {
	result := s.db.WithContext(ctx).
		Model(&schema.Payment{}).
		Where("id = ?", paymentID).
		Update("state", schema.PaymentStateFailed)
	if result.Error != nil {
		return fmt.Errorf("failed to mark payment failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("payment %d not found: %w", paymentID, gorm.ErrRecordNotFound)
	}

	return nil
}

// RetryPayment flips a batch failed->new for another send attempt
func (s *pgStore) RetryPayment(ctx context.Context, paymentID int64) error {
	result := s.db.WithContext(ctx).
		Model(&schema.Payment{}).
		Where("id = ? AND state = ?", paymentID, schema.PaymentStateFailed).
		Update("state", schema.PaymentStateNew)
	if result.Error != nil {
		return fmt.Errorf("failed to retry payment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("payment %d not failed: %w", paymentID, domain.ErrStatusConflict)
	}

	return nil
}

// ListJoiningFeesWithBalance retrieves joining fees with unallocated amounts
func (s *pgStore) ListJoiningFeesWithBalance(ctx context.Context) ([]*schema.JoiningFee, error) {
	var fees []*schema.JoiningFee
	err := s.db.WithContext(ctx).
		Where("left_amount > 0").
		Order("id").
		Find(&fees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list joining fees: %w", err)
	}

	return fees, nil
}

// CreateJoiningFeePayment creates a payout batch for a joining-fee allocation
// and decrements the remaining amount in a single transaction. The guard on
// left_amount keeps it from ever going negative.
func (s *pgStore) CreateJoiningFeePayment(ctx context.Context, feeID int64, payment *schema.Payment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Model(&schema.JoiningFee{}).
			Where("id = ? AND left_amount >= ?", feeID, int64(payment.Amount)).
			Update("left_amount", gorm.Expr("left_amount - ?", int64(payment.Amount)))
		if result.Error != nil {
			return fmt.Errorf("failed to reduce joining fee: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("joining fee %d cannot cover %d: %w", feeID, payment.Amount, domain.ErrInsufficientFunds)
		}

		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to create joining fee payment: %w", err)
		}

		return nil
	})
}

// CreateServerEvent records an operator-visible event
func (s *pgStore) CreateServerEvent(ctx context.Context, event *schema.ServerEvent) error {
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create server event: %w", err)
	}

	return nil
}

// ListRecentServerEvents retrieves the newest operator events
func (s *pgStore) ListRecentServerEvents(ctx context.Context, limit int) ([]*schema.ServerEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	var events []*schema.ServerEvent
	err := s.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list server events: %w", err)
	}

	return events, nil
}

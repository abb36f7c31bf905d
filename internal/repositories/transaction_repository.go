package repositories

import (
	"errors"
	"fmt"
	"time"

	"bankledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// appendEntry writes one ledger entry through the given handle, which may be
// an open transaction. Entries are audit records: there is no corresponding
// update or delete anywhere in this package.
func appendEntry(db *gorm.DB, entry *models.Transaction) error {
	if err := db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

// GetByID retrieves a ledger entry by ID
func (r *transactionRepository) GetByID(id uuid.UUID) (*models.Transaction, error) {
	var entry models.Transaction
	if err := r.db.Where("id = ?", id).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}
	return &entry, nil
}

// GetByAccountID retrieves entries for an account, newest first, with the
// total count for pagination.
func (r *transactionRepository) GetByAccountID(accountID uuid.UUID, offset, limit int) ([]models.Transaction, int64, error) {
	var entries []models.Transaction
	var total int64

	if err := r.db.Model(&models.Transaction{}).
		Where("account_id = ?", accountID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	if err := r.db.Where("account_id = ?", accountID).
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get ledger entries: %w", err)
	}

	return entries, total, nil
}

// GetByReference retrieves all entries that share a reference. A transfer
// yields exactly two.
func (r *transactionRepository) GetByReference(reference string) ([]models.Transaction, error) {
	var entries []models.Transaction
	if err := r.db.Where("reference = ?", reference).
		Order("amount ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to get entries by reference: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrTransactionNotFound
	}
	return entries, nil
}

// SumBefore sums the signed amounts of all entries strictly before the given
// time. This is the opening balance of a statement period.
func (r *transactionRepository) SumBefore(accountID uuid.UUID, before time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	if err := r.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("account_id = ? AND created_at < ?", accountID, before).
		Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum entries before %s: %w", before.Format(time.RFC3339), err)
	}

	return result.Total, nil
}

// SumBetween sums the signed amounts of all entries in [start, end] and
// returns those entries ordered oldest first.
func (r *transactionRepository) SumBetween(accountID uuid.UUID, start, end time.Time) (decimal.Decimal, []models.Transaction, error) {
	var entries []models.Transaction
	if err := r.db.Where("account_id = ? AND created_at BETWEEN ? AND ?", accountID, start, end).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to get entries in range: %w", err)
	}

	total := decimal.Zero
	for i := range entries {
		total = total.Add(entries[i].Amount)
	}

	return total, entries, nil
}

// CountByAccountID counts entries for an account
func (r *transactionRepository) CountByAccountID(accountID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).
		Where("account_id = ?", accountID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}
	return count, nil
}

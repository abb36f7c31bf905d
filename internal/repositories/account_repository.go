package repositories

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"bankledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountNumberExists = errors.New("account number already exists")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrAccountClosed       = errors.New("account is closed")
	ErrNonZeroBalance      = errors.New("account balance must be zero to close")
)

const accountNumberMaxAttempts = 10

// accountRepository implements AccountRepositoryInterface
type accountRepository struct {
	db *gorm.DB
	mu sync.Mutex // For account number generation
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepositoryInterface {
	return &accountRepository{
		db: db,
	}
}

// Create creates a new account
func (r *accountRepository) Create(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAccountNumberExists
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// CreateWithEntries creates an account and its seeding ledger entries in one
// database transaction, so an account is never visible without the entries
// that explain its opening balance.
func (r *accountRepository) CreateWithEntries(account *models.Account, entries []models.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAccountNumberExists
			}
			return fmt.Errorf("failed to create account: %w", err)
		}

		if len(entries) > 0 {
			for i := range entries {
				entries[i].AccountID = account.ID
			}
			if err := tx.Create(&entries).Error; err != nil {
				return fmt.Errorf("failed to create seeding entries: %w", err)
			}
		}

		return nil
	})
}

// GetByID retrieves an account by ID
func (r *accountRepository) GetByID(id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// GetByAccountNumber retrieves an account by account number
func (r *accountRepository) GetByAccountNumber(accountNumber string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("account_number = ?", accountNumber).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by number: %w", err)
	}
	return &account, nil
}

// GetByOwnerID retrieves all accounts for an owner
func (r *accountRepository) GetByOwnerID(ownerID uuid.UUID) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get accounts for owner: %w", err)
	}
	return accounts, nil
}

// Close marks an account closed through one conditional update: the
// zero-balance check and the status change are a single statement, so a
// deposit committing between a caller's read and the close can never be
// destroyed by a stale write.
func (r *accountRepository) Close(id uuid.UUID) (*models.Account, error) {
	now := time.Now().UTC()
	result := r.db.Model(&models.Account{}).
		Where("id = ? AND status = ? AND balance = ?", id, models.AccountStatusActive, decimal.Zero).
		Updates(map[string]interface{}{
			"status":     models.AccountStatusClosed,
			"closed_at":  now,
			"updated_at": now,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to close account %s: %w", id, result.Error)
	}

	if result.RowsAffected == 0 {
		account, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}
		if !account.IsActive() {
			return nil, ErrAccountClosed
		}
		return nil, ErrNonZeroBalance
	}

	return r.GetByID(id)
}

// GenerateUniqueAccountNumber generates a candidate account number and
// retries on collision, bounded to accountNumberMaxAttempts.
func (r *accountRepository) GenerateUniqueAccountNumber() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := 0; i < accountNumberMaxAttempts; i++ {
		accountNumber := models.GenerateAccountNumber()

		exists, err := r.CheckAccountNumberExists(accountNumber)
		if err != nil {
			return "", err
		}

		if !exists {
			return accountNumber, nil
		}
	}

	return "", fmt.Errorf("%w: exhausted %d generation attempts", ErrAccountNumberExists, accountNumberMaxAttempts)
}

// CheckAccountNumberExists checks if an account number already exists
func (r *accountRepository) CheckAccountNumberExists(accountNumber string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Account{}).
		Where("account_number = ?", accountNumber).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check account number existence: %w", err)
	}
	return count > 0, nil
}

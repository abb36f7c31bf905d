package repositories

import (
	"errors"
	"fmt"

	"bankledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrStatementNotFound = errors.New("statement not found")
)

// statementRepository implements StatementRepositoryInterface
type statementRepository struct {
	db *gorm.DB
}

// NewStatementRepository creates a new statement repository
func NewStatementRepository(db *gorm.DB) StatementRepositoryInterface {
	return &statementRepository{
		db: db,
	}
}

// Create persists a generated statement
func (r *statementRepository) Create(statement *models.Statement) error {
	if err := r.db.Create(statement).Error; err != nil {
		return fmt.Errorf("failed to create statement: %w", err)
	}
	return nil
}

// GetByID retrieves a statement by ID
func (r *statementRepository) GetByID(id uuid.UUID) (*models.Statement, error) {
	var statement models.Statement
	if err := r.db.Where("id = ?", id).First(&statement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatementNotFound
		}
		return nil, fmt.Errorf("failed to get statement: %w", err)
	}
	return &statement, nil
}

// GetByAccountID retrieves all statements for an account, newest first
func (r *statementRepository) GetByAccountID(accountID uuid.UUID) ([]models.Statement, error) {
	var statements []models.Statement
	if err := r.db.Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&statements).Error; err != nil {
		return nil, fmt.Errorf("failed to get statements for account: %w", err)
	}
	return statements, nil
}

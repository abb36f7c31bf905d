package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Statement is a derived, recomputable cache of the transaction log for one
// account and period, persisted for fast re-access and as an audit trail of
// what was shown at generation time. Entries backdated into an already
// generated period leave the cached row stale; that staleness is accepted,
// regeneration produces a fresh row.
type Statement struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	PeriodStart    time.Time       `gorm:"not null" json:"period_start"`
	PeriodEnd      time.Time       `gorm:"not null" json:"period_end"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"opening_balance"`
	ClosingBalance decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"closing_balance"`
	ArtifactRef    string          `gorm:"type:varchar(255)" json:"artifact_ref,omitempty"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`

	// Associations
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for Statement
func (s *Statement) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	return nil
}

// TableName returns the table name for Statement
func (s *Statement) TableName() string {
	return "statements"
}

// StatementSummary provides aggregate information for a statement period
type StatementSummary struct {
	TotalCredits decimal.Decimal `json:"total_credits"`
	TotalDebits  decimal.Decimal `json:"total_debits"`
	NetChange    decimal.Decimal `json:"net_change"`
	EntryCount   int             `json:"entry_count"`
}

// Summarize aggregates the completed entries of a statement period
func Summarize(entries []Transaction) StatementSummary {
	summary := StatementSummary{
		TotalCredits: decimal.Zero,
		TotalDebits:  decimal.Zero,
		NetChange:    decimal.Zero,
	}

	for i := range entries {
		entry := &entries[i]

		if entry.Status != TransactionStatusCompleted {
			continue
		}

		summary.EntryCount++

		if entry.IsCredit() {
			summary.TotalCredits = summary.TotalCredits.Add(entry.Amount)
		} else {
			summary.TotalDebits = summary.TotalDebits.Add(entry.Amount.Abs())
		}
	}

	summary.NetChange = summary.TotalCredits.Sub(summary.TotalDebits)

	return summary
}

package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"bankledger/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileArtifactWriter_WriteStatement(t *testing.T) {
	dir := t.TempDir()
	writer := NewFileArtifactWriter(dir)

	account := &models.Account{
		ID:            uuid.New(),
		AccountNumber: "202501011234",
		AccountType:   models.AccountTypeChecking,
		Currency:      "USD",
	}
	statement := &models.Statement{
		AccountID:      account.ID,
		PeriodStart:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:      time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		OpeningBalance: decimal.NewFromInt(500),
		ClosingBalance: decimal.NewFromInt(570),
	}
	entries := []models.Transaction{
		{
			TransactionType: models.TransactionTypeDeposit,
			Amount:          decimal.NewFromInt(100),
			Description:     gofakeit.Sentence(3),
			Status:          models.TransactionStatusCompleted,
			CreatedAt:       time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC),
		},
		{
			TransactionType: models.TransactionTypeWithdrawal,
			Amount:          decimal.NewFromInt(-30),
			Description:     gofakeit.Sentence(3),
			Status:          models.TransactionStatusCompleted,
			CreatedAt:       time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC),
		},
	}

	path, err := writer.WriteStatement(account, statement, entries)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "statement_202501011234_20250601_20250630.txt"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "Account:         202501011234 (checking)")
	assert.Contains(t, text, "Opening Balance: 500.00")
	assert.Contains(t, text, "Closing Balance: 570.00")
	assert.Contains(t, text, entries[0].Description)
	assert.Contains(t, text, entries[1].Description)
	assert.Contains(t, text, "Entries: 2")
}

func TestFileArtifactWriter_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "statements")
	writer := NewFileArtifactWriter(dir)

	account := &models.Account{
		AccountNumber: "202501015678",
		AccountType:   models.AccountTypeSavings,
		Currency:      "USD",
	}
	statement := &models.Statement{
		PeriodStart:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:      time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		OpeningBalance: decimal.Zero,
		ClosingBalance: decimal.Zero,
	}

	path, err := writer.WriteStatement(account, statement, nil)
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileArtifactWriter_UnwritableDirectory(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Chmod(base, 0o500))
	t.Cleanup(func() { _ = os.Chmod(base, 0o755) })

	writer := NewFileArtifactWriter(filepath.Join(base, "statements"))

	account := &models.Account{AccountNumber: "202501019999", Currency: "USD"}
	statement := &models.Statement{
		PeriodStart: time.Now().UTC(),
		PeriodEnd:   time.Now().UTC(),
	}

	_, err := writer.WriteStatement(account, statement, nil)
	assert.Error(t, err)
}

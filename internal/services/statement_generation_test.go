package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"bankledger/internal/database"
	"bankledger/internal/models"
	"bankledger/internal/repositories"
	"bankledger/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Regenerating a statement over an unchanged log must reproduce the same
// opening and closing balances. Exercised against a real database so the
// sums come from the stored entries, not from mocks.
func TestGenerateStatement_RegenerationIsStable(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.CleanupTestDB(t, db)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	metrics := service_mocks.NewMockMetricsRecorderInterface(ctrl)
	metrics.EXPECT().IncrementCounter(gomock.Any(), gomock.Any()).AnyTimes()
	metrics.EXPECT().RecordProcessingTime(gomock.Any(), gomock.Any()).AnyTimes()
	metrics.EXPECT().RecordGauge(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewStatementService(
		repositories.NewStatementRepository(db.DB),
		repositories.NewTransactionRepository(db.DB),
		repositories.NewAccountRepository(db.DB),
		repositories.NewAuditLogRepository(db.DB),
		NewFileArtifactWriter(t.TempDir()),
		metrics,
		logger,
	)

	account := database.CreateTestAccount(t, db, decimal.NewFromInt(170))

	periodStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)

	seed := []models.Transaction{
		{
			AccountID:       account.ID,
			TransactionType: models.TransactionTypeDeposit,
			Amount:          decimal.NewFromInt(100),
			Description:     "Opening deposit",
			CreatedAt:       periodStart.AddDate(0, -1, 0),
		},
		{
			AccountID:       account.ID,
			TransactionType: models.TransactionTypeDeposit,
			Amount:          decimal.NewFromInt(100),
			Description:     "Salary",
			CreatedAt:       periodStart.AddDate(0, 0, 5),
		},
		{
			AccountID:       account.ID,
			TransactionType: models.TransactionTypeWithdrawal,
			Amount:          decimal.NewFromInt(-30),
			Description:     "Groceries",
			CreatedAt:       periodStart.AddDate(0, 0, 10),
		},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	first, firstEntries, err := service.GenerateStatement(account.ID, periodStart, periodEnd)
	require.NoError(t, err)
	require.Len(t, firstEntries, 2)
	assert.True(t, first.OpeningBalance.Equal(decimal.NewFromInt(100)))
	assert.True(t, first.ClosingBalance.Equal(decimal.NewFromInt(170)))

	second, secondEntries, err := service.GenerateStatement(account.ID, periodStart, periodEnd)
	require.NoError(t, err)
	require.Len(t, secondEntries, 2)
	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, second.OpeningBalance.Equal(first.OpeningBalance))
	assert.True(t, second.ClosingBalance.Equal(first.ClosingBalance))
}

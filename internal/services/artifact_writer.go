package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bankledger/internal/models"
)

const artifactDatePrefix = "20060102"

// fileArtifactWriter renders statements as plain-text files under a
// configured directory. The reference it returns is the file path.
type fileArtifactWriter struct {
	dir string
}

// NewFileArtifactWriter creates an artifact writer that writes statement
// files under dir.
func NewFileArtifactWriter(dir string) ArtifactWriterInterface {
	return &fileArtifactWriter{
		dir: dir,
	}
}

// WriteStatement renders the statement and its entries to a text file named
// statement_<account>_<start>_<end>.txt and returns the file path.
func (w *fileArtifactWriter) WriteStatement(account *models.Account, statement *models.Statement, entries []models.Transaction) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create artifact directory: %w", err)
	}

	filename := fmt.Sprintf("statement_%s_%s_%s.txt",
		account.AccountNumber,
		statement.PeriodStart.Format(artifactDatePrefix),
		statement.PeriodEnd.Format(artifactDatePrefix),
	)
	path := filepath.Join(w.dir, filename)

	summary := models.Summarize(entries)

	var b strings.Builder
	fmt.Fprintf(&b, "Account Statement\n")
	fmt.Fprintf(&b, "Account:         %s (%s)\n", account.AccountNumber, account.AccountType)
	fmt.Fprintf(&b, "Currency:        %s\n", account.Currency)
	fmt.Fprintf(&b, "Period:          %s to %s\n",
		statement.PeriodStart.Format("2006-01-02"),
		statement.PeriodEnd.Format("2006-01-02"),
	)
	fmt.Fprintf(&b, "Opening Balance: %s\n", statement.OpeningBalance.StringFixed(2))
	fmt.Fprintf(&b, "Closing Balance: %s\n", statement.ClosingBalance.StringFixed(2))
	fmt.Fprintf(&b, "\n%-20s %-12s %12s  %s\n", "Date", "Type", "Amount", "Description")

	for i := range entries {
		entry := &entries[i]
		fmt.Fprintf(&b, "%-20s %-12s %12s  %s\n",
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
			entry.TransactionType,
			entry.Amount.StringFixed(2),
			entry.Description,
		)
	}

	fmt.Fprintf(&b, "\nEntries: %d  Credits: %s  Debits: %s  Net: %s\n",
		summary.EntryCount,
		summary.TotalCredits.StringFixed(2),
		summary.TotalDebits.StringFixed(2),
		summary.NetChange.StringFixed(2),
	)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write statement artifact: %w", err)
	}

	return path, nil
}

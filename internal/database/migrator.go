package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	migrationsPath = "db/migrations"
	seedsPath      = "db/seeds"
)

var (
	maxRetries    = 30
	retryInterval = 2 * time.Second
)

// MigrationRunner applies the ledger schema migrations and optional seed
// fixtures. It is tolerant of incomplete deployments: a missing migrations
// or seeds directory skips rather than fails, and a dirty version left by a
// crashed deploy is forced before applying.
type MigrationRunner struct {
	db             *sql.DB
	migrationsPath string
	seedsPath      string
}

// NewMigrationRunner creates a runner bound to the given connection
func NewMigrationRunner(db *sql.DB) *MigrationRunner {
	return &MigrationRunner{
		db:             db,
		migrationsPath: migrationsPath,
		seedsPath:      seedsPath,
	}
}

// WaitForDatabase blocks until the ledger database answers a ping, bounded
// to maxRetries attempts.
func (mr *MigrationRunner) WaitForDatabase() error {
	log.Println("Waiting for ledger database...")

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if lastErr = mr.db.Ping(); lastErr == nil {
			log.Println("Ledger database is reachable")
			return nil
		}

		log.Printf("Ledger database unreachable (attempt %d/%d): %v", attempt, maxRetries, lastErr)
		time.Sleep(retryInterval)
	}

	return fmt.Errorf("ledger database unreachable after %d attempts: %w", maxRetries, lastErr)
}

// newMigrator builds a migrate instance over the runner's migrations
// directory and connection.
func (mr *MigrationRunner) newMigrator() (*migrate.Migrate, error) {
	absPath, err := filepath.Abs(mr.migrationsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve migrations path: %w", err)
	}

	driver, err := postgres.WithInstance(mr.db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+absPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return m, nil
}

// RunMigrations applies all pending schema migrations
func (mr *MigrationRunner) RunMigrations() error {
	if _, err := os.Stat(mr.migrationsPath); os.IsNotExist(err) {
		log.Printf("No migrations directory at %s, skipping", mr.migrationsPath)
		return nil
	}

	m, err := mr.newMigrator()
	if err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if dirty {
		log.Printf("Schema version %d is dirty, forcing before applying", version)
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force schema version: %w", err)
		}
	}

	switch err := m.Up(); err {
	case nil:
		newVersion, _, verr := m.Version()
		if verr != nil {
			return fmt.Errorf("failed to read schema version: %w", verr)
		}
		log.Printf("Ledger schema migrated from version %d to %d", version, newVersion)
	case migrate.ErrNoChange:
		log.Printf("Ledger schema up to date at version %d", version)
	default:
		return fmt.Errorf("schema migration failed: %w", err)
	}

	return nil
}

// LoadSeeds executes the SQL fixture files under the seeds directory.
// Seeds are development conveniences (demo accounts with matching ledger
// entries), gated behind SEED_DATABASE so production deployments never run
// them. A failing seed file logs and moves on; fixtures are not schema.
func (mr *MigrationRunner) LoadSeeds() error {
	if os.Getenv("SEED_DATABASE") != "true" {
		log.Println("Seed fixtures disabled (SEED_DATABASE != true)")
		return nil
	}

	if _, err := os.Stat(mr.seedsPath); os.IsNotExist(err) {
		log.Printf("No seeds directory at %s, skipping", mr.seedsPath)
		return nil
	}

	files, err := filepath.Glob(filepath.Join(mr.seedsPath, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list seed files: %w", err)
	}
	if len(files) == 0 {
		log.Printf("No seed files under %s", mr.seedsPath)
		return nil
	}

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read seed file %s: %w", file, err)
		}

		if _, err := mr.db.Exec(string(content)); err != nil {
			log.Printf("Seed file %s failed, continuing: %v", filepath.Base(file), err)
			continue
		}

		log.Printf("Loaded seed file %s", filepath.Base(file))
	}

	return nil
}

// GetMigrationStatus returns the current schema version and dirty flag
func (mr *MigrationRunner) GetMigrationStatus() (version uint, dirty bool, err error) {
	if _, err := os.Stat(mr.migrationsPath); os.IsNotExist(err) {
		return 0, false, fmt.Errorf("migrations directory not found")
	}

	m, err := mr.newMigrator()
	if err != nil {
		return 0, false, err
	}

	return m.Version()
}

// RunMigrationsIfEnabled runs the full migrate-then-seed sequence when
// AUTO_MIGRATE is set, so containerized deployments converge the schema on
// boot without a separate migration job.
func RunMigrationsIfEnabled(db *sql.DB) error {
	if os.Getenv("AUTO_MIGRATE") != "true" {
		log.Println("Auto-migration disabled (AUTO_MIGRATE != true)")
		return nil
	}

	runner := NewMigrationRunner(db)

	if err := runner.WaitForDatabase(); err != nil {
		return fmt.Errorf("database readiness check failed: %w", err)
	}

	if err := runner.RunMigrations(); err != nil {
		return fmt.Errorf("migration run failed: %w", err)
	}

	if err := runner.LoadSeeds(); err != nil {
		log.Printf("Warning: seed loading failed: %v", err)
	}

	version, dirty, err := runner.GetMigrationStatus()
	if err != nil {
		log.Printf("Warning: failed to read schema version: %v", err)
	} else {
		log.Printf("Ledger schema at version %d (dirty=%v)", version, dirty)
	}

	return nil
}

package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/database"
)

// TestDatabaseSetup holds the connection shared by the integration tests.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies migrations.
// The test is skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	if err := database.Migrate(dsn); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolConfig{MaxConns: 10, MinConns: 1})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	setup := &TestDatabaseSetup{DB: db}
	if err := setup.TruncateAllTables(context.Background()); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
	t.Cleanup(setup.Close)
	return setup
}

// TruncateAllTables removes every row from the payroll tables.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"monthly_salaries",
		"work_records",
		"overtime_configs",
		"work_items",
		"work_types",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close closes the database pool
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}

func (t *TestDatabaseSetup) insertWorkType(ctx context.Context, id, calculationType string, unitPrice int64) error {
	_, err := t.DB.Exec(ctx, `
		INSERT INTO work_types (id, name, department, calculation_type, unit_price)
		VALUES ($1, $1, 'production', $2, $3)
	`, id, calculationType, unitPrice)
	return err
}

func (t *TestDatabaseSetup) insertWorkItem(ctx context.Context, id string, pricePerWeld, weldsPerItem, totalQuantity int64) error {
	_, err := t.DB.Exec(ctx, `
		INSERT INTO work_items (id, name, price_per_weld, welds_per_item, total_quantity)
		VALUES ($1, $1, $2, $3, $4)
	`, id, pricePerWeld, weldsPerItem, totalQuantity)
	return err
}

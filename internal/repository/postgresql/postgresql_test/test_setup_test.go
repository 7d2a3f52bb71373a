package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/presence-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup holds the connection shared by one test
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and prepares a clean
// attendances table. The test is skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4})
	require.NoError(t, err, "failed to connect to test database")

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, postgresql.EnsureSchema(ctx, db))
	require.NoError(t, setup.TruncateAllTables(ctx))

	t.Cleanup(setup.Close)
	return setup
}

// TruncateAllTables removes all rows from the attendance tables
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE TABLE attendances, leave_requests RESTART IDENTITY"); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Close closes the pool
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}

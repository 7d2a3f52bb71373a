package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/database"
)

// seq keeps insertion order; the partial index backs the one-open-session rule
const schema = `
	CREATE TABLE IF NOT EXISTS attendances (
		seq           BIGSERIAL UNIQUE,
		id            TEXT PRIMARY KEY,
		date          DATE NOT NULL,
		check_in      TEXT,
		check_out     TEXT,
		location_type TEXT NOT NULL,
		location_name TEXT,
		latitude      DOUBLE PRECISION,
		longitude     DOUBLE PRECISION,
		status        TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE UNIQUE INDEX IF NOT EXISTS attendances_one_open_per_date
		ON attendances (date)
		WHERE check_in IS NOT NULL AND check_out IS NULL;

	CREATE TABLE IF NOT EXISTS leave_requests (
		seq              BIGSERIAL UNIQUE,
		id               TEXT PRIMARY KEY,
		type             TEXT NOT NULL,
		start_date       DATE NOT NULL,
		end_date         DATE NOT NULL CHECK (end_date >= start_date),
		reason           TEXT NOT NULL,
		status           TEXT NOT NULL DEFAULT 'Pending',
		rejection_reason TEXT,
		submitted_at     TIMESTAMPTZ NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
`

// EnsureSchema creates the attendance and leave tables when they do not exist yet
func EnsureSchema(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

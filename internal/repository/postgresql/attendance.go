package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const attendanceColumns = `
	id, to_char(date, 'YYYY-MM-DD'), check_in, check_out,
	location_type, location_name, latitude, longitude, status
`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var (
		att          attendance.Record
		locationType string
		status       string
	)
	err := row.Scan(
		&att.ID, &att.Date, &att.CheckIn, &att.CheckOut,
		&locationType, &att.LocationName, &att.Latitude, &att.Longitude, &status,
	)
	att.LocationType = attendance.LocationType(locationType)
	att.Status = attendance.Status(status)
	return att, err
}

// Append implements attendance.AttendanceRepository.
func (a *attendanceRepository) Append(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	if record.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.Record{}, fmt.Errorf("failed to generate attendance id: %w", err)
		}
		record.ID = id.String()
	}

	err := WithTransaction(ctx, a.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, a.db)

		// Serialize writers per date so the checks below see every committed row
		if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, record.Date); err != nil {
			return fmt.Errorf("failed to lock attendance date: %w", err)
		}

		var hasAny, hasOpen bool
		err := q.QueryRow(ctx, `
			SELECT
				EXISTS (SELECT 1 FROM attendances WHERE date = $1::date),
				EXISTS (SELECT 1 FROM attendances WHERE date = $1::date AND check_in IS NOT NULL AND check_out IS NULL)
		`, record.Date).Scan(&hasAny, &hasOpen)
		if err != nil {
			return fmt.Errorf("failed to check existing attendance: %w", err)
		}

		if record.IsOpen() && hasOpen {
			return attendance.ErrAlreadyCheckedIn
		}
		if record.IsSynthetic() && hasAny {
			return attendance.ErrDuplicateRecord
		}

		_, err = q.Exec(ctx, `
			INSERT INTO attendances (
				id, date, check_in, check_out, location_type, location_name,
				latitude, longitude, status
			) VALUES (
				$1, $2::date, $3, $4, $5, $6, $7, $8, $9
			)
		`,
			record.ID,
			record.Date,
			record.CheckIn,
			record.CheckOut,
			string(record.LocationType),
			record.LocationName,
			record.Latitude,
			record.Longitude,
			string(record.Status),
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == "attendances_one_open_per_date" {
				return attendance.ErrAlreadyCheckedIn
			}
			return fmt.Errorf("failed to create attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.Record{}, err
	}

	return record, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, `SELECT `+attendanceColumns+` FROM attendances ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, nil
}

// FindByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) FindByDate(ctx context.Context, date string) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendances
		WHERE date = $1::date
		ORDER BY seq ASC
		LIMIT 1
	`, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No attendance for that date
		}
		return nil, fmt.Errorf("failed to get attendance by date: %w", err)
	}

	return &att, nil
}

// ListOpenBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenBefore(ctx context.Context, date string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendances
		WHERE date < $1::date AND check_in IS NOT NULL AND check_out IS NULL
		ORDER BY seq ASC
	`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendances: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, nil
}

// CloseSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) CloseSession(ctx context.Context, id string, checkOut string) (attendance.Record, error) {
	var closed attendance.Record

	err := WithTransaction(ctx, a.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, a.db)

		current, err := scanAttendance(q.QueryRow(ctx, `
			SELECT `+attendanceColumns+`
			FROM attendances
			WHERE id = $1
			FOR UPDATE
		`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return attendance.ErrAttendanceNotFound
			}
			return fmt.Errorf("failed to get attendance: %w", err)
		}
		if !current.IsOpen() {
			return attendance.ErrAlreadyCheckedOut
		}

		if _, err := q.Exec(ctx, `
			UPDATE attendances
			SET check_out = $2, updated_at = NOW()
			WHERE id = $1
		`, id, checkOut); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}

		current.CheckOut = &checkOut
		closed = current
		return nil
	})
	if err != nil {
		return attendance.Record{}, err
	}

	return closed, nil
}

// SeedAttendances inserts records when the table is empty. IDs are kept.
func SeedAttendances(ctx context.Context, db *database.DB, records []attendance.Record) (int, error) {
	var count int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM attendances`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count attendances: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	repo := NewAttendanceRepository(db)
	for _, r := range records {
		if _, err := repo.Append(ctx, r); err != nil {
			return 0, fmt.Errorf("failed to seed attendance %s: %w", r.ID, err)
		}
	}
	return len(records), nil
}

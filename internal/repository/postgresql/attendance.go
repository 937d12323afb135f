package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/spx-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/spx-hr/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeCode string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, date, status, created_at, updated_at
		FROM attendance
		WHERE employee_code = $1 AND date = $2
	`

	var a attendance.Attendance
	err := q.QueryRow(ctx, query, employeeCode, date).Scan(
		&a.ID, &a.EmployeeCode, &a.Date, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}

	return &a, nil
}

func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_code, a.date, a.status, a.created_at, a.updated_at,
			   e.name as employee_name
		FROM attendance a
		LEFT JOIN employees e ON a.employee_code = e.employee_code
		WHERE a.date = $1
		ORDER BY a.employee_code
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	defer rows.Close()

	return scanAttendanceRows(rows, true)
}

func (r *attendanceRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, date, status, created_at, updated_at
		FROM attendance
		WHERE date >= $1 AND date <= $2
		ORDER BY date, employee_code
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by range: %w", err)
	}
	defer rows.Close()

	return scanAttendanceRows(rows, false)
}

func (r *attendanceRepository) ListAll(ctx context.Context) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, date, status, created_at, updated_at
		FROM attendance
		ORDER BY date, employee_code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	return scanAttendanceRows(rows, false)
}

func (r *attendanceRepository) Upsert(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (employee_code, date, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_code, date) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id, employee_code, date, status, created_at, updated_at
	`

	var a attendance.Attendance
	err := q.QueryRow(ctx, query, att.EmployeeCode, att.Date, att.Status).Scan(
		&a.ID, &a.EmployeeCode, &a.Date, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return a, nil
}

func (r *attendanceRepository) CreateIfAbsent(ctx context.Context, att attendance.Attendance) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (employee_code, date, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_code, date) DO NOTHING
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query, att.EmployeeCode, att.Date, att.Status).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			// Row already existed, nothing inserted.
			return false, nil
		}
		return false, fmt.Errorf("failed to create attendance: %w", err)
	}

	return true, nil
}

func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM attendance WHERE id = $1 RETURNING id`

	var deletedID string
	err := q.QueryRow(ctx, query, id).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	return nil
}

func scanAttendanceRows(rows pgx.Rows, withEmployeeName bool) ([]attendance.Attendance, error) {
	var records []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		var err error
		if withEmployeeName {
			err = rows.Scan(&a.ID, &a.EmployeeCode, &a.Date, &a.Status, &a.CreatedAt, &a.UpdatedAt, &a.EmployeeName)
		} else {
			err = rows.Scan(&a.ID, &a.EmployeeCode, &a.Date, &a.Status, &a.CreatedAt, &a.UpdatedAt)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	return records, nil
}

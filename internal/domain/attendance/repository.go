package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	GetByEmployeeAndDate(ctx context.Context, employeeCode string, date time.Time) (*Attendance, error)

	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// ListByDateRange retrieves records with date in [start, end] inclusive.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]Attendance, error)

	ListAll(ctx context.Context) ([]Attendance, error)

	// Upsert inserts the record or, when one exists for the same
	// (employee_code, date), overwrites its status. The operation is atomic;
	// concurrent writers cannot produce duplicate keys.
	Upsert(ctx context.Context, att Attendance) (Attendance, error)

	// CreateIfAbsent inserts the record unless one already exists for the
	// same key, in which case it reports created=false and leaves the
	// existing row untouched.
	CreateIfAbsent(ctx context.Context, att Attendance) (created bool, err error)

	Delete(ctx context.Context, id string) error
}

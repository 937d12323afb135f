package payroll

import "context"

// PayrollRepository defines data access methods for payroll records.
type PayrollRepository interface {
	// Upsert inserts the record or overwrites the existing row for the same
	// (employee_code, month, year). inserted reports whether a new row was
	// created. The operation is atomic; concurrent calculations for the same
	// key cannot produce duplicates.
	Upsert(ctx context.Context, record PayrollRecord) (rec PayrollRecord, inserted bool, err error)

	GetByEmployeePeriod(ctx context.Context, employeeCode string, month, year int) (*PayrollRecord, error)

	// ListByPeriod returns all payroll rows for a month, with employee names
	// joined in for reporting.
	ListByPeriod(ctx context.Context, month, year int) ([]PayrollRecord, error)

	// DeleteByEmployeeCode removes every payroll row for an employee and
	// returns how many were deleted.
	DeleteByEmployeeCode(ctx context.Context, employeeCode string) (int, error)
}

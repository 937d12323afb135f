package payroll

import "context"

type PayrollService interface {
	// Calculate aggregates the month's attendance into one payroll row per
	// employee with a business code. Employees without one are reported as
	// skipped; a failure on one employee never aborts the batch.
	Calculate(ctx context.Context, req CalculateRequest) (CalculateResponse, error)

	// Report lists the stored payroll rows for a period.
	Report(ctx context.Context, month, year int) ([]PayrollRecordResponse, error)
}

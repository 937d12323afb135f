package attendance

import "context"

type AttendanceService interface {
	// ListByDate returns the day's ledger for the attendance entry screen.
	ListByDate(ctx context.Context, date string) ([]AttendanceResponse, error)

	// SaveDay upserts the submitted statuses for one date and then
	// recalculates payroll for the containing month. A failed recalculation
	// is logged, not surfaced.
	SaveDay(ctx context.Context, req SaveDayRequest) (SaveDayResponse, error)

	// SyncDay ensures every employee with a business code has a record for
	// the date, inserting absent defaults where missing.
	SyncDay(ctx context.Context, date string) (SyncDayResponse, error)

	// Reconcile deletes attendance records whose employee code no longer
	// references an employee.
	Reconcile(ctx context.Context) (ReconcileResponse, error)
}

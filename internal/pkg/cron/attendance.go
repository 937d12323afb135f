package cron

import (
	"context"
	"log/slog"

	"github.com/spx-hr/attendance-backend-go/internal/domain/attendance"
)

// AttendanceJobs holds the background maintenance passes over the attendance
// ledger.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService) *AttendanceJobs {
	return &AttendanceJobs{attendanceService: attendanceService}
}

// SyncToday backfills absent-defaulted rows for every coded employee for the
// current date. Safe to run repeatedly; existing rows are never touched.
func (j *AttendanceJobs) SyncToday(ctx context.Context) error {
	result, err := j.attendanceService.SyncDay(ctx, "")
	if err != nil {
		return err
	}

	slog.Info("attendance day sync completed",
		"date", result.Date,
		"employees", result.EmployeeCount,
		"created", result.CreatedCount,
		"existing", result.ExistingCount,
	)
	return nil
}

// ReconcileOrphans purges attendance rows whose employee code no longer
// exists.
func (j *AttendanceJobs) ReconcileOrphans(ctx context.Context) error {
	result, err := j.attendanceService.Reconcile(ctx)
	if err != nil {
		return err
	}

	if result.DeletedCount > 0 {
		slog.Warn("orphaned attendance records purged", "deleted", result.DeletedCount)
	}
	return nil
}

package attendance

import (
	"context"
	"log/slog"
	"time"

	"github.com/spx-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/spx-hr/attendance-backend-go/internal/domain/employee"
	"github.com/spx-hr/attendance-backend-go/internal/domain/payroll"
	"github.com/spx-hr/attendance-backend-go/internal/pkg/database"
	"github.com/spx-hr/attendance-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	payrollService payroll.PayrollService
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	payrollService payroll.PayrollService,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		payrollService: payrollService,
	}
}

func (s *AttendanceServiceImpl) ListByDate(ctx context.Context, date string) ([]attendance.AttendanceResponse, error) {
	day, err := parseDateOrToday(date)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	result := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		result = append(result, attendance.ToResponse(rec))
	}

	return result, nil
}

func (s *AttendanceServiceImpl) SaveDay(ctx context.Context, req attendance.SaveDayRequest) (attendance.SaveDayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SaveDayResponse{}, err
	}

	day, _ := validator.IsValidDate(req.Date)

	hasCode := true
	employees, err := s.employeeRepo.List(ctx, employee.ListFilter{HasCode: &hasCode})
	if err != nil {
		return attendance.SaveDayResponse{}, err
	}
	knownCodes := make(map[string]bool, len(employees))
	for _, emp := range employees {
		knownCodes[*emp.EmployeeCode] = true
	}

	resp := attendance.SaveDayResponse{
		Success: true,
		Date:    req.Date,
	}

	for code, status := range req.Statuses {
		if !knownCodes[code] {
			msg := attendance.ErrUnknownEmployee.Error()
			resp.Success = false
			resp.Results = append(resp.Results, attendance.DayEntryResult{
				EmployeeCode: code,
				Status:       "error",
				Message:      &msg,
			})
			continue
		}

		_, err := s.attendanceRepo.Upsert(ctx, attendance.Attendance{
			EmployeeCode: code,
			Date:         day,
			Status:       attendance.Status(status),
		})
		if err != nil {
			msg := err.Error()
			resp.Success = false
			resp.Results = append(resp.Results, attendance.DayEntryResult{
				EmployeeCode: code,
				Status:       "error",
				Message:      &msg,
			})
			continue
		}

		resp.Results = append(resp.Results, attendance.DayEntryResult{
			EmployeeCode: code,
			Status:       "saved",
		})
	}

	// Keep payroll figures current for the month just edited. This is a
	// secondary effect; the attendance save already succeeded.
	month := int(day.Month())
	year := day.Year()
	if _, err := s.payrollService.Calculate(ctx, payroll.CalculateRequest{Month: &month, Year: &year}); err != nil {
		slog.Error("payroll recalculation after attendance save failed",
			"month", month, "year", year, "error", err)
	}

	return resp, nil
}

func (s *AttendanceServiceImpl) SyncDay(ctx context.Context, date string) (attendance.SyncDayResponse, error) {
	day, err := parseDateOrToday(date)
	if err != nil {
		return attendance.SyncDayResponse{}, err
	}

	// Attendance keys on the business code, so employees without one cannot
	// be synced.
	hasCode := true
	employees, err := s.employeeRepo.List(ctx, employee.ListFilter{HasCode: &hasCode})
	if err != nil {
		return attendance.SyncDayResponse{}, err
	}

	resp := attendance.SyncDayResponse{
		Date:          day.Format("2006-01-02"),
		EmployeeCount: len(employees),
	}

	for _, emp := range employees {
		created, err := s.attendanceRepo.CreateIfAbsent(ctx, attendance.Attendance{
			EmployeeCode: *emp.EmployeeCode,
			Date:         day,
			Status:       attendance.StatusAbsent,
		})
		if err != nil {
			msg := err.Error()
			resp.Results = append(resp.Results, attendance.SyncResult{
				Employee: emp.Name,
				Status:   "error",
				Message:  &msg,
			})
			continue
		}

		if created {
			resp.CreatedCount++
			resp.Results = append(resp.Results, attendance.SyncResult{
				Employee: emp.Name,
				Status:   "created",
			})
		} else {
			resp.ExistingCount++
			resp.Results = append(resp.Results, attendance.SyncResult{
				Employee: emp.Name,
				Status:   "exists",
			})
		}
	}

	return resp, nil
}

func (s *AttendanceServiceImpl) Reconcile(ctx context.Context) (attendance.ReconcileResponse, error) {
	employees, err := s.employeeRepo.List(ctx, employee.ListFilter{})
	if err != nil {
		return attendance.ReconcileResponse{}, err
	}

	validCodes := make(map[string]bool)
	for _, emp := range employees {
		if emp.HasCode() {
			validCodes[*emp.EmployeeCode] = true
		}
	}

	records, err := s.attendanceRepo.ListAll(ctx)
	if err != nil {
		return attendance.ReconcileResponse{}, err
	}

	var resp attendance.ReconcileResponse
	for _, rec := range records {
		if validCodes[rec.EmployeeCode] {
			continue
		}

		if err := s.attendanceRepo.Delete(ctx, rec.ID); err != nil {
			slog.Error("failed to delete orphaned attendance record",
				"id", rec.ID, "employee_code", rec.EmployeeCode, "error", err)
			continue
		}

		resp.DeletedCount++
		resp.DeletedRecords = append(resp.DeletedRecords, attendance.ToResponse(rec))
	}

	return resp, nil
}

func parseDateOrToday(date string) (time.Time, error) {
	if date == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	day, ok := validator.IsValidDate(date)
	if !ok {
		return time.Time{}, validator.ValidationErrors{
			{Field: "date", Message: "must be a valid YYYY-MM-DD date"},
		}
	}
	return day, nil
}

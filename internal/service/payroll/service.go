package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spx-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/spx-hr/attendance-backend-go/internal/domain/employee"
	"github.com/spx-hr/attendance-backend-go/internal/domain/payroll"
	"github.com/spx-hr/attendance-backend-go/internal/pkg/database"
	"github.com/spx-hr/attendance-backend-go/internal/pkg/validator"
)

// halfDayRate is the fixed fraction of the daily wage paid for a half day.
var halfDayRate = decimal.NewFromFloat(0.5)

type PayrollServiceImpl struct {
	db             *database.DB
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:             db,
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
	}
}

func (s *PayrollServiceImpl) Calculate(ctx context.Context, req payroll.CalculateRequest) (payroll.CalculateResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CalculateResponse{}, err
	}

	now := time.Now()
	month := int(now.Month())
	year := now.Year()
	if req.Month != nil {
		month = *req.Month
	}
	if req.Year != nil {
		year = *req.Year
	}

	start, end := payroll.PeriodBounds(month, year)

	employees, err := s.employeeRepo.List(ctx, employee.ListFilter{})
	if err != nil {
		return payroll.CalculateResponse{}, err
	}

	records, err := s.attendanceRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		return payroll.CalculateResponse{}, err
	}

	byCode := make(map[string][]attendance.Attendance)
	for _, rec := range records {
		byCode[rec.EmployeeCode] = append(byCode[rec.EmployeeCode], rec)
	}

	resp := payroll.CalculateResponse{
		Success:       true,
		Month:         month,
		Year:          year,
		EmployeeCount: len(employees),
	}

	for _, emp := range employees {
		if !emp.HasCode() {
			reason := "no employee code assigned"
			resp.Results = append(resp.Results, payroll.EmployeeResult{
				Employee: emp.Name,
				Status:   "skipped",
				Reason:   &reason,
			})
			continue
		}

		code := *emp.EmployeeCode
		var presentDays, halfDays, absentDays int
		for _, rec := range byCode[code] {
			// Anything outside the three known statuses is tolerated but
			// counted in no bucket.
			switch rec.Status {
			case attendance.StatusPresent:
				presentDays++
			case attendance.StatusHalfDay:
				halfDays++
			case attendance.StatusAbsent:
				absentDays++
			}
		}

		record := payroll.PayrollRecord{
			EmployeeCode: code,
			Month:        month,
			Year:         year,
			PresentDays:  presentDays,
			HalfDays:     halfDays,
			AbsentDays:   absentDays,
			DailyWage:    emp.DailyWage,
			TotalAmount:  totalAmount(emp.DailyWage, presentDays, halfDays),
		}

		saved, inserted, err := s.payrollRepo.Upsert(ctx, record)
		if err != nil {
			msg := err.Error()
			resp.Results = append(resp.Results, payroll.EmployeeResult{
				Employee: emp.Name,
				Status:   "error",
				Message:  &msg,
			})
			continue
		}

		status := "updated"
		if inserted {
			status = "inserted"
		}
		data := payroll.ToResponse(saved)
		resp.Results = append(resp.Results, payroll.EmployeeResult{
			Employee: emp.Name,
			Status:   status,
			Data:     &data,
		})
	}

	return resp, nil
}

func (s *PayrollServiceImpl) Report(ctx context.Context, month, year int) ([]payroll.PayrollRecordResponse, error) {
	if !validator.IsValidMonth(month) || !validator.IsValidYear(year) {
		return nil, payroll.ErrInvalidPeriod
	}

	records, err := s.payrollRepo.ListByPeriod(ctx, month, year)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, rec := range records {
		result = append(result, payroll.ToResponse(rec))
	}

	return result, nil
}

// totalAmount = present days at full wage plus half days at half wage.
// Absent days pay nothing.
func totalAmount(dailyWage decimal.Decimal, presentDays, halfDays int) decimal.Decimal {
	presentPay := dailyWage.Mul(decimal.NewFromInt(int64(presentDays)))
	halfPay := dailyWage.Mul(decimal.NewFromInt(int64(halfDays))).Mul(halfDayRate)
	return presentPay.Add(halfPay)
}

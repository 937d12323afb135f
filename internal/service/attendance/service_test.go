package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spx-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/spx-hr/attendance-backend-go/internal/domain/employee"
	"github.com/spx-hr/attendance-backend-go/internal/domain/payroll"
	"github.com/spx-hr/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	emp.ID = uuid.NewString()
	f.employees = append(f.employees, emp)
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.HasCode() && *emp.EmployeeCode == code {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if filter.HasCode != nil && emp.HasCode() != *filter.HasCode {
			continue
		}
		out = append(out, emp)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) ListCodes(ctx context.Context) ([]string, error) {
	var out []string
	for _, emp := range f.employees {
		if emp.HasCode() {
			out = append(out, *emp.EmployeeCode)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error {
	return employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) SetCode(ctx context.Context, id string, code string) error {
	return employee.ErrEmployeeNotFound
}

type fakeAttendanceRepo struct {
	records []attendance.Attendance
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, code string, date time.Time) (*attendance.Attendance, error) {
	for _, rec := range f.records {
		if rec.EmployeeCode == code && rec.Date.Equal(date) {
			r := rec
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		if rec.Date.Equal(date) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		if !rec.Date.Before(start) && !rec.Date.After(end) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListAll(ctx context.Context) ([]attendance.Attendance, error) {
	return append([]attendance.Attendance(nil), f.records...), nil
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	for i, rec := range f.records {
		if rec.EmployeeCode == att.EmployeeCode && rec.Date.Equal(att.Date) {
			f.records[i].Status = att.Status
			return f.records[i], nil
		}
	}
	att.ID = uuid.NewString()
	f.records = append(f.records, att)
	return att, nil
}

func (f *fakeAttendanceRepo) CreateIfAbsent(ctx context.Context, att attendance.Attendance) (bool, error) {
	for _, rec := range f.records {
		if rec.EmployeeCode == att.EmployeeCode && rec.Date.Equal(att.Date) {
			return false, nil
		}
	}
	att.ID = uuid.NewString()
	f.records = append(f.records, att)
	return true, nil
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id string) error {
	for i, rec := range f.records {
		if rec.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

// fakePayrollService records recalculation requests.
type fakePayrollService struct {
	calls []payroll.CalculateRequest
	err   error
}

func (f *fakePayrollService) Calculate(ctx context.Context, req payroll.CalculateRequest) (payroll.CalculateResponse, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return payroll.CalculateResponse{}, f.err
	}
	return payroll.CalculateResponse{Success: true}, nil
}

func (f *fakePayrollService) Report(ctx context.Context, month, year int) ([]payroll.PayrollRecordResponse, error) {
	return nil, nil
}

func codedEmployee(code, name string) employee.Employee {
	c := code
	return employee.Employee{
		ID:           uuid.NewString(),
		EmployeeCode: &c,
		Name:         name,
		DailyWage:    decimal.NewFromInt(500),
	}
}

func TestSyncDayIsIdempotent(t *testing.T) {
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		codedEmployee("SPX001", "Asha"),
		codedEmployee("SPX002", "Biru"),
	}}
	attRepo := &fakeAttendanceRepo{}
	svc := NewAttendanceService(nil, attRepo, empRepo, &fakePayrollService{})

	first, err := svc.SyncDay(context.Background(), "2024-03-04")
	require.NoError(t, err)
	assert.Equal(t, 2, first.EmployeeCount)
	assert.Equal(t, 2, first.CreatedCount)
	assert.Equal(t, 0, first.ExistingCount)

	// Flip one row so the second pass can prove it leaves existing rows alone.
	attRepo.records[0].Status = attendance.StatusPresent

	second, err := svc.SyncDay(context.Background(), "2024-03-04")
	require.NoError(t, err)
	assert.Equal(t, 0, second.CreatedCount)
	assert.Equal(t, 2, second.ExistingCount)
	assert.Len(t, attRepo.records, 2)
	assert.Equal(t, attendance.StatusPresent, attRepo.records[0].Status)
}

func TestSyncDayExcludesEmployeesWithoutCode(t *testing.T) {
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		codedEmployee("SPX001", "Asha"),
		{ID: uuid.NewString(), Name: "Biru"},
	}}
	attRepo := &fakeAttendanceRepo{}
	svc := NewAttendanceService(nil, attRepo, empRepo, &fakePayrollService{})

	resp, err := svc.SyncDay(context.Background(), "2024-03-04")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.EmployeeCount)
	require.Len(t, attRepo.records, 1)
	assert.Equal(t, "SPX001", attRepo.records[0].EmployeeCode)
	assert.Equal(t, attendance.StatusAbsent, attRepo.records[0].Status)
}

func TestSyncDayRejectsMalformedDate(t *testing.T) {
	svc := NewAttendanceService(nil, &fakeAttendanceRepo{}, &fakeEmployeeRepo{}, &fakePayrollService{})

	_, err := svc.SyncDay(context.Background(), "04-03-2024")
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestReconcileDeletesExactlyOrphans(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		codedEmployee("SPX001", "Asha"),
	}}
	attRepo := &fakeAttendanceRepo{records: []attendance.Attendance{
		{ID: uuid.NewString(), EmployeeCode: "SPX001", Date: day, Status: attendance.StatusPresent},
		{ID: uuid.NewString(), EmployeeCode: "SPX999", Date: day, Status: attendance.StatusAbsent},
		{ID: uuid.NewString(), EmployeeCode: "SPX999", Date: day.AddDate(0, 0, 1), Status: attendance.StatusPresent},
	}}
	svc := NewAttendanceService(nil, attRepo, empRepo, &fakePayrollService{})

	resp, err := svc.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.DeletedCount)
	require.Len(t, resp.DeletedRecords, 2)
	for _, rec := range resp.DeletedRecords {
		assert.Equal(t, "SPX999", rec.EmployeeCode)
	}

	require.Len(t, attRepo.records, 1)
	assert.Equal(t, "SPX001", attRepo.records[0].EmployeeCode)
}

func TestSaveDayUpsertsAndRecalculatesPayroll(t *testing.T) {
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		codedEmployee("SPX001", "Asha"),
		codedEmployee("SPX002", "Biru"),
	}}
	attRepo := &fakeAttendanceRepo{}
	payrollSvc := &fakePayrollService{}
	svc := NewAttendanceService(nil, attRepo, empRepo, payrollSvc)

	resp, err := svc.SaveDay(context.Background(), attendance.SaveDayRequest{
		Date: "2024-03-04",
		Statuses: map[string]string{
			"SPX001": "present",
			"SPX002": "half_day",
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Len(t, resp.Results, 2)
	assert.Len(t, attRepo.records, 2)

	require.Len(t, payrollSvc.calls, 1)
	require.NotNil(t, payrollSvc.calls[0].Month)
	require.NotNil(t, payrollSvc.calls[0].Year)
	assert.Equal(t, 3, *payrollSvc.calls[0].Month)
	assert.Equal(t, 2024, *payrollSvc.calls[0].Year)
}

func TestSaveDayOverwritesExistingStatus(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		codedEmployee("SPX001", "Asha"),
	}}
	attRepo := &fakeAttendanceRepo{records: []attendance.Attendance{
		{ID: uuid.NewString(), EmployeeCode: "SPX001", Date: day, Status: attendance.StatusAbsent},
	}}
	svc := NewAttendanceService(nil, attRepo, empRepo, &fakePayrollService{})

	resp, err := svc.SaveDay(context.Background(), attendance.SaveDayRequest{
		Date:     "2024-03-04",
		Statuses: map[string]string{"SPX001": "present"},
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.Len(t, attRepo.records, 1)
	assert.Equal(t, attendance.StatusPresent, attRepo.records[0].Status)
}

func TestSaveDayRejectsUnknownEmployeeCode(t *testing.T) {
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		codedEmployee("SPX001", "Asha"),
	}}
	attRepo := &fakeAttendanceRepo{}
	svc := NewAttendanceService(nil, attRepo, empRepo, &fakePayrollService{})

	resp, err := svc.SaveDay(context.Background(), attendance.SaveDayRequest{
		Date: "2024-03-04",
		Statuses: map[string]string{
			"SPX001": "present",
			"SPX404": "present",
		},
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Len(t, attRepo.records, 1)

	var errored int
	for _, res := range resp.Results {
		if res.Status == "error" {
			errored++
			assert.Equal(t, "SPX404", res.EmployeeCode)
		}
	}
	assert.Equal(t, 1, errored)
}

func TestSaveDayValidatesInput(t *testing.T) {
	svc := NewAttendanceService(nil, &fakeAttendanceRepo{}, &fakeEmployeeRepo{}, &fakePayrollService{})
	var verrs validator.ValidationErrors

	_, err := svc.SaveDay(context.Background(), attendance.SaveDayRequest{
		Date:     "not-a-date",
		Statuses: map[string]string{"SPX001": "present"},
	})
	require.ErrorAs(t, err, &verrs)

	_, err = svc.SaveDay(context.Background(), attendance.SaveDayRequest{
		Date:     "2024-03-04",
		Statuses: map[string]string{"SPX001": "vacationing"},
	})
	require.ErrorAs(t, err, &verrs)
}

func TestSaveDaySucceedsWhenRecalculationFails(t *testing.T) {
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		codedEmployee("SPX001", "Asha"),
	}}
	attRepo := &fakeAttendanceRepo{}
	payrollSvc := &fakePayrollService{err: errors.New("payroll store unavailable")}
	svc := NewAttendanceService(nil, attRepo, empRepo, payrollSvc)

	resp, err := svc.SaveDay(context.Background(), attendance.SaveDayRequest{
		Date:     "2024-03-04",
		Statuses: map[string]string{"SPX001": "present"},
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Len(t, attRepo.records, 1)
	assert.Len(t, payrollSvc.calls, 1)
}

func TestListByDateRejectsMalformedDate(t *testing.T) {
	svc := NewAttendanceService(nil, &fakeAttendanceRepo{}, &fakeEmployeeRepo{}, &fakePayrollService{})

	_, err := svc.ListByDate(context.Background(), "2024/03/04")
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

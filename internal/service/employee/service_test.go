package employee

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spx-hr/attendance-backend-go/internal/domain/employee"
	"github.com/spx-hr/attendance-backend-go/internal/domain/payroll"
	"github.com/spx-hr/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmployeeRepo keeps employees in memory. conflictsLeft simulates a
// concurrent writer: while positive, each code-taking write loses the race,
// and the contested code becomes taken by a phantom employee.
type fakeEmployeeRepo struct {
	employees     []employee.Employee
	conflictsLeft int
	createCalls   int
}

func (f *fakeEmployeeRepo) codeTaken(code string) bool {
	for _, emp := range f.employees {
		if emp.HasCode() && *emp.EmployeeCode == code {
			return true
		}
	}
	return false
}

func (f *fakeEmployeeRepo) stealCode(code string) {
	c := code
	f.employees = append(f.employees, employee.Employee{
		ID:           uuid.NewString(),
		EmployeeCode: &c,
		Name:         "phantom",
		DailyWage:    decimal.NewFromInt(1),
	})
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	f.createCalls++
	if emp.EmployeeCode != nil {
		if f.conflictsLeft > 0 {
			f.conflictsLeft--
			f.stealCode(*emp.EmployeeCode)
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		if f.codeTaken(*emp.EmployeeCode) {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}
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
	for i, emp := range f.employees {
		if emp.ID == req.ID {
			if req.Name != nil {
				f.employees[i].Name = *req.Name
			}
			if req.DailyWage != nil {
				f.employees[i].DailyWage = *req.DailyWage
			}
			return f.employees[i], nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error {
	for i, emp := range f.employees {
		if emp.ID == id {
			f.employees = append(f.employees[:i], f.employees[i+1:]...)
			return nil
		}
	}
	return employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) SetCode(ctx context.Context, id string, code string) error {
	if f.conflictsLeft > 0 {
		f.conflictsLeft--
		f.stealCode(code)
		return employee.ErrEmployeeCodeExists
	}
	if f.codeTaken(code) {
		return employee.ErrEmployeeCodeExists
	}
	for i, emp := range f.employees {
		if emp.ID == id {
			f.employees[i].EmployeeCode = &code
			return nil
		}
	}
	return employee.ErrEmployeeNotFound
}

// fakePayrollRepo satisfies the payroll repository. Employee deletion is the
// only path that touches it here.
type fakePayrollRepo struct {
	deletedCodes []string
}

func (f *fakePayrollRepo) Upsert(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, bool, error) {
	return record, true, nil
}

func (f *fakePayrollRepo) GetByEmployeePeriod(ctx context.Context, code string, month, year int) (*payroll.PayrollRecord, error) {
	return nil, nil
}

func (f *fakePayrollRepo) ListByPeriod(ctx context.Context, month, year int) ([]payroll.PayrollRecord, error) {
	return nil, nil
}

func (f *fakePayrollRepo) DeleteByEmployeeCode(ctx context.Context, code string) (int, error) {
	f.deletedCodes = append(f.deletedCodes, code)
	return 0, nil
}

func wagePtr(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

func seedEmployee(repo *fakeEmployeeRepo, code, name string) employee.Employee {
	var codePtr *string
	if code != "" {
		codePtr = &code
	}
	emp := employee.Employee{
		ID:           uuid.NewString(),
		EmployeeCode: codePtr,
		Name:         name,
		DailyWage:    decimal.NewFromInt(500),
	}
	repo.employees = append(repo.employees, emp)
	return emp
}

func TestCreateAutoAssignsNextCode(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	seedEmployee(repo, "SPX001", "Asha")
	seedEmployee(repo, "SPX003", "Biru")
	svc := NewEmployeeService(nil, repo, &fakePayrollRepo{})

	resp, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{
		Name:      "Chitra",
		DailyWage: wagePtr(450),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.EmployeeCode)
	assert.Equal(t, "SPX004", *resp.EmployeeCode)
}

func TestCreateValidatesInput(t *testing.T) {
	svc := NewEmployeeService(nil, &fakeEmployeeRepo{}, &fakePayrollRepo{})
	var verrs validator.ValidationErrors

	_, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{
		Name: "", DailyWage: wagePtr(500),
	})
	require.ErrorAs(t, err, &verrs)

	_, err = svc.Create(context.Background(), employee.CreateEmployeeRequest{
		Name: "Asha", DailyWage: wagePtr(0),
	})
	require.ErrorAs(t, err, &verrs)

	_, err = svc.Create(context.Background(), employee.CreateEmployeeRequest{
		Name: "Asha",
	})
	require.ErrorAs(t, err, &verrs)
}

func TestCreateExplicitDuplicateCodeIsNotRetried(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	seedEmployee(repo, "SPX001", "Asha")
	svc := NewEmployeeService(nil, repo, &fakePayrollRepo{})

	code := "SPX001"
	_, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{
		Name:         "Biru",
		EmployeeCode: &code,
		DailyWage:    wagePtr(400),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
	assert.Equal(t, 1, repo.createCalls)
}

func TestCreateRecomputesCodeAfterLosingRace(t *testing.T) {
	repo := &fakeEmployeeRepo{conflictsLeft: 1}
	svc := NewEmployeeService(nil, repo, &fakePayrollRepo{})

	resp, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{
		Name:      "Asha",
		DailyWage: wagePtr(500),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.EmployeeCode)
	// SPX001 went to the phantom concurrent writer.
	assert.Equal(t, "SPX002", *resp.EmployeeCode)
	assert.Equal(t, 2, repo.createCalls)
}

func TestCreateGivesUpAfterBoundedRetries(t *testing.T) {
	repo := &fakeEmployeeRepo{conflictsLeft: 10}
	svc := NewEmployeeService(nil, repo, &fakePayrollRepo{})

	_, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{
		Name:      "Asha",
		DailyWage: wagePtr(500),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
	assert.Equal(t, 3, repo.createCalls)
}

func TestAssignMissingCodes(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	seedEmployee(repo, "SPX005", "Asha")
	seedEmployee(repo, "", "Biru")
	seedEmployee(repo, "", "Chitra")
	svc := NewEmployeeService(nil, repo, &fakePayrollRepo{})

	resp, err := svc.AssignMissingCodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.AssignedCount)
	require.Len(t, resp.Results, 2)

	assert.Equal(t, "updated", resp.Results[0].Status)
	require.NotNil(t, resp.Results[0].EmployeeCode)
	assert.Equal(t, "SPX006", *resp.Results[0].EmployeeCode)

	assert.Equal(t, "updated", resp.Results[1].Status)
	require.NotNil(t, resp.Results[1].EmployeeCode)
	assert.Equal(t, "SPX007", *resp.Results[1].EmployeeCode)

	// Every employee now carries a code.
	uncoded, err := repo.List(context.Background(), employee.ListFilter{HasCode: boolPtr(false)})
	require.NoError(t, err)
	assert.Empty(t, uncoded)
}

func TestAssignMissingCodesNothingToDo(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	seedEmployee(repo, "SPX001", "Asha")
	svc := NewEmployeeService(nil, repo, &fakePayrollRepo{})

	resp, err := svc.AssignMissingCodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.AssignedCount)
	assert.Empty(t, resp.Results)
}

func TestAssignMissingCodesRetriesOnConflict(t *testing.T) {
	repo := &fakeEmployeeRepo{conflictsLeft: 1}
	seedEmployee(repo, "", "Asha")
	svc := NewEmployeeService(nil, repo, &fakePayrollRepo{})

	resp, err := svc.AssignMissingCodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.AssignedCount)
	require.Len(t, resp.Results, 1)
	require.NotNil(t, resp.Results[0].EmployeeCode)
	// SPX001 was taken mid-flight; the retry recomputed from fresh state.
	assert.Equal(t, "SPX002", *resp.Results[0].EmployeeCode)
}

func TestDeleteEmployeeWithoutCode(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	emp := seedEmployee(repo, "", "Asha")
	payRepo := &fakePayrollRepo{}
	svc := NewEmployeeService(nil, repo, payRepo)

	require.NoError(t, svc.Delete(context.Background(), emp.ID))
	assert.Empty(t, repo.employees)
	// No code means no payroll rows to purge.
	assert.Empty(t, payRepo.deletedCodes)

	err := svc.Delete(context.Background(), emp.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func boolPtr(b bool) *bool { return &b }

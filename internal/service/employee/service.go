package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/spx-hr/attendance-backend-go/internal/domain/employee"
	"github.com/spx-hr/attendance-backend-go/internal/domain/payroll"
	"github.com/spx-hr/attendance-backend-go/internal/pkg/database"
	"github.com/spx-hr/attendance-backend-go/internal/repository/postgresql"
)

// maxCodeRetries bounds how often a code assignment is recomputed after
// losing a uniqueness race to a concurrent writer.
const maxCodeRetries = 3

type EmployeeServiceImpl struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
	payrollRepo  payroll.PayrollRepository
}

func NewEmployeeService(db *database.DB, employeeRepo employee.EmployeeRepository, payrollRepo payroll.PayrollRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
		payrollRepo:  payrollRepo,
	}
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp := employee.Employee{
		Name:         req.Name,
		DailyWage:    *req.DailyWage,
		EmployeeCode: req.EmployeeCode,
	}

	// An explicitly supplied code that collides is a genuine duplicate and
	// surfaces directly; only auto-assigned codes are retried.
	if req.EmployeeCode != nil {
		created, err := s.employeeRepo.Create(ctx, emp)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		return employee.ToResponse(created), nil
	}

	var lastErr error
	for attempt := 0; attempt < maxCodeRetries; attempt++ {
		codes, err := s.employeeRepo.ListCodes(ctx)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		code := employee.NextCode(codes)
		emp.EmployeeCode = &code

		created, err := s.employeeRepo.Create(ctx, emp)
		if err == nil {
			return employee.ToResponse(created), nil
		}
		if !errors.Is(err, employee.ErrEmployeeCodeExists) {
			return employee.EmployeeResponse{}, err
		}
		lastErr = err
	}

	return employee.EmployeeResponse{}, lastErr
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context, withCodeOnly bool) ([]employee.EmployeeResponse, error) {
	filter := employee.ListFilter{}
	if withCodeOnly {
		hasCode := true
		filter.HasCode = &hasCode
	}

	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		result = append(result, employee.ToResponse(emp))
	}

	return result, nil
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.Update(ctx, req)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(updated), nil
}

func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !emp.HasCode() {
		return s.employeeRepo.Delete(ctx, id)
	}

	// Payroll rows are derived data and go with the employee. Attendance
	// history stays; the reconciliation pass owns its cleanup.
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if _, err := s.payrollRepo.DeleteByEmployeeCode(txCtx, *emp.EmployeeCode); err != nil {
			return err
		}
		return s.employeeRepo.Delete(txCtx, id)
	})
}

func (s *EmployeeServiceImpl) AssignMissingCodes(ctx context.Context) (employee.AssignCodesResponse, error) {
	hasCode := false
	missing, err := s.employeeRepo.List(ctx, employee.ListFilter{HasCode: &hasCode})
	if err != nil {
		return employee.AssignCodesResponse{}, err
	}

	if len(missing) == 0 {
		return employee.AssignCodesResponse{}, nil
	}

	codes, err := s.employeeRepo.ListCodes(ctx)
	if err != nil {
		return employee.AssignCodesResponse{}, err
	}

	var resp employee.AssignCodesResponse
	for _, emp := range missing {
		code, err := s.assignCode(ctx, emp.ID, codes)
		if err != nil {
			msg := err.Error()
			resp.Results = append(resp.Results, employee.CodeAssignmentResult{
				Employee: emp.Name,
				Status:   "error",
				Message:  &msg,
			})
			continue
		}

		codes = append(codes, code)
		resp.AssignedCount++
		resp.Results = append(resp.Results, employee.CodeAssignmentResult{
			Employee:     emp.Name,
			Status:       "updated",
			EmployeeCode: &code,
		})
	}

	return resp, nil
}

// assignCode writes the next sequential code to the employee, recomputing
// from fresh state when a concurrent writer takes the same code first.
func (s *EmployeeServiceImpl) assignCode(ctx context.Context, id string, codes []string) (string, error) {
	code := employee.NextCode(codes)

	var lastErr error
	for attempt := 0; attempt < maxCodeRetries; attempt++ {
		err := s.employeeRepo.SetCode(ctx, id, code)
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, employee.ErrEmployeeCodeExists) {
			return "", err
		}
		lastErr = err

		fresh, listErr := s.employeeRepo.ListCodes(ctx)
		if listErr != nil {
			return "", listErr
		}
		code = employee.NextCode(fresh)
	}

	return "", lastErr
}

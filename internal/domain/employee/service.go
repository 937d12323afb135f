package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, withCodeOnly bool) ([]EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error

	// AssignMissingCodes backfills business codes for every employee that
	// lacks one, continuing the SPX sequence from the current maximum.
	AssignMissingCodes(ctx context.Context) (AssignCodesResponse, error)
}

package employee

import "context"

// ListFilter narrows List results.
type ListFilter struct {
	// HasCode, when set, keeps only employees with (true) or without (false)
	// a business code.
	HasCode *bool
}

// EmployeeRepository defines data access methods for employees.
type EmployeeRepository interface {
	// Create inserts a new employee. A non-nil EmployeeCode that collides
	// with an existing one returns ErrEmployeeCodeExists.
	Create(ctx context.Context, emp Employee) (Employee, error)

	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByCode retrieves an employee by business code.
	GetByCode(ctx context.Context, code string) (Employee, error)

	List(ctx context.Context, filter ListFilter) ([]Employee, error)

	// ListCodes returns all assigned business codes.
	ListCodes(ctx context.Context) ([]string, error)

	Update(ctx context.Context, req UpdateEmployeeRequest) (Employee, error)

	Delete(ctx context.Context, id string) error

	// SetCode assigns a business code to an employee. A collision returns
	// ErrEmployeeCodeExists so the caller can recompute and retry.
	SetCode(ctx context.Context, id string, code string) error
}

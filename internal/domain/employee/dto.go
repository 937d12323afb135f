package employee

import (
	"github.com/shopspring/decimal"
	"github.com/spx-hr/attendance-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name         string           `json:"name"`
	EmployeeCode *string          `json:"employee_code,omitempty"`
	DailyWage    *decimal.Decimal `json:"daily_wage"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.DailyWage == nil {
		errs = append(errs, validator.ValidationError{Field: "daily_wage", Message: "is required"})
	} else if !r.DailyWage.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "daily_wage", Message: "must be positive"})
	}
	if r.EmployeeCode != nil && !validator.IsValidEmployeeCode(*r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "must match SPX followed by at least 3 digits"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID        string           `json:"-"`
	Name      *string          `json:"name,omitempty"`
	DailyWage *decimal.Decimal `json:"daily_wage,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.DailyWage != nil && !r.DailyWage.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "daily_wage", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID           string          `json:"id"`
	EmployeeCode *string         `json:"employee_code,omitempty"`
	Name         string          `json:"name"`
	DailyWage    decimal.Decimal `json:"daily_wage"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		Name:         e.Name,
		DailyWage:    e.DailyWage,
	}
}

type CodeAssignmentResult struct {
	Employee     string  `json:"employee"`
	Status       string  `json:"status"` // "updated" or "error"
	EmployeeCode *string `json:"employee_code,omitempty"`
	Message      *string `json:"message,omitempty"`
}

type AssignCodesResponse struct {
	AssignedCount int                    `json:"assigned_count"`
	Results       []CodeAssignmentResult `json:"results"`
}

package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/spx-hr/attendance-backend-go/internal/pkg/validator"
)

type CalculateRequest struct {
	// Month and Year default to the current calendar month when nil.
	Month *int `json:"month,omitempty"`
	Year  *int `json:"year,omitempty"`
}

// Validate rejects out-of-range periods instead of computing a degenerate
// empty window.
func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month != nil && !validator.IsValidMonth(*r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year != nil && !validator.IsValidYear(*r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a positive year"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollRecordResponse struct {
	ID           string          `json:"id,omitempty"`
	EmployeeCode string          `json:"employee_code"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	PresentDays  int             `json:"present_days"`
	HalfDays     int             `json:"half_days"`
	AbsentDays   int             `json:"absent_days"`
	DailyWage    decimal.Decimal `json:"daily_wage"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

func ToResponse(r PayrollRecord) PayrollRecordResponse {
	return PayrollRecordResponse{
		ID:           r.ID,
		EmployeeCode: r.EmployeeCode,
		EmployeeName: r.EmployeeName,
		Month:        r.Month,
		Year:         r.Year,
		PresentDays:  r.PresentDays,
		HalfDays:     r.HalfDays,
		AbsentDays:   r.AbsentDays,
		DailyWage:    r.DailyWage,
		TotalAmount:  r.TotalAmount,
	}
}

type EmployeeResult struct {
	Employee string                 `json:"employee"`
	Status   string                 `json:"status"` // "skipped", "inserted", "updated" or "error"
	Reason   *string                `json:"reason,omitempty"`
	Message  *string                `json:"message,omitempty"`
	Data     *PayrollRecordResponse `json:"data,omitempty"`
}

type CalculateResponse struct {
	Success       bool             `json:"success"`
	Month         int              `json:"month"`
	Year          int              `json:"year"`
	EmployeeCount int              `json:"employee_count"`
	Results       []EmployeeResult `json:"results"`
}

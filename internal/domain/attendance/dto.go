package attendance

import (
	"github.com/spx-hr/attendance-backend-go/internal/pkg/validator"
)

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeCode string  `json:"employee_code"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		EmployeeCode: a.EmployeeCode,
		EmployeeName: a.EmployeeName,
		Date:         a.Date.Format("2006-01-02"),
		Status:       string(a.Status),
	}
}

type SaveDayRequest struct {
	Date     string            `json:"date"`
	Statuses map[string]string `json:"statuses"` // employee code -> status
}

func (r *SaveDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid YYYY-MM-DD date"})
	}
	if len(r.Statuses) == 0 {
		errs = append(errs, validator.ValidationError{Field: "statuses", Message: "at least one entry is required"})
	}
	for code, status := range r.Statuses {
		if !Status(status).Valid() {
			errs = append(errs, validator.ValidationError{Field: code, Message: "status must be present, absent or half_day"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DayEntryResult struct {
	EmployeeCode string  `json:"employee_code"`
	Status       string  `json:"status"` // "saved" or "error"
	Message      *string `json:"message,omitempty"`
}

type SaveDayResponse struct {
	Success bool             `json:"success"`
	Date    string           `json:"date"`
	Results []DayEntryResult `json:"results"`
}

type SyncResult struct {
	Employee string  `json:"employee"`
	Status   string  `json:"status"` // "created", "exists" or "error"
	Message  *string `json:"message,omitempty"`
}

type SyncDayResponse struct {
	Date          string       `json:"date"`
	EmployeeCount int          `json:"employee_count"`
	CreatedCount  int          `json:"created_count"`
	ExistingCount int          `json:"existing_count"`
	Results       []SyncResult `json:"results"`
}

type ReconcileResponse struct {
	DeletedCount   int                  `json:"deleted_count"`
	DeletedRecords []AttendanceResponse `json:"deleted_records"`
}

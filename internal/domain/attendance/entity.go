package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day"
)

// Valid reports whether s is one of the three attendance statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay:
		return true
	}
	return false
}

// Attendance is one employee's status for one calendar date. At most one
// record exists per (EmployeeCode, Date).
type Attendance struct {
	ID           string
	EmployeeCode string
	Date         time.Time
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	EmployeeName *string
}

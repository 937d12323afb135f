package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRecord is the derived monthly pay for one employee. Exactly one row
// exists per (EmployeeCode, Month, Year); recalculation overwrites it.
type PayrollRecord struct {
	ID           string
	EmployeeCode string
	Month        int
	Year         int
	PresentDays  int
	HalfDays     int
	AbsentDays   int
	DailyWage    decimal.Decimal
	TotalAmount  decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	EmployeeName *string
}

// PeriodBounds returns the first and last calendar day of (year, month).
// The end is computed as the day before the first day of the following month,
// which handles 28/29/30/31-day months and leap years.
func PeriodBounds(month, year int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}

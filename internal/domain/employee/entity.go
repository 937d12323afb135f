package employee

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	EmployeeCode *string
	Name         string
	DailyWage    decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasCode reports whether the employee has a business code assigned.
// Attendance and payroll rows key on the code, so an employee without one
// cannot participate in either.
func (e Employee) HasCode() bool {
	return e.EmployeeCode != nil && *e.EmployeeCode != ""
}

// CodePrefix is the business code namespace. Codes look like SPX001.
const CodePrefix = "SPX"

// codeWidth is the minimum zero-padded width of the numeric suffix.
const codeWidth = 3

var codeSuffixRegex = regexp.MustCompile(`^SPX(\d+)$`)

// NextCode computes the next sequential business code from the set of codes
// already assigned. The sequence continues from the maximum numeric suffix;
// gaps are never filled and codes outside the SPX+digits pattern are ignored.
func NextCode(existing []string) string {
	max := 0
	for _, code := range existing {
		m := codeSuffixRegex.FindStringSubmatch(code)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return FormatCode(max + 1)
}

// FormatCode renders a sequence number as a business code.
func FormatCode(n int) string {
	return fmt.Sprintf("%s%0*d", CodePrefix, codeWidth, n)
}

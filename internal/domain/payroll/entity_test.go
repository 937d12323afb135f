package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodBounds(t *testing.T) {
	tests := []struct {
		name    string
		month   int
		year    int
		wantEnd time.Time
	}{
		{"january has 31 days", 1, 2024, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)},
		{"february in a leap year", 2, 2024, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"february in a common year", 2, 2023, time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"april has 30 days", 4, 2024, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)},
		{"december rolls into the next year correctly", 12, 2024, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := PeriodBounds(tt.month, tt.year)
			assert.Equal(t, time.Date(tt.year, time.Month(tt.month), 1, 0, 0, 0, 0, time.UTC), start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/spx-hr/attendance-backend-go/internal/domain/payroll"
	"github.com/spx-hr/attendance-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

func (r *payrollRepository) Upsert(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, bool, error) {
	q := GetQuerier(ctx, r.db)

	// xmax = 0 distinguishes a fresh insert from a conflict-update.
	query := `
		INSERT INTO payroll (
			employee_code, month, year, present_days, half_days, absent_days,
			daily_wage, total_amount
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (employee_code, month, year) DO UPDATE SET
			present_days = EXCLUDED.present_days,
			half_days = EXCLUDED.half_days,
			absent_days = EXCLUDED.absent_days,
			daily_wage = EXCLUDED.daily_wage,
			total_amount = EXCLUDED.total_amount,
			updated_at = NOW()
		RETURNING id, employee_code, month, year, present_days, half_days, absent_days,
			daily_wage, total_amount, created_at, updated_at, (xmax = 0) AS inserted
	`

	var rec payroll.PayrollRecord
	var inserted bool
	err := q.QueryRow(ctx, query,
		record.EmployeeCode, record.Month, record.Year,
		record.PresentDays, record.HalfDays, record.AbsentDays,
		record.DailyWage, record.TotalAmount,
	).Scan(
		&rec.ID, &rec.EmployeeCode, &rec.Month, &rec.Year,
		&rec.PresentDays, &rec.HalfDays, &rec.AbsentDays,
		&rec.DailyWage, &rec.TotalAmount, &rec.CreatedAt, &rec.UpdatedAt, &inserted,
	)
	if err != nil {
		return payroll.PayrollRecord{}, false, fmt.Errorf("failed to upsert payroll record: %w", err)
	}

	return rec, inserted, nil
}

func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeCode string, month, year int) (*payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, month, year, present_days, half_days, absent_days,
			   daily_wage, total_amount, created_at, updated_at
		FROM payroll
		WHERE employee_code = $1 AND month = $2 AND year = $3
	`

	var rec payroll.PayrollRecord
	err := q.QueryRow(ctx, query, employeeCode, month, year).Scan(
		&rec.ID, &rec.EmployeeCode, &rec.Month, &rec.Year,
		&rec.PresentDays, &rec.HalfDays, &rec.AbsentDays,
		&rec.DailyWage, &rec.TotalAmount, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return &rec, nil
}

func (r *payrollRepository) ListByPeriod(ctx context.Context, month, year int) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.employee_code, p.month, p.year, p.present_days, p.half_days,
			   p.absent_days, p.daily_wage, p.total_amount, p.created_at, p.updated_at,
			   e.name as employee_name
		FROM payroll p
		LEFT JOIN employees e ON p.employee_code = e.employee_code
		WHERE p.month = $1 AND p.year = $2
		ORDER BY p.employee_code
	`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		var rec payroll.PayrollRecord
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeCode, &rec.Month, &rec.Year,
			&rec.PresentDays, &rec.HalfDays, &rec.AbsentDays,
			&rec.DailyWage, &rec.TotalAmount, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (r *payrollRepository) DeleteByEmployeeCode(ctx context.Context, employeeCode string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM payroll WHERE employee_code = $1`

	tag, err := q.Exec(ctx, query, employeeCode)
	if err != nil {
		return 0, fmt.Errorf("failed to delete payroll records: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

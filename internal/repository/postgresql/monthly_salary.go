package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type salaryRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepositoryImpl{db: db}
}

const salaryColumns = `
	id, employee_id, period_year, period_month, period_start, period_end,
	total_work_days, total_amount, allowances, advance_payment, status, notes,
	calculated_at, paid_at, created_at, updated_at
`

func scanSalary(row pgx.Row) (salary.MonthlySalary, error) {
	var s salary.MonthlySalary
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.PeriodYear, &s.PeriodMonth, &s.PeriodStart, &s.PeriodEnd,
		&s.TotalWorkDays, &s.TotalAmount, &s.Allowances, &s.AdvancePayment, &s.Status, &s.Notes,
		&s.CalculatedAt, &s.PaidAt, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Create implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) Create(ctx context.Context, s salary.MonthlySalary) (salary.MonthlySalary, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO monthly_salaries (
			id, employee_id, period_year, period_month, period_start, period_end,
			total_work_days, total_amount, allowances, advance_payment, status, notes, calculated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + salaryColumns

	created, err := scanSalary(q.QueryRow(ctx, query,
		s.ID, s.EmployeeID, s.PeriodYear, s.PeriodMonth, s.PeriodStart, s.PeriodEnd,
		s.TotalWorkDays, s.TotalAmount, s.Allowances, s.AdvancePayment, s.Status, s.Notes, s.CalculatedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return salary.MonthlySalary{}, salary.ErrSalaryAlreadyExists
		}
		return salary.MonthlySalary{}, fmt.Errorf("insert monthly salary: %w", err)
	}

	return created, nil
}

// GetByID implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) GetByID(ctx context.Context, id string) (salary.MonthlySalary, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSalary(q.QueryRow(ctx, `SELECT `+salaryColumns+` FROM monthly_salaries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.MonthlySalary{}, salary.ErrSalaryNotFound
		}
		return salary.MonthlySalary{}, err
	}
	return s, nil
}

// GetByEmployeePeriodForUpdate implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) GetByEmployeePeriodForUpdate(ctx context.Context, employeeID string, start, end time.Time) (salary.MonthlySalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + `
		FROM monthly_salaries
		WHERE employee_id = $1 AND period_start = $2 AND period_end = $3
		FOR UPDATE`

	s, err := scanSalary(q.QueryRow(ctx, query, employeeID, start, end))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.MonthlySalary{}, salary.ErrSalaryNotFound
		}
		return salary.MonthlySalary{}, err
	}
	return s, nil
}

// draftWrite runs an UPDATE ... WHERE status = 'draft' RETURNING and tells a
// missing row apart from one that has already been paid.
func (r *salaryRepositoryImpl) draftWrite(ctx context.Context, id, query string, args ...interface{}) (salary.MonthlySalary, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSalary(q.QueryRow(ctx, query, args...))
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return salary.MonthlySalary{}, err
	}

	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return salary.MonthlySalary{}, err
	}
	return salary.MonthlySalary{}, fmt.Errorf("%w: salary %s is %s", salary.ErrInvalidStateTransition, id, existing.Status)
}

// UpdateCalculation implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) UpdateCalculation(ctx context.Context, s salary.MonthlySalary) (salary.MonthlySalary, error) {
	query := `
		UPDATE monthly_salaries SET
			total_work_days = $2, total_amount = $3, allowances = $4, advance_payment = $5,
			calculated_at = $6, updated_at = NOW()
		WHERE id = $1 AND status = 'draft'
		RETURNING ` + salaryColumns

	return r.draftWrite(ctx, s.ID, query,
		s.ID, s.TotalWorkDays, s.TotalAmount, s.Allowances, s.AdvancePayment, s.CalculatedAt)
}

// UpdateAdjustments implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) UpdateAdjustments(ctx context.Context, id string, allowances, advancePayment *int64) (salary.MonthlySalary, error) {
	query := `
		UPDATE monthly_salaries SET
			allowances = COALESCE($2, allowances),
			advance_payment = COALESCE($3, advance_payment),
			updated_at = NOW()
		WHERE id = $1 AND status = 'draft'
		RETURNING ` + salaryColumns

	return r.draftWrite(ctx, id, query, id, allowances, advancePayment)
}

// MarkPaid implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) MarkPaid(ctx context.Context, id string, paidAt time.Time) (salary.MonthlySalary, error) {
	query := `
		UPDATE monthly_salaries SET status = 'paid', paid_at = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'draft'
		RETURNING ` + salaryColumns

	return r.draftWrite(ctx, id, query, id, paidAt)
}

// Delete implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM monthly_salaries WHERE id = $1 AND status = 'draft'`, id)
	if err != nil {
		return err
	}

	if commandTag.RowsAffected() == 0 {
		existing, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: salary %s is %s", salary.ErrInvalidStateTransition, id, existing.Status)
	}

	return nil
}

// List implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) List(ctx context.Context, filter salary.SalaryFilter) ([]salary.MonthlySalary, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.PeriodYear != nil {
		conditions = append(conditions, fmt.Sprintf("period_year = $%d", argIdx))
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.PeriodMonth != nil {
		conditions = append(conditions, fmt.Sprintf("period_month = $%d", argIdx))
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var totalCount int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM monthly_salaries `+whereClause, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("count monthly salaries: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`SELECT %s FROM monthly_salaries %s ORDER BY period_start DESC, employee_id LIMIT $%d OFFSET $%d`,
		salaryColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	salaries := make([]salary.MonthlySalary, 0)
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, 0, err
		}
		salaries = append(salaries, s)
	}

	return salaries, totalCount, rows.Err()
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workrecord"
	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type workRecordRepositoryImpl struct {
	db *database.DB
}

func NewWorkRecordRepository(db *database.DB) workrecord.WorkRecordRepository {
	return &workRecordRepositoryImpl{db: db}
}

const workRecordColumns = `
	id, employee_id, work_date, work_type_id, work_item_id, quantity, unit_price,
	is_overtime, overtime_quantity, overtime_hours, base_amount, overtime_amount, total_amount,
	notes, created_at, updated_at
`

func scanWorkRecord(row pgx.Row) (workrecord.WorkRecord, error) {
	var rec workrecord.WorkRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.WorkDate, &rec.WorkTypeID, &rec.WorkItemID, &rec.Quantity, &rec.UnitPrice,
		&rec.IsOvertime, &rec.OvertimeQuantity, &rec.OvertimeHours, &rec.BaseAmount, &rec.OvertimeAmount, &rec.TotalAmount,
		&rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Create implements workrecord.WorkRecordRepository.
func (r *workRecordRepositoryImpl) Create(ctx context.Context, record workrecord.WorkRecord) (workrecord.WorkRecord, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		record.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO work_records (
			id, employee_id, work_date, work_type_id, work_item_id, quantity, unit_price,
			is_overtime, overtime_quantity, overtime_hours, base_amount, overtime_amount, total_amount, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + workRecordColumns

	created, err := scanWorkRecord(q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.WorkDate, record.WorkTypeID, record.WorkItemID, record.Quantity, record.UnitPrice,
		record.IsOvertime, record.OvertimeQuantity, record.OvertimeHours, record.BaseAmount, record.OvertimeAmount, record.TotalAmount,
		record.Notes,
	))
	if err != nil {
		return workrecord.WorkRecord{}, fmt.Errorf("insert work record: %w", err)
	}

	return created, nil
}

func (r *workRecordRepositoryImpl) get(ctx context.Context, id string, forUpdate bool) (workrecord.WorkRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workRecordColumns + ` FROM work_records WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	rec, err := scanWorkRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return workrecord.WorkRecord{}, workrecord.ErrWorkRecordNotFound
		}
		return workrecord.WorkRecord{}, err
	}
	return rec, nil
}

// GetByID implements workrecord.WorkRecordRepository.
func (r *workRecordRepositoryImpl) GetByID(ctx context.Context, id string) (workrecord.WorkRecord, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate implements workrecord.WorkRecordRepository.
func (r *workRecordRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (workrecord.WorkRecord, error) {
	return r.get(ctx, id, true)
}

// Update implements workrecord.WorkRecordRepository.
func (r *workRecordRepositoryImpl) Update(ctx context.Context, record workrecord.WorkRecord) (workrecord.WorkRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_records SET
			employee_id = $2, work_date = $3, work_type_id = $4, work_item_id = $5, quantity = $6, unit_price = $7,
			is_overtime = $8, overtime_quantity = $9, overtime_hours = $10,
			base_amount = $11, overtime_amount = $12, total_amount = $13, notes = $14,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + workRecordColumns

	updated, err := scanWorkRecord(q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.WorkDate, record.WorkTypeID, record.WorkItemID, record.Quantity, record.UnitPrice,
		record.IsOvertime, record.OvertimeQuantity, record.OvertimeHours,
		record.BaseAmount, record.OvertimeAmount, record.TotalAmount, record.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return workrecord.WorkRecord{}, workrecord.ErrWorkRecordNotFound
		}
		return workrecord.WorkRecord{}, fmt.Errorf("update work record: %w", err)
	}

	return updated, nil
}

// Delete implements workrecord.WorkRecordRepository.
func (r *workRecordRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM work_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return workrecord.ErrWorkRecordNotFound
	}
	return nil
}

// List implements workrecord.WorkRecordRepository.
func (r *workRecordRepositoryImpl) List(ctx context.Context, filter workrecord.WorkRecordFilter) ([]workrecord.WorkRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	add := func(cond string, arg interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argIdx))
		args = append(args, arg)
		argIdx++
	}
	if filter.EmployeeID != nil {
		add("employee_id = $%d", *filter.EmployeeID)
	}
	if filter.WorkTypeID != nil {
		add("work_type_id = $%d", *filter.WorkTypeID)
	}
	if filter.WorkItemID != nil {
		add("work_item_id = $%d", *filter.WorkItemID)
	}
	if filter.StartDate != nil {
		add("work_date >= $%d::date", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("work_date <= $%d::date", *filter.EndDate)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM work_records ` + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("count work records: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`SELECT %s FROM work_records %s ORDER BY work_date DESC, created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		workRecordColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records := make([]workrecord.WorkRecord, 0)
	for rows.Next() {
		rec, err := scanWorkRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}

	return records, totalCount, rows.Err()
}

// SummarizeEmployeePeriod implements workrecord.WorkRecordRepository.
func (r *workRecordRepositoryImpl) SummarizeEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time) (workrecord.PeriodSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*), COUNT(DISTINCT work_date), COALESCE(SUM(total_amount), 0)
		FROM work_records
		WHERE employee_id = $1 AND work_date BETWEEN $2 AND $3
	`

	summary := workrecord.PeriodSummary{EmployeeID: employeeID}
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(
		&summary.RecordCount, &summary.TotalWorkDays, &summary.TotalAmount,
	); err != nil {
		return workrecord.PeriodSummary{}, fmt.Errorf("summarize work records: %w", err)
	}

	return summary, nil
}

package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/worktype"
	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workTypeRepositoryImpl struct {
	db *database.DB
}

func NewWorkTypeRepository(db *database.DB) worktype.WorkTypeRepository {
	return &workTypeRepositoryImpl{db: db}
}

// GetByID implements worktype.WorkTypeRepository.
func (r *workTypeRepositoryImpl) GetByID(ctx context.Context, id string) (worktype.WorkType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, department, calculation_type, unit_price, created_at, updated_at
		FROM work_types
		WHERE id = $1
	`

	var wt worktype.WorkType
	err := q.QueryRow(ctx, query, id).Scan(
		&wt.ID, &wt.Name, &wt.Department, &wt.CalculationType, &wt.UnitPrice, &wt.CreatedAt, &wt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worktype.WorkType{}, worktype.ErrWorkTypeNotFound
		}
		return worktype.WorkType{}, err
	}

	return wt, nil
}

// List implements worktype.WorkTypeRepository.
func (r *workTypeRepositoryImpl) List(ctx context.Context, department *string) ([]worktype.WorkType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, department, calculation_type, unit_price, created_at, updated_at
		FROM work_types
		WHERE ($1::text IS NULL OR department = $1)
		ORDER BY department, name
	`

	rows, err := q.Query(ctx, query, department)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workTypes := make([]worktype.WorkType, 0)
	for rows.Next() {
		var wt worktype.WorkType
		if err := rows.Scan(
			&wt.ID, &wt.Name, &wt.Department, &wt.CalculationType, &wt.UnitPrice, &wt.CreatedAt, &wt.UpdatedAt,
		); err != nil {
			return nil, err
		}
		workTypes = append(workTypes, wt)
	}

	return workTypes, rows.Err()
}

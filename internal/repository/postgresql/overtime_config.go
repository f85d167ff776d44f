package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type overtimeRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.OvertimeRepository {
	return &overtimeRepositoryImpl{db: db}
}

// GetByWorkTypeID implements overtime.OvertimeRepository.
func (r *overtimeRepositoryImpl) GetByWorkTypeID(ctx context.Context, workTypeID string) (*overtime.OvertimeConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, work_type_id, overtime_price_per_weld, overtime_percentage, created_at, updated_at
		FROM overtime_configs
		WHERE work_type_id = $1
	`

	var cfg overtime.OvertimeConfig
	err := q.QueryRow(ctx, query, workTypeID).Scan(
		&cfg.ID, &cfg.WorkTypeID, &cfg.OvertimePricePerWeld, &cfg.OvertimePercentage, &cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &cfg, nil
}

// Upsert implements overtime.OvertimeRepository.
func (r *overtimeRepositoryImpl) Upsert(ctx context.Context, cfg overtime.OvertimeConfig) (overtime.OvertimeConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_configs (id, work_type_id, overtime_price_per_weld, overtime_percentage)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT uk_overtime_config_work_type DO UPDATE
		SET overtime_price_per_weld = EXCLUDED.overtime_price_per_weld,
			overtime_percentage = EXCLUDED.overtime_percentage,
			updated_at = NOW()
		RETURNING id, work_type_id, overtime_price_per_weld, overtime_percentage, created_at, updated_at
	`

	var saved overtime.OvertimeConfig
	err := q.QueryRow(ctx, query,
		uuid.Must(uuid.NewV7()).String(), cfg.WorkTypeID, cfg.OvertimePricePerWeld, cfg.OvertimePercentage,
	).Scan(
		&saved.ID, &saved.WorkTypeID, &saved.OvertimePricePerWeld, &saved.OvertimePercentage, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return overtime.OvertimeConfig{}, err
	}

	return saved, nil
}
